package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

var (
	errNullPrice  = errors.New("price is null")
	errEmptyPrice = errors.New("price is an empty string")
)

// parsePrice coerces a JSON number, numeric string or boolean into a float64.
func parsePrice(raw json.RawMessage) (float64, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("failed to decode price: %w", err)
	}

	switch p := v.(type) {
	case nil:
		return 0, errNullPrice
	case string:
		p = strings.TrimSpace(p)
		if p == "" {
			return 0, errEmptyPrice
		}
		v = p
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("failed to convert price: %w", err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("failed to convert price: %v is not a finite number", v)
	}
	return f, nil
}
