package item

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expected    float64
		expectError bool
	}{
		{name: "number", raw: `9.99`, expected: 9.99},
		{name: "integer", raw: `10`, expected: 10},
		{name: "zero", raw: `0`, expected: 0},
		{name: "numeric string", raw: `"9.99"`, expected: 9.99},
		{name: "numeric string with spaces", raw: `" 12.5 "`, expected: 12.5},
		{name: "negative string", raw: `"-3"`, expected: -3},
		{name: "true", raw: `true`, expected: 1},
		{name: "false", raw: `false`, expected: 0},
		{name: "null", raw: `null`, expectError: true},
		{name: "word", raw: `"abc"`, expectError: true},
		{name: "empty string", raw: `""`, expectError: true},
		{name: "nan string", raw: `"NaN"`, expectError: true},
		{name: "infinity string", raw: `"inf"`, expectError: true},
		{name: "object", raw: `{"amount": 1}`, expectError: true},
		{name: "array", raw: `[1]`, expectError: true},
		{name: "malformed", raw: `9.9.9`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePrice(json.RawMessage(tt.raw))
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}
