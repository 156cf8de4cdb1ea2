// Package identity assigns string identifiers to new entities.
package identity

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Strategy names accepted by NewGenerator
const (
	StrategySequence = "sequence"
	StrategyUUID     = "uuid"
	StrategyLegacy   = "legacy"
)

// Generator produces the id for the next entity of a collection.
// size is the number of entities in the collection before the insert.
// Callers must hold the collection lock while calling Next.
type Generator interface {
	Next(size int) string
}

// NewGenerator returns a fresh generator for strategy. Each collection needs its own.
func NewGenerator(strategy string) (Generator, error) {
	switch strategy {
	case StrategySequence, "":
		return &Sequence{}, nil
	case StrategyUUID:
		return UUID{}, nil
	case StrategyLegacy:
		return Legacy{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}

// Sequence hands out "1", "2", ... and never reuses a value.
type Sequence struct {
	last atomic.Uint64
}

// Next implements Generator
func (s *Sequence) Next(int) string {
	return strconv.FormatUint(s.last.Add(1), 10)
}

// UUID hands out random version 4 UUIDs.
type UUID struct{}

// Next implements Generator
func (UUID) Next(int) string {
	return uuid.NewString()
}

// Legacy derives the id from the collection size, so ids repeat after deletes.
type Legacy struct{}

// Next implements Generator
func (Legacy) Next(size int) string {
	return strconv.Itoa(size + 1)
}
