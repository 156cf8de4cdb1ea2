package identity

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		strategy string
		want     Generator
	}{
		{strategy: "", want: &Sequence{}},
		{strategy: StrategySequence, want: &Sequence{}},
		{strategy: StrategyUUID, want: UUID{}},
		{strategy: StrategyLegacy, want: Legacy{}},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			g, err := NewGenerator(tt.strategy)
			require.NoError(t, err)
			assert.IsType(t, tt.want, g)
		})
	}

	_, err := NewGenerator("snowflake")
	assert.Error(t, err)
}

func TestSequence_IgnoresSize(t *testing.T) {
	s := &Sequence{}

	assert.Equal(t, "1", s.Next(0))
	assert.Equal(t, "2", s.Next(0))
	assert.Equal(t, "3", s.Next(1))
}

func TestSequence_ConcurrentUnique(t *testing.T) {
	s := &Sequence{}
	const n = 200

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := s.Next(0)
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}

func TestUUID_Valid(t *testing.T) {
	id := UUID{}.Next(5)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, UUID{}.Next(5))
}

func TestLegacy_CountPlusOne(t *testing.T) {
	assert.Equal(t, "1", Legacy{}.Next(0))
	assert.Equal(t, "3", Legacy{}.Next(2))
}
