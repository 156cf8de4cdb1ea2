package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"simple-crud-api/internal/domain/identity"
	"simple-crud-api/internal/domain/item"
	pkgerrors "simple-crud-api/pkg/errors"
)

type itemRecord struct {
	item item.Item
	seq  uint64
}

// ItemRepo keeps items in a map for the lifetime of the process.
type ItemRepo struct {
	mu    sync.RWMutex
	items map[string]itemRecord
	seq   uint64
	ids   identity.Generator
	log   *zap.Logger
}

// NewItemRepo creates an empty item store.
func NewItemRepo(ids identity.Generator, log *zap.Logger) *ItemRepo {
	return &ItemRepo{
		items: make(map[string]itemRecord),
		ids:   ids,
		log:   log,
	}
}

// Create assigns an ID and stores the item.
func (r *ItemRepo) Create(_ context.Context, it *item.Item) (*item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *it
	stored.ID = r.ids.Next(len(r.items))
	if _, exists := r.items[stored.ID]; exists {
		r.log.Warn("item id collision, replacing record", zap.String("id", stored.ID))
	}

	r.seq++
	r.items[stored.ID] = itemRecord{item: stored, seq: r.seq}

	r.log.Debug("item stored", zap.String("id", stored.ID))
	return &stored, nil
}

// Delete removes the item and returns it.
func (r *ItemRepo) Delete(_ context.Context, id string) (*item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("item", id)
	}
	delete(r.items, id)

	it := rec.item
	return &it, nil
}

// List returns items in insertion order, keeping only names that contain query
// (case-insensitive) when query is non-empty.
func (r *ItemRepo) List(_ context.Context, query string) ([]item.Item, error) {
	needle := strings.ToLower(query)

	r.mu.RLock()
	records := make([]itemRecord, 0, len(r.items))
	for _, rec := range r.items {
		if needle != "" && !strings.Contains(strings.ToLower(rec.item.Name), needle) {
			continue
		}
		records = append(records, rec)
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].seq < records[j].seq })

	items := make([]item.Item, len(records))
	for i, rec := range records {
		items[i] = rec.item
	}
	return items, nil
}
