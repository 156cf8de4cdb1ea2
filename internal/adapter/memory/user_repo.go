// Package memory provides map-backed repositories guarded by a mutex.
package memory

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"simple-crud-api/internal/domain/identity"
	"simple-crud-api/internal/domain/user"
	pkgerrors "simple-crud-api/pkg/errors"
)

type userRecord struct {
	user user.User
	seq  uint64
}

// UserRepo keeps users in a map for the lifetime of the process.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]userRecord
	seq   uint64
	ids   identity.Generator
	log   *zap.Logger
}

// NewUserRepo creates an empty user store.
func NewUserRepo(ids identity.Generator, log *zap.Logger) *UserRepo {
	return &UserRepo{
		users: make(map[string]userRecord),
		ids:   ids,
		log:   log,
	}
}

// Create assigns an ID and stores the user. With the legacy id strategy a
// colliding ID replaces the previous record.
func (r *UserRepo) Create(_ context.Context, u *user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *u
	stored.ID = r.ids.Next(len(r.users))
	if _, exists := r.users[stored.ID]; exists {
		r.log.Warn("user id collision, replacing record", zap.String("id", stored.ID))
	}

	r.seq++
	r.users[stored.ID] = userRecord{user: stored, seq: r.seq}

	r.log.Debug("user stored", zap.String("id", stored.ID))
	return &stored, nil
}

// GetByID returns a copy of the user.
func (r *UserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("user", id)
	}
	u := rec.user
	return &u, nil
}

// Update runs apply on the stored user under the write lock.
func (r *UserRepo) Update(_ context.Context, id string, apply func(u *user.User)) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("user", id)
	}

	apply(&rec.user)
	rec.user.ID = id
	r.users[id] = rec

	u := rec.user
	return &u, nil
}

// Delete removes the user and returns it.
func (r *UserRepo) Delete(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("user", id)
	}
	delete(r.users, id)

	u := rec.user
	return &u, nil
}

// List returns all users in insertion order.
func (r *UserRepo) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	records := make([]userRecord, 0, len(r.users))
	for _, rec := range r.users {
		records = append(records, rec)
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].seq < records[j].seq })

	users := make([]user.User, len(records))
	for i, rec := range records {
		users[i] = rec.user
	}
	return users, nil
}
