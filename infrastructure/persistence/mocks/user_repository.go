// Package mocks provides the in-memory persistence gateway, used as the
// default database type and as the test double.
package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/nesmy/users-api/domain/user"
)

// MockUserRepository keeps user records in a map guarded by a RWMutex and
// assigns sequential identifiers on insert. Records are deep-copied on every
// boundary crossing so callers can never mutate stored state.
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*user.User
	nextID int64
}

// NewMockUserRepository creates an empty in-memory repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[int64]*user.User),
	}
}

// FindByID returns a copy of the stored user, or nil when absent.
func (r *MockUserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u.Clone(), nil
}

// Save stores a copy of u, assigning the next identifier when it has none.
func (r *MockUserRepository) Save(ctx context.Context, u *user.User) (*user.User, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := u.Clone()
	if stored.UserID == nil {
		r.nextID++
		id := r.nextID
		stored.UserID = &id
	} else if *stored.UserID > r.nextID {
		r.nextID = *stored.UserID
	}
	r.users[*stored.UserID] = stored
	return stored.Clone(), nil
}

// Delete removes the record; deleting an absent id is a no-op.
func (r *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

// FindByBirthDateBetween returns copies of the users born in [start, end],
// inclusive, ordered by birth date then id.
func (r *MockUserRepository) FindByBirthDateBetween(ctx context.Context, start, end user.Date) ([]*user.User, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*user.User
	for _, u := range r.users {
		if u.BirthDate == nil {
			continue
		}
		bd := *u.BirthDate
		if bd.Before(start) || end.Before(bd) {
			continue
		}
		matches = append(matches, u.Clone())
	}

	sort.Slice(matches, func(i, j int) bool {
		bi, bj := *matches[i].BirthDate, *matches[j].BirthDate
		if !bi.Equal(bj) {
			return bi.Before(bj)
		}
		return *matches[i].UserID < *matches[j].UserID
	})
	return matches, nil
}

// Compile-time interface check.
var _ user.Repository = (*MockUserRepository)(nil)
