package users

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/staffdesk/staffdesk/internal/shared"
)

// InMemoryRepository is the default backend when no database DSN is
// configured. Rows are returned in insertion order.
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  []*User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func clone(u *User) *User {
	c := *u
	c.Roles = slices.Clone(u.Roles)
	return &c
}

func (r *InMemoryRepository) GetAll(ctx context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, clone(u))
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.items {
		if u.ID == id {
			return clone(u), nil
		}
	}
	return nil, shared.ErrorNotFound
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.items {
		if u.Username == username {
			return clone(u), nil
		}
	}
	return nil, shared.ErrorNotFound
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.items {
		if strings.EqualFold(u.Email, email) {
			return clone(u), nil
		}
	}
	return nil, shared.ErrorNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := clone(user)
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.nextID++
	r.items = append(r.items, u)
	return clone(u), nil
}

func (r *InMemoryRepository) Update(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.items {
		if u.ID == user.ID {
			c := clone(user)
			c.CreatedAt = u.CreatedAt
			r.items[i] = c
			return clone(c), nil
		}
	}
	return nil, shared.ErrorNotFound
}
