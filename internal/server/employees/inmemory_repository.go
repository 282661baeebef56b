package employees

import (
	"context"
	"slices"
	"sync"

	"github.com/staffdesk/staffdesk/internal/shared"
)

// InMemoryRepository keeps employees in insertion order, which the client
// relies on as the server's list ordering.
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  []*Employee
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) GetAll(ctx context.Context) ([]*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Employee, 0, len(r.items))
	for _, e := range r.items {
		c := *e
		out = append(out, &c)
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.items {
		if e.ID == id {
			c := *e
			return &c, nil
		}
	}
	return nil, shared.ErrorNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, e *Employee) (*Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *e
	c.ID = r.nextID
	r.nextID++
	r.items = append(r.items, &c)
	out := c
	return &out, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, e *Employee) (*Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.ID == e.ID {
			c := *e
			r.items[i] = &c
			out := c
			return &out, nil
		}
	}
	return nil, shared.ErrorNotFound
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	before := len(r.items)
	r.items = slices.DeleteFunc(r.items, func(e *Employee) bool { return e.ID == id })
	if len(r.items) == before {
		return shared.ErrorNotFound
	}
	return nil
}
