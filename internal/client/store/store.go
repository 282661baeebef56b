// Package store implements the confirmed-mutation resource cache every CRUD
// screen reuses.
//
// A Store holds an ordered copy of one server collection. Mutations are
// confirmed, not optimistically applied: the cache changes only after the
// server accepts the request, so a rejected create or delete never has to be
// rolled back out of the displayed list. Callers are expected to disable
// input while Loading reports true; if two mutations for the same record are
// in flight anyway, whichever response lands last wins.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/staffdesk/staffdesk/internal/client/api"
)

// Record is any resource with a server-assigned identifier.
type Record interface {
	RecordID() int64
}

// Validate checks a payload before it is submitted. Implementations return a
// *models.ValidationError; a non-nil result short-circuits the operation
// before any network call.
type Validate[T Record] func(T) error

// Store is an observable cache of one named collection.
type Store[T Record] struct {
	mu             sync.Mutex
	api            *api.Client
	path           string
	validateCreate Validate[T]
	validateUpdate Validate[T]

	items   []T
	loading bool
	lastErr error
	subs    []func()
}

// New builds a store for the collection at path (e.g. "/employees").
// Either validator may be nil.
func New[T Record](client *api.Client, path string, validateCreate, validateUpdate Validate[T]) *Store[T] {
	return &Store[T]{
		api:            client,
		path:           path,
		validateCreate: validateCreate,
		validateUpdate: validateUpdate,
	}
}

// Subscribe registers fn to run after every cache, loading or error change.
func (s *Store[T]) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Items returns a copy of the cache in server order.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Get returns the cached record with the given id.
func (s *Store[T]) Get(id int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Loading reports whether a request is in flight.
func (s *Store[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the error slot set by the most recent failed request.
// Local validation failures never land here.
func (s *Store[T]) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store[T]) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
	s.notify()
}

func (s *Store[T]) notify() {
	s.mu.Lock()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Refresh replaces the whole cache with the server's list, preserving its
// ordering. On failure the existing cache is left untouched and the error is
// recorded. The loading flag is cleared on every exit path.
func (s *Store[T]) Refresh(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	body, err := s.api.Request(ctx, http.MethodGet, s.path, nil)
	if err != nil {
		s.fail(err)
		return err
	}

	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		err = fmt.Errorf("decoding %s list: %w", s.path, err)
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.items = items
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()
	return nil
}

// Create validates the payload locally, submits it, and appends the
// server-returned record (carrying its assigned id) to the cache. A
// validation failure returns immediately without a network call and without
// touching the error slot.
func (s *Store[T]) Create(ctx context.Context, payload T) (T, error) {
	var zero T
	if s.validateCreate != nil {
		if err := s.validateCreate(payload); err != nil {
			return zero, err
		}
	}

	s.setLoading(true)
	defer s.setLoading(false)

	body, err := s.api.Request(ctx, http.MethodPost, s.path, payload)
	if err != nil {
		s.fail(err)
		return zero, err
	}

	var created T
	if err := json.Unmarshal(body, &created); err != nil {
		err = fmt.Errorf("decoding created record: %w", err)
		s.fail(err)
		return zero, err
	}

	s.mu.Lock()
	s.items = append(s.items, created)
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()
	return created, nil
}

// Update validates the payload, submits a PUT for id, and replaces the
// matching cached record in place (same position) with the server response.
// On failure the cached record is left byte-for-byte unchanged.
func (s *Store[T]) Update(ctx context.Context, id int64, payload T) (T, error) {
	var zero T
	if s.validateUpdate != nil {
		if err := s.validateUpdate(payload); err != nil {
			return zero, err
		}
	}

	s.setLoading(true)
	defer s.setLoading(false)

	body, err := s.api.Request(ctx, http.MethodPut, fmt.Sprintf("%s/%d", s.path, id), payload)
	if err != nil {
		s.fail(err)
		return zero, err
	}

	var updated T
	if err := json.Unmarshal(body, &updated); err != nil {
		err = fmt.Errorf("decoding updated record: %w", err)
		s.fail(err)
		return zero, err
	}

	s.mu.Lock()
	for i, item := range s.items {
		if item.RecordID() == id {
			s.items[i] = updated
			break
		}
	}
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()
	return updated, nil
}

// Remove deletes id on the server first and drops it from the cache only
// after confirmation, so a rejected delete never disappears from the list.
func (s *Store[T]) Remove(ctx context.Context, id int64) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if _, err := s.api.Request(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", s.path, id), nil); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.items = slices.DeleteFunc(s.items, func(item T) bool { return item.RecordID() == id })
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Store[T]) fail(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.notify()
}
