// Package tokenstore keeps the session token across client restarts.
//
// The store is the durable owner of the token value: the session manager is
// its only writer, the API client a read-only consumer. A storage failure
// (unwritable directory, read-only filesystem) silently degrades the store to
// in-memory behaviour for the rest of the process; no method reports errors.
package tokenstore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store holds a single session token.
type Store interface {
	// Get returns the current token, and false if none is held.
	Get() (string, bool)
	Set(token string)
	Clear()
}

// FileStore persists the token to a single file, mirroring the browser
// localStorage slot the original client used.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	token string
}

// NewFileStore loads any previously saved token from path.
func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path}
	if data, err := os.ReadFile(path); err == nil {
		s.token = strings.TrimSpace(string(data))
	}
	return s
}

func (s *FileStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *FileStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	_ = os.Remove(s.path)
}
