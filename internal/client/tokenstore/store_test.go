package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "token"))
	token, ok := s.Get()
	assert.False(t, ok)
	assert.Equal(t, "", token)
}

func TestFileStoreSetPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staffdesk", "token")

	s := NewFileStore(path)
	s.Set("abc")

	token, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "abc", token)

	// a fresh store reads the same file back
	s2 := NewFileStore(path)
	token, ok = s2.Get()
	require.True(t, ok)
	assert.Equal(t, "abc", token)
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s := NewFileStore(path)
	s.Set("abc")
	s.Clear()

	_, ok := s.Get()
	assert.False(t, ok)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// clearing again is a no-op
	s.Clear()
}

func TestFileStoreTrimsSavedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("abc\n"), 0o600))

	s := NewFileStore(path)
	token, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "abc", token)
}

func TestFileStoreDegradesToMemory(t *testing.T) {
	// a path whose parent cannot be created
	base := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(base, []byte("x"), 0o600))

	s := NewFileStore(filepath.Join(base, "sub", "token"))
	s.Set("abc")

	token, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "abc", token)
}
