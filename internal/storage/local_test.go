package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_roundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	data := []byte(`{"version":1}`)
	require.NoError(t, store.Store("state.json", data))

	got, err := store.Retrieve("state.json")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Overwrite replaces, not appends.
	require.NoError(t, store.Store("state.json", []byte(`{"version":2}`)))
	got, err = store.Retrieve("state.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":2}`), got)
}

func TestLocalStorage_list(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Store("report-2024-01-01.json", []byte("a")))
	require.NoError(t, store.Store("report-2024-01-08.json", []byte("b")))
	require.NoError(t, store.Store("state.json", []byte("c")))

	names, err := store.List("report-")
	require.NoError(t, err)
	assert.Len(t, names, 2)

	all, err := store.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLocalStorage_delete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Store("state.json", []byte("x")))
	require.NoError(t, store.Delete("state.json"))

	_, err = store.Retrieve("state.json")
	assert.Error(t, err)
}

func TestLocalStorage_nameCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	require.NoError(t, store.Store("../escape.json", []byte("x")))

	_, statErr := os.Stat(filepath.Join(dir, "escape.json"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(filepath.Dir(dir), "escape.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewLocalStorage_requiresDir(t *testing.T) {
	_, err := NewLocalStorage("")
	assert.Error(t, err)
}
