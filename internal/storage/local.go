package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LocalStorage keeps blobs as plain files under a data directory. It is the
// default backend for a single-user journal running on the user's own machine.
type LocalStorage struct {
	dir string
}

// Ensure LocalStorage implements Interface
var _ Interface = (*LocalStorage)(nil)

// NewLocalStorage creates the data directory if needed and returns a store
// rooted there.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	logrus.Debugf("Using local storage at %s", dir)
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) path(name string) string {
	// Blob names are flat; strip any path separators so a name can never
	// escape the data directory.
	return filepath.Join(s.dir, filepath.Base(name))
}

// Store writes data to a temporary file and renames it into place, so a crash
// mid-write leaves the previous snapshot intact.
func (s *LocalStorage) Store(name string, data []byte) error {
	target := s.path(name)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	return nil
}

// Retrieve reads a blob from the data directory
func (s *LocalStorage) Retrieve(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// List returns the blob names in the data directory matching prefix
func (s *LocalStorage) List(prefix string) ([]string, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list data directory: %w", err)
	}

	var names []string
	for _, file := range files {
		if file.IsDir() || strings.HasSuffix(file.Name(), ".tmp") {
			continue
		}
		if strings.HasPrefix(file.Name(), prefix) {
			names = append(names, file.Name())
		}
	}
	return names, nil
}

// Delete removes a blob from the data directory
func (s *LocalStorage) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}
