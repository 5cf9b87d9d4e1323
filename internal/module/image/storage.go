package image

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists images as flat files under a single directory. File
// names never contain path separators, so a stored name can be served
// back by name alone.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed and returns a store
// rooted at it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes data under name and returns the full path.
func (s *Store) Save(name string, data []byte) (string, error) {
	path, err := s.Path(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image %q: %w", name, err)
	}
	return path, nil
}

// Path resolves a stored name to its path, rejecting anything that
// would escape the store directory.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid image name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

// Exists reports whether a stored name resolves to a regular file.
func (s *Store) Exists(name string) bool {
	path, err := s.Path(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Store) Remove(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image %q: %w", name, err)
	}
	return nil
}
