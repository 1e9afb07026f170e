// Package filestore keeps the raw uploaded files on disk, keyed by filename.
package filestore

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store is a directory-backed blob store.
type Store struct {
	dir string
}

// New creates the backing directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Sanitize strips any path components from a client-supplied filename so it
// cannot escape the store directory.
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// Save writes the blob under the given (already sanitized) name, replacing
// any previous content. It returns the number of bytes written.
func (s *Store) Save(name string, r io.Reader) (int64, error) {
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return io.Copy(f, r)
}

// Open returns the stored blob for reading.
func (s *Store) Open(name string) (*os.File, error) {
	return os.Open(filepath.Join(s.dir, name))
}

// Stat returns file info for a stored blob, or an error satisfying
// os.IsNotExist when the blob is absent.
func (s *Store) Stat(name string) (os.FileInfo, error) {
	return os.Stat(filepath.Join(s.dir, name))
}

// Remove deletes a stored blob. A missing blob is not an error.
func (s *Store) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
