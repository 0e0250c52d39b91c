package dirstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cognicore/synmap/pkg/synmap/artifact"
	"github.com/cognicore/synmap/pkg/synmap/internalerr"
)

// Store keeps one file per document under a model directory.
type Store struct {
	dir  string
	mode os.FileMode
}

// New returns a Store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir, mode: 0o644}
}

// Dir returns the root directory.
func (s *Store) Dir() string { return s.dir }

// Close implements artifact.Store.
func (s *Store) Close() error { return nil }

// Write replaces the named document via a temp file and rename.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if err := artifact.ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	return writeFile(filepath.Join(s.dir, name), data, s.mode)
}

// Read returns the named document.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := artifact.ValidateName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, name)
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, internalerr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

// Exists reports whether the named document is a regular file.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := artifact.ValidateName(name); err != nil {
		return false, err
	}
	info, err := os.Stat(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

var _ artifact.Store = (*Store)(nil)
