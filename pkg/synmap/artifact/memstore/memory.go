package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/synmap/pkg/synmap/artifact"
	"github.com/cognicore/synmap/pkg/synmap/internalerr"
)

// Store is an in-memory implementation of artifact.Store for tests.
type Store struct {
	mu     sync.RWMutex
	docs   map[string][]byte
	reads  int
	writes int
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{docs: make(map[string][]byte)}
}

// Close implements artifact.Store.
func (s *Store) Close() error { return nil }

// Write stores a copy of data under name.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if err := artifact.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[name] = append([]byte(nil), data...)
	s.writes++
	return nil
}

// Read returns a copy of the named document.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := artifact.ValidateName(name); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reads++
	b, ok := s.docs[name]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", name, internalerr.ErrNotFound)
	}
	return append([]byte(nil), b...), nil
}

// Exists implements artifact.Store.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.docs[name]
	return ok, nil
}

// Delete removes a document. Used by tests to simulate a lost artifact.
func (s *Store) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, name)
}

// Names returns stored document names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reads returns how many Read calls the store has served.
func (s *Store) Reads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reads
}

// Writes returns how many Write calls the store has served.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

var _ artifact.Store = (*Store)(nil)
