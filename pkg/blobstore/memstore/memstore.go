// Package memstore provides an in-memory blobstore.Store used by tests,
// mirroring the role synthetic,
// in-memory stores play in the ambient stack's own synchronization core
// tests.
package memstore

import (
	"context"
	"errors"
	"sync"

	"github.com/dfmderiver/dfm/pkg/logging"
)

// ErrNotFound is returned by Get when the requested key has never been
// stored.
var ErrNotFound = errors.New("memstore: blob not found")

// Store is a concurrency-safe, in-memory blobstore.Store implementation.
type Store struct {
	mu     sync.RWMutex
	blobs  map[string][]byte
	logger *logging.Logger
}

// New creates an empty in-memory store.
func New(logger *logging.Logger) *Store {
	return &Store{blobs: make(map[string][]byte), logger: logger}
}

// Put implements blobstore.Store.Put.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	s.blobs[key] = stored
	s.mu.Unlock()

	s.logger.Tracef("stored %d bytes under %s", len(data), key)
	return nil
}

// Get implements blobstore.Store.Get.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Exists implements blobstore.Store.Exists.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[key]
	return ok, nil
}

// Len returns the number of blobs currently stored, for test assertions
// about how many new blobs a derivation wrote.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// Has reports whether key is present, for test assertions.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[key]
	return ok
}
