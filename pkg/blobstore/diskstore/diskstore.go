// Package diskstore implements a filesystem-backed blobstore.Store using
// the same two-level sharding scheme as the ambient stack's own
// content-addressed staging store: a byte-valued prefix directory plus a
// cache of which prefixes have already been created, avoiding a Mkdir call
// on every write.
package diskstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"

	"github.com/dfmderiver/dfm/pkg/logging"
	"github.com/dfmderiver/dfm/pkg/must"
)

// temporaryNamePrefix is the prefix used for in-progress write temporaries
// before they're renamed into place.
const temporaryNamePrefix = ".dfm-blob-"

// existsAndIsDirectory returns true if path exists, is readable, and is a
// directory.
func existsAndIsDirectory(path string) bool {
	metadata, err := os.Lstat(path)
	return err == nil && metadata.IsDir()
}

// mkdirAllowExist is like os.Mkdir but tolerates the directory already
// existing, since shard directories may be recreated across process
// restarts without needing to re-scan the store.
func mkdirAllowExist(name string, perm os.FileMode) error {
	if err := os.Mkdir(name, perm); err == nil {
		return nil
	} else if os.IsExist(err) && existsAndIsDirectory(name) {
		return nil
	} else {
		return err
	}
}

// shard computes the prefix directory byte value and name for a key. It
// hashes the key with xxh3 rather than assuming the key is itself a
// hex-encoded digest, so the same sharding scheme works regardless of the
// concrete key format a future BlobStore caller might use.
func shard(key string) (byte, string) {
	b := byte(xxh3.HashString(key))
	return b, fmt.Sprintf("%02x", b)
}

// Store is a filesystem-backed, content-addressed blob store.
type Store struct {
	// root is the store's root directory.
	root string
	// mu serializes prefix-directory creation bookkeeping.
	mu sync.Mutex
	// prefixExists tracks whether or not individual shard directories are
	// known to exist, to avoid redundant Mkdir calls on every write. It may
	// contain false negatives but never false positives.
	prefixExists [256]bool
	// logger is the store's logger.
	logger *logging.Logger
}

// New creates a disk-backed blob store rooted at root, creating the root
// directory if it doesn't already exist.
func New(root string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, errors.Wrap(err, "unable to create blob store root")
	}
	return &Store{root: root, logger: logger}, nil
}

func (s *Store) ensurePrefixExists(prefixByte byte, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefixExists[prefixByte] {
		return nil
	}
	if err := mkdirAllowExist(filepath.Join(s.root, prefix), 0700); err != nil {
		return err
	}
	s.prefixExists[prefixByte] = true
	return nil
}

// pathFor computes the on-disk path for a key along with its shard prefix.
func (s *Store) pathFor(key string) (path string, prefixByte byte, prefix string) {
	prefixByte, prefix = shard(key)
	return filepath.Join(s.root, prefix, key), prefixByte, prefix
}

// Put implements blobstore.Store.Put. It writes to a temporary file in the
// shard directory, fsyncs it, and renames it into place, so that readers
// never observe a partially-written blob.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	path, prefixByte, prefix := s.pathFor(key)
	if err := s.ensurePrefixExists(prefixByte, prefix); err != nil {
		return errors.Wrap(err, "unable to create shard directory")
	}

	temporary, err := os.CreateTemp(filepath.Join(s.root, prefix), temporaryNamePrefix)
	if err != nil {
		return errors.Wrap(err, "unable to create temporary file")
	}

	if _, err := temporary.Write(data); err != nil {
		must.Close(temporary, s.logger)
		must.OSRemove(temporary.Name(), s.logger)
		return errors.Wrap(err, "unable to write blob data")
	}

	if err := fsyncFile(temporary); err != nil {
		must.Close(temporary, s.logger)
		must.OSRemove(temporary.Name(), s.logger)
		return errors.Wrap(err, "unable to fsync blob data")
	}

	if err := temporary.Close(); err != nil {
		must.OSRemove(temporary.Name(), s.logger)
		return errors.Wrap(err, "unable to close temporary file")
	}

	if err := os.Rename(temporary.Name(), path); err != nil {
		must.OSRemove(temporary.Name(), s.logger)
		return errors.Wrap(err, "unable to relocate blob into place")
	}

	s.logger.Tracef("wrote %d bytes to %s", len(data), path)
	return nil
}

// Get implements blobstore.Store.Get.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	path, _, _ := s.pathFor(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read blob")
	}
	return data, nil
}

// Exists implements blobstore.Store.Exists.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	path, _, _ := s.pathFor(key)
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "unable to stat blob")
	}
	return true, nil
}
