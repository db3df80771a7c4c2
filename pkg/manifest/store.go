package manifest

import (
	"context"
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/dfmderiver/dfm/pkg/logging"
)

// BlobStore is the opaque, content-addressed blob storage contract the
// manifest store adapter depends on. Any implementation satisfying this
// shape — blobstore's diskstore, grpcstore, and memstore among them — can
// back a Store without those packages needing to import this one.
type BlobStore interface {
	// Put stores data under key. Puts for a key that already exists are
	// idempotent, since keys are content addresses.
	Put(ctx context.Context, key string, data []byte) error
	// Get retrieves the bytes stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Exists reports whether key is currently stored.
	Exists(ctx context.Context, key string) (bool, error)
}

// Store is the manifest store adapter described in the core's component
// design: the type-parameterized manifest operations the deriver depends
// on, concretized here over a single DFM node encoding (see wire.go) and
// injected with whichever BlobStore implementation the caller configures.
// The deriver never imports a concrete BlobStore implementation directly;
// it only ever sees a *Store.
type Store struct {
	blobs  BlobStore
	hasher func() hash.Hash
	logger *logging.Logger
}

// NewStore creates a manifest store backed by blobs, using hasher to
// compute node ids. If hasher is nil, sha256 is used, matching the default
// digest algorithm documented for the on-disk blob store.
func NewStore(blobs BlobStore, hasher func() hash.Hash, logger *logging.Logger) *Store {
	if hasher == nil {
		hasher = sha256.New
	}
	return &Store{blobs: blobs, hasher: hasher, logger: logger}
}

// Load fetches and decodes the node stored under id.
func (s *Store) Load(ctx context.Context, id ManifestID) (*Node, error) {
	data, err := s.blobs.Get(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	node, err := DecodeNode(data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode node %s: %w", id, err)
	}
	s.logger.Tracef("loaded node %s with %d subentries", id, len(node.Subentries))
	return node, nil
}

// ComputeID returns the content-addressed id that node would be stored
// under, without performing any I/O.
func (s *Store) ComputeID(node *Node) ManifestID {
	return node.ID(s.hasher)
}

// Put encodes node and stores it under id, which the caller must have
// computed via ComputeID. Put does not itself deduplicate writes across
// calls; the deriver's write pipeline is responsible for that within a
// single derivation.
func (s *Store) Put(ctx context.Context, id ManifestID, node *Node) error {
	blob := node.Encode()
	if err := s.blobs.Put(ctx, id.String(), blob); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	s.logger.Tracef("persisted node %s (%d bytes)", id, len(blob))
	return nil
}
