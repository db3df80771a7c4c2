package changetree

import (
	"context"
	"encoding/hex"

	"github.com/dfmderiver/dfm/pkg/manifest"
)

// FileTreeID is an opaque content-addressed identifier for the root of a
// file-history (unode) manifest. It is a distinct type from
// manifest.ManifestID because it addresses a different tree entirely (the
// unode tree, not a DFM), even though both happen to be 32-byte digests in
// this implementation.
type FileTreeID [32]byte

// String returns the lowercase hexadecimal representation of the id.
func (id FileTreeID) String() string {
	return hex.EncodeToString(id[:])
}

// DiffKind classifies one entry of a file-history diff.
type DiffKind int

const (
	// DiffAdded indicates that the path is present in the "to" tree but
	// absent from the "from" tree.
	DiffAdded DiffKind = iota
	// DiffRemoved indicates that the path is present in the "from" tree
	// but absent from the "to" tree.
	DiffRemoved
)

// FileTreeDiffEntry is one added-or-removed path between two file-history
// trees. Modifications (a path present in both trees with different
// content) are never reported, since the DFM tracks existence rather than
// content.
type FileTreeDiffEntry struct {
	// Path is the root-relative, slash-separated path that changed.
	Path string
	// Kind records whether the path was added or removed.
	Kind DiffKind
}

// FileHistorySource is the minimal interface the builder needs from the
// unode (file-history) manifest and its diffing, both of which are
// out-of-scope collaborators for the DFM core (see the core's purpose and
// scope notes). A fixture-backed implementation for tests lives in the
// sibling fixture package; a real implementation would resolve these calls
// against the actual unode derivation and manifest store.
type FileHistorySource interface {
	// RootID resolves the root file-tree id materialized by a changeset.
	RootID(ctx context.Context, cs manifest.ChangesetID) (FileTreeID, error)
	// ListAllPaths enumerates every file path reachable from root. It is
	// only called for changesets with no parents.
	ListAllPaths(ctx context.Context, root FileTreeID) ([]string, error)
	// Diff computes the added and removed paths between two file trees.
	// Modified paths (same path, different content) are never reported.
	Diff(ctx context.Context, from, to FileTreeID) ([]FileTreeDiffEntry, error)
}
