package changetree

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dfmderiver/dfm/pkg/logging"
	"github.com/dfmderiver/dfm/pkg/manifest"
	"github.com/dfmderiver/dfm/pkg/pathtree"
)

// Builder constructs change trees from a FileHistorySource. It holds no
// state of its own beyond its collaborators, so a single instance may be
// shared across concurrent derivations.
type Builder struct {
	source FileHistorySource
	logger *logging.Logger
}

// NewBuilder creates a change tree builder backed by the given file-history
// source.
func NewBuilder(source FileHistorySource, logger *logging.Logger) *Builder {
	return &Builder{source: source, logger: logger}
}

// Build resolves the changeset's and its parents' file-history roots, diffs
// the changeset against each parent (or, if there are no parents, lists
// every path as an addition), and flattens the result into a path tree of
// optional path changes. Conflicting tags for the same path (seen as both an
// addition and a removal across the flattened parent diffs) are recorded as
// PathFileDirConflict rather than causing an error; the merge rule here is
// total by construction.
func (b *Builder) Build(ctx context.Context, cs manifest.ChangesetID, parents []manifest.ChangesetID) (*pathtree.Tree[PathChange], error) {
	toID, err := b.source.RootID(ctx, cs)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve changeset file-tree root: %w", err)
	}

	changes := make(map[string]PathChange)

	if len(parents) == 0 {
		paths, err := b.source.ListAllPaths(ctx, toID)
		if err != nil {
			return nil, fmt.Errorf("unable to list paths for parentless changeset: %w", err)
		}
		for _, path := range paths {
			changes[path] = PathAdd
		}
		b.logger.Tracef("built change tree for parentless changeset with %d added paths", len(paths))
	} else {
		for _, parent := range parents {
			fromID, err := b.source.RootID(ctx, parent)
			if err != nil {
				return nil, fmt.Errorf("unable to resolve parent file-tree root: %w", err)
			}
			entries, err := b.source.Diff(ctx, fromID, toID)
			if err != nil {
				return nil, fmt.Errorf("unable to diff against parent: %w", err)
			}
			for _, entry := range entries {
				tag := PathAdd
				if entry.Kind == DiffRemoved {
					tag = PathRemove
				}
				mergeChange(changes, entry.Path, tag)
			}
		}
		b.logger.Tracef("built change tree for %d-parent changeset with %d changed paths", len(parents), len(changes))
	}

	promoteFileDirConflicts(changes)

	tree := pathtree.New[PathChange]()
	for path, change := range changes {
		tree.Insert(path, change)
	}
	return tree, nil
}

// promoteFileDirConflicts retags a path that carries its own PathAdd tag
// and also has a changed descendant as PathFileDirConflict: a freshly added
// path can never have pre-existing descendants, so that combination only
// happens when the path changed type from a directory to a file. A path
// carrying its own PathRemove tag is promoted the same way only if some
// descendant is itself tagged PathAdd, which is the only way a removal can
// coincide with a type swap; a PathRemove whose descendants are all
// PathRemove is an ordinary directory whose entire contents were deleted,
// synthesized alongside it, and is left alone so it still drives a
// directory-level deletion downstream. Paths with no entry of their own are
// left alone; an interior node with no direct change is not a conflict.
func promoteFileDirConflicts(changes map[string]PathChange) {
	paths := make([]string, 0, len(changes))
	for path := range changes {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		tag := changes[path]
		if tag != PathAdd && tag != PathRemove {
			continue
		}
		prefix := path + "/"
		for _, other := range paths {
			if other == path || !strings.HasPrefix(other, prefix) {
				continue
			}
			if tag == PathAdd || changes[other] == PathAdd {
				changes[path] = PathFileDirConflict
				break
			}
		}
	}
}

// mergeChange folds a single (path, tag) observation into the accumulated
// change map, promoting a path to PathFileDirConflict the moment it has been
// seen with two different tags across the flattened parent diffs. A path
// already marked as a conflict stays a conflict regardless of what else is
// seen for it.
func mergeChange(changes map[string]PathChange, path string, tag PathChange) {
	existing, ok := changes[path]
	switch {
	case !ok:
		changes[path] = tag
	case existing == PathFileDirConflict:
		// Already conflicted; further observations don't change that.
	case existing != tag:
		changes[path] = PathFileDirConflict
	}
}
