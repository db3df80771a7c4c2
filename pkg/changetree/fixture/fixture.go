// Package fixture provides an in-memory changetree.FileHistorySource for use
// in tests. It models each
// changeset's file tree as a flat set of paths, which is sufficient for
// exercising add/remove/conflict detection without a real unode manifest.
package fixture

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dfmderiver/dfm/pkg/changetree"
	"github.com/dfmderiver/dfm/pkg/manifest"
)

// Source is a synthetic, in-memory file-history source. It is not safe for
// concurrent Define calls racing with lookups, but is otherwise safe for
// concurrent read-only use once fully populated (the common case for a
// fixture built up-front by a test).
type Source struct {
	trees map[manifest.ChangesetID]map[string]struct{}
}

// New creates an empty fixture source.
func New() *Source {
	return &Source{trees: make(map[manifest.ChangesetID]map[string]struct{})}
}

// Define records the full set of live paths for a changeset. Calling Define
// again for the same changeset replaces its path set.
func (s *Source) Define(cs manifest.ChangesetID, paths ...string) {
	set := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		set[path] = struct{}{}
	}
	s.trees[cs] = set
}

// RootID implements changetree.FileHistorySource.RootID. Since this fixture
// has no separate unode layer, a changeset's file-tree id is simply its own
// id reinterpreted as a FileTreeID.
func (s *Source) RootID(ctx context.Context, cs manifest.ChangesetID) (changetree.FileTreeID, error) {
	if _, ok := s.trees[cs]; !ok {
		return changetree.FileTreeID{}, fmt.Errorf("fixture: unknown changeset %s", cs)
	}
	return changetree.FileTreeID(cs), nil
}

// ListAllPaths implements changetree.FileHistorySource.ListAllPaths.
func (s *Source) ListAllPaths(ctx context.Context, root changetree.FileTreeID) ([]string, error) {
	set, ok := s.trees[manifest.ChangesetID(root)]
	if !ok {
		return nil, fmt.Errorf("fixture: unknown file tree %s", root)
	}
	paths := make([]string, 0, len(set))
	for path := range set {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

// Diff implements changetree.FileHistorySource.Diff.
func (s *Source) Diff(ctx context.Context, from, to changetree.FileTreeID) ([]changetree.FileTreeDiffEntry, error) {
	fromSet, ok := s.trees[manifest.ChangesetID(from)]
	if !ok {
		return nil, fmt.Errorf("fixture: unknown file tree %s", from)
	}
	toSet, ok := s.trees[manifest.ChangesetID(to)]
	if !ok {
		return nil, fmt.Errorf("fixture: unknown file tree %s", to)
	}

	var entries []changetree.FileTreeDiffEntry
	for path := range toSet {
		if _, ok := fromSet[path]; !ok {
			entries = append(entries, changetree.FileTreeDiffEntry{Path: path, Kind: changetree.DiffAdded})
		}
	}
	for path := range fromSet {
		if _, ok := toSet[path]; !ok {
			entries = append(entries, changetree.FileTreeDiffEntry{Path: path, Kind: changetree.DiffRemoved})
		}
	}
	for _, dir := range emptiedDirectories(fromSet, toSet) {
		entries = append(entries, changetree.FileTreeDiffEntry{Path: dir, Kind: changetree.DiffRemoved})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// emptiedDirectories reports every directory prefix that held at least one
// live path in fromSet but holds none in toSet. A flat path set carries no
// explicit directory entries, so a directory's removal is only visible as
// the disappearance of its last child; this reconstructs that signal the
// same way a real unode diff would report a directory-level deletion
// alongside the deletions of its contents.
func emptiedDirectories(fromSet, toSet map[string]struct{}) []string {
	seen := make(map[string]struct{})
	var dirs []string
	for path := range fromSet {
		for _, dir := range ancestorDirs(path) {
			if _, ok := seen[dir]; ok {
				continue
			}
			seen[dir] = struct{}{}
			if !hasLiveDescendant(toSet, dir) {
				dirs = append(dirs, dir)
			}
		}
	}
	sort.Strings(dirs)
	return dirs
}

// ancestorDirs returns every directory prefix of path, shallowest first. For
// "a/b/c" that is ["a", "a/b"].
func ancestorDirs(path string) []string {
	var dirs []string
	for i, r := range path {
		if r == '/' {
			dirs = append(dirs, path[:i])
		}
	}
	return dirs
}

// hasLiveDescendant reports whether set contains any path strictly beneath
// dir.
func hasLiveDescendant(set map[string]struct{}, dir string) bool {
	prefix := dir + "/"
	for path := range set {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
