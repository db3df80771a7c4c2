package manifest

import (
	"sort"

	"github.com/dfmderiver/dfm/pkg/pathtree"
)

// Subentry pairs a path element with the manifest id of the node it
// references. Node.Subentries is kept pre-sorted by Name so that two nodes
// with the same logical content always serialize to the same bytes
// (invariant I4).
type Subentry struct {
	// Name is the path element this subentry corresponds to within its
	// parent node.
	Name pathtree.PathElement
	// ID is the manifest id of the child node.
	ID ManifestID
}

// Node is a single DFM node: an optional linknode plus a sorted mapping from
// path element to child manifest id.
//
// Invariant I1: a node must never have both Linknode == nil and zero
// Subentries, except for the single explicit empty root blob documented in
// doc.go.
type Node struct {
	// Linknode, when non-nil, is the changeset id that deleted the path this
	// node represents. A nil Linknode means the node is "live": the path
	// itself is not deleted, but a descendant may be.
	Linknode *ChangesetID
	// Subentries is the sorted (by Name) mapping from path element to child
	// manifest id.
	Subentries []Subentry
}

// IsDeleted reports whether this node represents a deleted path (I3).
func (n *Node) IsDeleted() bool {
	return n.Linknode != nil
}

// IsEmpty reports whether this node has no subentries (I3).
func (n *Node) IsEmpty() bool {
	return len(n.Subentries) == 0
}

// Lookup returns the manifest id of the named subentry, if present.
func (n *Node) Lookup(name pathtree.PathElement) (ManifestID, bool) {
	// Subentries is small in the common case and kept sorted, so a binary
	// search is used, matching the adapter's documented O(log n) contract.
	i := sort.Search(len(n.Subentries), func(i int) bool {
		return n.Subentries[i].Name >= name
	})
	if i < len(n.Subentries) && n.Subentries[i].Name == name {
		return n.Subentries[i].ID, true
	}
	return ManifestID{}, false
}

// CopyAndUpdateSubentries computes a new node whose subentries equal base's
// subentries (or empty, if base is nil) with updates applied. A nil entry
// in updates for a given name removes that subentry; a non-nil entry
// inserts or replaces it; names absent from updates keep base's entry.
// linknode is set directly on the result.
func CopyAndUpdateSubentries(base *Node, linknode *ChangesetID, updates map[pathtree.PathElement]*ManifestID) *Node {
	merged := make(map[pathtree.PathElement]ManifestID)
	if base != nil {
		for _, entry := range base.Subentries {
			merged[entry.Name] = entry.ID
		}
	}
	for name, id := range updates {
		if id == nil {
			delete(merged, name)
		} else {
			merged[name] = *id
		}
	}

	names := make([]pathtree.PathElement, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	subentries := make([]Subentry, 0, len(names))
	for _, name := range names {
		subentries = append(subentries, Subentry{Name: name, ID: merged[name]})
	}

	return &Node{Linknode: linknode, Subentries: subentries}
}
