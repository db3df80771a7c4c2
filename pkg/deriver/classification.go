package deriver

// classification records the per-node disposition a fold step assigns once
// a node's local change, parent state, and descendant results are known.
type classification int

const (
	// classificationReuse means the node's content is unchanged from a
	// single ancestor (or from no ancestor at all): no new blob is written
	// and the fold simply passes through the ancestor's id (or none).
	classificationReuse classification = iota
	// classificationCreateDeleted means the node represents a path deleted
	// by the changeset under derivation; a new node is built with
	// linknode set to that changeset's id.
	classificationCreateDeleted
	// classificationRemoveIfNowEmpty means the node is live (not deleted
	// here) but must be rebuilt from its children's results; if the rebuilt
	// node ends up with no subentries, it is dropped entirely rather than
	// persisted (invariant I1).
	classificationRemoveIfNowEmpty
)

func (c classification) String() string {
	switch c {
	case classificationReuse:
		return "reuse"
	case classificationCreateDeleted:
		return "create-deleted"
	case classificationRemoveIfNowEmpty:
		return "remove-if-now-empty"
	default:
		return "unknown"
	}
}
