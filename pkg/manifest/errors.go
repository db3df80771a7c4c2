package manifest

import (
	"errors"
)

// The following sentinel errors back the error taxonomy consumed by the
// deriver. Call sites wrap these with additional context via %w so that
// errors.Is continues to match against the category rather than a
// particular message string.
var (
	// ErrTransport indicates that a blob-store get or put failed at the
	// transport level. It is retryable at the caller's discretion.
	ErrTransport = errors.New("manifest: blob store transport error")
	// ErrDecode indicates that a fetched blob did not parse as a valid DFM
	// node. This is fatal for the derivation in progress and signals
	// corruption of the underlying store.
	ErrDecode = errors.New("manifest: node decode error")
	// ErrInconsistentParents indicates that multiple parents disagreed on
	// whether a path was deleted with no local change tree entry to resolve
	// the disagreement. This is fatal and indicates malformed input.
	ErrInconsistentParents = errors.New("manifest: inconsistent parents")
	// ErrInvariantViolation indicates that a child fold yielded a result
	// with no path element for a non-root node, or that a change tag was not
	// recognized, which should never happen if the traversal logic is
	// correct.
	ErrInvariantViolation = errors.New("manifest: invariant violation")

	// errInvalidIDLength indicates that a hex-decoded id did not have the
	// expected byte length.
	errInvalidIDLength = errors.New("manifest: invalid id length")
)
