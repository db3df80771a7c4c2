package manifest

import (
	"encoding/hex"
)

// IDSize is the byte length of both ChangesetID and ManifestID, matching the
// digest size of the default configured hash.Hash factory (sha256).
const IDSize = 32

// ChangesetID is an opaque, content-addressed identifier for a changeset. It
// is a fixed-size byte array rather than a string so that it is cheap to
// copy and compare by value throughout the deriver, matching the ambient
// stack's own small-value-type conventions for identifiers.
type ChangesetID [IDSize]byte

// String returns the lowercase hexadecimal representation of the id.
func (id ChangesetID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether the id is the zero value.
func (id ChangesetID) IsZero() bool {
	return id == ChangesetID{}
}

// ManifestID is an opaque, content-addressed identifier for a DFM node. Equal
// ids imply byte-identical blobs (invariant I4).
type ManifestID [IDSize]byte

// String returns the lowercase hexadecimal representation of the id.
func (id ManifestID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether the id is the zero value.
func (id ManifestID) IsZero() bool {
	return id == ManifestID{}
}

// ParseChangesetID decodes a hexadecimal string into a ChangesetID.
func ParseChangesetID(s string) (ChangesetID, error) {
	var id ChangesetID
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return id, err
	}
	if len(decoded) != IDSize {
		return id, errInvalidIDLength
	}
	copy(id[:], decoded)
	return id, nil
}

// ParseManifestID decodes a hexadecimal string into a ManifestID.
func ParseManifestID(s string) (ManifestID, error) {
	var id ManifestID
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return id, err
	}
	if len(decoded) != IDSize {
		return id, errInvalidIDLength
	}
	copy(id[:], decoded)
	return id, nil
}
