package manifest

import (
	"fmt"
	"hash"

	"google.golang.org/protobuf/encoding/protowire"
)

// Wire field numbers for the hand-encoded DFM node blob. There is no .proto
// compiler available in this repository, so the canonical wire
// format is built directly with protowire's varint/length-delimited
// primitives rather than protoc-generated bindings. The tag numbering
// matches what a real .proto definition for this message would assign.
const (
	fieldLinknode        protowire.Number = 1
	fieldSubentry        protowire.Number = 2
	fieldSubentryName    protowire.Number = 1
	fieldSubentryID      protowire.Number = 2
)

// Encode serializes the node into its canonical blob form: an optional
// linknode field followed by its subentries, each as a length-delimited
// submessage, emitted in the node's existing (sorted) order. Because
// Subentries is always kept sorted by Name, two nodes with equal
// (linknode, subentries) content always produce byte-identical output,
// which is what invariant I4 requires of id().
func (n *Node) Encode() []byte {
	var buf []byte
	if n.Linknode != nil {
		buf = protowire.AppendTag(buf, fieldLinknode, protowire.BytesType)
		buf = protowire.AppendBytes(buf, n.Linknode[:])
	}
	for _, entry := range n.Subentries {
		buf = protowire.AppendTag(buf, fieldSubentry, protowire.BytesType)
		buf = protowire.AppendBytes(buf, encodeSubentry(entry))
	}
	return buf
}

// encodeSubentry encodes a single (name, id) pair as a two-field submessage.
func encodeSubentry(entry Subentry) []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, fieldSubentryName, protowire.BytesType)
	buf = protowire.AppendBytes(buf, []byte(entry.Name))
	buf = protowire.AppendTag(buf, fieldSubentryID, protowire.BytesType)
	buf = protowire.AppendBytes(buf, entry.ID[:])
	return buf
}

// DecodeNode parses a blob produced by Node.Encode. Unrecognized fields are
// skipped, matching protobuf's own forward-compatibility convention, even
// though this repository never actually grows the schema.
func DecodeNode(data []byte) (*Node, error) {
	node := &Node{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: invalid field tag", ErrDecode)
		}
		data = data[n:]

		switch num {
		case fieldLinknode:
			value, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: invalid linknode field", ErrDecode)
			}
			if len(value) != IDSize {
				return nil, fmt.Errorf("%w: linknode has length %d, expected %d", ErrDecode, len(value), IDSize)
			}
			var id ChangesetID
			copy(id[:], value)
			node.Linknode = &id
			data = data[n:]
		case fieldSubentry:
			value, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: invalid subentry field", ErrDecode)
			}
			entry, err := decodeSubentry(value)
			if err != nil {
				return nil, err
			}
			node.Subentries = append(node.Subentries, entry)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("%w: invalid unknown field", ErrDecode)
			}
			data = data[n:]
		}
	}
	return node, nil
}

// decodeSubentry parses a single (name, id) submessage.
func decodeSubentry(data []byte) (Subentry, error) {
	var entry Subentry
	var haveID bool
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Subentry{}, fmt.Errorf("%w: invalid subentry tag", ErrDecode)
		}
		data = data[n:]

		switch num {
		case fieldSubentryName:
			value, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return Subentry{}, fmt.Errorf("%w: invalid subentry name", ErrDecode)
			}
			entry.Name = string(value)
			data = data[n:]
		case fieldSubentryID:
			value, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return Subentry{}, fmt.Errorf("%w: invalid subentry id", ErrDecode)
			}
			if len(value) != IDSize {
				return Subentry{}, fmt.Errorf("%w: subentry id has length %d, expected %d", ErrDecode, len(value), IDSize)
			}
			copy(entry.ID[:], value)
			haveID = true
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return Subentry{}, fmt.Errorf("%w: invalid unknown subentry field", ErrDecode)
			}
			data = data[n:]
		}
	}
	if entry.Name == "" || !haveID {
		return Subentry{}, fmt.Errorf("%w: incomplete subentry", ErrDecode)
	}
	return entry, nil
}

// ID computes the node's content-addressed id using the provided hash
// function factory. It is a pure function of (linknode, sorted subentries),
// satisfying invariant I4: nodes with identical content always hash to the
// same id regardless of how they were constructed.
func (n *Node) ID(newHash func() hash.Hash) ManifestID {
	hasher := newHash()
	hasher.Write(n.Encode())
	var id ManifestID
	copy(id[:], hasher.Sum(nil))
	return id
}
