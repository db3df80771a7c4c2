// Package manifest defines the Deleted Files Manifest node type, its
// content-addressed identifiers, and the manifest store adapter (the
// type-parameterized load/lookup/copy-and-update operations the deriver
// depends on) described by the core's component design.
//
// # Empty root exception
//
// Every node must satisfy invariant I1 (no node has both a nil linknode and
// zero subentries) with exactly one documented exception: the root of a
// derivation in which nothing was deleted anywhere in the changeset's
// lineage. Rather than returning a sentinel "absence" id and asking callers
// to special-case it, this implementation follows the same choice made by
// the system this core was distilled from: it persists an explicit node
// with Linknode == nil and Subentries == nil, and returns that node's id as
// the root. Its wire encoding is simply the empty byte slice (neither field
// is present), so any two independently-derived empty roots are guaranteed
// to collide on the same id by construction, without needing special-case
// logic in Encode or DecodeNode.
//
// Every other reachable node in a derived tree is guaranteed to satisfy I1;
// only the root returned directly by the deriver can be the empty blob.
package manifest
