package pathtree

import (
	"testing"
)

// TestTreeInsertAndGet verifies basic insertion and lookup.
func TestTreeInsertAndGet(t *testing.T) {
	tree := New[string]()
	tree.Insert("a/b/c", "leaf")
	tree.Insert("a/b/d", "other")

	if value, ok := tree.Get("a/b/c"); !ok || value != "leaf" {
		t.Error("unexpected value at a/b/c:", value, ok)
	}
	if value, ok := tree.Get("a/b/d"); !ok || value != "other" {
		t.Error("unexpected value at a/b/d:", value, ok)
	}
	if _, ok := tree.Get("a/b"); ok {
		t.Error("interior node unexpectedly carries a value")
	}
	if _, ok := tree.Get("nonexistent"); ok {
		t.Error("expected no value for nonexistent path")
	}
}

// TestTreeWalkOrder verifies that Walk visits nodes in deterministic,
// depth-first, lexicographic order.
func TestTreeWalkOrder(t *testing.T) {
	tree := New[int]()
	tree.Insert("b", 2)
	tree.Insert("a", 1)
	tree.Insert("a/z", 3)

	var order []string
	tree.Walk(func(path string, value int) {
		order = append(order, path)
	})

	expected := []string{"a", "a/z", "b"}
	if len(order) != len(expected) {
		t.Fatalf("unexpected number of visited nodes: %d != %d", len(order), len(expected))
	}
	for i, path := range expected {
		if order[i] != path {
			t.Errorf("unexpected visit order at index %d: %s != %s", i, order[i], path)
		}
	}
}

// TestTreeSubtree verifies that Subtree navigates to the expected node.
func TestTreeSubtree(t *testing.T) {
	tree := New[string]()
	tree.Insert("a/b/c", "leaf")

	subtree := tree.Subtree("a/b")
	if subtree == nil {
		t.Fatal("expected non-nil subtree at a/b")
	}
	if value, ok := subtree.Get("c"); !ok || value != "leaf" {
		t.Error("unexpected value relative to subtree:", value, ok)
	}

	if tree.Subtree("nonexistent") != nil {
		t.Error("expected nil subtree for nonexistent path")
	}
}

// TestFromPairs verifies bulk construction from a map.
func TestFromPairs(t *testing.T) {
	tree := FromPairs(map[string]bool{
		"x/y": true,
		"z":   false,
	})
	if value, ok := tree.Get("x/y"); !ok || !value {
		t.Error("unexpected value at x/y")
	}
	if value, ok := tree.Get("z"); !ok || value {
		t.Error("unexpected value at z")
	}
}
