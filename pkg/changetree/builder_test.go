package changetree

import (
	"context"
	"testing"

	"github.com/dfmderiver/dfm/pkg/changetree/fixture"
	"github.com/dfmderiver/dfm/pkg/logging"
	"github.com/dfmderiver/dfm/pkg/manifest"
)

func testChangesetID(b byte) manifest.ChangesetID {
	var id manifest.ChangesetID
	id[0] = b
	return id
}

func TestBuildParentless(t *testing.T) {
	source := fixture.New()
	cs := testChangesetID(1)
	source.Define(cs, "file.txt", "dir/a", "dir/b")

	builder := NewBuilder(source, logging.RootLogger.Sublogger("test"))
	tree, err := builder.Build(context.Background(), cs, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, path := range []string{"file.txt", "dir/a", "dir/b"} {
		value, ok := tree.Get(path)
		if !ok || value != PathAdd {
			t.Errorf("expected PathAdd at %s, got %v (present=%t)", path, value, ok)
		}
	}
}

func TestBuildSingleParentDelete(t *testing.T) {
	source := fixture.New()
	parent := testChangesetID(1)
	cs := testChangesetID(2)
	source.Define(parent, "file.txt", "dir/a")
	source.Define(cs, "dir/a")

	builder := NewBuilder(source, logging.RootLogger.Sublogger("test"))
	tree, err := builder.Build(context.Background(), cs, []manifest.ChangesetID{parent})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	value, ok := tree.Get("file.txt")
	if !ok || value != PathRemove {
		t.Errorf("expected PathRemove at file.txt, got %v (present=%t)", value, ok)
	}
	if _, ok := tree.Get("dir/a"); ok {
		t.Error("unexpected change recorded for unmodified path dir/a")
	}
}

func TestBuildTwoParentAgreeingRemoval(t *testing.T) {
	source := fixture.New()
	parentA := testChangesetID(1)
	parentB := testChangesetID(2)
	cs := testChangesetID(3)
	source.Define(parentA, "x")
	source.Define(parentB, "x")
	source.Define(cs) // x removed relative to both parents

	builder := NewBuilder(source, logging.RootLogger.Sublogger("test"))
	tree, err := builder.Build(context.Background(), cs, []manifest.ChangesetID{parentA, parentB})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	value, ok := tree.Get("x")
	if !ok || value != PathRemove {
		t.Errorf("expected PathRemove at x, got %v (present=%t)", value, ok)
	}
}

func TestBuildFileDirConflict(t *testing.T) {
	source := fixture.New()
	parentA := testChangesetID(1)
	parentB := testChangesetID(2)
	cs := testChangesetID(3)
	source.Define(parentA, "x")
	source.Define(parentB)
	source.Define(cs, "x/y")

	builder := NewBuilder(source, logging.RootLogger.Sublogger("test"))
	tree, err := builder.Build(context.Background(), cs, []manifest.ChangesetID{parentA, parentB})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	value, ok := tree.Get("x")
	if !ok || value != PathFileDirConflict {
		t.Errorf("expected PathFileDirConflict at x, got %v (present=%t)", value, ok)
	}
	value, ok = tree.Get("x/y")
	if !ok || value != PathAdd {
		t.Errorf("expected PathAdd at x/y, got %v (present=%t)", value, ok)
	}
}
