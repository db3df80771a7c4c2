package diskstore

import (
	"context"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	store, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	if err := store.Put(ctx, "deadbeef", []byte("hello")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := store.Get(ctx, "deadbeef")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected 'hello', got %q", data)
	}
}

func TestExists(t *testing.T) {
	store, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	if exists, err := store.Exists(ctx, "missing"); err != nil {
		t.Fatalf("Exists failed: %v", err)
	} else if exists {
		t.Error("expected Exists to report false for unknown key")
	}

	if err := store.Put(ctx, "present", []byte("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if exists, err := store.Exists(ctx, "present"); err != nil {
		t.Fatalf("Exists failed: %v", err)
	} else if !exists {
		t.Error("expected Exists to report true after Put")
	}
}

func TestGetMissingKey(t *testing.T) {
	store, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := store.Get(context.Background(), "nope"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestOverwriteExistingKey(t *testing.T) {
	store, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	if err := store.Put(ctx, "k", []byte("first")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, "k", []byte("second")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	data, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected 'second', got %q", data)
	}
}

func TestManyKeysAcrossShards(t *testing.T) {
	store, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	keys := make([]string, 0, 64)
	for i := 0; i < 64; i++ {
		key := string(rune('a'+i%26)) + string(rune('0'+i%10)) + "-key"
		keys = append(keys, key)
		if err := store.Put(ctx, key, []byte(key)); err != nil {
			t.Fatalf("Put(%s) failed: %v", key, err)
		}
	}

	for _, key := range keys {
		data, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", key, err)
		}
		if string(data) != key {
			t.Errorf("Get(%s) = %q, want %q", key, data, key)
		}
	}
}
