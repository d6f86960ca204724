package boltstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Simplici0/precificalc/internal/products"
	"github.com/Simplici0/precificalc/internal/products/storetest"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) products.Store {
		store, err := Open(filepath.Join(t.TempDir(), "products.bolt"))
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestDuplicateIDRejected(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "dup.bolt"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Append(ctx, products.Product{ID: "a", Name: "A"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(ctx, products.Product{ID: "a", Name: "A again"}); err == nil {
		t.Fatal("expected duplicate id to be rejected")
	}
}

func TestCancelledContext(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "ctx.bolt"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.List(ctx); err == nil {
		t.Fatal("expected List to fail on a cancelled context")
	}
}
