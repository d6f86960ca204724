package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Simplici0/precificalc/internal/db"
	"github.com/Simplici0/precificalc/internal/products"
	"github.com/Simplici0/precificalc/internal/products/storetest"
)

func newTestStore(t *testing.T) products.Store {
	t.Helper()

	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "products.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	return New(database)
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, newTestStore)
}

func TestInMemoryDatabase(t *testing.T) {
	database, err := db.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	defer database.Close()

	storetest.Run(t, func(t *testing.T) products.Store {
		if _, err := database.Exec(`DELETE FROM products`); err != nil {
			t.Fatalf("reset products: %v", err)
		}
		return New(database)
	})
}

func TestReopenKeepsSnapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	first, err := db.Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := New(first).Append(ctx, products.Product{ID: "x", Name: "Caneca", DirectCost: 10, FinalPrice: 14.29}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	_ = first.Close()

	second, err := db.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	got, err := New(second).Get(ctx, "x")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FinalPrice != 14.29 || got.Method != "margin" {
		t.Fatalf("unexpected product after reopen: %+v", got)
	}
}
