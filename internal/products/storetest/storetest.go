// Package storetest checks that a products.Store behaves like an
// insertion-ordered list.
package storetest

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Simplici0/precificalc/internal/pricing"
	"github.com/Simplici0/precificalc/internal/products"
)

// Run exercises newStore against the products.Store contract. newStore must
// return an empty store on every call.
func Run(t *testing.T, newStore func(t *testing.T) products.Store) {
	t.Run("ListEmpty", func(t *testing.T) {
		list, err := newStore(t).List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != 0 {
			t.Fatalf("expected empty list, got %+v", list)
		}
	})

	t.Run("AppendKeepsInsertionOrder", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		for _, p := range []products.Product{fixture("3", "Zeta"), fixture("1", "Alfa"), fixture("2", "Beta")} {
			if err := store.Append(ctx, p); err != nil {
				t.Fatalf("Append %s: %v", p.ID, err)
			}
		}

		list, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != 3 || list[0].ID != "3" || list[1].ID != "1" || list[2].ID != "2" {
			t.Fatalf("unexpected order: %+v", ids(list))
		}
	})

	t.Run("GetRoundTripsFields", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		want := fixture("p1", "Camiseta Premium")
		if err := store.Append(ctx, want); err != nil {
			t.Fatalf("Append: %v", err)
		}

		got, err := store.Get(ctx, "p1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Name != want.Name ||
			got.DirectCost != want.DirectCost ||
			got.IndirectCost != want.IndirectCost ||
			got.LaborCost != want.LaborCost ||
			got.PackagingCost != want.PackagingCost ||
			got.FreightCost != want.FreightCost ||
			got.CommissionCost != want.CommissionCost ||
			got.DesiredMargin != want.DesiredMargin ||
			got.SalesVolume != want.SalesVolume ||
			got.Method != want.Method ||
			got.FinalPrice != want.FinalPrice ||
			!got.CreatedAt.Equal(want.CreatedAt) {
			t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
		}
	})

	// Persistent stores encode a non-finite price as null, so only
	// non-finiteness survives the round trip, not the sign or NaN-ness.
	t.Run("NonFinitePriceStaysNonFinite", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		prices := map[string]float64{
			"pos-inf": math.Inf(1),
			"neg-inf": math.Inf(-1),
			"nan":     math.NaN(),
		}
		for id, price := range prices {
			p := fixture(id, "Kit "+id)
			p.FinalPrice = price
			if err := store.Append(ctx, p); err != nil {
				t.Fatalf("Append %s: %v", id, err)
			}
		}

		for id := range prices {
			got, err := store.Get(ctx, id)
			if err != nil {
				t.Fatalf("Get %s: %v", id, err)
			}
			if pricing.IsFinite(got.FinalPrice) {
				t.Fatalf("%s: FinalPrice = %v, want non-finite", id, got.FinalPrice)
			}
		}
	})

	t.Run("UpdateReplacesOnlyTarget", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_ = store.Append(ctx, fixture("a", "A"))
		_ = store.Append(ctx, fixture("b", "B"))

		edited := fixture("a", "A2")
		edited.DirectCost = 999
		edited.FinalPrice = 1234.5
		if err := store.Update(ctx, edited); err != nil {
			t.Fatalf("Update: %v", err)
		}

		list, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != 2 || list[0].Name != "A2" || list[0].FinalPrice != 1234.5 || list[1].Name != "B" {
			t.Fatalf("unexpected list after update: %+v", list)
		}
	})

	t.Run("MissingIDs", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		if _, err := store.Get(ctx, "nope"); !errors.Is(err, products.ErrNotFound) {
			t.Fatalf("Get: expected ErrNotFound, got %v", err)
		}
		if err := store.Update(ctx, fixture("nope", "x")); !errors.Is(err, products.ErrNotFound) {
			t.Fatalf("Update: expected ErrNotFound, got %v", err)
		}
		if err := store.Delete(ctx, "nope"); !errors.Is(err, products.ErrNotFound) {
			t.Fatalf("Delete: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteRemovesRecord", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_ = store.Append(ctx, fixture("a", "A"))
		_ = store.Append(ctx, fixture("b", "B"))
		_ = store.Append(ctx, fixture("c", "C"))

		if err := store.Delete(ctx, "b"); err != nil {
			t.Fatalf("Delete: %v", err)
		}

		list, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if got := ids(list); len(got) != 2 || got[0] != "a" || got[1] != "c" {
			t.Fatalf("unexpected ids after delete: %v", got)
		}
	})
}

func fixture(id, name string) products.Product {
	return products.Product{
		ID:             id,
		Name:           name,
		DirectCost:     12.5,
		IndirectCost:   300,
		LaborCost:      7.25,
		PackagingCost:  1.1,
		FreightCost:    3,
		CommissionCost: 0.65,
		DesiredMargin:  35,
		SalesVolume:    250,
		Method:         pricing.MethodContribution,
		FinalPrice:     37.96,
		CreatedAt:      time.Date(2024, time.May, 17, 9, 30, 15, 123000000, time.UTC),
	}
}

func ids(list []products.Product) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}
