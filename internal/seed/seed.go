// Package seed loads demonstration products into an empty catalogue.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/Simplici0/precificalc/internal/pricing"
	"github.com/Simplici0/precificalc/internal/products"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Skipped int
}

type demoProduct struct {
	method pricing.Method
	inputs pricing.Inputs
}

var demoProducts = []demoProduct{
	{
		method: pricing.MethodMargin,
		inputs: pricing.Inputs{
			ProductName:     "Camiseta Premium",
			DirectCost:      28,
			LaborCost:       9.5,
			PackagingCost:   2.3,
			FreightCost:     6,
			CommissionCost:  3.2,
			DesiredMargin:   40,
			CompetitorPrice: 79.9,
			SalesVolume:     100,
		},
	},
	{
		method: pricing.MethodMarkup,
		inputs: pricing.Inputs{
			ProductName:   "Caneca Personalizada",
			DirectCost:    14.5,
			LaborCost:     4,
			PackagingCost: 1.8,
			DesiredMargin: 60,
			SalesVolume:   250,
		},
	},
	{
		method: pricing.MethodContribution,
		inputs: pricing.Inputs{
			ProductName:    "Kit Presente Artesanal",
			DirectCost:     42,
			IndirectCost:   1500,
			LaborCost:      18,
			PackagingCost:  7.5,
			FreightCost:    12,
			CommissionCost: 6,
			DesiredMargin:  35,
			SalesVolume:    80,
		},
	},
}

// Run saves every demo product whose name is not in the catalogue yet, so it
// can be executed on every startup.
func Run(ctx context.Context, svc *products.Service) (Stats, error) {
	existing, err := svc.List(ctx, "")
	if err != nil {
		return Stats{}, fmt.Errorf("list existing products: %w", err)
	}

	names := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		names[strings.ToLower(p.Name)] = struct{}{}
	}

	stats := Stats{}
	for _, demo := range demoProducts {
		key := strings.ToLower(demo.inputs.ProductName)
		if _, ok := names[key]; ok {
			stats.Skipped++
			continue
		}
		if _, err := svc.Save(ctx, demo.inputs, demo.method); err != nil {
			return stats, fmt.Errorf("seed %q: %w", demo.inputs.ProductName, err)
		}
		names[key] = struct{}{}
		stats.Inserts++
	}

	return stats, nil
}
