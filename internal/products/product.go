// Package products manages saved price computations: the record model, the
// storage contract and the service that validates, prices and persists them.
package products

import (
	"encoding/json"
	"math"
	"time"

	"github.com/Simplici0/precificalc/internal/pricing"
)

// Product is a saved pricing snapshot. FinalPrice is the recommended price at
// save or edit time and is never recomputed on read. A non-finite FinalPrice
// is persisted as null and loses its sign.
type Product struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	DirectCost     float64        `json:"directCost"`
	IndirectCost   float64        `json:"indirectCost"`
	LaborCost      float64        `json:"laborCost"`
	PackagingCost  float64        `json:"packagingCost"`
	FreightCost    float64        `json:"freightCost"`
	CommissionCost float64        `json:"commissionCost"`
	DesiredMargin  float64        `json:"desiredMargin"`
	SalesVolume    float64        `json:"salesVolume"`
	Method         pricing.Method `json:"method"`
	FinalPrice     float64        `json:"finalPrice"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// Inputs rebuilds the engine inputs the snapshot was computed from.
func (p Product) Inputs() pricing.Inputs {
	return pricing.Inputs{
		ProductName:    p.Name,
		DirectCost:     p.DirectCost,
		IndirectCost:   p.IndirectCost,
		LaborCost:      p.LaborCost,
		PackagingCost:  p.PackagingCost,
		FreightCost:    p.FreightCost,
		CommissionCost: p.CommissionCost,
		DesiredMargin:  p.DesiredMargin,
		SalesVolume:    p.SalesVolume,
	}
}

// TotalCost sums the snapshot's cost components.
func (p Product) TotalCost() float64 {
	return pricing.TotalCost(p.Inputs())
}

// PricingMethod returns the stored method, falling back to margin-on-cost
// for records saved without one.
func (p Product) PricingMethod() pricing.Method {
	if p.Method == "" {
		return pricing.MethodMargin
	}
	return p.Method
}

type productAlias Product

// MarshalJSON writes a non-finite FinalPrice as null.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		productAlias
		FinalPrice *float64 `json:"finalPrice"`
	}{
		productAlias: productAlias(p),
		FinalPrice:   finiteOrNil(p.FinalPrice),
	})
}

// UnmarshalJSON reads a null FinalPrice back as NaN.
func (p *Product) UnmarshalJSON(data []byte) error {
	aux := struct {
		*productAlias
		FinalPrice *float64 `json:"finalPrice"`
	}{productAlias: (*productAlias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.FinalPrice == nil {
		p.FinalPrice = math.NaN()
	} else {
		p.FinalPrice = *aux.FinalPrice
	}
	return nil
}

func finiteOrNil(v float64) *float64 {
	if !pricing.IsFinite(v) {
		return nil
	}
	return &v
}
