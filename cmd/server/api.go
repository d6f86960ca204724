package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/precificalc/internal/pricing"
	"github.com/Simplici0/precificalc/internal/products"
)

const maxAPIBodyBytes = 1 << 20

type calculateRequest struct {
	ProductName     string  `json:"productName"`
	DirectCost      float64 `json:"directCost"`
	IndirectCost    float64 `json:"indirectCost"`
	LaborCost       float64 `json:"laborCost"`
	PackagingCost   float64 `json:"packagingCost"`
	FreightCost     float64 `json:"freightCost"`
	CommissionCost  float64 `json:"commissionCost"`
	DesiredMargin   float64 `json:"desiredMargin"`
	CompetitorPrice float64 `json:"competitorPrice"`
	SalesVolume     float64 `json:"salesVolume"`
	Method          string  `json:"method"`
}

// calculateResponse uses pointers so non-finite prices are encoded as null.
type calculateResponse struct {
	Method            pricing.Method `json:"method"`
	TotalCost         *float64       `json:"totalCost"`
	MarginPrice       *float64       `json:"marginPrice"`
	MarkupPrice       *float64       `json:"markupPrice"`
	ContributionPrice *float64       `json:"contributionPrice"`
	RecommendedPrice  *float64       `json:"recommendedPrice"`
	Profit            *float64       `json:"profit"`
	MarginPercentage  float64        `json:"marginPercentage"`
}

func (req calculateRequest) inputs() (pricing.Inputs, pricing.Method, error) {
	in := pricing.Inputs{
		ProductName:     req.ProductName,
		DirectCost:      req.DirectCost,
		IndirectCost:    req.IndirectCost,
		LaborCost:       req.LaborCost,
		PackagingCost:   req.PackagingCost,
		FreightCost:     req.FreightCost,
		CommissionCost:  req.CommissionCost,
		DesiredMargin:   req.DesiredMargin,
		CompetitorPrice: req.CompetitorPrice,
		SalesVolume:     req.SalesVolume,
	}

	for _, field := range []struct {
		name  string
		value float64
	}{
		{"directCost", in.DirectCost},
		{"indirectCost", in.IndirectCost},
		{"laborCost", in.LaborCost},
		{"packagingCost", in.PackagingCost},
		{"freightCost", in.FreightCost},
		{"commissionCost", in.CommissionCost},
		{"desiredMargin", in.DesiredMargin},
		{"competitorPrice", in.CompetitorPrice},
		{"salesVolume", in.SalesVolume},
	} {
		if field.value < 0 {
			return in, "", fmt.Errorf("%s deve ser maior ou igual a 0", field.name)
		}
	}

	if req.Method == "" {
		return in, pricing.MethodMargin, nil
	}
	method, err := pricing.ParseMethod(req.Method)
	if err != nil {
		return in, "", err
	}
	return in, method, nil
}

func finitePtr(v float64) *float64 {
	if !pricing.IsFinite(v) {
		return nil
	}
	return &v
}

func (s *server) handleAPICalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAPIBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	in, method, err := req.inputs()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res, err := s.products.Calculate(in, method)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, calculateResponse{
		Method:            method,
		TotalCost:         finitePtr(pricing.TotalCost(in)),
		MarginPrice:       finitePtr(res.MarginPrice),
		MarkupPrice:       finitePtr(res.MarkupPrice),
		ContributionPrice: finitePtr(res.ContributionPrice),
		RecommendedPrice:  finitePtr(res.RecommendedPrice),
		Profit:            finitePtr(res.Profit),
		MarginPercentage:  res.MarginPercentage,
	})
}

func (s *server) handleAPIProducts(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.logger.Error("list products", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load products"})
		return
	}

	var buf bytes.Buffer
	if err := products.WriteJSON(&buf, list); err != nil {
		s.logger.Error("encode products", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to encode products"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = buf.WriteTo(w)
}
