package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Simplici0/precificalc/internal/pricing"
)

var (
	ErrNameRequired = errors.New("nome do produto é necessário")
	ErrInvalidCosts = errors.New("os custos devem ser maiores que zero")
)

// IsValidationError reports whether err should be shown to the user as a
// rejected action rather than a server failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrInvalidCosts) ||
		errors.Is(err, pricing.ErrUnknownMethod)
}

// Service validates inputs, runs the pricing engine and keeps snapshots in a
// Store.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService builds a Service over store.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Validate screens inputs before they reach the engine.
func Validate(in pricing.Inputs) error {
	if strings.TrimSpace(in.ProductName) == "" {
		return ErrNameRequired
	}
	if !(pricing.TotalCost(in) > 0) {
		return ErrInvalidCosts
	}
	return nil
}

// Calculate validates in and prices it with method.
func (s *Service) Calculate(in pricing.Inputs, method pricing.Method) (pricing.Results, error) {
	if _, err := pricing.ParseMethod(string(method)); err != nil {
		return pricing.Results{}, err
	}
	if err := Validate(in); err != nil {
		return pricing.Results{}, err
	}
	return pricing.Calculate(in, method), nil
}

// Save prices in and appends the resulting snapshot.
func (s *Service) Save(ctx context.Context, in pricing.Inputs, method pricing.Method) (Product, error) {
	res, err := s.Calculate(in, method)
	if err != nil {
		return Product{}, err
	}

	p := snapshot(in, method, res)
	p.ID = s.newID()
	p.CreatedAt = s.now()

	if err := s.store.Append(ctx, p); err != nil {
		return Product{}, fmt.Errorf("append product: %w", err)
	}

	s.logger.Info("product saved",
		zap.String("id", p.ID),
		zap.String("method", string(method)),
		zap.Float64("final_price", p.FinalPrice),
	)
	return p, nil
}

// Update replaces every editable field of the product with id and recomputes
// its price. ID and CreatedAt are kept.
func (s *Service) Update(ctx context.Context, id string, in pricing.Inputs, method pricing.Method) (Product, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("get product %s: %w", id, err)
	}

	res, err := s.Calculate(in, method)
	if err != nil {
		return Product{}, err
	}

	p := snapshot(in, method, res)
	p.ID = current.ID
	p.CreatedAt = current.CreatedAt

	if err := s.store.Update(ctx, p); err != nil {
		return Product{}, fmt.Errorf("update product %s: %w", id, err)
	}

	s.logger.Info("product updated",
		zap.String("id", p.ID),
		zap.Float64("final_price", p.FinalPrice),
	)
	return p, nil
}

// Delete removes the product with id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	s.logger.Info("product deleted", zap.String("id", id))
	return nil
}

// Get returns the product with id.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// List returns saved products in insertion order, keeping only those whose
// name contains query, ignoring case. An empty query returns everything.
func (s *Service) List(ctx context.Context, query string) ([]Product, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all, nil
	}

	filtered := make([]Product, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), query) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func snapshot(in pricing.Inputs, method pricing.Method, res pricing.Results) Product {
	return Product{
		Name:           strings.TrimSpace(in.ProductName),
		DirectCost:     in.DirectCost,
		IndirectCost:   in.IndirectCost,
		LaborCost:      in.LaborCost,
		PackagingCost:  in.PackagingCost,
		FreightCost:    in.FreightCost,
		CommissionCost: in.CommissionCost,
		DesiredMargin:  in.DesiredMargin,
		SalesVolume:    in.SalesVolume,
		Method:         method,
		FinalPrice:     res.RecommendedPrice,
	}
}
