// Package sqlitestore implements products.Store on SQLite.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Simplici0/precificalc/internal/pricing"
	"github.com/Simplici0/precificalc/internal/products"
)

const productColumns = `
	id, name,
	direct_cost, indirect_cost, labor_cost, packaging_cost, freight_cost, commission_cost,
	desired_margin, sales_volume, method, final_price, created_at`

// Store keeps products in the products table, ordered by insertion.
type Store struct {
	db *sql.DB
}

var _ products.Store = (*Store)(nil)

// New wraps an open, migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, p products.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.Name,
		p.DirectCost, p.IndirectCost, p.LaborCost, p.PackagingCost, p.FreightCost, p.CommissionCost,
		p.DesiredMargin, p.SalesVolume, string(p.PricingMethod()), nullablePrice(p.FinalPrice),
		p.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, p products.Product) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET
			name = ?,
			direct_cost = ?,
			indirect_cost = ?,
			labor_cost = ?,
			packaging_cost = ?,
			freight_cost = ?,
			commission_cost = ?,
			desired_margin = ?,
			sales_volume = ?,
			method = ?,
			final_price = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		p.Name,
		p.DirectCost, p.IndirectCost, p.LaborCost, p.PackagingCost, p.FreightCost, p.CommissionCost,
		p.DesiredMargin, p.SalesVolume, string(p.PricingMethod()), nullablePrice(p.FinalPrice),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if affected == 0 {
		return products.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return products.ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (products.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return products.Product{}, products.ErrNotFound
	}
	if err != nil {
		return products.Product{}, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

func (s *Store) List(ctx context.Context) ([]products.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	list := make([]products.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return list, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(sc scanner) (products.Product, error) {
	var (
		p          products.Product
		method     string
		finalPrice sql.NullFloat64
		createdAt  string
	)
	err := sc.Scan(
		&p.ID, &p.Name,
		&p.DirectCost, &p.IndirectCost, &p.LaborCost, &p.PackagingCost, &p.FreightCost, &p.CommissionCost,
		&p.DesiredMargin, &p.SalesVolume, &method, &finalPrice, &createdAt,
	)
	if err != nil {
		return products.Product{}, err
	}

	p.Method = pricing.Method(method)
	p.FinalPrice = math.NaN()
	if finalPrice.Valid {
		p.FinalPrice = finalPrice.Float64
	}

	p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return products.Product{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return p, nil
}

func nullablePrice(v float64) sql.NullFloat64 {
	if !pricing.IsFinite(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
