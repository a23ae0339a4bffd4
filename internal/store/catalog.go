package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erazemk/trznica/internal/model"
)

// CreateShippingCategory creates a new shipping category.
func CreateShippingCategory(ctx context.Context, db *sql.DB, name string) (*model.ShippingCategory, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO shipping_categories (name) VALUES (?)`, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating shipping category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting shipping category id: %w", err)
	}
	return &model.ShippingCategory{ID: id, Name: name}, nil
}

// CreateVariant creates a new variant. shippingCategoryID may be nil for
// variants outside any shipping category.
func CreateVariant(ctx context.Context, db *sql.DB, name, sku string, price decimal.Decimal, currency string, weight float64, shippingCategoryID *int64) (*model.Variant, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO variants (name, sku, price, currency, weight, shipping_category_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, sku, price.String(), currency, weight, shippingCategoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating variant: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting variant id: %w", err)
	}
	return GetVariant(ctx, db, id)
}

// GetVariant returns a variant by ID, or nil if it does not exist.
func GetVariant(ctx context.Context, db *sql.DB, id int64) (*model.Variant, error) {
	v := &model.Variant{}
	var sku sql.NullString
	var price string
	err := db.QueryRowContext(ctx,
		`SELECT id, name, sku, price, currency, weight, shipping_category_id, deleted_at
		 FROM variants WHERE id = ?`, id,
	).Scan(&v.ID, &v.Name, &sku, &price, &v.Currency, &v.Weight, &v.ShippingCategoryID, &v.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting variant: %w", err)
	}
	v.SKU = sku.String
	v.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parsing variant price: %w", err)
	}
	return v, nil
}

// CreateEnterprise creates a new enterprise.
func CreateEnterprise(ctx context.Context, db *sql.DB, name string) (*model.Enterprise, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO enterprises (name) VALUES (?)`, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating enterprise: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting enterprise id: %w", err)
	}
	return &model.Enterprise{ID: id, Name: name}, nil
}
