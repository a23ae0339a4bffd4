package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/trznica/internal/model"
)

// CreateShippingMethod creates a shipping method linked to the given shipping
// categories and distributors.
func CreateShippingMethod(ctx context.Context, db *sql.DB, m model.ShippingMethod) (*model.ShippingMethod, error) {
	if m.DisplayOn == "" {
		m.DisplayOn = model.DisplayBoth
	}
	if m.CalculatorPrefs == "" {
		m.CalculatorPrefs = "{}"
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO shipping_methods (name, display_on, calculator_type, calculator_prefs)
		 VALUES (?, ?, ?, ?)`,
		m.Name, m.DisplayOn, m.CalculatorType, m.CalculatorPrefs,
	)
	if err != nil {
		return nil, fmt.Errorf("creating shipping method: %w", err)
	}
	m.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting shipping method id: %w", err)
	}

	for _, categoryID := range m.ShippingCategoryIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO shipping_method_categories (shipping_method_id, shipping_category_id)
			 VALUES (?, ?)`, m.ID, categoryID,
		); err != nil {
			return nil, fmt.Errorf("linking shipping category: %w", err)
		}
	}
	for _, distributorID := range m.DistributorIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO shipping_method_distributors (shipping_method_id, enterprise_id)
			 VALUES (?, ?)`, m.ID, distributorID,
		); err != nil {
			return nil, fmt.Errorf("linking distributor: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing shipping method: %w", err)
	}
	return &m, nil
}

// DeleteShippingMethod soft-deletes a shipping method.
func DeleteShippingMethod(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE shipping_methods SET deleted_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("deleting shipping method: %w", err)
	}
	return nil
}

// ShippingMethodsForDistributor returns the non-deleted shipping methods
// offered by a distributor, each with its shipping category links loaded.
func ShippingMethodsForDistributor(ctx context.Context, db *sql.DB, enterpriseID int64) ([]model.ShippingMethod, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT m.id, m.name, m.display_on, m.calculator_type, m.calculator_prefs
		 FROM shipping_methods m
		 JOIN shipping_method_distributors d ON d.shipping_method_id = m.id
		 WHERE d.enterprise_id = ? AND m.deleted_at IS NULL
		 ORDER BY m.id`, enterpriseID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing shipping methods: %w", err)
	}
	defer rows.Close()

	var methods []model.ShippingMethod
	for rows.Next() {
		var m model.ShippingMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.DisplayOn, &m.CalculatorType, &m.CalculatorPrefs); err != nil {
			return nil, fmt.Errorf("scanning shipping method: %w", err)
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range methods {
		categoryRows, err := db.QueryContext(ctx,
			`SELECT shipping_category_id FROM shipping_method_categories
			 WHERE shipping_method_id = ? ORDER BY shipping_category_id`, methods[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("listing method categories: %w", err)
		}
		for categoryRows.Next() {
			var categoryID int64
			if err := categoryRows.Scan(&categoryID); err != nil {
				categoryRows.Close()
				return nil, fmt.Errorf("scanning method category: %w", err)
			}
			methods[i].ShippingCategoryIDs = append(methods[i].ShippingCategoryIDs, categoryID)
		}
		if err := categoryRows.Err(); err != nil {
			categoryRows.Close()
			return nil, err
		}
		categoryRows.Close()
	}

	return methods, nil
}
