package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erazemk/trznica/internal/model"
)

// CreateOrder creates a new order for a distributor. enterpriseID may be nil
// for orders without a distributor yet.
func CreateOrder(ctx context.Context, db *sql.DB, enterpriseID *int64, currency string) (*model.Order, error) {
	number := "R" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	result, err := db.ExecContext(ctx,
		`INSERT INTO orders (number, enterprise_id, currency) VALUES (?, ?, ?)`,
		number, enterpriseID, currency,
	)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting order id: %w", err)
	}
	return GetOrder(ctx, db, id)
}

// AddLineItem adds a requested variant quantity to an order.
func AddLineItem(ctx context.Context, db *sql.DB, orderID, variantID int64, quantity int, price decimal.Decimal) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO line_items (order_id, variant_id, quantity, price) VALUES (?, ?, ?, ?)`,
		orderID, variantID, quantity, price.String(),
	)
	if err != nil {
		return fmt.Errorf("adding line item: %w", err)
	}
	return nil
}

// GetOrder returns an order with its line items and variants loaded, or nil
// if it does not exist.
func GetOrder(ctx context.Context, db *sql.DB, id int64) (*model.Order, error) {
	order := &model.Order{}
	err := db.QueryRowContext(ctx,
		`SELECT id, number, enterprise_id, currency, state, created_at
		 FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.Number, &order.EnterpriseID, &order.Currency, &order.State, &order.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting order: %w", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT li.id, li.order_id, li.quantity, li.price,
		        v.id, v.name, v.sku, v.price, v.currency, v.weight, v.shipping_category_id, v.deleted_at
		 FROM line_items li
		 JOIN variants v ON v.id = li.variant_id
		 WHERE li.order_id = ?
		 ORDER BY li.id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("listing line items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var li model.LineItem
		var liPrice, vPrice string
		var sku sql.NullString
		if err := rows.Scan(&li.ID, &li.OrderID, &li.Quantity, &liPrice,
			&li.Variant.ID, &li.Variant.Name, &sku, &vPrice, &li.Variant.Currency,
			&li.Variant.Weight, &li.Variant.ShippingCategoryID, &li.Variant.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning line item: %w", err)
		}
		li.Variant.SKU = sku.String
		if li.Price, err = decimal.NewFromString(liPrice); err != nil {
			return nil, fmt.Errorf("parsing line item price: %w", err)
		}
		if li.Variant.Price, err = decimal.NewFromString(vPrice); err != nil {
			return nil, fmt.Errorf("parsing variant price: %w", err)
		}
		order.LineItems = append(order.LineItems, li)
	}
	return order, rows.Err()
}
