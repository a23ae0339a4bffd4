package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/trznica/internal/model"
)

// CreateStockLocation creates a stock location. Lower priority values are
// filled first during packing.
func CreateStockLocation(ctx context.Context, db *sql.DB, name string, priority int) (*model.StockLocation, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO stock_locations (name, priority, active) VALUES (?, ?, 1)`,
		name, priority,
	)
	if err != nil {
		return nil, fmt.Errorf("creating stock location: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting stock location id: %w", err)
	}
	return &model.StockLocation{ID: id, Name: name, Priority: priority, Active: true}, nil
}

// ListActiveStockLocations returns active stock locations in priority order.
func ListActiveStockLocations(ctx context.Context, db *sql.DB) ([]model.StockLocation, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, priority, active FROM stock_locations
		 WHERE active = 1 ORDER BY priority, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing stock locations: %w", err)
	}
	defer rows.Close()

	var locations []model.StockLocation
	for rows.Next() {
		var loc model.StockLocation
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Priority, &loc.Active); err != nil {
			return nil, fmt.Errorf("scanning stock location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// SetStock upserts the on-hand count for a variant at a stock location.
func SetStock(ctx context.Context, db *sql.DB, locationID, variantID int64, countOnHand int, backorderable bool) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO stock_items (stock_location_id, variant_id, count_on_hand, backorderable)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (stock_location_id, variant_id)
		 DO UPDATE SET count_on_hand = ?, backorderable = ?`,
		locationID, variantID, countOnHand, backorderable, countOnHand, backorderable,
	)
	if err != nil {
		return fmt.Errorf("setting stock: %w", err)
	}
	return nil
}

// FillStatus reports how much of a requested quantity the location can
// supply on hand and how much would be backordered. A variant with no stock
// row at the location is treated as fully backordered.
func FillStatus(ctx context.Context, db *sql.DB, locationID, variantID int64, quantity int) (onHand, backordered int, err error) {
	var count int
	var backorderable bool
	err = db.QueryRowContext(ctx,
		`SELECT count_on_hand, backorderable FROM stock_items
		 WHERE stock_location_id = ? AND variant_id = ?`,
		locationID, variantID,
	).Scan(&count, &backorderable)
	if err == sql.ErrNoRows {
		return 0, quantity, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("querying fill status: %w", err)
	}

	onHand = min(max(count, 0), quantity)
	if backorderable {
		backordered = quantity - onHand
	}
	return onHand, backordered, nil
}
