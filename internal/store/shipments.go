package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erazemk/trznica/internal/model"
)

// SaveShipment persists a shipment with its inventory units and shipping
// rates in a single transaction, filling in the generated IDs.
func SaveShipment(ctx context.Context, db *sql.DB, s *model.Shipment) error {
	if len(s.Units) == 0 {
		return fmt.Errorf("shipment has no inventory units")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO shipments (order_id, stock_location_id, number, shipping_method_id, cost, state)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.OrderID, s.StockLocationID, s.Number, s.ShippingMethodID, s.Cost.String(), s.State,
	)
	if err != nil {
		return fmt.Errorf("creating shipment: %w", err)
	}
	if s.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("getting shipment id: %w", err)
	}

	for i := range s.Units {
		s.Units[i].ShipmentID = s.ID
		result, err := tx.ExecContext(ctx,
			`INSERT INTO inventory_units (shipment_id, variant_id, quantity, state)
			 VALUES (?, ?, ?, ?)`,
			s.ID, s.Units[i].VariantID, s.Units[i].Quantity, s.Units[i].State,
		)
		if err != nil {
			return fmt.Errorf("creating inventory unit: %w", err)
		}
		if s.Units[i].ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("getting inventory unit id: %w", err)
		}
	}

	for i := range s.Rates {
		s.Rates[i].ShipmentID = s.ID
		result, err := tx.ExecContext(ctx,
			`INSERT INTO shipping_rates (shipment_id, shipping_method_id, cost, selected)
			 VALUES (?, ?, ?, ?)`,
			s.ID, s.Rates[i].ShippingMethodID, s.Rates[i].Cost.String(), s.Rates[i].Selected,
		)
		if err != nil {
			return fmt.Errorf("creating shipping rate: %w", err)
		}
		if s.Rates[i].ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("getting shipping rate id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing shipment: %w", err)
	}
	return nil
}

// ListShipments returns an order's shipments with units and rates loaded.
func ListShipments(ctx context.Context, db *sql.DB, orderID int64) ([]model.Shipment, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, order_id, stock_location_id, number, shipping_method_id, cost, state, created_at
		 FROM shipments WHERE order_id = ? ORDER BY id`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing shipments: %w", err)
	}
	defer rows.Close()

	var shipments []model.Shipment
	for rows.Next() {
		var s model.Shipment
		var cost string
		if err := rows.Scan(&s.ID, &s.OrderID, &s.StockLocationID, &s.Number,
			&s.ShippingMethodID, &cost, &s.State, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning shipment: %w", err)
		}
		if s.Cost, err = decimal.NewFromString(cost); err != nil {
			return nil, fmt.Errorf("parsing shipment cost: %w", err)
		}
		shipments = append(shipments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range shipments {
		if shipments[i].Units, err = listInventoryUnits(ctx, db, shipments[i].ID); err != nil {
			return nil, err
		}
		if shipments[i].Rates, err = listShippingRates(ctx, db, shipments[i].ID); err != nil {
			return nil, err
		}
	}
	return shipments, nil
}

func listInventoryUnits(ctx context.Context, db *sql.DB, shipmentID int64) ([]model.InventoryUnit, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, shipment_id, variant_id, quantity, state
		 FROM inventory_units WHERE shipment_id = ? ORDER BY id`, shipmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing inventory units: %w", err)
	}
	defer rows.Close()

	var units []model.InventoryUnit
	for rows.Next() {
		var u model.InventoryUnit
		if err := rows.Scan(&u.ID, &u.ShipmentID, &u.VariantID, &u.Quantity, &u.State); err != nil {
			return nil, fmt.Errorf("scanning inventory unit: %w", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func listShippingRates(ctx context.Context, db *sql.DB, shipmentID int64) ([]model.ShippingRate, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, shipment_id, shipping_method_id, cost, selected
		 FROM shipping_rates WHERE shipment_id = ? ORDER BY id`, shipmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing shipping rates: %w", err)
	}
	defer rows.Close()

	var rates []model.ShippingRate
	for rows.Next() {
		var r model.ShippingRate
		var cost string
		if err := rows.Scan(&r.ID, &r.ShipmentID, &r.ShippingMethodID, &cost, &r.Selected); err != nil {
			return nil, fmt.Errorf("scanning shipping rate: %w", err)
		}
		var parseErr error
		if r.Cost, parseErr = decimal.NewFromString(cost); parseErr != nil {
			return nil, fmt.Errorf("parsing rate cost: %w", parseErr)
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}
