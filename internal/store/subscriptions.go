package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/trznica/internal/model"
)

// CreateSchedule creates a schedule.
func CreateSchedule(ctx context.Context, db *sql.DB, name string) (*model.Schedule, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO schedules (name) VALUES (?)`, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating schedule: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting schedule id: %w", err)
	}
	return &model.Schedule{ID: id, Name: name}, nil
}

// CreateOrderCycle creates an order cycle and links it to a schedule.
func CreateOrderCycle(ctx context.Context, db *sql.DB, scheduleID int64, name string, opensAt, closesAt time.Time) (*model.OrderCycle, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO order_cycles (name, orders_open_at, orders_close_at) VALUES (?, ?, ?)`,
		name, opensAt, closesAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating order cycle: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting order cycle id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schedule_order_cycles (schedule_id, order_cycle_id) VALUES (?, ?)`,
		scheduleID, id,
	); err != nil {
		return nil, fmt.Errorf("linking order cycle to schedule: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing order cycle: %w", err)
	}
	return &model.OrderCycle{ID: id, Name: name, OrdersOpenAt: opensAt, OrdersCloseAt: closesAt}, nil
}

// CreateSubscription creates a subscription. endsAt may be nil for an
// open-ended subscription.
func CreateSubscription(ctx context.Context, db *sql.DB, enterpriseID, scheduleID int64, customerEmail string, beginsAt time.Time, endsAt *time.Time) (*model.Subscription, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO subscriptions (enterprise_id, schedule_id, customer_email, begins_at, ends_at)
		 VALUES (?, ?, ?, ?, ?)`,
		enterpriseID, scheduleID, customerEmail, beginsAt, endsAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating subscription: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting subscription id: %w", err)
	}
	return GetSubscription(ctx, db, id)
}

// GetSubscription returns a subscription with its line items loaded, or nil
// if it does not exist.
func GetSubscription(ctx context.Context, db *sql.DB, id int64) (*model.Subscription, error) {
	s := &model.Subscription{}
	err := db.QueryRowContext(ctx,
		`SELECT id, enterprise_id, schedule_id, customer_email, begins_at, ends_at, paused_at, canceled_at, created_at
		 FROM subscriptions WHERE id = ?`, id,
	).Scan(&s.ID, &s.EnterpriseID, &s.ScheduleID, &s.CustomerEmail, &s.BeginsAt, &s.EndsAt, &s.PausedAt, &s.CanceledAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting subscription: %w", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, subscription_id, variant_id, quantity, price_estimate
		 FROM subscription_line_items WHERE subscription_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("listing subscription line items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var li model.SubscriptionLineItem
		var estimate string
		if err := rows.Scan(&li.ID, &li.SubscriptionID, &li.VariantID, &li.Quantity, &estimate); err != nil {
			return nil, fmt.Errorf("scanning subscription line item: %w", err)
		}
		if li.PriceEstimate, err = decimal.NewFromString(estimate); err != nil {
			return nil, fmt.Errorf("parsing price estimate: %w", err)
		}
		s.LineItems = append(s.LineItems, li)
	}
	return s, rows.Err()
}

// ListSubscriptionIDs returns the IDs of all subscriptions.
func ListSubscriptionIDs(ctx context.Context, db *sql.DB) ([]int64, error) {
	rows, err := db.QueryContext(ctx, `SELECT id FROM subscriptions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning subscription id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddSubscriptionLineItem adds a recurring variant quantity to a subscription.
func AddSubscriptionLineItem(ctx context.Context, db *sql.DB, subscriptionID, variantID int64, quantity int, priceEstimate decimal.Decimal) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO subscription_line_items (subscription_id, variant_id, quantity, price_estimate)
		 VALUES (?, ?, ?, ?)`,
		subscriptionID, variantID, quantity, priceEstimate.String(),
	)
	if err != nil {
		return fmt.Errorf("adding subscription line item: %w", err)
	}
	return nil
}

// UpdatePriceEstimate sets a subscription line item's price estimate.
func UpdatePriceEstimate(ctx context.Context, db *sql.DB, lineItemID int64, estimate decimal.Decimal) error {
	_, err := db.ExecContext(ctx,
		`UPDATE subscription_line_items SET price_estimate = ? WHERE id = ?`,
		estimate.String(), lineItemID,
	)
	if err != nil {
		return fmt.Errorf("updating price estimate: %w", err)
	}
	return nil
}

// PauseSubscription marks a subscription paused.
func PauseSubscription(ctx context.Context, db *sql.DB, id int64, at time.Time) error {
	_, err := db.ExecContext(ctx,
		`UPDATE subscriptions SET paused_at = ? WHERE id = ?`, at, id,
	)
	if err != nil {
		return fmt.Errorf("pausing subscription: %w", err)
	}
	return nil
}

// UpdateSubscriptionRange changes a subscription's active date range.
func UpdateSubscriptionRange(ctx context.Context, db *sql.DB, id int64, beginsAt time.Time, endsAt *time.Time) error {
	_, err := db.ExecContext(ctx,
		`UPDATE subscriptions SET begins_at = ?, ends_at = ? WHERE id = ?`,
		beginsAt, endsAt, id,
	)
	if err != nil {
		return fmt.Errorf("updating subscription range: %w", err)
	}
	return nil
}
