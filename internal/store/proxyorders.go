package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/trznica/internal/model"
)

// inRangeCycles selects the IDs of a schedule's order cycles whose close time
// falls inside a subscription's active window and has not yet passed.
// Times are normalized with datetime() so bound values and stored values
// compare correctly regardless of stored precision.
const inRangeCycles = `
	SELECT oc.id FROM order_cycles oc
	JOIN schedule_order_cycles soc ON soc.order_cycle_id = oc.id
	WHERE soc.schedule_id = ?
	  AND datetime(oc.orders_close_at) > datetime(?)
	  AND datetime(oc.orders_close_at) >= datetime(?)
	  AND datetime(oc.orders_close_at) <= datetime(?)`

// InsertMissingProxyOrders creates proxy orders for every in-range, not yet
// closed order cycle of the subscription's schedule that lacks one. The
// insert is conflict-free: the UNIQUE(subscription_id, order_cycle_id)
// constraint plus INSERT OR IGNORE makes concurrent syncs idempotent, the
// same pattern as a check-then-insert without the race.
func InsertMissingProxyOrders(ctx context.Context, db *sql.DB, sub model.Subscription, now time.Time) error {
	begins, ends := subscriptionWindow(sub, now)
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO proxy_orders (subscription_id, order_cycle_id)
		 SELECT ?, id FROM (`+inRangeCycles+`)`,
		sub.ID, sub.ScheduleID, now.UTC(), begins, ends,
	)
	if err != nil {
		return fmt.Errorf("inserting proxy orders: %w", err)
	}
	return nil
}

// DeleteOrphanProxyOrders removes the subscription's not-yet-placed proxy
// orders whose order cycle is no longer in the in-range, not-closed set.
// Placed proxy orders are never touched.
func DeleteOrphanProxyOrders(ctx context.Context, db *sql.DB, sub model.Subscription, now time.Time) error {
	begins, ends := subscriptionWindow(sub, now)
	_, err := db.ExecContext(ctx,
		`DELETE FROM proxy_orders
		 WHERE subscription_id = ? AND placed_at IS NULL
		   AND order_cycle_id NOT IN (`+inRangeCycles+`)`,
		sub.ID, sub.ScheduleID, now.UTC(), begins, ends,
	)
	if err != nil {
		return fmt.Errorf("deleting orphan proxy orders: %w", err)
	}
	return nil
}

// DeleteAllPendingProxyOrders removes every not-yet-placed proxy order of a
// subscription, used when the subscription is paused or canceled.
func DeleteAllPendingProxyOrders(ctx context.Context, db *sql.DB, subscriptionID int64) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM proxy_orders WHERE subscription_id = ? AND placed_at IS NULL`,
		subscriptionID,
	)
	if err != nil {
		return fmt.Errorf("deleting pending proxy orders: %w", err)
	}
	return nil
}

// subscriptionWindow returns the UTC bounds of the subscription's active
// window. An open-ended subscription runs for 100 years from now.
func subscriptionWindow(sub model.Subscription, now time.Time) (begins, ends time.Time) {
	begins = sub.BeginsAt.UTC()
	if sub.EndsAt != nil {
		ends = sub.EndsAt.UTC()
	} else {
		ends = now.UTC().AddDate(100, 0, 0)
	}
	return begins, ends
}

// ListProxyOrders returns a subscription's proxy orders in cycle order.
func ListProxyOrders(ctx context.Context, db *sql.DB, subscriptionID int64) ([]model.ProxyOrder, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, subscription_id, order_cycle_id, order_id, placed_at, canceled_at
		 FROM proxy_orders WHERE subscription_id = ? ORDER BY order_cycle_id`,
		subscriptionID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing proxy orders: %w", err)
	}
	defer rows.Close()

	var orders []model.ProxyOrder
	for rows.Next() {
		var po model.ProxyOrder
		if err := rows.Scan(&po.ID, &po.SubscriptionID, &po.OrderCycleID, &po.OrderID, &po.PlacedAt, &po.CanceledAt); err != nil {
			return nil, fmt.Errorf("scanning proxy order: %w", err)
		}
		orders = append(orders, po)
	}
	return orders, rows.Err()
}

// MarkProxyOrderPlaced records that a proxy order was materialized into a
// real order. Placed proxy orders survive later syncs.
func MarkProxyOrderPlaced(ctx context.Context, db *sql.DB, id int64, orderID *int64, at time.Time) error {
	_, err := db.ExecContext(ctx,
		`UPDATE proxy_orders SET order_id = ?, placed_at = ? WHERE id = ?`,
		orderID, at.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("marking proxy order placed: %w", err)
	}
	return nil
}
