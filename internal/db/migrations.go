package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: partial index speeding up the syncer's orphan scan, which
	// only ever touches not-yet-placed proxy orders.
	`CREATE INDEX IF NOT EXISTS idx_proxy_orders_pending
	     ON proxy_orders(subscription_id) WHERE placed_at IS NULL`,
	// Migration 2: index for looking up a schedule's cycles by close time.
	`CREATE INDEX IF NOT EXISTS idx_order_cycles_close
	     ON order_cycles(orders_close_at)`,
}

// Migrate ensures the schema exists and runs the migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
