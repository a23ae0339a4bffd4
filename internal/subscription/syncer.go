// Package subscription keeps standing orders consistent with their schedule:
// proxy-order synchronization, structural validation, and price estimation.
package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/erazemk/trznica/internal/store"
)

// Sync reconciles one subscription's proxy orders against its schedule:
// proxy orders are created for every order cycle whose close time falls in
// the subscription's active window and has not passed, and not-yet-placed
// proxy orders outside that set are removed. Placed proxy orders are never
// deleted. Sync is idempotent; re-running it against an unchanged
// subscription is a no-op.
func Sync(ctx context.Context, db *sql.DB, subscriptionID int64, now time.Time) error {
	sub, err := store.GetSubscription(ctx, db, subscriptionID)
	if err != nil {
		return fmt.Errorf("syncing subscription %d: %w", subscriptionID, err)
	}
	if sub == nil {
		return fmt.Errorf("syncing subscription %d: subscription not found", subscriptionID)
	}

	// A paused or canceled subscription keeps no pending proxy orders.
	if !sub.Active() {
		if err := store.DeleteAllPendingProxyOrders(ctx, db, sub.ID); err != nil {
			return fmt.Errorf("syncing subscription %d: %w", subscriptionID, err)
		}
		return nil
	}

	if err := store.InsertMissingProxyOrders(ctx, db, *sub, now); err != nil {
		return fmt.Errorf("syncing subscription %d: %w", subscriptionID, err)
	}
	if err := store.DeleteOrphanProxyOrders(ctx, db, *sub, now); err != nil {
		return fmt.Errorf("syncing subscription %d: %w", subscriptionID, err)
	}
	return nil
}

// SyncAll syncs every given subscription independently. One subscription's
// failure is logged and collected but never stops the others; the joined
// error reports them all.
func SyncAll(ctx context.Context, db *sql.DB, logger *slog.Logger, subscriptionIDs []int64, now time.Time) error {
	if logger == nil {
		logger = slog.Default()
	}

	var errs []error
	for _, id := range subscriptionIDs {
		if err := Sync(ctx, db, id, now); err != nil {
			logger.Error("Proxy order sync failed", "subscription_id", id, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
