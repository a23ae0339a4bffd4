package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Schedule names a recurring set of order cycles.
type Schedule struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderCycle is one window during which orders open and close.
type OrderCycle struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	OrdersOpenAt  time.Time `json:"orders_open_at"`
	OrdersCloseAt time.Time `json:"orders_close_at"`
}

// Closed reports whether the cycle's close time has passed.
func (c OrderCycle) Closed(now time.Time) bool {
	return !c.OrdersCloseAt.After(now)
}

// Subscription is a standing order repeated across a schedule's cycles.
type Subscription struct {
	ID            int64      `json:"id"`
	EnterpriseID  int64      `json:"enterprise_id"`
	ScheduleID    int64      `json:"schedule_id"`
	CustomerEmail string     `json:"customer_email"`
	BeginsAt      time.Time  `json:"begins_at"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	PausedAt      *time.Time `json:"paused_at,omitempty"`
	CanceledAt    *time.Time `json:"canceled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`

	// Loaded separately (not always populated).
	LineItems []SubscriptionLineItem `json:"line_items,omitempty"`
}

// Active reports whether the subscription should generate proxy orders.
func (s Subscription) Active() bool {
	return s.PausedAt == nil && s.CanceledAt == nil
}

// SubscriptionLineItem is one recurring variant quantity on a subscription.
type SubscriptionLineItem struct {
	ID             int64           `json:"id"`
	SubscriptionID int64           `json:"subscription_id"`
	VariantID      int64           `json:"variant_id"`
	Quantity       int             `json:"quantity"`
	PriceEstimate  decimal.Decimal `json:"price_estimate"`
}

// ProxyOrder links a subscription to one order cycle instance.
type ProxyOrder struct {
	ID             int64      `json:"id"`
	SubscriptionID int64      `json:"subscription_id"`
	OrderCycleID   int64      `json:"order_cycle_id"`
	OrderID        *int64     `json:"order_id,omitempty"`
	PlacedAt       *time.Time `json:"placed_at,omitempty"`
	CanceledAt     *time.Time `json:"canceled_at,omitempty"`
}
