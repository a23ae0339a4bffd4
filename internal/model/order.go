package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Enterprise is a shop or hub that distributes orders.
type Enterprise struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Order represents a customer order being fulfilled.
type Order struct {
	ID           int64     `json:"id"`
	Number       string    `json:"number"`
	EnterpriseID *int64    `json:"enterprise_id,omitempty"`
	Currency     string    `json:"currency"`
	State        string    `json:"state"`
	CreatedAt    time.Time `json:"created_at"`

	// Loaded separately (not always populated).
	LineItems []LineItem `json:"line_items,omitempty"`
}

// Order states.
const (
	OrderStateCart     = "cart"
	OrderStateComplete = "complete"
	OrderStateCanceled = "canceled"
)

// LineItem is one requested variant quantity on an order.
type LineItem struct {
	ID       int64           `json:"id"`
	OrderID  int64           `json:"order_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`

	Variant Variant `json:"variant"`
}
