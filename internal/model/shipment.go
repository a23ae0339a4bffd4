package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shipment is a persisted package: one delivery from a stock location.
type Shipment struct {
	ID               int64           `json:"id"`
	OrderID          int64           `json:"order_id"`
	StockLocationID  int64           `json:"stock_location_id"`
	Number           string          `json:"number"`
	ShippingMethodID *int64          `json:"shipping_method_id,omitempty"`
	Cost             decimal.Decimal `json:"cost"`
	State            string          `json:"state"`
	CreatedAt        time.Time       `json:"created_at"`

	Units []InventoryUnit `json:"units,omitempty"`
	Rates []ShippingRate  `json:"rates,omitempty"`
}

// Shipment states.
const (
	ShipmentStatePending = "pending"
	ShipmentStateShipped = "shipped"
)

// InventoryUnit records allocated stock for one variant on a shipment.
type InventoryUnit struct {
	ID         int64  `json:"id"`
	ShipmentID int64  `json:"shipment_id"`
	VariantID  int64  `json:"variant_id"`
	Quantity   int    `json:"quantity"`
	State      string `json:"state"`
}

// Inventory unit states.
const (
	UnitStatePending     = "pending"
	UnitStateBackordered = "backordered"
)

// ShippingRate is a priced shipping method candidate for a shipment.
type ShippingRate struct {
	ID               int64           `json:"id"`
	ShipmentID       int64           `json:"shipment_id"`
	ShippingMethodID int64           `json:"shipping_method_id"`
	Cost             decimal.Decimal `json:"cost"`
	Selected         bool            `json:"selected"`
}
