package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingCategory groups variants for shipping method eligibility.
type ShippingCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Variant represents a sellable product variant.
type Variant struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	SKU                string          `json:"sku,omitempty"`
	Price              decimal.Decimal `json:"price"`
	Currency           string          `json:"currency"`
	Weight             float64         `json:"weight"`
	ShippingCategoryID *int64          `json:"shipping_category_id,omitempty"`
	DeletedAt          *time.Time      `json:"deleted_at,omitempty"`
}

// StockLocation is a place stock is held and shipped from.
// Lower Priority values are filled first.
type StockLocation struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Active   bool   `json:"active"`
}

// StockItem tracks on-hand quantity of a variant at a stock location.
type StockItem struct {
	StockLocationID int64 `json:"stock_location_id"`
	VariantID       int64 `json:"variant_id"`
	CountOnHand     int   `json:"count_on_hand"`
	Backorderable   bool  `json:"backorderable"`
}
