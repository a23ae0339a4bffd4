// Package stock turns an order's requested quantities into allocated, priced
// packages. Everything here operates on in-memory data; database reads happen
// in the store package and results are passed in as plain values.
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/erazemk/trznica/internal/model"
)

// State is the fulfillment state of a content item.
type State string

// Content item states.
const (
	OnHand      State = "on_hand"
	Backordered State = "backordered"
)

// ContentItem is a quantity of one variant in a package, in a single
// fulfillment state. Two items are mergeable when variant and state match.
type ContentItem struct {
	Variant  model.Variant
	Quantity int
	State    State
}

// Weight returns the item's total weight.
func (ci ContentItem) Weight() float64 {
	return float64(ci.Quantity) * ci.Variant.Weight
}

// Amount returns the item's total value at the variant's current price.
func (ci ContentItem) Amount() decimal.Decimal {
	return ci.Variant.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
