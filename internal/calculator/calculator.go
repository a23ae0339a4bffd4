// Package calculator implements the closed set of shipping and fee
// calculators a shipping method can be configured with. Calculators are
// built from a stored (type, preferences) pair and never touch the database.
package calculator

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erazemk/trznica/internal/model"
)

// Calculator types.
const (
	TypeFlatRate    = "flat_rate"
	TypePerItem     = "per_item"
	TypeWeight      = "weight"
	TypeFlatPercent = "flat_percent"
)

// Target is anything a calculator can price: a package or an order line.
type Target interface {
	// Units is the total number of items.
	Units() int
	// Weight is the total weight.
	Weight() float64
	// Amount is the total item value.
	Amount() decimal.Decimal
}

// Calculator computes a cost for a target.
//
// Compute returns false when the calculator cannot produce a cost for the
// target; callers must treat that as "ineligible", not as a zero cost.
type Calculator interface {
	Compute(t Target) (decimal.Decimal, bool)
	Available(order model.Order) bool
	Currency() string
}

// prefs are the stored calculator preferences, JSON-encoded in the
// shipping_methods table. Unused fields are zero for a given type.
type prefs struct {
	Amount      decimal.Decimal `json:"amount"`
	PerKG       decimal.Decimal `json:"per_kg"`
	FlatPercent decimal.Decimal `json:"flat_percent"`
	Currency    string          `json:"currency"`
}

// New builds a calculator from a stored type and JSON preferences.
// Unknown types and malformed preferences are configuration errors.
func New(calcType, prefsJSON string) (Calculator, error) {
	var p prefs
	if prefsJSON != "" {
		if err := json.Unmarshal([]byte(prefsJSON), &p); err != nil {
			return nil, fmt.Errorf("parsing calculator preferences: %w", err)
		}
	}

	switch calcType {
	case TypeFlatRate:
		return FlatRate{Amount: p.Amount, PrefCurrency: p.Currency}, nil
	case TypePerItem:
		return PerItem{Amount: p.Amount, PrefCurrency: p.Currency}, nil
	case TypeWeight:
		return Weight{Base: p.Amount, PerKG: p.PerKG, PrefCurrency: p.Currency}, nil
	case TypeFlatPercent:
		return FlatPercent{Percent: p.FlatPercent, PrefCurrency: p.Currency}, nil
	default:
		return nil, fmt.Errorf("unknown calculator type %q", calcType)
	}
}

// FromMethod builds the calculator configured on a shipping method.
func FromMethod(m model.ShippingMethod) (Calculator, error) {
	return New(m.CalculatorType, m.CalculatorPrefs)
}

// FlatRate charges a fixed amount regardless of contents.
type FlatRate struct {
	Amount       decimal.Decimal
	PrefCurrency string
}

func (c FlatRate) Compute(Target) (decimal.Decimal, bool) { return c.Amount, true }
func (c FlatRate) Available(model.Order) bool             { return true }
func (c FlatRate) Currency() string                       { return c.PrefCurrency }

// PerItem charges a fixed amount per item.
type PerItem struct {
	Amount       decimal.Decimal
	PrefCurrency string
}

func (c PerItem) Compute(t Target) (decimal.Decimal, bool) {
	return c.Amount.Mul(decimal.NewFromInt(int64(t.Units()))), true
}
func (c PerItem) Available(model.Order) bool { return true }
func (c PerItem) Currency() string           { return c.PrefCurrency }

// Weight charges a base amount plus a rate per kilogram.
type Weight struct {
	Base         decimal.Decimal
	PerKG        decimal.Decimal
	PrefCurrency string
}

func (c Weight) Compute(t Target) (decimal.Decimal, bool) {
	w := decimal.NewFromFloat(t.Weight())
	if w.IsNegative() {
		return decimal.Decimal{}, false
	}
	return c.Base.Add(c.PerKG.Mul(w)), true
}
func (c Weight) Available(model.Order) bool { return true }
func (c Weight) Currency() string           { return c.PrefCurrency }

// FlatPercent charges a percentage of the target's item value.
type FlatPercent struct {
	Percent      decimal.Decimal
	PrefCurrency string
}

func (c FlatPercent) Compute(t Target) (decimal.Decimal, bool) {
	return t.Amount().Mul(c.Percent).Div(decimal.NewFromInt(100)).Round(2), true
}
func (c FlatPercent) Available(model.Order) bool { return true }
func (c FlatPercent) Currency() string           { return c.PrefCurrency }
