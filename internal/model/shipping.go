package model

import "time"

// ShippingMethod is a way a distributor delivers packages.
type ShippingMethod struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	DisplayOn       string     `json:"display_on"`
	CalculatorType  string     `json:"calculator_type"`
	CalculatorPrefs string     `json:"calculator_prefs,omitempty"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`

	// Loaded separately (not always populated).
	ShippingCategoryIDs []int64 `json:"shipping_category_ids,omitempty"`
	DistributorIDs      []int64 `json:"distributor_ids,omitempty"`
}

// Display targets for shipping methods.
const (
	DisplayBoth     = "both"
	DisplayFrontEnd = "front_end"
	DisplayBackEnd  = "back_end"
)

// Backend reports whether the method is only shown in the admin backend.
func (m ShippingMethod) Backend() bool {
	return m.DisplayOn == DisplayBackEnd
}

// HasCategory reports whether the method covers the given shipping category.
func (m ShippingMethod) HasCategory(id int64) bool {
	for _, c := range m.ShippingCategoryIDs {
		if c == id {
			return true
		}
	}
	return false
}
