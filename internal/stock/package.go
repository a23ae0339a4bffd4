package stock

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erazemk/trznica/internal/model"
)

// Package is a candidate shipment: content items for one order from one
// stock location, plus shipping rates once estimated.
type Package struct {
	StockLocation model.StockLocation
	Order         model.Order
	Rates         []model.ShippingRate

	contents []ContentItem
}

// NewPackage creates an empty package for an order at a stock location.
func NewPackage(loc model.StockLocation, order model.Order) *Package {
	return &Package{StockLocation: loc, Order: order}
}

// Add appends a content item. Items are not merged on add; merging happens
// through the OnHand/Backordered accessors and in the prioritizer.
func (p *Package) Add(variant model.Variant, quantity int, state State) {
	p.contents = append(p.contents, ContentItem{Variant: variant, Quantity: quantity, State: state})
}

// Flattened returns the content list as a flat sequence.
func (p *Package) Flattened() []ContentItem {
	out := make([]ContentItem, len(p.contents))
	copy(out, p.contents)
	return out
}

// SetFlattened replaces the content list.
func (p *Package) SetFlattened(items []ContentItem) {
	p.contents = make([]ContentItem, len(items))
	copy(p.contents, items)
}

// OnHand returns on-hand content items, merged per variant.
func (p *Package) OnHand() []ContentItem {
	return mergeByVariant(p.contents, OnHand)
}

// Backordered returns backordered content items, merged per variant.
func (p *Package) Backordered() []ContentItem {
	return mergeByVariant(p.contents, Backordered)
}

// mergeByVariant sums quantities per variant for items in the given state,
// preserving first-seen variant order.
func mergeByVariant(items []ContentItem, state State) []ContentItem {
	var out []ContentItem
	index := make(map[int64]int)
	for _, ci := range items {
		if ci.State != state || ci.Quantity == 0 {
			continue
		}
		if i, ok := index[ci.Variant.ID]; ok {
			out[i].Quantity += ci.Quantity
			continue
		}
		index[ci.Variant.ID] = len(out)
		out = append(out, ci)
	}
	return out
}

// Quantity returns the total quantity, optionally filtered by state.
func (p *Package) Quantity(states ...State) int {
	total := 0
	for _, ci := range p.contents {
		if len(states) > 0 && !stateIn(ci.State, states) {
			continue
		}
		total += ci.Quantity
	}
	return total
}

func stateIn(s State, states []State) bool {
	for _, st := range states {
		if s == st {
			return true
		}
	}
	return false
}

// FindItem returns the first content item matching variant and state.
func (p *Package) FindItem(variantID int64, state State) (ContentItem, bool) {
	for _, ci := range p.contents {
		if ci.Variant.ID == variantID && ci.State == state {
			return ci, true
		}
	}
	return ContentItem{}, false
}

// Empty reports whether the package holds no quantity at all.
func (p *Package) Empty() bool {
	return p.Quantity() == 0
}

// Units returns the total item count. Satisfies calculator.Target.
func (p *Package) Units() int {
	return p.Quantity()
}

// Weight returns the total weight of all contents.
func (p *Package) Weight() float64 {
	total := 0.0
	for _, ci := range p.contents {
		total += ci.Weight()
	}
	return total
}

// Amount returns the total item value of all contents.
func (p *Package) Amount() decimal.Decimal {
	total := decimal.Decimal{}
	for _, ci := range p.contents {
		total = total.Add(ci.Amount())
	}
	return total
}

// ShippingMethods filters the distributor's candidate methods down to those
// covering at least one shipping category present in the package. Variants
// without a shipping category contribute no methods, and an order without a
// distributor has none at all.
func (p *Package) ShippingMethods(candidates []model.ShippingMethod) []model.ShippingMethod {
	if p.Order.EnterpriseID == nil {
		return nil
	}

	categories := make(map[int64]bool)
	for _, ci := range p.contents {
		if ci.Variant.ShippingCategoryID != nil {
			categories[*ci.Variant.ShippingCategoryID] = true
		}
	}

	var out []model.ShippingMethod
	seen := make(map[int64]bool)
	for _, m := range candidates {
		if m.DeletedAt != nil || seen[m.ID] {
			continue
		}
		for _, c := range m.ShippingCategoryIDs {
			if categories[c] {
				seen[m.ID] = true
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// SelectedRate returns the selected shipping rate, if any.
func (p *Package) SelectedRate() (model.ShippingRate, bool) {
	for _, r := range p.Rates {
		if r.Selected {
			return r, true
		}
	}
	return model.ShippingRate{}, false
}

// ToShipment converts the package to a shipment with inventory units and the
// estimated rates. The caller persists the result; this is a one-shot
// conversion, not a mutation of the package.
func (p *Package) ToShipment() model.Shipment {
	s := model.Shipment{
		OrderID:         p.Order.ID,
		StockLocationID: p.StockLocation.ID,
		Number:          newShipmentNumber(),
		State:           model.ShipmentStatePending,
		Rates:           append([]model.ShippingRate(nil), p.Rates...),
	}

	for _, ci := range p.OnHand() {
		s.Units = append(s.Units, model.InventoryUnit{
			VariantID: ci.Variant.ID,
			Quantity:  ci.Quantity,
			State:     model.UnitStatePending,
		})
	}
	for _, ci := range p.Backordered() {
		s.Units = append(s.Units, model.InventoryUnit{
			VariantID: ci.Variant.ID,
			Quantity:  ci.Quantity,
			State:     model.UnitStateBackordered,
		})
	}

	if rate, ok := p.SelectedRate(); ok {
		id := rate.ShippingMethodID
		s.ShippingMethodID = &id
		s.Cost = rate.Cost
	}

	return s
}

// newShipmentNumber generates a unique shipment number.
func newShipmentNumber() string {
	return "S" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
