package stock

import "github.com/erazemk/trznica/internal/model"

// FillStatusFunc reports how much of a requested variant quantity a stock
// location can supply on hand, and how much would be backordered.
type FillStatusFunc func(variantID int64, quantity int) (onHand, backordered int, err error)

// Packer builds packages for an order from one stock location's fill status.
type Packer struct {
	Location  model.StockLocation
	Order     model.Order
	Fill      FillStatusFunc
	Splitters []Splitter
}

// DefaultPackage packs every line item into a single package, split between
// on-hand and backordered quantities per the location's fill status. If the
// fill status of a variant cannot be determined, its full requested quantity
// is treated as backordered rather than failing the pack.
func (p *Packer) DefaultPackage() *Package {
	pkg := NewPackage(p.Location, p.Order)

	for _, li := range p.Order.LineItems {
		onHand, backordered, err := p.Fill(li.Variant.ID, li.Quantity)
		if err != nil {
			onHand, backordered = 0, li.Quantity
		}
		if onHand > 0 {
			pkg.Add(li.Variant, onHand, OnHand)
		}
		if backordered > 0 {
			pkg.Add(li.Variant, backordered, Backordered)
		}
	}

	return pkg
}

// Packages runs the splitter chain over the default package.
func (p *Packer) Packages() []*Package {
	return ApplySplitters(p.Splitters, p.DefaultPackage())
}
