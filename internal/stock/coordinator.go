package stock

import (
	"fmt"

	"github.com/erazemk/trznica/internal/calculator"
	"github.com/erazemk/trznica/internal/model"
)

// Config carries explicit packing configuration: the splitter chain applied
// to each location's default package. An empty chain packs everything into
// one package per location.
type Config struct {
	Splitters []Splitter
}

// Coordinator drives the packing pipeline for one order:
// build packages per stock location, prioritize across locations, then
// estimate shipping rates. Locations must be given in priority order.
type Coordinator struct {
	Order     model.Order
	Locations []model.StockLocation
	Fill      func(locationID, variantID int64, quantity int) (onHand, backordered int, err error)
	Methods   []model.ShippingMethod
	Build     func(model.ShippingMethod) (calculator.Calculator, error)
	Config    Config
}

// Packages runs the full pipeline and returns priced packages ready for
// shipment conversion.
func (c *Coordinator) Packages() ([]*Package, error) {
	if c.Fill == nil {
		return nil, fmt.Errorf("coordinator: fill status func not configured")
	}

	built := c.buildPackages()

	prioritizer := &Prioritizer{Order: c.Order, Packages: built}
	pkgs := prioritizer.Prioritize()

	estimator := &Estimator{Methods: c.Methods, Build: c.Build}
	for _, pkg := range pkgs {
		pkg.Rates = estimator.ShippingRates(pkg)
	}
	return pkgs, nil
}

func (c *Coordinator) buildPackages() []*Package {
	var pkgs []*Package
	for _, loc := range c.Locations {
		if !loc.Active {
			continue
		}
		locID := loc.ID
		packer := &Packer{
			Location: loc,
			Order:    c.Order,
			Fill: func(variantID int64, quantity int) (int, int, error) {
				return c.Fill(locID, variantID, quantity)
			},
			Splitters: c.Config.Splitters,
		}
		pkgs = append(pkgs, packer.Packages()...)
	}
	return pkgs
}
