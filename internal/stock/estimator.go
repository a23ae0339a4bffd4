package stock

import (
	"sort"

	"github.com/erazemk/trznica/internal/calculator"
	"github.com/erazemk/trznica/internal/model"
)

// Estimator computes candidate shipping rates for packages from the
// distributor's shipping methods.
type Estimator struct {
	// Methods are the distributor-eligible, non-deleted shipping methods.
	Methods []model.ShippingMethod
	// Build constructs a method's calculator; defaults to calculator.FromMethod.
	Build func(model.ShippingMethod) (calculator.Calculator, error)
}

// ShippingRates prices the package against every eligible shipping method,
// sorted ascending by cost with the cheapest rate selected.
//
// A method is skipped when it is backend-only, its calculator cannot be
// built, the calculator reports itself unavailable for the order, its
// configured currency differs from the order's, or it produces no cost.
// Skipping is silent: a package with no eligible methods gets no rates.
func (e *Estimator) ShippingRates(pkg *Package) []model.ShippingRate {
	build := e.Build
	if build == nil {
		build = calculator.FromMethod
	}

	var rates []model.ShippingRate
	for _, m := range pkg.ShippingMethods(e.Methods) {
		if m.Backend() {
			continue
		}

		calc, err := build(m)
		if err != nil {
			continue
		}
		if !calc.Available(pkg.Order) {
			continue
		}
		if cur := calc.Currency(); cur != "" && cur != pkg.Order.Currency {
			continue
		}

		cost, ok := calc.Compute(pkg)
		if !ok {
			continue
		}
		rates = append(rates, model.ShippingRate{ShippingMethodID: m.ID, Cost: cost})
	}

	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].Cost.LessThan(rates[j].Cost)
	})
	if len(rates) > 0 {
		rates[0].Selected = true
	}
	return rates
}
