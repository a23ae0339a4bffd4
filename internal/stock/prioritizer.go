package stock

import (
	"fmt"

	"github.com/erazemk/trznica/internal/model"
)

// Prioritizer redistributes quantities across candidate packages for one
// order so that on-hand stock at the highest-priority location is exhausted
// first and any unmet remainder is backordered in a single place. Packages
// must be supplied in priority order.
type Prioritizer struct {
	Order    model.Order
	Packages []*Package
}

// Prioritize returns a new ordered list of packages with quantities
// reallocated against the order's demand. A single input package passes
// through unchanged.
func (pr *Prioritizer) Prioritize() []*Package {
	if len(pr.Packages) <= 1 {
		return pr.Packages
	}

	demands := pr.demands()

	type allocation struct {
		onHand      map[int64]int
		backordered map[int64]int
	}
	allocs := make([]allocation, len(pr.Packages))
	for i := range allocs {
		allocs[i] = allocation{onHand: make(map[int64]int), backordered: make(map[int64]int)}
	}

	for _, d := range demands {
		remaining := d.quantity

		// Consume on-hand stock in priority order until demand is met.
		// Over-supply beyond demand is left unused.
		for i, pkg := range pr.Packages {
			avail := quantityOf(pkg, d.variant.ID, OnHand)
			take := min(avail, remaining)
			if take > 0 {
				allocs[i].onHand[d.variant.ID] = take
				remaining -= take
			}
		}

		// The unmet remainder is backordered in one place.
		if remaining > 0 {
			target := pr.backorderTarget(d.variant.ID)
			allocs[target].backordered[d.variant.ID] = remaining
		}
	}

	var out []*Package
	index := make(map[string]int)
	for i, pkg := range pr.Packages {
		rebuilt := rebuildContents(pkg, demands, allocs[i].onHand, allocs[i].backordered)

		next := NewPackage(pkg.StockLocation, pkg.Order)
		next.SetFlattened(rebuilt)
		if next.Empty() {
			continue
		}

		sig := signature(next)
		if j, ok := index[sig]; ok {
			absorb(out[j], next)
			continue
		}
		index[sig] = len(out)
		out = append(out, next)
	}
	return out
}

// demand is one variant's total requested quantity.
type demand struct {
	variant  model.Variant
	quantity int
}

// demands sums line item quantities per variant, preserving line item order.
func (pr *Prioritizer) demands() []demand {
	var out []demand
	index := make(map[int64]int)
	for _, li := range pr.Order.LineItems {
		if i, ok := index[li.Variant.ID]; ok {
			out[i].quantity += li.Quantity
			continue
		}
		index[li.Variant.ID] = len(out)
		out = append(out, demand{variant: li.Variant, quantity: li.Quantity})
	}
	return out
}

// backorderTarget returns the index of the package a variant's unmet
// remainder lands on: the first package already carrying backordered units
// for the variant, so a backorder split stays separated, else the first
// holder.
func (pr *Prioritizer) backorderTarget(variantID int64) int {
	for i, pkg := range pr.Packages {
		if quantityOf(pkg, variantID, Backordered) > 0 {
			return i
		}
	}
	return pr.firstHolder(variantID)
}

// firstHolder returns the index of the first package carrying any content
// item for the variant, falling back to the first package.
func (pr *Prioritizer) firstHolder(variantID int64) int {
	for i, pkg := range pr.Packages {
		for _, ci := range pkg.Flattened() {
			if ci.Variant.ID == variantID {
				return i
			}
		}
	}
	return 0
}

// quantityOf sums a package's quantity for one variant in one state.
func quantityOf(pkg *Package, variantID int64, state State) int {
	total := 0
	for _, ci := range pkg.Flattened() {
		if ci.Variant.ID == variantID && ci.State == state {
			total += ci.Quantity
		}
	}
	return total
}

// rebuildContents materializes a package's allocations as content items,
// keeping the package's original variant order and appending variants the
// package did not previously hold in demand order.
func rebuildContents(pkg *Package, demands []demand, onHand, backordered map[int64]int) []ContentItem {
	var out []ContentItem
	emitted := make(map[int64]bool)

	emit := func(v model.Variant) {
		if emitted[v.ID] {
			return
		}
		emitted[v.ID] = true
		if qty := onHand[v.ID]; qty > 0 {
			out = append(out, ContentItem{Variant: v, Quantity: qty, State: OnHand})
		}
		if qty := backordered[v.ID]; qty > 0 {
			out = append(out, ContentItem{Variant: v, Quantity: qty, State: Backordered})
		}
	}

	for _, ci := range pkg.Flattened() {
		emit(ci.Variant)
	}
	for _, d := range demands {
		emit(d.variant)
	}
	return out
}

// absorb folds a duplicate package's contents into pkg, summing quantities
// per variant and state so merging never loses units.
func absorb(pkg, dup *Package) {
	type key struct {
		variantID int64
		state     State
	}

	var out []ContentItem
	index := make(map[key]int)
	for _, ci := range append(pkg.Flattened(), dup.Flattened()...) {
		k := key{ci.Variant.ID, ci.State}
		if i, ok := index[k]; ok {
			out[i].Quantity += ci.Quantity
			continue
		}
		index[k] = len(out)
		out = append(out, ci)
	}
	pkg.SetFlattened(out)
}

// signature identifies a package by stock location and exact contents, so
// duplicate packages can be merged after reallocation.
func signature(pkg *Package) string {
	sig := fmt.Sprintf("%d|", pkg.StockLocation.ID)
	for _, ci := range pkg.Flattened() {
		sig += fmt.Sprintf("%d:%s:%d;", ci.Variant.ID, ci.State, ci.Quantity)
	}
	return sig
}
