package stock

import (
	"testing"

	"github.com/erazemk/trznica/internal/model"
)

func TestPrioritizerSinglePackagePassesThrough(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 5))

	pkg := NewPackage(model.StockLocation{ID: 1}, order)
	pkg.Add(v, 5, OnHand)

	pr := &Prioritizer{Order: order, Packages: []*Package{pkg}}
	out := pr.Prioritize()

	if len(out) != 1 || out[0] != pkg {
		t.Errorf("expected the single package back unchanged, got %v", out)
	}
}

func TestPrioritizerExhaustsHighestPriorityFirst(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 5))

	a := NewPackage(model.StockLocation{ID: 1}, order)
	a.Add(v, 2, OnHand)
	b := NewPackage(model.StockLocation{ID: 2}, order)
	b.Add(v, 5, OnHand)

	pr := &Prioritizer{Order: order, Packages: []*Package{a, b}}
	out := pr.Prioritize()

	if len(out) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(out))
	}
	if q := out[0].Quantity(OnHand); q != 2 {
		t.Errorf("expected first package to keep 2 on hand, got %d", q)
	}
	if q := out[1].Quantity(OnHand); q != 3 {
		t.Errorf("expected second package trimmed to 3 on hand, got %d", q)
	}
}

func TestPrioritizerBackorderConsolidation(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 5))

	a := NewPackage(model.StockLocation{ID: 1}, order)
	a.Add(v, 5, Backordered)
	b := NewPackage(model.StockLocation{ID: 2}, order)
	b.Add(v, 2, OnHand)

	pr := &Prioritizer{Order: order, Packages: []*Package{a, b}}
	out := pr.Prioritize()

	if len(out) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(out))
	}
	if q := out[0].Quantity(Backordered); q != 3 {
		t.Errorf("expected first package to keep the 3-unit backorder, got %d", q)
	}
	if q := out[1].Quantity(OnHand); q != 2 {
		t.Errorf("expected second package to supply 2 on hand, got %d", q)
	}
	if q := out[1].Quantity(Backordered); q != 0 {
		t.Errorf("expected no backorder on the second package, got %d", q)
	}
}

func TestPrioritizerConservesDemand(t *testing.T) {
	v1 := testVariant(1, 1, nil)
	v2 := testVariant(2, 1, nil)
	order := testOrder(nil, lineItem(v1, 5), lineItem(v2, 4))

	a := NewPackage(model.StockLocation{ID: 1}, order)
	a.Add(v1, 3, OnHand)
	a.Add(v1, 2, Backordered)
	a.Add(v2, 4, Backordered)
	b := NewPackage(model.StockLocation{ID: 2}, order)
	b.Add(v1, 4, OnHand)
	b.Add(v2, 1, OnHand)

	pr := &Prioritizer{Order: order, Packages: []*Package{a, b}}
	out := pr.Prioritize()

	totals := make(map[int64]int)
	for _, pkg := range out {
		for _, ci := range pkg.Flattened() {
			totals[ci.Variant.ID] += ci.Quantity
		}
	}

	if totals[1] != 5 {
		t.Errorf("expected variant 1 total to equal demand 5, got %d", totals[1])
	}
	if totals[2] != 4 {
		t.Errorf("expected variant 2 total to equal demand 4, got %d", totals[2])
	}
}

func TestPrioritizerExcessOnHandUnused(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 3))

	a := NewPackage(model.StockLocation{ID: 1}, order)
	a.Add(v, 3, OnHand)
	b := NewPackage(model.StockLocation{ID: 2}, order)
	b.Add(v, 3, OnHand)

	pr := &Prioritizer{Order: order, Packages: []*Package{a, b}}
	out := pr.Prioritize()

	if len(out) != 1 {
		t.Fatalf("expected the empty second package dropped, got %d packages", len(out))
	}
	if q := out[0].Quantity(OnHand); q != 3 {
		t.Errorf("expected only demand consumed, got %d", q)
	}
}

func TestPrioritizerDropsEmptyPackages(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 2))

	a := NewPackage(model.StockLocation{ID: 1}, order)
	a.Add(v, 2, OnHand)
	b := NewPackage(model.StockLocation{ID: 2}, order)

	pr := &Prioritizer{Order: order, Packages: []*Package{a, b}}
	out := pr.Prioritize()

	if len(out) != 1 {
		t.Errorf("expected 1 package, got %d", len(out))
	}
}

func TestPrioritizerDropsDuplicatePackages(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 4))

	// Two identical candidates from the same location; after reallocation one
	// carries everything and the duplicate-empty one is gone, never doubled.
	a := NewPackage(model.StockLocation{ID: 1}, order)
	a.Add(v, 4, OnHand)
	b := NewPackage(model.StockLocation{ID: 1}, order)
	b.Add(v, 4, OnHand)

	pr := &Prioritizer{Order: order, Packages: []*Package{a, b}}
	out := pr.Prioritize()

	if len(out) != 1 {
		t.Fatalf("expected 1 package, got %d", len(out))
	}
	if q := out[0].Quantity(); q != 4 {
		t.Errorf("expected quantity 4, got %d", q)
	}
}

func TestPrioritizerMergesDuplicatePackages(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 8))

	// Both same-location candidates are needed to cover demand, so after
	// reallocation they are identical. Merging must sum the quantities, not
	// drop one and lose half the demand.
	a := NewPackage(model.StockLocation{ID: 1}, order)
	a.Add(v, 4, OnHand)
	b := NewPackage(model.StockLocation{ID: 1}, order)
	b.Add(v, 4, OnHand)

	pr := &Prioritizer{Order: order, Packages: []*Package{a, b}}
	out := pr.Prioritize()

	if len(out) != 1 {
		t.Fatalf("expected 1 package, got %d", len(out))
	}
	if q := out[0].Quantity(OnHand); q != 8 {
		t.Errorf("expected the merged package to carry all 8 units, got %d", q)
	}
	if q := out[0].Quantity(Backordered); q != 0 {
		t.Errorf("expected no backorder, got %d", q)
	}
}

func TestPrioritizerKeepsBackorderSplitSeparate(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 5))

	// A backordered splitter already separated one location's package into an
	// on-hand and a backordered part. The remainder must land on the package
	// carrying the backorder, not re-merge into the on-hand one.
	a := NewPackage(model.StockLocation{ID: 1}, order)
	a.Add(v, 2, OnHand)
	b := NewPackage(model.StockLocation{ID: 1}, order)
	b.Add(v, 3, Backordered)

	pr := &Prioritizer{Order: order, Packages: []*Package{a, b}}
	out := pr.Prioritize()

	if len(out) != 2 {
		t.Fatalf("expected the split preserved as 2 packages, got %d", len(out))
	}
	if q := out[0].Quantity(OnHand); q != 2 {
		t.Errorf("expected 2 on hand in the first package, got %d", q)
	}
	if q := out[0].Quantity(Backordered); q != 0 {
		t.Errorf("expected no backorder in the first package, got %d", q)
	}
	if q := out[1].Quantity(Backordered); q != 3 {
		t.Errorf("expected the 3-unit backorder kept in the second package, got %d", q)
	}
}

func TestPrioritizerBackorderLandsOnFirstHolder(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 6))

	// Neither package can cover demand on hand; the remainder must land on
	// the first package holding the variant, not be spread out.
	a := NewPackage(model.StockLocation{ID: 1}, order)
	a.Add(v, 2, OnHand)
	a.Add(v, 4, Backordered)
	b := NewPackage(model.StockLocation{ID: 2}, order)
	b.Add(v, 1, OnHand)
	b.Add(v, 5, Backordered)

	pr := &Prioritizer{Order: order, Packages: []*Package{a, b}}
	out := pr.Prioritize()

	if len(out) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(out))
	}
	if q := out[0].Quantity(Backordered); q != 3 {
		t.Errorf("expected the whole 3-unit remainder on the first package, got %d", q)
	}
	if q := out[1].Quantity(Backordered); q != 0 {
		t.Errorf("expected no backorder on the second package, got %d", q)
	}
}
