package stock

import (
	"fmt"
	"testing"

	"github.com/erazemk/trznica/internal/model"
)

func lineItem(v model.Variant, quantity int) model.LineItem {
	return model.LineItem{Quantity: quantity, Variant: v}
}

func TestDefaultPackageSplitsOnHandAndBackordered(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 5))

	packer := &Packer{
		Location: model.StockLocation{ID: 1},
		Order:    order,
		Fill: func(variantID int64, quantity int) (int, int, error) {
			return 2, 3, nil
		},
	}

	pkg := packer.DefaultPackage()

	if q := pkg.Quantity(OnHand); q != 2 {
		t.Errorf("expected 2 on hand, got %d", q)
	}
	if q := pkg.Quantity(Backordered); q != 3 {
		t.Errorf("expected 3 backordered, got %d", q)
	}
}

func TestDefaultPackageSkipsZeroQuantities(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 5))

	packer := &Packer{
		Order: order,
		Fill: func(variantID int64, quantity int) (int, int, error) {
			return 5, 0, nil
		},
	}

	pkg := packer.DefaultPackage()

	if len(pkg.Flattened()) != 1 {
		t.Fatalf("expected a single content item, got %d", len(pkg.Flattened()))
	}
	if _, ok := pkg.FindItem(1, Backordered); ok {
		t.Error("did not expect a zero-quantity backordered item")
	}
}

func TestDefaultPackageFillErrorBackordersEverything(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 5))

	packer := &Packer{
		Order: order,
		Fill: func(variantID int64, quantity int) (int, int, error) {
			return 0, 0, fmt.Errorf("stock status unavailable")
		},
	}

	pkg := packer.DefaultPackage()

	if q := pkg.Quantity(Backordered); q != 5 {
		t.Errorf("expected full quantity backordered on fill error, got %d", q)
	}
	if q := pkg.Quantity(OnHand); q != 0 {
		t.Errorf("expected nothing on hand on fill error, got %d", q)
	}
}

func TestPackagesAppliesSplitterChain(t *testing.T) {
	catA, catB := int64(1), int64(2)
	order := testOrder(nil,
		lineItem(testVariant(1, 1, &catA), 2),
		lineItem(testVariant(2, 1, &catB), 3),
	)

	packer := &Packer{
		Order: order,
		Fill: func(variantID int64, quantity int) (int, int, error) {
			return quantity, 0, nil
		},
		Splitters: []Splitter{SplitByShippingCategory},
	}

	pkgs := packer.Packages()
	if len(pkgs) != 2 {
		t.Fatalf("expected 2 packages after category split, got %d", len(pkgs))
	}
	if q := pkgs[0].Quantity(); q != 2 {
		t.Errorf("expected first package quantity 2, got %d", q)
	}
	if q := pkgs[1].Quantity(); q != 3 {
		t.Errorf("expected second package quantity 3, got %d", q)
	}
}

func TestSplitNoneReturnsPackageUnchanged(t *testing.T) {
	pkg := NewPackage(model.StockLocation{ID: 1}, testOrder(nil))
	pkg.Add(testVariant(1, 1, nil), 2, OnHand)

	out := SplitNone(pkg)
	if len(out) != 1 || out[0] != pkg {
		t.Errorf("expected the same package back, got %v", out)
	}
}

func TestSplitByShippingCategorySingleCategory(t *testing.T) {
	cat := int64(1)
	pkg := NewPackage(model.StockLocation{ID: 1}, testOrder(nil))
	pkg.Add(testVariant(1, 1, &cat), 2, OnHand)
	pkg.Add(testVariant(2, 1, &cat), 3, OnHand)

	out := SplitByShippingCategory(pkg)
	if len(out) != 1 || out[0] != pkg {
		t.Errorf("expected single-category package unchanged, got %d packages", len(out))
	}
}

func TestSplitBackordered(t *testing.T) {
	pkg := NewPackage(model.StockLocation{ID: 1}, testOrder(nil))
	pkg.Add(testVariant(1, 1, nil), 2, OnHand)
	pkg.Add(testVariant(1, 1, nil), 3, Backordered)

	out := SplitBackordered(pkg)
	if len(out) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(out))
	}
	if q := out[0].Quantity(Backordered); q != 0 {
		t.Errorf("expected first package free of backorders, got %d", q)
	}
	if q := out[1].Quantity(OnHand); q != 0 {
		t.Errorf("expected second package free of on-hand stock, got %d", q)
	}
}

func TestSplitBackorderedAllOnHand(t *testing.T) {
	pkg := NewPackage(model.StockLocation{ID: 1}, testOrder(nil))
	pkg.Add(testVariant(1, 1, nil), 2, OnHand)

	out := SplitBackordered(pkg)
	if len(out) != 1 || out[0] != pkg {
		t.Errorf("expected fully on-hand package unchanged, got %d packages", len(out))
	}
}

func TestApplySplittersChainOrder(t *testing.T) {
	catA, catB := int64(1), int64(2)
	pkg := NewPackage(model.StockLocation{ID: 1}, testOrder(nil))
	pkg.Add(testVariant(1, 1, &catA), 2, OnHand)
	pkg.Add(testVariant(2, 1, &catB), 3, OnHand)
	pkg.Add(testVariant(2, 1, &catB), 1, Backordered)

	// Category split first, then backorder split within each category.
	out := ApplySplitters([]Splitter{SplitByShippingCategory, SplitBackordered}, pkg)
	if len(out) != 3 {
		t.Fatalf("expected 3 packages, got %d", len(out))
	}
}
