package stock

import (
	"testing"

	"github.com/erazemk/trznica/internal/model"
)

func TestCoordinatorPipeline(t *testing.T) {
	distributor := int64(9)
	category := int64(1)
	v := testVariant(1, 2.0, &category)
	order := testOrder(&distributor, lineItem(v, 5))

	// Location 1 holds 2 on hand, location 2 holds plenty.
	counts := map[int64]int{1: 2, 2: 10}

	c := &Coordinator{
		Order: order,
		Locations: []model.StockLocation{
			{ID: 1, Priority: 0, Active: true},
			{ID: 2, Priority: 1, Active: true},
		},
		Fill: func(locationID, variantID int64, quantity int) (int, int, error) {
			onHand := min(counts[locationID], quantity)
			return onHand, quantity - onHand, nil
		},
		Methods: []model.ShippingMethod{
			{
				ID:                  1,
				Name:                "Delivery",
				DisplayOn:           model.DisplayBoth,
				CalculatorType:      "flat_rate",
				CalculatorPrefs:     `{"amount": "4.50"}`,
				ShippingCategoryIDs: []int64{category},
			},
		},
	}

	pkgs, err := c.Packages()
	if err != nil {
		t.Fatalf("Packages: %v", err)
	}
	if len(pkgs) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(pkgs))
	}

	if q := pkgs[0].Quantity(OnHand); q != 2 {
		t.Errorf("expected priority location to supply 2, got %d", q)
	}
	if q := pkgs[1].Quantity(OnHand); q != 3 {
		t.Errorf("expected second location trimmed to 3, got %d", q)
	}

	for i, pkg := range pkgs {
		rate, ok := pkg.SelectedRate()
		if !ok {
			t.Fatalf("package %d: expected a selected rate", i)
		}
		if rate.Cost.String() != "4.5" {
			t.Errorf("package %d: expected cost 4.5, got %s", i, rate.Cost)
		}
	}
}

func TestCoordinatorPreservesBackorderSplit(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 5))

	c := &Coordinator{
		Order: order,
		Locations: []model.StockLocation{
			{ID: 1, Active: true},
		},
		Fill: func(locationID, variantID int64, quantity int) (int, int, error) {
			onHand := min(2, quantity)
			return onHand, quantity - onHand, nil
		},
		Config: Config{Splitters: []Splitter{SplitBackordered}},
	}

	pkgs, err := c.Packages()
	if err != nil {
		t.Fatalf("Packages: %v", err)
	}
	if len(pkgs) != 2 {
		t.Fatalf("expected an on-hand and a backordered package, got %d", len(pkgs))
	}
	if q := pkgs[0].Quantity(OnHand); q != 2 {
		t.Errorf("expected 2 on hand in the first package, got %d", q)
	}
	if q := pkgs[0].Quantity(Backordered); q != 0 {
		t.Errorf("expected no backorder in the first package, got %d", q)
	}
	if q := pkgs[1].Quantity(Backordered); q != 3 {
		t.Errorf("expected 3 backordered in the second package, got %d", q)
	}
}

func TestCoordinatorSkipsInactiveLocations(t *testing.T) {
	v := testVariant(1, 1, nil)
	order := testOrder(nil, lineItem(v, 2))

	c := &Coordinator{
		Order: order,
		Locations: []model.StockLocation{
			{ID: 1, Active: false},
			{ID: 2, Active: true},
		},
		Fill: func(locationID, variantID int64, quantity int) (int, int, error) {
			return quantity, 0, nil
		},
	}

	pkgs, err := c.Packages()
	if err != nil {
		t.Fatalf("Packages: %v", err)
	}
	if len(pkgs) != 1 {
		t.Fatalf("expected 1 package, got %d", len(pkgs))
	}
	if pkgs[0].StockLocation.ID != 2 {
		t.Errorf("expected package from location 2, got %d", pkgs[0].StockLocation.ID)
	}
}

func TestCoordinatorRequiresFillFunc(t *testing.T) {
	c := &Coordinator{Order: testOrder(nil)}
	if _, err := c.Packages(); err == nil {
		t.Error("expected an error without a fill status func")
	}
}
