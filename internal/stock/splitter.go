package stock

// Splitter divides one package into one or more packages by some policy.
// Splitters compose as an ordered chain: each splitter sees the output of the
// previous one, so chain order decides whether a splitter works on whole or
// already-divided packages.
type Splitter func(pkg *Package) []*Package

// ApplySplitters runs a splitter chain over a starting package.
func ApplySplitters(splitters []Splitter, pkg *Package) []*Package {
	pkgs := []*Package{pkg}
	for _, split := range splitters {
		var next []*Package
		for _, p := range pkgs {
			next = append(next, split(p)...)
		}
		pkgs = next
	}
	return pkgs
}

// SplitNone returns the package unchanged. The default, terminal splitter.
func SplitNone(pkg *Package) []*Package {
	return []*Package{pkg}
}

// SplitByShippingCategory divides a package so that each output package only
// holds variants of one shipping category. Variants without a category are
// grouped together. Output order follows first appearance in the contents.
func SplitByShippingCategory(pkg *Package) []*Package {
	var order []int64
	groups := make(map[int64][]ContentItem)

	for _, ci := range pkg.Flattened() {
		key := int64(0)
		if ci.Variant.ShippingCategoryID != nil {
			key = *ci.Variant.ShippingCategoryID
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], ci)
	}

	if len(order) <= 1 {
		return []*Package{pkg}
	}

	var out []*Package
	for _, key := range order {
		sub := NewPackage(pkg.StockLocation, pkg.Order)
		sub.SetFlattened(groups[key])
		out = append(out, sub)
	}
	return out
}

// SplitBackordered separates on-hand contents from backordered contents so
// that available stock can ship without waiting on the backorder.
func SplitBackordered(pkg *Package) []*Package {
	onHand := pkg.OnHand()
	backordered := pkg.Backordered()

	if len(onHand) == 0 || len(backordered) == 0 {
		return []*Package{pkg}
	}

	a := NewPackage(pkg.StockLocation, pkg.Order)
	a.SetFlattened(onHand)
	b := NewPackage(pkg.StockLocation, pkg.Order)
	b.SetFlattened(backordered)
	return []*Package{a, b}
}
