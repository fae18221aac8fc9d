package listview

// Built-in facets shared by the line tables. Operator-defined facets can be
// added per table from configuration; these are the defaults every
// deployment gets.

// QuantityFacet buckets line quantities: low < 5, medium in [5, 20),
// high > 20.
func QuantityFacet() Facet {
	return Facet{
		Name:  "quantityFilter",
		Field: "quantity",
		Buckets: []Bucket{
			{Name: "low", Lt: Ptr(5)},
			{Name: "medium", Gte: Ptr(5), Lt: Ptr(20)},
			{Name: "high", Gt: Ptr(20)},
		},
	}
}

// PriceFacet buckets unit prices.
func PriceFacet() Facet {
	return Facet{
		Name:  "priceFilter",
		Field: "priceHT",
		Buckets: []Bucket{
			{Name: "low", Lt: Ptr(50)},
			{Name: "medium", Gte: Ptr(50), Lt: Ptr(500)},
			{Name: "high", Gte: Ptr(500)},
		},
	}
}

// AmountFacet buckets line totals (amountTTC).
func AmountFacet() Facet {
	return Facet{
		Name:  "amountFilter",
		Field: "amountTTC",
		Buckets: []Bucket{
			{Name: "low", Lt: Ptr(100)},
			{Name: "medium", Gte: Ptr(100), Lt: Ptr(1000)},
			{Name: "high", Gte: Ptr(1000)},
		},
	}
}

// DiscountFacet buckets discount percentages, expressed as a ratio in
// [0, 1].
func DiscountFacet() Facet {
	return Facet{
		Name:  "discountFilter",
		Field: "discountPercentage",
		Buckets: []Bucket{
			{Name: "zero", Lte: Ptr(0)},
			{Name: "some", Gt: Ptr(0), Lt: Ptr(0.25)},
			{Name: "deep", Gte: Ptr(0.25)},
		},
	}
}
