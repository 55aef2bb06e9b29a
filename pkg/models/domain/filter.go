package domain

// FilterKey identifies one field of FilterCriteria.
type FilterKey string

const (
	FilterDateRange      FilterKey = "dateRange"
	FilterCategories     FilterKey = "categories"
	FilterRegions        FilterKey = "regions"
	FilterSalesReps      FilterKey = "salesReps"
	FilterPaymentMethods FilterKey = "paymentMethods"
	FilterSearchTerm     FilterKey = "searchTerm"
)

// FilterKeys lists every filter field in a stable order.
var FilterKeys = []FilterKey{
	FilterDateRange,
	FilterCategories,
	FilterRegions,
	FilterSalesReps,
	FilterPaymentMethods,
	FilterSearchTerm,
}

// FilterCriteria holds the active filter selection. Empty fields are unrestricted.
type FilterCriteria struct {
	DateRange      DateRange
	Categories     Selection
	Regions        Selection
	SalesReps      Selection
	PaymentMethods Selection
	SearchTerm     string
}

// Clone returns a copy that shares no slices with c.
func (c FilterCriteria) Clone() FilterCriteria {
	return FilterCriteria{
		DateRange:      c.DateRange,
		Categories:     c.Categories.Clone(),
		Regions:        c.Regions.Clone(),
		SalesReps:      c.SalesReps.Clone(),
		PaymentMethods: c.PaymentMethods.Clone(),
		SearchTerm:     c.SearchTerm,
	}
}

// Selection returns the set-valued field for key, or false for scalar keys.
func (c FilterCriteria) Selection(key FilterKey) (Selection, bool) {
	switch key {
	case FilterCategories:
		return c.Categories, true
	case FilterRegions:
		return c.Regions, true
	case FilterSalesReps:
		return c.SalesReps, true
	case FilterPaymentMethods:
		return c.PaymentMethods, true
	}
	return nil, false
}

// FilterOptions lists the distinct values available for each filterable dimension.
type FilterOptions struct {
	Categories     []string
	Regions        []string
	SalesReps      []string
	PaymentMethods []string
}
