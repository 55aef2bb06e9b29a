package api

import "time"

type Sale struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Customer      string    `json:"customer"`
	Product       string    `json:"product"`
	Category      string    `json:"category"`
	Amount        string    `json:"amount"`
	Quantity      int       `json:"quantity"`
	PaymentMethod string    `json:"paymentMethod"`
	SalesRep      string    `json:"salesRep"`
	Region        string    `json:"region"`
}

type DateRange struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Label     *string `json:"label"`
	Display   string  `json:"display,omitempty"`
}

type Filters struct {
	DateRange      DateRange `json:"dateRange"`
	Categories     []string  `json:"categories"`
	Regions        []string  `json:"regions"`
	SalesReps      []string  `json:"salesReps"`
	PaymentMethods []string  `json:"paymentMethods"`
	SearchTerm     string    `json:"searchTerm"`
	Active         bool      `json:"active"`
}

// FiltersPatch is a partial filter update; absent fields are left untouched.
type FiltersPatch struct {
	Categories     *[]string `json:"categories,omitempty"`
	Regions        *[]string `json:"regions,omitempty"`
	SalesReps      *[]string `json:"salesReps,omitempty"`
	PaymentMethods *[]string `json:"paymentMethods,omitempty"`
	SearchTerm     *string   `json:"searchTerm,omitempty"`
}

type ToggleRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type RankEntry struct {
	Key    string `json:"key"`
	Amount string `json:"amount"`
}

type Summary struct {
	Count         int                          `json:"count"`
	TotalAmount   string                       `json:"totalAmount"`
	AverageAmount string                       `json:"averageAmount"`
	TotalQuantity int64                        `json:"totalQuantity"`
	GroupedTotals map[string]map[string]string `json:"groupedTotals"`
	TopN          []RankEntry                  `json:"topN"`
	TopCustomers  []RankEntry                  `json:"topCustomers"`
}

type SeriesPoint struct {
	Key     string `json:"key"`
	Count   int    `json:"count"`
	Revenue string `json:"revenue"`
}

type RepPerformance struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Revenue string `json:"revenue"`
}

type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Metrics struct {
	Summary         Summary          `json:"summary"`
	DailySeries     []SeriesPoint    `json:"dailySeries"`
	MonthlySeries   []SeriesPoint    `json:"monthlySeries"`
	SalesRepRanking []RepPerformance `json:"salesRepRanking"`
	Insights        []Insight        `json:"insights"`
}

type Comparison struct {
	Valid           bool               `json:"valid"`
	PreviousWindow  DateRange          `json:"previousWindow"`
	PreviousSummary Summary            `json:"previousSummary"`
	PercentChange   map[string]float64 `json:"percentChange"`
}

type FilterOptions struct {
	Categories     []string `json:"categories"`
	Regions        []string `json:"regions"`
	SalesReps      []string `json:"salesReps"`
	PaymentMethods []string `json:"paymentMethods"`
}
