package domain

import "github.com/shopspring/decimal"

// RankEntry is one row of a top-N ranking.
type RankEntry struct {
	Key    string
	Amount decimal.Decimal
}

// AggregateSummary holds the statistics computed over a record subset.
type AggregateSummary struct {
	Count         int
	TotalAmount   decimal.Decimal
	AverageAmount decimal.Decimal
	TotalQuantity int64
	GroupedTotals map[Dimension]map[string]decimal.Decimal
	TopN          []RankEntry // products by revenue
	TopCustomers  []RankEntry
}

// SeriesPoint is one date bucket of a time series.
type SeriesPoint struct {
	Key     string // 2025-03-01, 2025-W09 or 2025-03
	Count   int
	Revenue decimal.Decimal
}

// RepPerformance is one row of the sales representative ranking.
type RepPerformance struct {
	Name    string
	Count   int
	Revenue decimal.Decimal
}

type InsightType string

const (
	InsightPositive InsightType = "positive"
	InsightNegative InsightType = "negative"
	InsightWarning  InsightType = "warning"
	InsightInfo     InsightType = "info"
)

type Insight struct {
	Type        InsightType
	Title       string
	Description string
}

// Metric names used in ComparisonResult.PercentChange.
const (
	MetricCount         = "count"
	MetricTotalAmount   = "totalAmount"
	MetricAverageAmount = "averageAmount"
)

// ComparisonMetrics lists every metric a comparison reports.
var ComparisonMetrics = []string{MetricCount, MetricTotalAmount, MetricAverageAmount}

type ComparisonResult struct {
	Valid           bool
	PreviousWindow  DateRange
	PreviousSummary AggregateSummary
	PercentChange   map[string]float64
}

// Metrics is everything the presentation layer renders for the current filters.
type Metrics struct {
	Summary         AggregateSummary
	DailySeries     []SeriesPoint
	MonthlySeries   []SeriesPoint
	SalesRepRanking []RepPerformance
	Insights        []Insight
}
