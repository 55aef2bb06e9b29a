package aggregate

import (
	"sort"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultTopN = 5

	// averageScale is the number of decimal places kept for means.
	averageScale = 4
)

// Options control which breakdowns Summarize produces.
type Options struct {
	TopN       int
	Dimensions []domain.Dimension
}

func DefaultOptions() Options {
	return Options{
		TopN:       DefaultTopN,
		Dimensions: []domain.Dimension{domain.DimensionCategory, domain.DimensionRegion},
	}
}

// Summarize computes count, sum, mean, grouped totals and rankings for records.
// An empty input yields the zero summary with empty, non-nil collections.
func Summarize(records []domain.Record, opts Options) domain.AggregateSummary {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}

	summary := domain.AggregateSummary{
		Count:         len(records),
		TotalAmount:   Sum(records, domain.MeasureAmount),
		GroupedTotals: make(map[domain.Dimension]map[string]decimal.Decimal),
		TopN:          []domain.RankEntry{},
		TopCustomers:  []domain.RankEntry{},
	}
	if len(records) == 0 {
		return summary
	}

	summary.AverageAmount = Mean(records, domain.MeasureAmount)
	for _, r := range records {
		summary.TotalQuantity += int64(r.Quantity)
	}
	for _, dim := range opts.Dimensions {
		summary.GroupedTotals[dim] = GroupTotals(records, dim)
	}
	summary.TopN = TopN(records, domain.DimensionProduct, domain.MeasureAmount, opts.TopN)
	summary.TopCustomers = TopN(records, domain.DimensionCustomer, domain.MeasureAmount, opts.TopN)
	return summary
}

func Sum(records []domain.Record, m domain.Measure) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Measure(m))
	}
	return total
}

// Mean returns the average of a measure; zero records yields 0.
func Mean(records []domain.Record, m domain.Measure) decimal.Decimal {
	return Ratio(Sum(records, m), len(records))
}

// Ratio divides total by n, defining any ratio over zero as 0.
func Ratio(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(int64(n)), averageScale)
}

// GroupTotals sums amounts per dimension value. Records without a value are skipped.
func GroupTotals(records []domain.Record, dim domain.Dimension) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, r := range records {
		key := r.Value(dim)
		if key == "" {
			continue
		}
		totals[key] = totals[key].Add(r.Amount)
	}
	return totals
}

// TopN ranks dimension values by the summed measure, descending. Ties keep
// the order in which keys first appear in records. n <= 0 returns every key.
func TopN(records []domain.Record, dim domain.Dimension, m domain.Measure, n int) []domain.RankEntry {
	ranking := rank(records, dim, m)
	if n > 0 && len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// RepRanking ranks sales representatives by revenue with their sale counts.
func RepRanking(records []domain.Record) []domain.RepPerformance {
	counts := make(map[string]int)
	for _, r := range records {
		if r.SalesRep != "" {
			counts[r.SalesRep]++
		}
	}

	ranking := rank(records, domain.DimensionSalesRep, domain.MeasureAmount)
	out := make([]domain.RepPerformance, 0, len(ranking))
	for _, e := range ranking {
		out = append(out, domain.RepPerformance{Name: e.Key, Count: counts[e.Key], Revenue: e.Amount})
	}
	return out
}

// FilterOptions collects distinct non-empty values per filterable dimension,
// in first-seen order.
func FilterOptions(records []domain.Record) domain.FilterOptions {
	return domain.FilterOptions{
		Categories:     distinct(records, domain.DimensionCategory),
		Regions:        distinct(records, domain.DimensionRegion),
		SalesReps:      distinct(records, domain.DimensionSalesRep),
		PaymentMethods: distinct(records, domain.DimensionPaymentMethod),
	}
}

func rank(records []domain.Record, dim domain.Dimension, m domain.Measure) []domain.RankEntry {
	index := make(map[string]int)
	ranking := make([]domain.RankEntry, 0)
	for _, r := range records {
		key := r.Value(dim)
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(ranking)
			index[key] = i
			ranking = append(ranking, domain.RankEntry{Key: key, Amount: decimal.Zero})
		}
		ranking[i].Amount = ranking[i].Amount.Add(r.Measure(m))
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Amount.GreaterThan(ranking[j].Amount)
	})
	return ranking
}

func distinct(records []domain.Record, dim domain.Dimension) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		v := r.Value(dim)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
