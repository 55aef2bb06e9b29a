package insights

import (
	"fmt"
	"math"
	"sort"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/aggregate"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// TrendDays is the number of trailing daily buckets the trend rule inspects.
const TrendDays = 5

// Input is everything the rules read.
type Input struct {
	Summary         domain.AggregateSummary
	DailySeries     []domain.SeriesPoint
	SalesRepRanking []domain.RepPerformance
	Comparison      domain.ComparisonResult
}

// Rule emits at most one insight.
type Rule func(Input) (domain.Insight, bool)

// Rules returns the rule list in evaluation order.
func Rules() []Rule {
	return []Rule{
		TopCategory,
		RevenueTrend,
		TopSalesRep,
		PeriodComparison,
	}
}

// Generate evaluates every rule in order. Output order is rule order. An empty
// current subset produces no insights.
func Generate(in Input) []domain.Insight {
	out := make([]domain.Insight, 0, len(Rules()))
	if in.Summary.Count == 0 {
		return out
	}
	for _, rule := range Rules() {
		if insight, ok := rule(in); ok {
			out = append(out, insight)
		}
	}
	return out
}

func TopCategory(in Input) (domain.Insight, bool) {
	totals := in.Summary.GroupedTotals[domain.DimensionCategory]
	if len(totals) == 0 {
		return domain.Insight{}, false
	}

	// Map iteration is random; equal totals resolve to the smallest key.
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	top := keys[0]
	for _, k := range keys[1:] {
		if totals[k].GreaterThan(totals[top]) {
			top = k
		}
	}

	return domain.Insight{
		Type:        domain.InsightPositive,
		Title:       "Top Performing Category",
		Description: fmt.Sprintf("%s is your top performing category with %s in sales.", top, Currency(totals[top])),
	}, true
}

func RevenueTrend(in Input) (domain.Insight, bool) {
	if len(in.DailySeries) < 2 {
		return domain.Insight{}, false
	}
	recent := aggregate.Trailing(in.DailySeries, TrendDays)
	trend := recent[len(recent)-1].Revenue.Sub(recent[0].Revenue)

	insightType, direction := domain.InsightPositive, "increased"
	if trend.IsNegative() {
		insightType, direction = domain.InsightWarning, "decreased"
	}
	return domain.Insight{
		Type:  insightType,
		Title: "Recent Revenue Trend",
		Description: fmt.Sprintf("Revenue has %s by %s over the last %d days.",
			direction, Currency(trend.Abs()), TrendDays),
	}, true
}

func TopSalesRep(in Input) (domain.Insight, bool) {
	if len(in.SalesRepRanking) == 0 {
		return domain.Insight{}, false
	}
	top := in.SalesRepRanking[0]
	return domain.Insight{
		Type:        domain.InsightInfo,
		Title:       "Top Sales Rep",
		Description: fmt.Sprintf("%s is your top performer with %s in sales.", top.Name, Currency(top.Revenue)),
	}, true
}

func PeriodComparison(in Input) (domain.Insight, bool) {
	if !in.Comparison.Valid {
		return domain.Insight{}, false
	}
	change := in.Comparison.PercentChange[domain.MetricTotalAmount]

	insightType, direction := domain.InsightPositive, "increased"
	if change < 0 {
		insightType, direction = domain.InsightNegative, "decreased"
	}
	return domain.Insight{
		Type:  insightType,
		Title: "Period Comparison",
		Description: fmt.Sprintf("Revenue has %s by %.1f%% compared to previous period.",
			direction, math.Abs(change)),
	}, true
}

// Currency renders a whole-dollar amount with thousands separators, e.g. $1,235.
func Currency(amount decimal.Decimal) string {
	rounded := amount.Round(0).IntPart()
	if rounded < 0 {
		return "-$" + humanize.Comma(-rounded)
	}
	return "$" + humanize.Comma(rounded)
}
