package insights

import (
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func baseInput() Input {
	return Input{
		Summary: domain.AggregateSummary{
			Count:       6,
			TotalAmount: d(4600),
			GroupedTotals: map[domain.Dimension]map[string]decimal.Decimal{
				domain.DimensionCategory: {"Furniture": d(1100), "Electronics": d(3500)},
			},
		},
		DailySeries: []domain.SeriesPoint{
			{Key: "2025-03-01", Revenue: d(900)},
			{Key: "2025-03-02", Revenue: d(100)},
			{Key: "2025-03-03", Revenue: d(400)},
			{Key: "2025-03-04", Revenue: d(700)},
			{Key: "2025-03-05", Revenue: d(1000)},
			{Key: "2025-03-06", Revenue: d(1500)},
		},
		SalesRepRanking: []domain.RepPerformance{
			{Name: "Ana Lima", Count: 4, Revenue: d(3100)},
			{Name: "Ben Ortiz", Count: 2, Revenue: d(1500)},
		},
		Comparison: domain.ComparisonResult{
			Valid:         true,
			PercentChange: map[string]float64{domain.MetricTotalAmount: -12.345},
		},
	}
}

func TestGenerate(t *testing.T) {
	got := Generate(baseInput())

	require.Len(t, got, 4)
	assert.Equal(t, domain.Insight{
		Type:        domain.InsightPositive,
		Title:       "Top Performing Category",
		Description: "Electronics is your top performing category with $3,500 in sales.",
	}, got[0])
	assert.Equal(t, domain.Insight{
		Type:        domain.InsightPositive,
		Title:       "Recent Revenue Trend",
		Description: "Revenue has increased by $1,400 over the last 5 days.",
	}, got[1])
	assert.Equal(t, domain.Insight{
		Type:        domain.InsightInfo,
		Title:       "Top Sales Rep",
		Description: "Ana Lima is your top performer with $3,100 in sales.",
	}, got[2])
	assert.Equal(t, domain.Insight{
		Type:        domain.InsightNegative,
		Title:       "Period Comparison",
		Description: "Revenue has decreased by 12.3% compared to previous period.",
	}, got[3])
}

func TestGenerate_EmptySubset(t *testing.T) {
	in := baseInput()
	in.Summary = domain.AggregateSummary{}

	got := Generate(in)

	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestGenerate_OrderIsRuleOrder(t *testing.T) {
	in := baseInput()
	in.Comparison.PercentChange[domain.MetricTotalAmount] = 900
	in.SalesRepRanking = nil

	got := Generate(in)

	require.Len(t, got, 3)
	assert.Equal(t, "Top Performing Category", got[0].Title)
	assert.Equal(t, "Recent Revenue Trend", got[1].Title)
	assert.Equal(t, "Period Comparison", got[2].Title)
	assert.Equal(t, domain.InsightPositive, got[2].Type)
}

func TestRevenueTrend(t *testing.T) {
	t.Run("declining trend is a warning", func(t *testing.T) {
		in := Input{DailySeries: []domain.SeriesPoint{
			{Key: "2025-03-01", Revenue: d(500)},
			{Key: "2025-03-02", Revenue: d(200)},
		}}
		got, ok := RevenueTrend(in)
		require.True(t, ok)
		assert.Equal(t, domain.InsightWarning, got.Type)
		assert.Equal(t, "Revenue has decreased by $300 over the last 5 days.", got.Description)
	})

	t.Run("needs two buckets", func(t *testing.T) {
		_, ok := RevenueTrend(Input{DailySeries: []domain.SeriesPoint{{Key: "2025-03-01", Revenue: d(1)}}})
		assert.False(t, ok)
	})

	t.Run("flat trend is positive", func(t *testing.T) {
		got, ok := RevenueTrend(Input{DailySeries: []domain.SeriesPoint{
			{Key: "2025-03-01", Revenue: d(5)},
			{Key: "2025-03-02", Revenue: d(5)},
		}})
		require.True(t, ok)
		assert.Equal(t, domain.InsightPositive, got.Type)
	})
}

func TestTopCategory_TieUsesSmallestKey(t *testing.T) {
	in := Input{Summary: domain.AggregateSummary{
		Count: 2,
		GroupedTotals: map[domain.Dimension]map[string]decimal.Decimal{
			domain.DimensionCategory: {"Toys": d(10), "Books": d(10)},
		},
	}}

	got, ok := TopCategory(in)

	require.True(t, ok)
	assert.Contains(t, got.Description, "Books")
}

func TestPeriodComparison_SkippedWithoutWindow(t *testing.T) {
	_, ok := PeriodComparison(Input{Comparison: domain.ComparisonResult{}})
	assert.False(t, ok)
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$0", Currency(decimal.Zero))
	assert.Equal(t, "$1,235", Currency(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$1,234,567", Currency(d(1234567)))
	assert.Equal(t, "-$42", Currency(d(-42)))
}
