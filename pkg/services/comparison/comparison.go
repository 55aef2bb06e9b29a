package comparison

import (
	"math"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/aggregate"
	"github.com/de-tools/sales-atlas/pkg/services/daterange"
	"github.com/de-tools/sales-atlas/pkg/services/pipeline"
)

const previousLabel = "Previous Period"

// PreviousWindow returns the window of identical length that ends the day
// before current starts. It returns false when current is not a bounded,
// ordered window.
func PreviousWindow(current domain.DateRange) (domain.DateRange, bool) {
	if !current.IsBounded() {
		return domain.DateRange{}, false
	}
	span := daterange.DaysBetween(current.Start, current.End)
	end := daterange.StartOfDay(current.Start).AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -span)
	return domain.DateRange{
		Start: daterange.StartOfDay(start),
		End:   daterange.EndOfDay(end),
		Label: previousLabel,
	}, true
}

// Compare aggregates the previous window with every non-date criterion applied
// unchanged and reports percentage deltas against current. records must be the
// full, unfiltered dataset.
func Compare(
	records []domain.Record,
	criteria domain.FilterCriteria,
	current domain.AggregateSummary,
	opts aggregate.Options,
) domain.ComparisonResult {
	window, ok := PreviousWindow(criteria.DateRange)
	if !ok {
		return Neutral(opts)
	}

	previousCriteria := pipeline.WithoutDate(criteria)
	previousCriteria.DateRange = window
	previous := aggregate.Summarize(pipeline.Apply(records, previousCriteria), opts)

	return domain.ComparisonResult{
		Valid:           true,
		PreviousWindow:  window,
		PreviousSummary: previous,
		PercentChange:   Deltas(previous, current),
	}
}

// Neutral is the comparison reported when no valid window exists.
func Neutral(opts aggregate.Options) domain.ComparisonResult {
	zero := aggregate.Summarize(nil, opts)
	return domain.ComparisonResult{
		PreviousSummary: zero,
		PercentChange:   Deltas(zero, zero),
	}
}

// Deltas computes the percent change of every comparison metric.
func Deltas(previous, current domain.AggregateSummary) map[string]float64 {
	return map[string]float64{
		domain.MetricCount:         PercentChange(float64(previous.Count), float64(current.Count)),
		domain.MetricTotalAmount:   PercentChange(previous.TotalAmount.InexactFloat64(), current.TotalAmount.InexactFloat64()),
		domain.MetricAverageAmount: PercentChange(previous.AverageAmount.InexactFloat64(), current.AverageAmount.InexactFloat64()),
	}
}

// PercentChange is total: it never returns NaN or an infinity.
func PercentChange(previous, current float64) float64 {
	if math.IsNaN(previous) || math.IsNaN(current) {
		return 0
	}
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	change := (current - previous) / math.Abs(previous) * 100
	if math.IsInf(change, 0) || math.IsNaN(change) {
		return 0
	}
	return change
}
