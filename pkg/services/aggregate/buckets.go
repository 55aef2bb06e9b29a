package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Granularity selects how record dates are truncated into bucket keys.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

// BucketKey truncates a date to its bucket key: 2006-01-02 for days,
// 2006-W01 (ISO week) for weeks and 2006-01 for months.
func BucketKey(g Granularity, t time.Time) string {
	switch g {
	case Week:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case Month:
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}

// Series groups records into date buckets. Only buckets holding at least one
// record appear, sorted ascending by key.
func Series(records []domain.Record, g Granularity) []domain.SeriesPoint {
	index := make(map[string]int)
	points := make([]domain.SeriesPoint, 0)
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		key := BucketKey(g, r.Date)
		i, ok := index[key]
		if !ok {
			i = len(points)
			index[key] = i
			points = append(points, domain.SeriesPoint{Key: key, Revenue: decimal.Zero})
		}
		points[i].Count++
		points[i].Revenue = points[i].Revenue.Add(r.Amount)
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Key < points[j].Key
	})
	return points
}

// Trailing returns the last n points of a series.
func Trailing(points []domain.SeriesPoint, n int) []domain.SeriesPoint {
	if n <= 0 || len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}
