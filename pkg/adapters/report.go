package adapters

import (
	"fmt"
	"sort"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/daterange"
	"github.com/de-tools/sales-atlas/pkg/services/insights"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const reportCurrency = "USD"

func MapDateRangeToTimePeriod(dr domain.DateRange) domain.TimePeriod {
	period := domain.TimePeriod{
		Label: daterange.DisplayText(dr),
		Start: dr.Start,
		End:   dr.End,
	}
	if dr.IsBounded() {
		period.Duration = daterange.Days(dr)
	}
	return period
}

func MapSummaryToReport(title string, dr domain.DateRange, metrics domain.Metrics) domain.Report {
	summary := metrics.Summary
	sections := []domain.ReportSection{{
		Title: "Summary",
		Summary: map[string]interface{}{
			"Records":        humanize.Comma(int64(summary.Count)),
			"Average Amount": insights.Currency(summary.AverageAmount),
			"Units Sold":     humanize.Comma(summary.TotalQuantity),
		},
	}}

	for _, dim := range []domain.Dimension{domain.DimensionCategory, domain.DimensionRegion} {
		totals, ok := summary.GroupedTotals[dim]
		if !ok {
			continue
		}
		section := domain.ReportSection{Title: fmt.Sprintf("Revenue by %s", dim)}
		for _, entry := range sortedTotals(totals) {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:  entry.Key,
				Value: insights.Currency(entry.Amount),
				Unit:  reportCurrency,
			})
		}
		sections = append(sections, section)
	}

	sections = append(sections,
		rankingSection("Top Products", summary.TopN),
		rankingSection("Top Customers", summary.TopCustomers),
	)

	reps := domain.ReportSection{Title: "Sales Reps"}
	for i, rep := range metrics.SalesRepRanking {
		reps.Details = append(reps.Details, domain.ReportDetail{
			Name:        rep.Name,
			Value:       insights.Currency(rep.Revenue),
			Unit:        reportCurrency,
			Description: fmt.Sprintf("%s place, %s sales", humanize.Ordinal(i+1), humanize.Comma(int64(rep.Count))),
		})
	}
	sections = append(sections, reps)

	return domain.Report{
		Title:       title,
		Period:      MapDateRangeToTimePeriod(dr),
		Sections:    sections,
		TotalAmount: summary.TotalAmount,
		Currency:    reportCurrency,
	}
}

func MapInsightsToReport(title string, dr domain.DateRange, list []domain.Insight, total domain.AggregateSummary) domain.Report {
	section := domain.ReportSection{
		Title:   "Insights",
		Summary: map[string]interface{}{"Generated": len(list)},
	}
	for _, in := range list {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        in.Title,
			Value:       string(in.Type),
			Description: in.Description,
		})
	}
	return domain.Report{
		Title:       title,
		Period:      MapDateRangeToTimePeriod(dr),
		Sections:    []domain.ReportSection{section},
		TotalAmount: total.TotalAmount,
		Currency:    reportCurrency,
	}
}

func MapComparisonToReport(title string, dr domain.DateRange, current domain.AggregateSummary, result domain.ComparisonResult) domain.Report {
	section := domain.ReportSection{Title: "Period Comparison"}
	if !result.Valid {
		section.Summary = map[string]interface{}{"Previous Period": "not available for this date range"}
	} else {
		section.Summary = map[string]interface{}{"Previous Period": daterange.DisplayText(domain.DateRange{
			Start: result.PreviousWindow.Start,
			End:   result.PreviousWindow.End,
			Label: domain.CustomLabel,
		})}
	}

	rows := []struct {
		metric   string
		name     string
		previous string
		current  string
	}{
		{domain.MetricCount, "Transactions", humanize.Comma(int64(result.PreviousSummary.Count)), humanize.Comma(int64(current.Count))},
		{domain.MetricTotalAmount, "Revenue", insights.Currency(result.PreviousSummary.TotalAmount), insights.Currency(current.TotalAmount)},
		{domain.MetricAverageAmount, "Average Sale", insights.Currency(result.PreviousSummary.AverageAmount), insights.Currency(current.AverageAmount)},
	}
	for _, row := range rows {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        row.name,
			Value:       fmt.Sprintf("%+.1f", result.PercentChange[row.metric]),
			Unit:        "%",
			Description: fmt.Sprintf("%s previously, %s now", row.previous, row.current),
		})
	}

	return domain.Report{
		Title:       title,
		Period:      MapDateRangeToTimePeriod(dr),
		Sections:    []domain.ReportSection{section},
		TotalAmount: current.TotalAmount,
		Currency:    reportCurrency,
	}
}

func MapFilterOptionsToReport(title string, opts domain.FilterOptions) domain.Report {
	section := domain.ReportSection{Title: "Filter Options"}
	for _, group := range []struct {
		name   string
		values []string
	}{
		{"Categories", opts.Categories},
		{"Regions", opts.Regions},
		{"Sales Reps", opts.SalesReps},
		{"Payment Methods", opts.PaymentMethods},
	} {
		for _, v := range group.values {
			section.Details = append(section.Details, domain.ReportDetail{Name: group.name, Value: v})
		}
	}
	return domain.Report{
		Title:    title,
		Period:   MapDateRangeToTimePeriod(domain.DateRange{}),
		Sections: []domain.ReportSection{section},
		Currency: reportCurrency,
	}
}

func rankingSection(title string, entries []domain.RankEntry) domain.ReportSection {
	section := domain.ReportSection{Title: title}
	for i, e := range entries {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        e.Key,
			Value:       insights.Currency(e.Amount),
			Unit:        reportCurrency,
			Description: humanize.Ordinal(i + 1),
		})
	}
	return section
}

func sortedTotals(totals map[string]decimal.Decimal) []domain.RankEntry {
	entries := make([]domain.RankEntry, 0, len(totals))
	for k, v := range totals {
		entries = append(entries, domain.RankEntry{Key: k, Amount: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Amount.Equal(entries[j].Amount) {
			return entries[i].Amount.GreaterThan(entries[j].Amount)
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}
