package adapters

import (
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/daterange"
	"github.com/shopspring/decimal"
)

func MapDomainRecordToApi(record domain.Record) api.Sale {
	return api.Sale{
		ID:            record.ID,
		Date:          record.Date,
		Customer:      record.Customer,
		Product:       record.Product,
		Category:      record.Category,
		Amount:        record.Amount.String(),
		Quantity:      record.Quantity,
		PaymentMethod: record.PaymentMethod,
		SalesRep:      record.SalesRep,
		Region:        record.Region,
	}
}

func MapDomainRecordsToApi(records []domain.Record) []api.Sale {
	sales := make([]api.Sale, 0, len(records))
	for _, r := range records {
		sales = append(sales, MapDomainRecordToApi(r))
	}
	return sales
}

func MapDomainDateRangeToApi(dr domain.DateRange) api.DateRange {
	out := api.DateRange{Display: daterange.DisplayText(dr)}
	if dr.HasStart() {
		start := dr.Start.Format(daterange.DateLayout)
		out.StartDate = &start
	}
	if dr.HasEnd() {
		end := dr.End.Format(daterange.DateLayout)
		out.EndDate = &end
	}
	if dr.Label != "" {
		label := dr.Label
		out.Label = &label
	}
	return out
}

func MapDomainFiltersToApi(criteria domain.FilterCriteria, active bool) api.Filters {
	return api.Filters{
		DateRange:      MapDomainDateRangeToApi(criteria.DateRange),
		Categories:     nonNil(criteria.Categories),
		Regions:        nonNil(criteria.Regions),
		SalesReps:      nonNil(criteria.SalesReps),
		PaymentMethods: nonNil(criteria.PaymentMethods),
		SearchTerm:     criteria.SearchTerm,
		Active:         active,
	}
}

// MapApiFiltersPatchToDomain keeps only the fields present in the patch.
func MapApiFiltersPatchToDomain(patch api.FiltersPatch) map[domain.FilterKey]any {
	partial := make(map[domain.FilterKey]any)
	if patch.Categories != nil {
		partial[domain.FilterCategories] = domain.NewSelection(*patch.Categories...)
	}
	if patch.Regions != nil {
		partial[domain.FilterRegions] = domain.NewSelection(*patch.Regions...)
	}
	if patch.SalesReps != nil {
		partial[domain.FilterSalesReps] = domain.NewSelection(*patch.SalesReps...)
	}
	if patch.PaymentMethods != nil {
		partial[domain.FilterPaymentMethods] = domain.NewSelection(*patch.PaymentMethods...)
	}
	if patch.SearchTerm != nil {
		partial[domain.FilterSearchTerm] = *patch.SearchTerm
	}
	return partial
}

func MapDomainSummaryToApi(summary domain.AggregateSummary) api.Summary {
	grouped := make(map[string]map[string]string, len(summary.GroupedTotals))
	for dim, totals := range summary.GroupedTotals {
		entries := make(map[string]string, len(totals))
		for key, amount := range totals {
			entries[key] = amount.String()
		}
		grouped[string(dim)] = entries
	}
	return api.Summary{
		Count:         summary.Count,
		TotalAmount:   summary.TotalAmount.String(),
		AverageAmount: summary.AverageAmount.String(),
		TotalQuantity: summary.TotalQuantity,
		GroupedTotals: grouped,
		TopN:          mapRankEntries(summary.TopN),
		TopCustomers:  mapRankEntries(summary.TopCustomers),
	}
}

func MapDomainMetricsToApi(metrics domain.Metrics) api.Metrics {
	reps := make([]api.RepPerformance, 0, len(metrics.SalesRepRanking))
	for _, rep := range metrics.SalesRepRanking {
		reps = append(reps, api.RepPerformance{Name: rep.Name, Count: rep.Count, Revenue: rep.Revenue.String()})
	}
	insights := make([]api.Insight, 0, len(metrics.Insights))
	for _, in := range metrics.Insights {
		insights = append(insights, api.Insight{Type: string(in.Type), Title: in.Title, Description: in.Description})
	}
	return api.Metrics{
		Summary:         MapDomainSummaryToApi(metrics.Summary),
		DailySeries:     mapSeries(metrics.DailySeries),
		MonthlySeries:   mapSeries(metrics.MonthlySeries),
		SalesRepRanking: reps,
		Insights:        insights,
	}
}

func MapDomainComparisonToApi(result domain.ComparisonResult) api.Comparison {
	return api.Comparison{
		Valid:           result.Valid,
		PreviousWindow:  MapDomainDateRangeToApi(result.PreviousWindow),
		PreviousSummary: MapDomainSummaryToApi(result.PreviousSummary),
		PercentChange:   result.PercentChange,
	}
}

func MapDomainFilterOptionsToApi(opts domain.FilterOptions) api.FilterOptions {
	return api.FilterOptions{
		Categories:     nonNil(opts.Categories),
		Regions:        nonNil(opts.Regions),
		SalesReps:      nonNil(opts.SalesReps),
		PaymentMethods: nonNil(opts.PaymentMethods),
	}
}

func mapRankEntries(entries []domain.RankEntry) []api.RankEntry {
	out := make([]api.RankEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, api.RankEntry{Key: e.Key, Amount: e.Amount.String()})
	}
	return out
}

func mapSeries(points []domain.SeriesPoint) []api.SeriesPoint {
	out := make([]api.SeriesPoint, 0, len(points))
	for _, p := range points {
		out = append(out, api.SeriesPoint{Key: p.Key, Count: p.Count, Revenue: p.Revenue.String()})
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string(nil), values...)
}

func nullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
