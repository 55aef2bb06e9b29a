package dashboard

import (
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/aggregate"
	"github.com/de-tools/sales-atlas/pkg/services/cache"
	"github.com/de-tools/sales-atlas/pkg/services/comparison"
	"github.com/de-tools/sales-atlas/pkg/services/insights"
	"github.com/de-tools/sales-atlas/pkg/services/pipeline"
)

// Graph node names.
const (
	NodeRecords       = "records"
	NodeFiltered      = "filtered"
	NodeSummary       = "summary"
	NodeDailySeries   = "dailySeries"
	NodeMonthlySeries = "monthlySeries"
	NodeRepRanking    = "repRanking"
	NodeComparison    = "comparison"
	NodeInsights      = "insights"
	NodeMetrics       = "metrics"
	NodeFilterOptions = "filterOptions"
)

// filterNode names the graph source for one filter field.
func filterNode(key domain.FilterKey) string {
	return "filter." + string(key)
}

func (e *Engine) buildGraph() error {
	g := e.graph

	if err := g.Source(NodeRecords,
		func() uint64 { return e.recordsVersion },
		func() any { return e.records },
	); err != nil {
		return err
	}

	filterNodes := make([]string, 0, len(domain.FilterKeys))
	for _, key := range domain.FilterKeys {
		name := filterNode(key)
		if err := g.Source(name,
			func() uint64 { return e.filters.KeyVersion(key) },
			func() any { return e.filters.Criteria() },
		); err != nil {
			return err
		}
		filterNodes = append(filterNodes, name)
	}

	nodes := []struct {
		name    string
		deps    []string
		compute cache.ComputeFunc
	}{
		{
			name: NodeFiltered,
			deps: append([]string{NodeRecords}, filterNodes...),
			compute: func(in cache.Inputs) any {
				return pipeline.Apply(in.Value(NodeRecords).([]domain.Record), e.filters.Criteria())
			},
		},
		{
			name: NodeSummary,
			deps: []string{NodeFiltered},
			compute: func(in cache.Inputs) any {
				return aggregate.Summarize(in.Value(NodeFiltered).([]domain.Record), e.aggOpts)
			},
		},
		{
			name: NodeDailySeries,
			deps: []string{NodeFiltered},
			compute: func(in cache.Inputs) any {
				return aggregate.Series(in.Value(NodeFiltered).([]domain.Record), aggregate.Day)
			},
		},
		{
			name: NodeMonthlySeries,
			deps: []string{NodeFiltered},
			compute: func(in cache.Inputs) any {
				return aggregate.Series(in.Value(NodeFiltered).([]domain.Record), aggregate.Month)
			},
		},
		{
			name: NodeRepRanking,
			deps: []string{NodeFiltered},
			compute: func(in cache.Inputs) any {
				return aggregate.RepRanking(in.Value(NodeFiltered).([]domain.Record))
			},
		},
		{
			name: NodeComparison,
			deps: append([]string{NodeRecords, NodeSummary}, filterNodes...),
			compute: func(in cache.Inputs) any {
				return comparison.Compare(
					in.Value(NodeRecords).([]domain.Record),
					e.filters.Criteria(),
					in.Value(NodeSummary).(domain.AggregateSummary),
					e.aggOpts,
				)
			},
		},
		{
			name: NodeInsights,
			deps: []string{NodeSummary, NodeDailySeries, NodeRepRanking, NodeComparison},
			compute: func(in cache.Inputs) any {
				return insights.Generate(insights.Input{
					Summary:         in.Value(NodeSummary).(domain.AggregateSummary),
					DailySeries:     in.Value(NodeDailySeries).([]domain.SeriesPoint),
					SalesRepRanking: in.Value(NodeRepRanking).([]domain.RepPerformance),
					Comparison:      in.Value(NodeComparison).(domain.ComparisonResult),
				})
			},
		},
		{
			name: NodeMetrics,
			deps: []string{NodeSummary, NodeDailySeries, NodeMonthlySeries, NodeRepRanking, NodeInsights},
			compute: func(in cache.Inputs) any {
				return domain.Metrics{
					Summary:         in.Value(NodeSummary).(domain.AggregateSummary),
					DailySeries:     in.Value(NodeDailySeries).([]domain.SeriesPoint),
					MonthlySeries:   in.Value(NodeMonthlySeries).([]domain.SeriesPoint),
					SalesRepRanking: in.Value(NodeRepRanking).([]domain.RepPerformance),
					Insights:        in.Value(NodeInsights).([]domain.Insight),
				}
			},
		},
		{
			name: NodeFilterOptions,
			deps: []string{NodeRecords},
			compute: func(in cache.Inputs) any {
				return aggregate.FilterOptions(in.Value(NodeRecords).([]domain.Record))
			},
		},
	}

	for _, n := range nodes {
		if err := g.Node(n.name, n.deps, n.compute); err != nil {
			return err
		}
	}
	return g.Build()
}
