package commands

import (
	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/spf13/cobra"
)

type reportCmd struct {
	env   *Env
	query QueryFlags
	build func(engine *dashboard.Engine) domain.Report
}

func newReportCmd(env *Env, use, short string, build func(*dashboard.Engine) domain.Report) *cobra.Command {
	rc := &reportCmd{env: env, build: build}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE:  rc.run,
	}
	rc.query.Bind(cmd)
	return cmd
}

func (rc *reportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := rc.env.Context()
	defer cancel()

	reporter, err := rc.env.Reporter()
	if err != nil {
		return err
	}
	engine, err := rc.env.OpenEngine(ctx)
	if err != nil {
		return err
	}
	if err := rc.query.Apply(engine); err != nil {
		return err
	}

	report := rc.build(engine)
	return reporter.Handle(&report)
}

func NewSummaryCmd(env *Env) *cobra.Command {
	return newReportCmd(env, "summary", "Print totals, breakdowns and rankings for the filtered sales",
		func(e *dashboard.Engine) domain.Report {
			return adapters.MapSummaryToReport("Sales Summary", e.DateRange(), e.Metrics())
		})
}

func NewInsightsCmd(env *Env) *cobra.Command {
	return newReportCmd(env, "insights", "Print generated insights for the filtered sales",
		func(e *dashboard.Engine) domain.Report {
			m := e.Metrics()
			return adapters.MapInsightsToReport("Sales Insights", e.DateRange(), m.Insights, m.Summary)
		})
}

func NewCompareCmd(env *Env) *cobra.Command {
	return newReportCmd(env, "compare", "Compare the selected window with the preceding window of equal length",
		func(e *dashboard.Engine) domain.Report {
			return adapters.MapComparisonToReport("Period Comparison", e.DateRange(), e.Metrics().Summary, e.Comparison())
		})
}

func NewOptionsCmd(env *Env) *cobra.Command {
	return newReportCmd(env, "options", "List the values available for each filter",
		func(e *dashboard.Engine) domain.Report {
			return adapters.MapFilterOptionsToReport("Filter Options", e.FilterOptions())
		})
}
