package commands

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/daterange"
	"github.com/spf13/cobra"
)

// QueryFlags are the filter flags shared by every reporting command.
type QueryFlags struct {
	Preset         string
	From           string
	To             string
	Categories     []string
	Regions        []string
	SalesReps      []string
	PaymentMethods []string
	Search         string
}

func (q *QueryFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&q.Preset, "preset", "", "Date preset (e.g. last_30_days, this_quarter)")
	cmd.Flags().StringVar(&q.From, "from", "", "Start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&q.To, "to", "", "End date, YYYY-MM-DD")
	cmd.Flags().StringSliceVar(&q.Categories, "category", nil, "Category to include (repeatable)")
	cmd.Flags().StringSliceVar(&q.Regions, "region", nil, "Region to include (repeatable)")
	cmd.Flags().StringSliceVar(&q.SalesReps, "rep", nil, "Sales rep to include (repeatable)")
	cmd.Flags().StringSliceVar(&q.PaymentMethods, "payment", nil, "Payment method to include (repeatable)")
	cmd.Flags().StringVar(&q.Search, "search", "", "Free-text search over customer, product, rep, category and region")
	cmd.MarkFlagsMutuallyExclusive("preset", "from")
	cmd.MarkFlagsMutuallyExclusive("preset", "to")
}

// Apply sets the engine filters from the flags. Unset flags keep the
// engine defaults.
func (q *QueryFlags) Apply(engine *dashboard.Engine) error {
	switch {
	case q.Preset != "":
		preset := daterange.Preset(q.Preset)
		if !preset.Valid() {
			return fmt.Errorf("unknown preset %q; valid presets: %v", q.Preset, daterange.Presets())
		}
		engine.SetPresetDateRange(preset)
	case q.From != "" || q.To != "":
		dr, err := engine.Resolver().ParseCustom(q.From, q.To, domain.CustomLabel)
		if err != nil {
			return err
		}
		if _, err := engine.SetFilter(domain.FilterDateRange, dr); err != nil {
			return err
		}
	}

	partial := map[domain.FilterKey]any{}
	if len(q.Categories) > 0 {
		partial[domain.FilterCategories] = q.Categories
	}
	if len(q.Regions) > 0 {
		partial[domain.FilterRegions] = q.Regions
	}
	if len(q.SalesReps) > 0 {
		partial[domain.FilterSalesReps] = q.SalesReps
	}
	if len(q.PaymentMethods) > 0 {
		partial[domain.FilterPaymentMethods] = q.PaymentMethods
	}
	if q.Search != "" {
		partial[domain.FilterSearchTerm] = q.Search
	}
	_, err := engine.UpdateFilters(partial)
	return err
}
