package dashboard

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/de-tools/sales-atlas/pkg/services/aggregate"
	"github.com/de-tools/sales-atlas/pkg/services/cache"
	"github.com/de-tools/sales-atlas/pkg/services/daterange"
	"github.com/de-tools/sales-atlas/pkg/services/filters"
	"github.com/rs/zerolog"
)

// Loader delivers the raw dataset in one call.
type Loader interface {
	Load(ctx context.Context) ([]store.SaleRecord, error)
}

type Options struct {
	Logger   zerolog.Logger
	Clock    daterange.Clock
	Location *time.Location
	TopN     int

	// Defaults is the filter snapshot ResetFilters returns to. When
	// DefaultPreset is set it replaces Defaults.DateRange, resolved once at
	// construction.
	Defaults      domain.FilterCriteria
	DefaultPreset daterange.Preset
}

// Engine owns the filter state, the date resolver and the computation graph
// for one dataset. It is not safe for concurrent use.
type Engine struct {
	logger   zerolog.Logger
	resolver *daterange.Resolver
	filters  *filters.Store
	graph    *cache.Graph
	aggOpts  aggregate.Options

	records        []domain.Record
	recordsVersion uint64
	skipped        int
	loading        bool
	loadErr        error
}

func New(opts Options) (*Engine, error) {
	if opts.Clock == nil {
		opts.Clock = daterange.SystemClock()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	aggOpts := aggregate.DefaultOptions()
	if opts.TopN > 0 {
		aggOpts.TopN = opts.TopN
	}

	resolver := daterange.NewResolver(opts.Clock, opts.Location)
	defaults := opts.Defaults.Clone()
	if opts.DefaultPreset != "" {
		dr, ok := resolver.Resolve(opts.DefaultPreset)
		if !ok {
			return nil, fmt.Errorf("unknown default preset %q", opts.DefaultPreset)
		}
		defaults.DateRange = dr
	}

	e := &Engine{
		logger:   opts.Logger,
		resolver: resolver,
		filters:  filters.NewStore(defaults),
		graph:    cache.New(opts.Logger),
		aggOpts:  aggOpts,
		records:  []domain.Record{},
	}
	if err := e.buildGraph(); err != nil {
		return nil, fmt.Errorf("failed to build computation graph: %w", err)
	}
	if err := e.graph.Refresh(); err != nil {
		return nil, err
	}
	return e, nil
}

// Load replaces the dataset with the loader's rows. Malformed rows are
// skipped. On failure the previous dataset is kept and the error is retained
// for LoadError.
func (e *Engine) Load(ctx context.Context, loader Loader) error {
	logger := zerolog.Ctx(ctx)
	e.loading = true
	defer func() { e.loading = false }()

	rows, err := loader.Load(ctx)
	if err != nil {
		e.loadErr = fmt.Errorf("failed to load sales records: %w", err)
		logger.Error().Err(err).Msg("loading sales records")
		return e.loadErr
	}

	records, skipped := adapters.MapStoreSalesToDomain(ctx, rows, e.resolver.Location())
	e.loadErr = nil
	e.skipped = skipped
	e.SetRecords(records)

	logger.Info().
		Int("records", len(records)).
		Int("skipped", skipped).
		Msg("sales records loaded")
	return nil
}

// SetRecords replaces the dataset directly.
func (e *Engine) SetRecords(records []domain.Record) {
	e.records = slices.Clone(records)
	if e.records == nil {
		e.records = []domain.Record{}
	}
	e.recordsVersion++
	e.refresh()
}

// Loading reports whether Load is in progress. Load is synchronous, so only
// code running inside it, such as the loader itself, can observe true.
func (e *Engine) Loading() bool { return e.loading }

func (e *Engine) LoadError() error { return e.loadErr }

// Skipped reports how many rows the last load dropped as malformed.
func (e *Engine) Skipped() int { return e.skipped }

func (e *Engine) Resolver() *daterange.Resolver { return e.resolver }

// Records returns the unfiltered dataset.
func (e *Engine) Records() []domain.Record {
	return slices.Clone(e.records)
}

func (e *Engine) FilteredData() []domain.Record {
	return slices.Clone(get[[]domain.Record](e, NodeFiltered))
}

func (e *Engine) Metrics() domain.Metrics {
	return get[domain.Metrics](e, NodeMetrics)
}

func (e *Engine) FilterOptions() domain.FilterOptions {
	return get[domain.FilterOptions](e, NodeFilterOptions)
}

func (e *Engine) Comparison() domain.ComparisonResult {
	return get[domain.ComparisonResult](e, NodeComparison)
}

func (e *Engine) Filters() domain.FilterCriteria {
	return e.filters.Criteria()
}

func (e *Engine) DateRange() domain.DateRange {
	return e.filters.Criteria().DateRange
}

func (e *Engine) HasActiveFilters() bool {
	return e.filters.HasActiveFilters()
}

func (e *Engine) DateRangeDisplayText() string {
	return daterange.DisplayText(e.DateRange())
}

// Version increases once per effective filter mutation.
func (e *Engine) Version() uint64 {
	return e.filters.Version()
}

// Recomputes reports how often a graph node has been computed.
func (e *Engine) Recomputes(node string) int {
	return e.graph.Recomputes(node)
}

func (e *Engine) SetFilter(key domain.FilterKey, value any) (bool, error) {
	return e.mutate(e.filters.SetFilter(key, value))
}

func (e *Engine) UpdateFilters(partial map[domain.FilterKey]any) (bool, error) {
	return e.mutate(e.filters.UpdateFilters(partial))
}

func (e *Engine) ResetFilters() bool {
	changed, _ := e.mutate(e.filters.ResetFilters(), nil)
	return changed
}

func (e *Engine) ToggleFilterValue(key domain.FilterKey, value string) (bool, error) {
	return e.mutate(e.filters.ToggleFilterValue(key, value))
}

// SetCustomDateRange applies explicit bounds; a zero time leaves that side
// open. An inverted range degrades to the unrestricted range.
func (e *Engine) SetCustomDateRange(start, end time.Time) bool {
	dr, ok := e.resolver.Custom(start, end, domain.CustomLabel)
	if !ok {
		e.logger.Warn().
			Time("start", start).
			Time("end", end).
			Msg("invalid date range, clearing date filter")
	}
	changed, _ := e.SetFilter(domain.FilterDateRange, dr)
	return changed
}

// SetPresetDateRange resolves preset against the engine clock. Unknown
// presets leave the filter untouched and report false.
func (e *Engine) SetPresetDateRange(preset daterange.Preset) bool {
	dr, ok := e.resolver.Resolve(preset)
	if !ok {
		e.logger.Warn().Str("preset", string(preset)).Msg("unknown date preset")
		return false
	}
	changed, _ := e.SetFilter(domain.FilterDateRange, dr)
	return changed
}

func (e *Engine) ClearDateRange() bool {
	changed, _ := e.SetFilter(domain.FilterDateRange, daterange.Clear())
	return changed
}

func (e *Engine) mutate(changed bool, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	if changed {
		e.logger.Debug().Uint64("version", e.filters.Version()).Msg("filters changed")
		e.refresh()
	}
	return changed, nil
}

func (e *Engine) refresh() {
	if err := e.graph.Refresh(); err != nil {
		e.logger.Error().Err(err).Msg("refreshing dashboard computations")
	}
}

func get[T any](e *Engine, node string) T {
	v, err := cache.Get[T](e.graph, node)
	if err != nil {
		e.logger.Error().Err(err).Str("node", node).Msg("reading dashboard computation")
	}
	return v
}
