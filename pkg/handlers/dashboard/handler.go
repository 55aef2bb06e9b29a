package dashboard

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/daterange"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler exposes one dashboard engine over HTTP. The engine is not safe for
// concurrent use, so every request holds mu.
type Handler struct {
	mu     sync.Mutex
	engine *dashboard.Engine
}

func NewHandler(engine *dashboard.Engine) *Handler {
	return &Handler{engine: engine}
}

type Status struct {
	Records   int    `json:"records"`
	Skipped   int    `json:"skipped"`
	LoadError string `json:"loadError,omitempty"`
	Version   uint64 `json:"version"`
}

type Preset struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	status := Status{
		Records: len(h.engine.Records()),
		Skipped: h.engine.Skipped(),
		Version: h.engine.Version(),
	}
	if err := h.engine.LoadError(); err != nil {
		status.LoadError = err.Error()
	}
	h.mu.Unlock()

	writeJSON(w, r, http.StatusOK, status)
}

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	sales := adapters.MapDomainRecordsToApi(h.engine.FilteredData())
	h.mu.Unlock()

	writeJSON(w, r, http.StatusOK, sales)
}

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	metrics := adapters.MapDomainMetricsToApi(h.engine.Metrics())
	h.mu.Unlock()

	writeJSON(w, r, http.StatusOK, metrics)
}

func (h *Handler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	options := adapters.MapDomainFilterOptionsToApi(h.engine.FilterOptions())
	h.mu.Unlock()

	writeJSON(w, r, http.StatusOK, options)
}

func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	comparison := adapters.MapDomainComparisonToApi(h.engine.Comparison())
	h.mu.Unlock()

	writeJSON(w, r, http.StatusOK, comparison)
}

func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	filters := h.filters()
	h.mu.Unlock()

	writeJSON(w, r, http.StatusOK, filters)
}

func (h *Handler) PatchFilters(w http.ResponseWriter, r *http.Request) {
	var patch api.FiltersPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid filters body", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	_, err := h.engine.UpdateFilters(adapters.MapApiFiltersPatchToDomain(patch))
	filters := h.filters()
	h.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, r, http.StatusOK, filters)
}

func (h *Handler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.engine.ResetFilters()
	filters := h.filters()
	h.mu.Unlock()

	writeJSON(w, r, http.StatusOK, filters)
}

func (h *Handler) ToggleFilter(w http.ResponseWriter, r *http.Request) {
	var req api.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid toggle body", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	_, err := h.engine.ToggleFilterValue(domain.FilterKey(req.Key), req.Value)
	filters := h.filters()
	h.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, r, http.StatusOK, filters)
}

func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets := make([]Preset, 0, len(daterange.Presets()))
	for _, p := range daterange.Presets() {
		presets = append(presets, Preset{ID: string(p), Label: p.Label()})
	}
	writeJSON(w, r, http.StatusOK, presets)
}

func (h *Handler) GetDateRange(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	dr := adapters.MapDomainDateRangeToApi(h.engine.DateRange())
	h.mu.Unlock()

	writeJSON(w, r, http.StatusOK, dr)
}

func (h *Handler) SetPresetDateRange(w http.ResponseWriter, r *http.Request) {
	preset := daterange.Preset(chi.URLParam(r, "preset"))
	if !preset.Valid() {
		http.Error(w, "unknown date preset", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.engine.SetPresetDateRange(preset)
	dr := adapters.MapDomainDateRangeToApi(h.engine.DateRange())
	h.mu.Unlock()

	writeJSON(w, r, http.StatusOK, dr)
}

// SetCustomDateRange reads from/to as YYYY-MM-DD; either may be omitted for
// an open-ended range. An inverted range clears the date filter.
func (h *Handler) SetCustomDateRange(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	h.mu.Lock()
	defer h.mu.Unlock()

	var start, end time.Time
	var err error
	if from != "" {
		if start, err = h.engine.Resolver().ParseDate(from); err != nil {
			http.Error(w, "invalid 'from' date format. Expected format: YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}
	if to != "" {
		if end, err = h.engine.Resolver().ParseDate(to); err != nil {
			http.Error(w, "invalid 'to' date format. Expected format: YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	h.engine.SetCustomDateRange(start, end)
	writeJSON(w, r, http.StatusOK, adapters.MapDomainDateRangeToApi(h.engine.DateRange()))
}

func (h *Handler) ClearDateRange(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.engine.ClearDateRange()
	dr := adapters.MapDomainDateRangeToApi(h.engine.DateRange())
	h.mu.Unlock()

	writeJSON(w, r, http.StatusOK, dr)
}

// filters must be called with mu held.
func (h *Handler) filters() api.Filters {
	return adapters.MapDomainFiltersToApi(h.engine.Filters(), h.engine.HasActiveFilters())
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	logger := zerolog.Ctx(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}
