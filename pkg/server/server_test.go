package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/daterange"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sale(id, day, category, region, rep string, amount int64) domain.Record {
	d, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	if err != nil {
		panic(err)
	}
	return domain.Record{
		ID:            id,
		Date:          d,
		Customer:      "Customer " + id,
		Product:       "Product " + category,
		Category:      category,
		Amount:        decimal.NewFromInt(amount),
		Quantity:      1,
		PaymentMethod: "Card",
		SalesRep:      rep,
		Region:        region,
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))

	engine, err := dashboard.New(dashboard.Options{
		Logger:   logger,
		Clock:    daterange.FixedClock(time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)),
		Location: time.UTC,
	})
	require.NoError(t, err)
	engine.SetRecords([]domain.Record{
		sale("1", "2025-02-20", "A", "North", "Ana", 100),
		sale("2", "2025-02-25", "B", "South", "Ben", 50),
		sale("3", "2025-03-01", "A", "North", "Ana", 300),
		sale("4", "2025-03-05", "B", "South", "Ben", 200),
		sale("5", "2025-03-10", "A", "East", "Ben", 100),
	})

	router := ConfigureRouter(Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Engine: engine,
			Logger: logger,
		},
	})
	testServer := httptest.NewServer(router)
	t.Cleanup(testServer.Close)
	return testServer
}

func TestWebAPI_ReadEndpoints(t *testing.T) {
	testServer := newTestServer(t)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "GetStatus",
			path:           "/api/v1/status",
			expectedStatus: http.StatusOK,
			expected:       handlersStatus(5),
			parseResponse:  unmarshalResponse[map[string]interface{}](),
		},
		{
			name:           "GetFilterOptions",
			path:           "/api/v1/filter-options",
			expectedStatus: http.StatusOK,
			expected: api.FilterOptions{
				Categories:     []string{"A", "B"},
				Regions:        []string{"East", "North", "South"},
				SalesReps:      []string{"Ana", "Ben"},
				PaymentMethods: []string{"Card"},
			},
			parseResponse: unmarshalResponse[api.FilterOptions](),
		},
		{
			name:           "GetFilters",
			path:           "/api/v1/filters",
			expectedStatus: http.StatusOK,
			expected: api.Filters{
				DateRange:      api.DateRange{Display: "All Time"},
				Categories:     []string{},
				Regions:        []string{},
				SalesReps:      []string{},
				PaymentMethods: []string{},
			},
			parseResponse: unmarshalResponse[api.Filters](),
		},
		{
			name:           "ListPresets",
			path:           "/api/v1/date-range/presets",
			expectedStatus: http.StatusOK,
			expected:       len(daterange.Presets()),
			parseResponse: func(data []byte) (interface{}, error) {
				var presets []map[string]string
				err := json.Unmarshal(data, &presets)
				return len(presets), err
			},
		},
		{
			name:           "UnknownRoute",
			path:           "/api/v1/unknown",
			expectedStatus: http.StatusNotFound,
			expected:       "404 page not found\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(testServer.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			actual, err := tt.parseResponse(body)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestWebAPI_Metrics(t *testing.T) {
	testServer := newTestServer(t)

	metrics := getJSON[api.Metrics](t, testServer.URL+"/api/v1/metrics")
	assert.Equal(t, 5, metrics.Summary.Count)
	assert.Equal(t, "750", metrics.Summary.TotalAmount)
	assert.Equal(t, "150", metrics.Summary.AverageAmount)
	assert.Equal(t, "500", metrics.Summary.GroupedTotals["category"]["A"])
	require.NotEmpty(t, metrics.Insights)
	assert.Equal(t, "Top Performing Category", metrics.Insights[0].Title)
	assert.Len(t, metrics.DailySeries, 5)
	assert.Len(t, metrics.MonthlySeries, 2)
}

func TestWebAPI_FilterMutations(t *testing.T) {
	testServer := newTestServer(t)

	t.Run("patch narrows sales", func(t *testing.T) {
		resp := send(t, http.MethodPatch, testServer.URL+"/api/v1/filters", `{"categories":["A"]}`)
		assert.Equal(t, http.StatusOK, resp.status)

		var filters api.Filters
		require.NoError(t, json.Unmarshal(resp.body, &filters))
		assert.True(t, filters.Active)
		assert.Equal(t, []string{"A"}, filters.Categories)

		sales := getJSON[[]api.Sale](t, testServer.URL+"/api/v1/sales")
		assert.Len(t, sales, 3)
	})

	t.Run("toggle adds a region", func(t *testing.T) {
		resp := send(t, http.MethodPost, testServer.URL+"/api/v1/filters/toggle", `{"key":"regions","value":"North"}`)
		assert.Equal(t, http.StatusOK, resp.status)

		sales := getJSON[[]api.Sale](t, testServer.URL+"/api/v1/sales")
		require.Len(t, sales, 2)
		assert.Equal(t, "1", sales[0].ID)
		assert.Equal(t, "3", sales[1].ID)
	})

	t.Run("toggle rejects scalar keys", func(t *testing.T) {
		resp := send(t, http.MethodPost, testServer.URL+"/api/v1/filters/toggle", `{"key":"searchTerm","value":"x"}`)
		assert.Equal(t, http.StatusBadRequest, resp.status)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := send(t, http.MethodPatch, testServer.URL+"/api/v1/filters", `{"categories":`)
		assert.Equal(t, http.StatusBadRequest, resp.status)
		assert.Equal(t, "invalid filters body\n", string(resp.body))
	})

	t.Run("reset restores defaults", func(t *testing.T) {
		resp := send(t, http.MethodPost, testServer.URL+"/api/v1/filters/reset", "")
		assert.Equal(t, http.StatusOK, resp.status)

		var filters api.Filters
		require.NoError(t, json.Unmarshal(resp.body, &filters))
		assert.False(t, filters.Active)

		sales := getJSON[[]api.Sale](t, testServer.URL+"/api/v1/sales")
		assert.Len(t, sales, 5)
	})
}

func TestWebAPI_DateRange(t *testing.T) {
	testServer := newTestServer(t)

	t.Run("unknown preset", func(t *testing.T) {
		resp := send(t, http.MethodPut, testServer.URL+"/api/v1/date-range/preset/next_week", "")
		assert.Equal(t, http.StatusBadRequest, resp.status)
		assert.Equal(t, "unknown date preset\n", string(resp.body))
	})

	t.Run("preset", func(t *testing.T) {
		resp := send(t, http.MethodPut, testServer.URL+"/api/v1/date-range/preset/this_month", "")
		assert.Equal(t, http.StatusOK, resp.status)

		var dr api.DateRange
		require.NoError(t, json.Unmarshal(resp.body, &dr))
		require.NotNil(t, dr.StartDate)
		require.NotNil(t, dr.Label)
		assert.Equal(t, "2025-03-01", *dr.StartDate)
		assert.Equal(t, "This Month", *dr.Label)
	})

	t.Run("invalid custom date", func(t *testing.T) {
		resp := send(t, http.MethodPut, testServer.URL+"/api/v1/date-range/custom?from=invalid-date", "")
		assert.Equal(t, http.StatusBadRequest, resp.status)
		assert.Equal(t, "invalid 'from' date format. Expected format: YYYY-MM-DD\n", string(resp.body))
	})

	t.Run("custom range drives comparison", func(t *testing.T) {
		resp := send(t, http.MethodPut, testServer.URL+"/api/v1/date-range/custom?from=2025-03-01&to=2025-03-10", "")
		assert.Equal(t, http.StatusOK, resp.status)

		comparison := getJSON[api.Comparison](t, testServer.URL+"/api/v1/comparison")
		assert.True(t, comparison.Valid)
		require.NotNil(t, comparison.PreviousWindow.StartDate)
		assert.Equal(t, "2025-02-19", *comparison.PreviousWindow.StartDate)
		assert.Equal(t, "150", comparison.PreviousSummary.TotalAmount)
		assert.InDelta(t, 300.0, comparison.PercentChange["totalAmount"], 1e-9)
	})

	t.Run("inverted custom range clears", func(t *testing.T) {
		resp := send(t, http.MethodPut, testServer.URL+"/api/v1/date-range/custom?from=2025-03-10&to=2025-03-01", "")
		assert.Equal(t, http.StatusOK, resp.status)

		var dr api.DateRange
		require.NoError(t, json.Unmarshal(resp.body, &dr))
		assert.Nil(t, dr.StartDate)
		assert.Nil(t, dr.EndDate)
	})

	t.Run("clear", func(t *testing.T) {
		send(t, http.MethodPut, testServer.URL+"/api/v1/date-range/preset/this_month", "")
		resp := send(t, http.MethodDelete, testServer.URL+"/api/v1/date-range", "")
		assert.Equal(t, http.StatusOK, resp.status)

		comparison := getJSON[api.Comparison](t, testServer.URL+"/api/v1/comparison")
		assert.False(t, comparison.Valid)
	})
}

type response struct {
	status int
	body   []byte
}

func send(t *testing.T, method, url, body string) response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, body: data}
}

func getJSON[T any](t *testing.T, url string) T {
	t.Helper()
	resp := send(t, http.MethodGet, url, "")
	require.Equal(t, http.StatusOK, resp.status)

	var out T
	require.NoError(t, json.Unmarshal(resp.body, &out))
	return out
}

func handlersStatus(records int) map[string]interface{} {
	return map[string]interface{}{
		"records": float64(records),
		"skipped": float64(0),
		"version": float64(0),
	}
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var result T
		err := json.Unmarshal(data, &result)
		return result, err
	}
}
