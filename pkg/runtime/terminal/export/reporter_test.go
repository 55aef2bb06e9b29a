package export

import (
	"bytes"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Title:       "Sales Summary",
		Period:      domain.TimePeriod{Label: "Last 7 Days", Duration: 7},
		TotalAmount: decimal.RequireFromString("1234.5"),
		Currency:    "USD",
		Sections: []domain.ReportSection{{
			Title:   "Top Products",
			Summary: map[string]interface{}{"Records": "12"},
			Details: []domain.ReportDetail{
				{Name: "Desk", Value: "$1,000", Unit: "USD", Description: "1st"},
				{Name: "Lamp", Value: "$235", Unit: "USD", Description: "2nd"},
			},
		}},
	}
}

func TestTableReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableReporter(&buf).Handle(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "Sales Summary (7 days)")
	assert.Contains(t, out, "Period: Last 7 Days")
	assert.Contains(t, out, "Total Amount: USD 1234.50")
	assert.Contains(t, out, "=== Top Products ===")
	assert.Contains(t, out, "Records: 12")
	assert.Contains(t, out, "| Desk ")
	assert.Contains(t, out, "+---")
}

func TestListReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewListReporter(&buf).Handle(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "- Desk: $1,000 USD")
	assert.Contains(t, out, "  1st")
	assert.NotContains(t, out, "+---")
}

func TestNewReporter(t *testing.T) {
	r, err := NewReporter(nil, "")
	require.NoError(t, err)
	assert.IsType(t, &TableReporter{}, r)

	r, err = NewReporter(nil, FormatList)
	require.NoError(t, err)
	assert.IsType(t, &ListReporter{}, r)

	_, err = NewReporter(nil, "xml")
	assert.Error(t, err)
}

func TestReporter_ZeroTotalIsOmitted(t *testing.T) {
	var buf bytes.Buffer
	report := sampleReport()
	report.TotalAmount = decimal.Zero

	require.NoError(t, NewListReporter(&buf).Handle(report))
	assert.NotContains(t, buf.String(), "Total Amount")
}
