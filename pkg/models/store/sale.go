package store

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is a raw sales row as delivered by a source. Fields are not
// validated; Date is an ISO 8601 date or timestamp string. DecodeErr is set
// by sources that could not decode the row into these fields.
type SaleRecord struct {
	ID            string              `json:"id"`
	Date          string              `json:"date"`
	Customer      string              `json:"customer"`
	Product       string              `json:"product"`
	Category      string              `json:"category"`
	Amount        decimal.NullDecimal `json:"amount"`
	Quantity      int                 `json:"quantity"`
	PaymentMethod string              `json:"paymentMethod"`
	SalesRep      string              `json:"salesRep"`
	Region        string              `json:"region"`

	DecodeErr error `json:"-"`
}

// SalesDocument is the envelope used by JSON dataset files.
type SalesDocument struct {
	Sales []json.RawMessage `json:"sales"`
}

type SalesStats struct {
	RecordsCount int64
	FirstDate    string
	LastDate     string
}

// IngestRun records one copy of a source into the embedded store.
type IngestRun struct {
	Source     string
	CreatedAt  time.Time
	Records    int64
	Skipped    int64
	LastSaleAt *time.Time
}
