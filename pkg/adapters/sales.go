package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrMalformedRecord = errors.New("malformed record")

// recordDateLayouts are tried in order; date-only values are read in the
// engine's location.
var recordDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func ParseRecordDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: missing date", ErrMalformedRecord)
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range recordDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrMalformedRecord, value)
}

func MapStoreSaleToDomain(row store.SaleRecord, loc *time.Location) (domain.Record, error) {
	if row.DecodeErr != nil {
		return domain.Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, row.DecodeErr)
	}
	date, err := ParseRecordDate(row.Date, loc)
	if err != nil {
		return domain.Record{}, err
	}
	if !row.Amount.Valid {
		return domain.Record{}, fmt.Errorf("%w: missing amount", ErrMalformedRecord)
	}

	id := row.ID
	if id == "" {
		id = uuid.NewString()
	}
	return domain.Record{
		ID:            id,
		Date:          date,
		Customer:      row.Customer,
		Product:       row.Product,
		Category:      row.Category,
		Amount:        row.Amount.Decimal,
		Quantity:      row.Quantity,
		PaymentMethod: row.PaymentMethod,
		SalesRep:      row.SalesRep,
		Region:        row.Region,
	}, nil
}

// MapStoreSalesToDomain converts raw rows, skipping malformed ones. It returns
// the valid records and the number of rows skipped.
func MapStoreSalesToDomain(ctx context.Context, rows []store.SaleRecord, loc *time.Location) ([]domain.Record, int) {
	logger := zerolog.Ctx(ctx)
	records := make([]domain.Record, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		record, err := MapStoreSaleToDomain(row, loc)
		if err != nil {
			skipped++
			logger.Warn().
				Err(err).
				Int("index", i).
				Str("id", row.ID).
				Msg("skipping sales record")
			continue
		}
		records = append(records, record)
	}
	return records, skipped
}

func MapDomainRecordToStore(record domain.Record) store.SaleRecord {
	return store.SaleRecord{
		ID:            record.ID,
		Date:          record.Date.Format(time.RFC3339),
		Customer:      record.Customer,
		Product:       record.Product,
		Category:      record.Category,
		Amount:        nullDecimal(record.Amount),
		Quantity:      record.Quantity,
		PaymentMethod: record.PaymentMethod,
		SalesRep:      record.SalesRep,
		Region:        record.Region,
	}
}

func MapDomainRecordsToStore(records []domain.Record) []store.SaleRecord {
	rows := make([]store.SaleRecord, 0, len(records))
	for _, r := range records {
		rows = append(rows, MapDomainRecordToStore(r))
	}
	return rows
}
