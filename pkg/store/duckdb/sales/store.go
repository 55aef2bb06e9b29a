package sales

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const wallClockLayout = "2006-01-02T15:04:05"

var acceptedDateLayouts = []string{
	time.RFC3339Nano,
	wallClockLayout,
	"2006-01-02",
}

// Store keeps ingested sales in DuckDB. Dates are stored as wall-clock
// timestamps so that reading them back in any location yields the same
// calendar day.
type Store interface {
	Add(ctx context.Context, records []store.SaleRecord) error
	Replace(ctx context.Context, source string, records []store.SaleRecord, skipped int) error
	Load(ctx context.Context) ([]store.SaleRecord, error)
	Stats(ctx context.Context) (*store.SalesStats, error)
	LastIngest(ctx context.Context) (*store.IngestRun, error)
}

type salesStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &salesStore{
		db: db,
	}, nil
}

func (s *salesStore) Add(ctx context.Context, records []store.SaleRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO sales_records (
			id, sale_date, customer, product, category, amount,
			quantity, payment_method, sales_rep, region
		) VALUES (
			?, ?, ?, ?, ?, CAST(CAST(? AS VARCHAR) AS DECIMAL(18, 4)), ?, ?, ?, ?
		)`

	stmt, err := duckdb.Conn(ctx, s.db).PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		date, err := wallClock(record.Date)
		if err != nil {
			return fmt.Errorf("record %s: %w", record.ID, err)
		}

		var amount interface{}
		if record.Amount.Valid {
			amount = record.Amount.Decimal.String()
		}

		_, err = stmt.ExecContext(ctx,
			record.ID,
			date,
			record.Customer,
			record.Product,
			record.Category,
			amount,
			record.Quantity,
			record.PaymentMethod,
			record.SalesRep,
			record.Region,
		)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	return nil
}

// Replace swaps the stored dataset for records in one transaction and logs
// the run in ingest_runs.
func (s *salesStore) Replace(ctx context.Context, source string, records []store.SaleRecord, skipped int) error {
	err := duckdb.InTransaction(ctx, s.db, func(ctx context.Context) error {
		conn := duckdb.Conn(ctx, s.db)

		if _, err := conn.ExecContext(ctx, `DELETE FROM sales_records`); err != nil {
			return fmt.Errorf("clear sales: %w", err)
		}
		if err := s.Add(ctx, records); err != nil {
			return err
		}

		var lastSale sql.NullTime
		if err := conn.QueryRowContext(ctx, `SELECT MAX(sale_date) FROM sales_records`).Scan(&lastSale); err != nil {
			return fmt.Errorf("read last sale: %w", err)
		}
		_, err := conn.ExecContext(ctx,
			`INSERT INTO ingest_runs (source, records, skipped, last_sale_at) VALUES (?, ?, ?, ?)`,
			source, len(records), skipped, lastSale,
		)
		if err != nil {
			return fmt.Errorf("record ingest run: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ingest %s: %w", source, err)
	}

	zerolog.Ctx(ctx).Info().Str("source", source).Int("records", len(records)).Msg("sales ingested")
	return nil
}

func (s *salesStore) Load(ctx context.Context) ([]store.SaleRecord, error) {
	query := `
		SELECT
			id,
			strftime(sale_date, '%Y-%m-%dT%H:%M:%S'),
			customer,
			product,
			category,
			CAST(amount AS VARCHAR),
			quantity,
			payment_method,
			sales_rep,
			region
		FROM sales_records
		ORDER BY sale_date, id
	`
	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()
	return scanSalesRows(rows)
}

func (s *salesStore) Stats(ctx context.Context) (*store.SalesStats, error) {
	query := `
		SELECT
			COUNT(*),
			strftime(MIN(sale_date), '%Y-%m-%d'),
			strftime(MAX(sale_date), '%Y-%m-%d')
		FROM sales_records
	`
	var total int64
	var first, last sql.NullString
	if err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, query).Scan(&total, &first, &last); err != nil {
		return nil, fmt.Errorf("get sales stats: %w", err)
	}
	return &store.SalesStats{
		RecordsCount: total,
		FirstDate:    first.String,
		LastDate:     last.String,
	}, nil
}

// LastIngest returns the most recent ingest run, or nil when none exists.
func (s *salesStore) LastIngest(ctx context.Context) (*store.IngestRun, error) {
	query := `
		SELECT source, created_at, records, skipped, last_sale_at
		FROM ingest_runs
		ORDER BY created_at DESC
		LIMIT 1
	`
	var run store.IngestRun
	var lastSale sql.NullTime
	err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, query).Scan(&run.Source, &run.CreatedAt, &run.Records, &run.Skipped, &lastSale)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last ingest: %w", err)
	}
	if lastSale.Valid {
		t := lastSale.Time
		run.LastSaleAt = &t
	}
	return &run, nil
}

func scanSalesRows(rows *sql.Rows) ([]store.SaleRecord, error) {
	records := make([]store.SaleRecord, 0)
	for rows.Next() {
		var (
			id, date                        string
			customer, product, category     sql.NullString
			paymentMethod, salesRep, region sql.NullString
			amount                          decimal.NullDecimal
			quantity                        sql.NullInt64
		)
		if err := rows.Scan(
			&id, &date, &customer, &product, &category,
			&amount, &quantity, &paymentMethod, &salesRep, &region,
		); err != nil {
			return nil, err
		}
		records = append(records, store.SaleRecord{
			ID:            id,
			Date:          date,
			Customer:      customer.String,
			Product:       product.String,
			Category:      category.String,
			Amount:        amount,
			Quantity:      int(quantity.Int64),
			PaymentMethod: paymentMethod.String,
			SalesRep:      salesRep.String,
			Region:        region.String,
		})
	}
	return records, rows.Err()
}

func wallClock(value string) (time.Time, error) {
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid sale date %q", value)
}
