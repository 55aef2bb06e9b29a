package sql

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/databricks/databricks-sql-go"
	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	_ "github.com/snowflakedb/gosnowflake"
)

const (
	DriverDatabricks = "databricks"
	DriverSnowflake  = "snowflake"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*){0,2}$`)

// Open connects to a warehouse with one of the registered drivers.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverDatabricks, DriverSnowflake:
	default:
		return nil, fmt.Errorf("unsupported warehouse driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", driver, err)
	}
	return db, nil
}

// SalesSource reads sales rows from a warehouse table with the columns
// id, sale_date, customer, product, category, amount, quantity,
// payment_method, sales_rep, region.
type SalesSource interface {
	Load(ctx context.Context) ([]store.SaleRecord, error)
	Table() string
}

type salesSource struct {
	db    *sql.DB
	table string
}

func NewSalesSource(db *sql.DB, table string) (SalesSource, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &salesSource{
		db:    db,
		table: table,
	}, nil
}

func (s *salesSource) Table() string {
	return s.table
}

func (s *salesSource) Load(ctx context.Context) ([]store.SaleRecord, error) {
	logger := zerolog.Ctx(ctx)
	query := fmt.Sprintf(`
		SELECT
			id,
			sale_date,
			customer,
			product,
			category,
			amount,
			quantity,
			payment_method,
			sales_rep,
			region
		FROM %s
		ORDER BY sale_date
	`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s sales query failed: %w", s.table, err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close sales query rows")
		}
	}(rows)

	records := make([]store.SaleRecord, 0)
	for rows.Next() {
		var (
			id, date, customer, product, category sql.NullString
			paymentMethod, salesRep, region       sql.NullString
			amount                                decimal.NullDecimal
			quantity                              sql.NullInt64
		)
		if err := rows.Scan(
			&id, &date, &customer, &product, &category,
			&amount, &quantity, &paymentMethod, &salesRep, &region,
		); err != nil {
			return nil, fmt.Errorf("scan sales row: %w", err)
		}

		records = append(records, store.SaleRecord{
			ID:            id.String,
			Date:          date.String,
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales rows: %w", err)
	}

	logger.Debug().Str("table", s.table).Int("records", len(records)).Msg("read warehouse sales")
	return records, nil
}
