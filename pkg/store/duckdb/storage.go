package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const IngestRunsSchema = `
	CREATE TABLE IF NOT EXISTS ingest_runs (
		source VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		records BIGINT NOT NULL,
		skipped BIGINT NOT NULL,
		last_sale_at TIMESTAMP NULL
	);
`
const SalesTableSchema = `
	CREATE TABLE IF NOT EXISTS sales_records (
		id VARCHAR NOT NULL,
		sale_date TIMESTAMP NOT NULL,
		customer VARCHAR,
		product VARCHAR,
		category VARCHAR,
		amount DECIMAL(18, 4),
		quantity INTEGER,
		payment_method VARCHAR,
		sales_rep VARCHAR,
		region VARCHAR,
		PRIMARY KEY (id)
	);
`

var bootQueries = []string{
	IngestRunsSchema,
	SalesTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
