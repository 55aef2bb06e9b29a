package sources

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/sales"
	"github.com/de-tools/sales-atlas/pkg/store/file"
	s3store "github.com/de-tools/sales-atlas/pkg/store/s3"
	sqlstore "github.com/de-tools/sales-atlas/pkg/store/sql"
)

type loader interface {
	Load(ctx context.Context) ([]store.SaleRecord, error)
}

type closingSource struct {
	loader
	close func() error
}

func (s closingSource) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewDefaultRegistry registers a factory for every supported source type.
func NewDefaultRegistry() (Registry, error) {
	r := NewRegistry()
	for sourceType, factory := range map[domain.SourceType]Factory{
		domain.SourceTypeFile:       FileFactory,
		domain.SourceTypeS3:         S3Factory,
		domain.SourceTypeDuckDB:     DuckDBFactory,
		domain.SourceTypeDatabricks: WarehouseFactory(sqlstore.DriverDatabricks),
		domain.SourceTypeSnowflake:  WarehouseFactory(sqlstore.DriverSnowflake),
	} {
		if err := r.Register(sourceType, factory); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func FileFactory(_ context.Context, profile domain.SourceProfile) (Source, error) {
	if profile.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return closingSource{loader: file.NewSource(profile.Path)}, nil
}

func S3Factory(ctx context.Context, profile domain.SourceProfile) (Source, error) {
	client, err := s3store.NewClient(ctx, profile.Region, profile.AWSProfile)
	if err != nil {
		return nil, err
	}
	return closingSource{loader: s3store.NewSource(client, profile.Bucket, profile.Key)}, nil
}

func DuckDBFactory(_ context.Context, profile domain.SourceProfile) (Source, error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: profile.Path})
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", profile.Path, err)
	}
	st, err := sales.NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return closingSource{loader: st, close: db.Close}, nil
}

// WarehouseFactory opens a SQL warehouse source using driver.
func WarehouseFactory(driver string) Factory {
	return func(_ context.Context, profile domain.SourceProfile) (Source, error) {
		db, err := sqlstore.Open(driver, profile.DSN)
		if err != nil {
			return nil, err
		}
		return NewWarehouseSource(db, profile.Table)
	}
}

// NewWarehouseSource wraps an open connection; closing the source closes db.
func NewWarehouseSource(db *sql.DB, table string) (Source, error) {
	src, err := sqlstore.NewSalesSource(db, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	return closingSource{loader: src, close: db.Close}, nil
}
