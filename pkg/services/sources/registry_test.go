package sources

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	rows   []store.SaleRecord
	closed bool
}

func (s *staticSource) Load(context.Context) ([]store.SaleRecord, error) { return s.rows, nil }
func (s *staticSource) Close() error                                     { s.closed = true; return nil }

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()
	src := &staticSource{rows: []store.SaleRecord{{ID: "1"}}}

	require.NoError(t, r.Register("memory", func(context.Context, domain.SourceProfile) (Source, error) {
		return src, nil
	}))
	require.NoError(t, r.Register("failing", func(context.Context, domain.SourceProfile) (Source, error) {
		return nil, errors.New("no route to host")
	}))

	assert.Error(t, r.Register("memory", func(context.Context, domain.SourceProfile) (Source, error) { return nil, nil }))
	assert.Error(t, r.Register("", func(context.Context, domain.SourceProfile) (Source, error) { return nil, nil }))
	assert.Error(t, r.Register("nil", nil))

	assert.Equal(t, []domain.SourceType{"failing", "memory"}, r.ListTypes())

	opened, err := r.Open(ctx, domain.SourceProfile{Name: "m", Type: "memory"})
	require.NoError(t, err)
	rows, err := opened.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	require.NoError(t, opened.Close())
	assert.True(t, src.closed)

	_, err = r.Open(ctx, domain.SourceProfile{Name: "f", Type: "failing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing:f")

	_, err = r.Open(ctx, domain.SourceProfile{Name: "x", Type: "ftp"})
	assert.Error(t, err)
}

func TestNewDefaultRegistry(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	assert.Equal(t, []domain.SourceType{
		domain.SourceTypeDatabricks,
		domain.SourceTypeDuckDB,
		domain.SourceTypeFile,
		domain.SourceTypeS3,
		domain.SourceTypeSnowflake,
	}, r.ListTypes())
}

func TestFileFactory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"1","date":"2025-03-01","amount":1}]`), 0o600))

	src, err := FileFactory(context.Background(), domain.SourceProfile{Type: domain.SourceTypeFile, Path: path})
	require.NoError(t, err)
	defer src.Close()

	rows, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = FileFactory(context.Background(), domain.SourceProfile{Type: domain.SourceTypeFile})
	assert.Error(t, err)
}

func TestDuckDBFactory(t *testing.T) {
	src, err := DuckDBFactory(context.Background(), domain.SourceProfile{Type: domain.SourceTypeDuckDB, Path: ":memory:"})
	require.NoError(t, err)

	rows, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, src.Close())
}

func TestNewWarehouseSource(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectQuery("FROM sales").WillReturnRows(sqlmock.NewRows([]string{
		"id", "sale_date", "customer", "product", "category",
		"amount", "quantity", "payment_method", "sales_rep", "region",
	}).AddRow("1", "2025-03-01", "Acme", "Desk", "Furniture", "10", int64(1), "Card", "Ana", "North"))
	mock.ExpectClose()

	src, err := NewWarehouseSource(db, "sales")
	require.NoError(t, err)

	rows, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	require.NoError(t, src.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
