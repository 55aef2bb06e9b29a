package sales

import (
	"context"
	"database/sql"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{
		db:    db,
		store: s,
	}
}

func amount(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func sampleRows() []store.SaleRecord {
	return []store.SaleRecord{
		{
			ID: "s2", Date: "2025-03-02T18:45:00+05:00", Customer: "Globex", Product: "Lamp",
			Category: "Lighting", Amount: amount("99.95"), Quantity: 3,
			PaymentMethod: "Cash", SalesRep: "Ben", Region: "South",
		},
		{
			ID: "s1", Date: "2025-03-01", Customer: "Acme", Product: "Desk",
			Category: "Furniture", Amount: amount("250.5"), Quantity: 1,
			PaymentMethod: "Card", SalesRep: "Ana", Region: "North",
		},
	}
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(nil)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestSalesStore_AddAndLoad(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, sampleRows()))
	require.NoError(t, f.store.Add(ctx, nil))

	records, err := f.store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "s1", records[0].ID)
	assert.Equal(t, "2025-03-01T00:00:00", records[0].Date)
	assert.True(t, records[0].Amount.Decimal.Equal(decimal.RequireFromString("250.5")))

	// The wall clock of the original timestamp survives.
	assert.Equal(t, "2025-03-02T18:45:00", records[1].Date)
	assert.Equal(t, 3, records[1].Quantity)
	assert.Equal(t, "Cash", records[1].PaymentMethod)

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		err := f.store.Add(ctx, sampleRows()[:1])
		assert.Error(t, err)
	})

	t.Run("invalid date", func(t *testing.T) {
		err := f.store.Add(ctx, []store.SaleRecord{{ID: "bad", Date: "soon"}})
		assert.Error(t, err)
	})
}

func TestSalesStore_NullAmount(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, []store.SaleRecord{{ID: "n1", Date: "2025-03-01"}}))

	records, err := f.store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Amount.Valid)
}

func TestSalesStore_Replace(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	run, err := f.store.LastIngest(ctx)
	require.NoError(t, err)
	assert.Nil(t, run)

	require.NoError(t, f.store.Add(ctx, []store.SaleRecord{{ID: "old", Date: "2024-01-01", Amount: amount("1")}}))
	require.NoError(t, f.store.Replace(ctx, "file:demo", sampleRows(), 4))

	records, err := f.store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "s1", records[0].ID)

	stats, err := f.store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.RecordsCount)
	assert.Equal(t, "2025-03-01", stats.FirstDate)
	assert.Equal(t, "2025-03-02", stats.LastDate)

	run, err = f.store.LastIngest(ctx)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "file:demo", run.Source)
	assert.Equal(t, int64(2), run.Records)
	assert.Equal(t, int64(4), run.Skipped)
	require.NotNil(t, run.LastSaleAt)
	assert.Equal(t, 2, run.LastSaleAt.Day())

	t.Run("failed replace keeps previous data", func(t *testing.T) {
		dup := append(sampleRows(), sampleRows()[0])
		err := f.store.Replace(ctx, "file:broken", dup, 0)
		require.Error(t, err)

		records, err := f.store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}

func TestSalesStore_StatsEmpty(t *testing.T) {
	f := setupFixture(t)

	stats, err := f.store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.RecordsCount)
	assert.Empty(t, stats.FirstDate)
}
