package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profiles = `
[demo]
type = file
path = ./data/sales.json

[archive]
type = s3
bucket = sales-archive
key = 2025/sales.json
region = eu-west-1

[lake]
type = databricks
host = dbc-123.cloud.databricks.com
token = dapi-secret
table = main.sales.transactions

[warehouse]
type = snowflake
account = acme-xy123
user = analyst
password = hunter2
database = SALES
warehouse = COMPUTE_WH

[local]
type = duckdb
path = sales.duckdb

[broken]
type = s3
bucket = only-bucket

[mystery]
type = ftp
`

func TestRegistry_GetProfiles(t *testing.T) {
	r, err := NewRegistryFromBytes([]byte(profiles))
	require.NoError(t, err)

	names, err := r.GetProfiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"demo", "archive", "lake", "warehouse", "local", "broken", "mystery"}, names)
}

func TestRegistry_GetProfile(t *testing.T) {
	ctx := context.Background()
	r, err := NewRegistryFromBytes([]byte(profiles))
	require.NoError(t, err)

	tests := []struct {
		name    string
		check   func(t *testing.T, p *domain.SourceProfile)
		wantErr string
	}{
		{
			name: "demo",
			check: func(t *testing.T, p *domain.SourceProfile) {
				assert.Equal(t, domain.SourceTypeFile, p.Type)
				assert.Equal(t, "./data/sales.json", p.Path)
				assert.Equal(t, "file:demo", p.String())
			},
		},
		{
			name: "archive",
			check: func(t *testing.T, p *domain.SourceProfile) {
				assert.Equal(t, "sales-archive", p.Bucket)
				assert.Equal(t, "2025/sales.json", p.Key)
				assert.Equal(t, "eu-west-1", p.Region)
			},
		},
		{
			name: "lake",
			check: func(t *testing.T, p *domain.SourceProfile) {
				assert.Equal(t, "token:dapi-secret@dbc-123.cloud.databricks.com/sql/1.0/warehouses/default", p.DSN)
				assert.Equal(t, "main.sales.transactions", p.Table)
			},
		},
		{
			name: "warehouse",
			check: func(t *testing.T, p *domain.SourceProfile) {
				assert.True(t, strings.HasPrefix(p.DSN, "analyst:hunter2@acme-xy123"), p.DSN)
				assert.Equal(t, "sales", p.Table)
			},
		},
		{name: "broken", wantErr: "bucket and key are required"},
		{name: "mystery", wantErr: "unknown source type"},
		{name: "nope", wantErr: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := r.GetProfile(ctx, tt.name)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestNewRegistry_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.ini")
	require.NoError(t, os.WriteFile(path, []byte(profiles), 0o644))

	r, err := NewRegistry(path)
	require.NoError(t, err)

	p, err := r.GetProfile(context.Background(), "local")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceTypeDuckDB, p.Type)
}
