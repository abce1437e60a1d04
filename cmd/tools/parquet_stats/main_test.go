package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/soltixdb/colstats/internal/catalog"
	"github.com/soltixdb/colstats/internal/config"
	"github.com/soltixdb/colstats/internal/logging"
	"github.com/soltixdb/colstats/internal/statistics"
	"github.com/soltixdb/colstats/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectFixture(t *testing.T) *catalog.FileStatistics {
	t.Helper()
	path := testutil.WriteParquetFixture(t, t.TempDir(), "fixture.parquet")

	cat, err := catalog.New(config.CatalogConfig{Workers: 2, CacheTTL: time.Minute},
		statistics.DefaultOptions(), logging.NewNop())
	require.NoError(t, err)
	defer cat.Close()

	fs, err := cat.Collect(context.Background(), path)
	require.NoError(t, err)
	return fs
}

func TestRow(t *testing.T) {
	fs := collectFixture(t)

	price := fs.Column("price")
	require.Len(t, price, 2)
	assert.Equal(t, []string{"0", "price", "Decimal(9, 2)", "3", "0", "-", "1.00", "150.00", ""}, row(&price[0]))

	wide := fs.Column("wide")
	require.NotEmpty(t, wide)
	r := row(&wide[0])
	assert.Equal(t, "", r[6])
	assert.Contains(t, r[8], "EXTERNAL_FORMAT")
}

func TestWriteTable(t *testing.T) {
	fs := collectFixture(t)

	var buf bytes.Buffer
	writeTable(&buf, fs.Column("hash"))
	out := buf.String()
	assert.Contains(t, out, "ROW GROUP")
	assert.Contains(t, out, "0102030405060708")
	assert.Contains(t, out, "2000000000000000")
}

func TestWriteJSON(t *testing.T) {
	fs := collectFixture(t)

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, fs, fs.Column("opt")))

	var decoded struct {
		Path    string `json:"path"`
		Columns []struct {
			Path       []string `json:"path"`
			Statistics struct {
				Min string `json:"min"`
			} `json:"statistics"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, fs.Path, decoded.Path)
	require.Len(t, decoded.Columns, 2)
	assert.Equal(t, []string{"opt"}, decoded.Columns[0].Path)
	assert.Equal(t, "0010", decoded.Columns[0].Statistics.Min)
	assert.Len(t, fs.Columns, 8, "writeJSON must not modify the collected statistics")
}
