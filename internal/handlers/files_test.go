package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/colstats/internal/catalog"
	"github.com/soltixdb/colstats/internal/config"
	"github.com/soltixdb/colstats/internal/logging"
	"github.com/soltixdb/colstats/internal/middleware"
	"github.com/soltixdb/colstats/internal/models"
	"github.com/soltixdb/colstats/internal/statistics"
	"github.com/soltixdb/colstats/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app     *fiber.App
	dataDir string
	catalog *catalog.Catalog
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Server.DataDir = t.TempDir()
	cfg.Catalog.CacheTTL = time.Minute

	testutil.WriteParquetFixture(t, cfg.Server.DataDir, filepath.Join("sales", "2024.parquet"))

	logger := logging.NewNop()
	cat, err := catalog.New(cfg.Catalog, statistics.DefaultOptions(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cat.Close() })

	h := New(logger, cat, *cfg, statistics.DefaultOptions())

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(logger)})
	app.Get("/health", h.Health)
	app.Get("/v1/files/*", h.GetFileStats)
	app.Delete("/v1/files/*", h.InvalidateFile)
	app.Get("/v1/columns", h.GetColumnStats)
	app.Post("/v1/reconstruct", h.Reconstruct)

	return &testEnv{app: app, dataDir: cfg.Server.DataDir, catalog: cat}
}

func (e *testEnv) do(t *testing.T, req *http.Request, out interface{}) int {
	t.Helper()
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func findChunk(chunks []models.ColumnChunkView, rowGroup int, path string) *models.ColumnChunkView {
	for i := range chunks {
		if chunks[i].RowGroup == rowGroup && chunks[i].Path == path {
			return &chunks[i]
		}
	}
	return nil
}

func TestHandler_GetFileStats(t *testing.T) {
	env := newTestEnv(t)

	var resp models.FileStatsResponse
	status := env.do(t, httptest.NewRequest("GET", "/v1/files/sales/2024.parquet", nil), &resp)
	require.Equal(t, fiber.StatusOK, status)

	assert.Equal(t, "sales/2024.parquet", resp.File)
	assert.Equal(t, 2, resp.RowGroups)
	assert.Equal(t, int64(5), resp.NumRows)
	assert.Equal(t, 2, resp.FailedChunks)
	require.Len(t, resp.Chunks, 8)

	price := findChunk(resp.Chunks, 1, "price")
	require.NotNil(t, price)
	require.NotNil(t, price.Statistics)
	assert.Equal(t, "Decimal(9, 2)", price.DataType)
	assert.Equal(t, "primitive", price.Statistics.Kind)
	assert.Equal(t, "0.01", *price.Statistics.Min)
	assert.Equal(t, "999.99", *price.Statistics.Max)
	assert.Nil(t, price.Error)

	opt := findChunk(resp.Chunks, 0, "opt")
	require.NotNil(t, opt)
	require.NotNil(t, opt.Statistics)
	assert.Equal(t, "fixed_len", opt.Statistics.Kind)
	assert.Equal(t, "FixedSizeBinary(2)", opt.Statistics.DataType)
	assert.Equal(t, int64(1), *opt.Statistics.NullCount)
	assert.Equal(t, "0010", *opt.Statistics.Min)

	wide := findChunk(resp.Chunks, 0, "wide")
	require.NotNil(t, wide)
	assert.Nil(t, wide.Statistics)
	require.NotNil(t, wide.Error)
	assert.Equal(t, "EXTERNAL_FORMAT", wide.Error.Code)
}

func TestHandler_GetFileStats_Errors(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.dataDir, "bad.parquet"), []byte("nope"), 0644))

	tests := []struct {
		name   string
		url    string
		status int
		code   string
	}{
		{"missing file", "/v1/files/sales/2023.parquet", fiber.StatusNotFound, "FILE_NOT_FOUND"},
		{"not parquet", "/v1/files/bad.parquet", fiber.StatusUnprocessableEntity, "INVALID_FILE"},
		{"directory", "/v1/files/sales", fiber.StatusUnprocessableEntity, "INVALID_FILE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp models.ErrorResponse
			status := env.do(t, httptest.NewRequest("GET", tt.url, nil), &resp)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandler_GetColumnStats(t *testing.T) {
	env := newTestEnv(t)

	var resp models.ColumnStatsResponse
	status := env.do(t, httptest.NewRequest("GET", "/v1/columns?file=sales/2024.parquet&column=hash", nil), &resp)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "hash", resp.Column)
	require.Len(t, resp.Chunks, 2)
	assert.Equal(t, "0000000000000001", *resp.Chunks[0].Statistics.Min)
	assert.Equal(t, "2000000000000000", *resp.Chunks[1].Statistics.Max)

	tests := []struct {
		name   string
		url    string
		status int
		code   string
	}{
		{"missing column param", "/v1/columns?file=sales/2024.parquet", fiber.StatusBadRequest, "INVALID_REQUEST"},
		{"missing file param", "/v1/columns?column=hash", fiber.StatusBadRequest, "INVALID_REQUEST"},
		{"non fixed len column", "/v1/columns?file=sales/2024.parquet&column=id", fiber.StatusNotFound, "COLUMN_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errResp models.ErrorResponse
			status := env.do(t, httptest.NewRequest("GET", tt.url, nil), &errResp)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, errResp.Error.Code)
		})
	}
}

func TestHandler_InvalidateFile(t *testing.T) {
	env := newTestEnv(t)

	status := env.do(t, httptest.NewRequest("GET", "/v1/files/sales/2024.parquet", nil), nil)
	require.Equal(t, fiber.StatusOK, status)

	status = env.do(t, httptest.NewRequest("DELETE", "/v1/files/sales/2024.parquet", nil), nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	var health models.HealthResponse
	status = env.do(t, httptest.NewRequest("GET", "/health", nil), &health)
	require.Equal(t, fiber.StatusOK, status)
	cache, ok := health.Catalog["cache"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(0), cache["total_entries"])
	assert.Equal(t, float64(1), health.Catalog["collected"])
}
