package handlers

import (
	"context"
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/colstats/internal/catalog"
	"github.com/soltixdb/colstats/internal/logging"
	"github.com/soltixdb/colstats/internal/models"
)

// GetFileStats returns the statistics of every fixed-len column chunk of a file under
// the data directory
func (h *Handler) GetFileStats(c *fiber.Ctx) error {
	name := c.Params("*")

	fs, err := h.collect(c, name)
	if err != nil {
		return err
	}

	resp := models.FileStatsResponse{
		File:         name,
		Size:         fs.Size,
		NumRows:      fs.NumRows,
		RowGroups:    fs.RowGroups,
		FailedChunks: fs.Failed(),
		Chunks:       make([]models.ColumnChunkView, 0, len(fs.Columns)),
	}
	for i := range fs.Columns {
		resp.Chunks = append(resp.Chunks, chunkView(&fs.Columns[i]))
	}
	return c.JSON(resp)
}

// GetColumnStats returns the statistics of one column, identified by its dotted path,
// in every row group of a file
func (h *Handler) GetColumnStats(c *fiber.Ctx) error {
	name := c.Query("file")
	column := c.Query("column")
	if column == "" {
		return models.NewAPIError(fiber.StatusBadRequest, "INVALID_REQUEST", "column query parameter is required")
	}

	fs, err := h.collect(c, name)
	if err != nil {
		return err
	}

	entries := fs.Column(column)
	if len(entries) == 0 {
		return models.NewAPIError(fiber.StatusNotFound, "COLUMN_NOT_FOUND",
			"no fixed len byte array column "+column+" in "+name)
	}

	resp := models.ColumnStatsResponse{
		File:   name,
		Column: column,
		Chunks: make([]models.ColumnChunkView, 0, len(entries)),
	}
	for i := range entries {
		resp.Chunks = append(resp.Chunks, chunkView(&entries[i]))
	}
	return c.JSON(resp)
}

// InvalidateFile drops the cached and persisted statistics of a file
func (h *Handler) InvalidateFile(c *fiber.Ctx) error {
	path, err := h.resolve(c.Params("*"))
	if err != nil {
		return err
	}

	if err := h.catalog.Invalidate(path); err != nil {
		h.logger.Error("Failed to invalidate statistics", "file", path, "error", err)
		return models.NewAPIError(fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to invalidate statistics")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) resolve(name string) (string, error) {
	if name == "" {
		return "", models.NewAPIError(fiber.StatusBadRequest, "INVALID_REQUEST", "file path is required")
	}
	path, err := h.cfg.GetDataPath(name)
	if err != nil {
		return "", models.NewAPIError(fiber.StatusBadRequest, "INVALID_PATH", err.Error())
	}
	return path, nil
}

// collect resolves name against the data directory and collects its statistics
func (h *Handler) collect(c *fiber.Ctx, name string) (*catalog.FileStatistics, error) {
	path, err := h.resolve(name)
	if err != nil {
		return nil, err
	}

	ctx := logging.WithFile(c.UserContext(), name)
	fs, err := h.catalog.Collect(ctx, path)
	switch {
	case err == nil:
		return fs, nil
	case errors.Is(err, os.ErrNotExist):
		return nil, models.NewAPIError(fiber.StatusNotFound, "FILE_NOT_FOUND", "file not found: "+name)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, models.NewAPIError(fiber.StatusServiceUnavailable, "UNAVAILABLE", "request cancelled")
	}

	h.logger.WithContext(ctx).Warn("Failed to collect statistics", "error", err)
	return nil, models.NewAPIError(fiber.StatusUnprocessableEntity, "INVALID_FILE", "failed to read parquet file "+name)
}
