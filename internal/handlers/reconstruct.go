package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/colstats/internal/datatypes"
	"github.com/soltixdb/colstats/internal/models"
	"github.com/soltixdb/colstats/internal/physical"
	"github.com/soltixdb/colstats/internal/statistics"
)

// Reconstruct converts one physical fixed-len statistics record into logical statistics.
// Reconstruction errors are returned unchanged so the error handler can map their kind.
func (h *Handler) Reconstruct(c *fiber.Ctx) error {
	var req models.ReconstructRequest
	if err := c.BodyParser(&req); err != nil {
		return models.NewAPIError(fiber.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error())
	}

	dataType, err := datatypes.Parse(req.DataType)
	if err != nil {
		return models.NewAPIError(fiber.StatusBadRequest, "INVALID_DATA_TYPE", err.Error())
	}

	opts := h.opts
	if req.Padding != "" {
		padding, err := statistics.ParsePadding(req.Padding)
		if err != nil {
			return models.NewAPIError(fiber.StatusBadRequest, "INVALID_PADDING", err.Error())
		}
		opts.Padding = padding
	}

	stats := &physical.FixedLenStatistics{
		NullCount:     req.NullCount,
		DistinctCount: req.DistinctCount,
		MinValue:      req.MinValue,
		MaxValue:      req.MaxValue,
		ByteWidth:     req.ByteWidth,
	}
	if err := stats.Validate(); err != nil {
		return models.NewAPIError(fiber.StatusBadRequest, "INVALID_STATISTICS", err.Error())
	}

	result, err := statistics.FromFixedLenWithOptions(stats, dataType, opts)
	if err != nil {
		return err
	}

	return c.JSON(models.ReconstructResponse{
		Statistics: statisticsView(statistics.Summarize(result)),
	})
}
