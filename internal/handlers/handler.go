package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/colstats/internal/catalog"
	"github.com/soltixdb/colstats/internal/config"
	"github.com/soltixdb/colstats/internal/logging"
	"github.com/soltixdb/colstats/internal/models"
	"github.com/soltixdb/colstats/internal/statistics"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Handler contains all HTTP handlers
type Handler struct {
	logger  *logging.Logger
	catalog *catalog.Catalog
	cfg     config.Config
	opts    statistics.Options
}

// New creates a new handler instance
func New(logger *logging.Logger, cat *catalog.Catalog, cfg config.Config, opts statistics.Options) *Handler {
	return &Handler{
		logger:  logger,
		catalog: cat,
		cfg:     cfg,
		opts:    opts,
	}
}

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Path:    c.Path(),
		},
	})
}

func statisticsView(s statistics.Summary) models.StatisticsView {
	return models.StatisticsView{
		Kind:          s.Kind,
		DataType:      s.DataType.String(),
		NullCount:     s.NullCount,
		DistinctCount: s.DistinctCount,
		Min:           s.Min,
		Max:           s.Max,
	}
}

func chunkView(e *catalog.Entry) models.ColumnChunkView {
	v := models.ColumnChunkView{
		RowGroup:  e.RowGroup,
		Column:    e.Column,
		Path:      e.ColumnPath(),
		NumValues: e.NumValues,
		DataType:  e.DataType.String(),
	}
	if e.Summary != nil {
		sv := statisticsView(*e.Summary)
		v.Statistics = &sv
	}
	if e.Error != "" {
		code := e.ErrorKind
		if code == "" {
			code = "NO_STATISTICS"
		}
		v.Error = &models.ErrorDetail{Code: code, Message: e.Error}
	}
	return v
}
