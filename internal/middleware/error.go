package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/colstats/internal/logging"
	"github.com/soltixdb/colstats/internal/models"
	"github.com/soltixdb/colstats/internal/statistics"
)

// ErrorHandler renders errors escaping a handler as models.ErrorResponse.
// Reconstruction errors map to 422 with their kind as the code; errors of unknown
// type are a 500.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		detail := models.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: "Internal Server Error",
			Path:    c.Path(),
		}

		var fe *fiber.Error
		var ae *models.APIError
		var se *statistics.Error
		switch {
		case errors.As(err, &ae):
			status = ae.Status
			detail.Code = ae.Code
			detail.Message = ae.Message
		case errors.As(err, &se):
			status = fiber.StatusUnprocessableEntity
			detail.Code = string(se.Kind)
			detail.Message = se.Message
			detail.Details = se.Details
		case errors.As(err, &fe):
			status = fe.Code
			detail.Code = models.CodeForStatus(fe.Code)
			detail.Message = fe.Message
		}

		fields := []interface{}{
			"path", c.Path(),
			"method", c.Method(),
			"status", status,
			"request_id", logging.RequestID(c.UserContext()),
			"error", err,
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("Request error", fields...)
		} else {
			logger.Warn("Request rejected", fields...)
		}

		return c.Status(status).JSON(models.ErrorResponse{Error: detail})
	}
}
