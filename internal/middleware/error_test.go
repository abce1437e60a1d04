package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/colstats/internal/logging"
	"github.com/soltixdb/colstats/internal/models"
	"github.com/soltixdb/colstats/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doError(t *testing.T, handlerErr error) (int, models.ErrorResponse) {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(logging.NewNop()),
	})
	app.Get("/test", func(c *fiber.Ctx) error {
		return handlerErr
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	return resp.StatusCode, errResp
}

func TestErrorHandler_FiberError(t *testing.T) {
	tests := []struct {
		name           string
		fiberError     *fiber.Error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{"BadRequest error", fiber.ErrBadRequest, fiber.StatusBadRequest, "INVALID_REQUEST", "Bad Request"},
		{"NotFound error", fiber.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "Not Found"},
		{"Payload too large", fiber.ErrRequestEntityTooLarge, fiber.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request Entity Too Large"},
		{"InternalServerError", fiber.ErrInternalServerError, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error"},
		{"Custom fiber error", fiber.NewError(fiber.StatusTeapot, "I'm a teapot"), fiber.StatusTeapot, "ERROR", "I'm a teapot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := doError(t, tt.fiberError)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
			assert.Equal(t, tt.expectedMsg, resp.Error.Message)
			assert.Equal(t, "/test", resp.Error.Path)
		})
	}
}

func TestErrorHandler_APIError(t *testing.T) {
	status, resp := doError(t, models.NewAPIError(fiber.StatusNotFound, "FILE_NOT_FOUND", "file not found: a.parquet"))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "FILE_NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "file not found: a.parquet", resp.Error.Message)
}

func TestErrorHandler_StatisticsError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{
			name: "external format",
			err: statistics.NewErrorWithDetails(statistics.ErrorKindExternalFormat,
				"can't deserialize i128 from fixed len byte array with length 20",
				map[string]interface{}{"byte_width": 20}),
			code: "EXTERNAL_FORMAT",
		},
		{
			name: "not yet implemented, wrapped",
			err: fmt.Errorf("column c: %w", statistics.NewError(statistics.ErrorKindNotYetImplemented,
				"can't read Int32 from parquet fixed len byte array")),
			code: "NOT_YET_IMPLEMENTED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := doError(t, tt.err)
			assert.Equal(t, fiber.StatusUnprocessableEntity, status)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}

	_, resp := doError(t, tests[0].err)
	assert.Equal(t, float64(20), resp.Error.Details["byte_width"])
}

func TestErrorHandler_GenericError(t *testing.T) {
	status, resp := doError(t, errors.New("something went wrong"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.Equal(t, "Internal Server Error", resp.Error.Message)
}
