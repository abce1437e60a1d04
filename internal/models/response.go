package models

import "github.com/gofiber/fiber/v2"

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Version   string                 `json:"version"`
	Catalog   map[string]interface{} `json:"catalog,omitempty"`
}

// StatisticsView is the JSON form of reconstructed statistics. Decimal bounds are
// scaled decimal strings; fixed-size binary bounds are hex.
type StatisticsView struct {
	Kind          string  `json:"kind"`
	DataType      string  `json:"data_type"`
	NullCount     *int64  `json:"null_count,omitempty"`
	DistinctCount *int64  `json:"distinct_count,omitempty"`
	Min           *string `json:"min,omitempty"`
	Max           *string `json:"max,omitempty"`
}

// ColumnChunkView represents one column chunk of a file. Statistics is omitted when
// reconstruction failed, in which case Error says why.
type ColumnChunkView struct {
	RowGroup   int             `json:"row_group"`
	Column     int             `json:"column"`
	Path       string          `json:"path"`
	NumValues  int64           `json:"num_values"`
	DataType   string          `json:"data_type"`
	Statistics *StatisticsView `json:"statistics,omitempty"`
	Error      *ErrorDetail    `json:"error,omitempty"`
}

// FileStatsResponse represents the statistics of every fixed-len column chunk of a file
type FileStatsResponse struct {
	File         string            `json:"file"`
	Size         int64             `json:"size"`
	NumRows      int64             `json:"num_rows"`
	RowGroups    int               `json:"row_groups"`
	FailedChunks int               `json:"failed_chunks"`
	Chunks       []ColumnChunkView `json:"chunks"`
}

// ColumnStatsResponse represents the statistics of one column across row groups
type ColumnStatsResponse struct {
	File   string            `json:"file"`
	Column string            `json:"column"`
	Chunks []ColumnChunkView `json:"chunks"`
}

// ReconstructResponse represents the result of a reconstruction request
type ReconstructResponse struct {
	Statistics StatisticsView `json:"statistics"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// APIError is returned by handlers to respond with a specific status and error code
type APIError struct {
	Status  int
	Code    string
	Message string
}

// NewAPIError creates an APIError
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

func (e *APIError) Error() string {
	return e.Message
}

// CodeForStatus returns the error code used for a bare HTTP status
func CodeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "INVALID_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnprocessableEntity:
		return "UNPROCESSABLE"
	case fiber.StatusServiceUnavailable:
		return "UNAVAILABLE"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL_ERROR"
	}
	return "ERROR"
}
