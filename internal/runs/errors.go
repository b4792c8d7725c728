package runs

import (
	"context"
	"errors"
	"net/http"

	"github.com/VoidMesh/isoline/internal/db"
	"github.com/VoidMesh/isoline/services/contour"
	"github.com/VoidMesh/isoline/services/export"
	"github.com/VoidMesh/isoline/services/field"
	"github.com/VoidMesh/isoline/services/noise"
)

// StatusFor maps an extraction or storage error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, field.ErrInvalidDimensions),
		errors.Is(err, noise.ErrUnknownKind),
		errors.Is(err, contour.ErrInvalidThreshold),
		errors.Is(err, export.ErrImageTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse builds the response body for status. Details of server
// errors are not exposed.
func NewErrorResponse(status int, message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}
	if err != nil && status < http.StatusInternalServerError {
		resp.Message = err.Error()
	}
	if status >= http.StatusInternalServerError {
		resp.Error = "Internal server error"
	}
	return resp
}
