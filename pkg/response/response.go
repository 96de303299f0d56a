// Package response turns service and store errors into the API's JSON envelope.
package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/esports-health-service/internal/repository"
	"github.com/maxviazov/esports-health-service/internal/service"
)

// ErrorPayload is the body of every non-2xx API response.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

type rule struct {
	target  error
	status  int
	code    string
	message string
}

// Checked in order. ErrNoData comes before ErrNotFound since both answer 404
// and clients tell an empty window from a missing player by code.
var rules = []rule{
	{service.ErrNoData, http.StatusNotFound, "no_data", "no readings in the requested window"},
	{repository.ErrNotFound, http.StatusNotFound, "not_found", ""},
	{repository.ErrOutOfRange, http.StatusBadRequest, "invalid_input", "value outside its allowed range"},
	{repository.ErrAlreadyExists, http.StatusConflict, "already_exists", ""},
	{repository.ErrConflict, http.StatusConflict, "conflict", ""},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout", ""},
}

// MapError picks the HTTP status and payload for err. Unknown errors become
// a 500 with no detail so internals never leak to clients.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}
	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}
	for _, r := range rules {
		if errors.Is(err, r.target) {
			return r.status, ErrorPayload{Error: r.code, Message: r.message}
		}
	}
	return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
}

// WriteError aborts the request with the mapped payload. The original error is
// attached to the gin context so the request logger can report it.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, payload)
}

func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
