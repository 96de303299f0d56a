package response_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/esports-health-service/internal/repository"
	"github.com/maxviazov/esports-health-service/internal/service"
	"github.com/maxviazov/esports-health-service/pkg/response"
)

// fakeInvalid mimics service aggregated validation error to test mapping without reaching into internals.
type fakeInvalid struct{ fe []service.FieldError }

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

func TestMapError(t *testing.T) {
	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
	}{
		{"invalid_input", &fakeInvalid{fe: []service.FieldError{{Field: "heart_rate", Message: "bad"}}}, 400, "invalid_input"},
		{"wrapped_invalid_input", fmt.Errorf("record: %w", &fakeInvalid{fe: []service.FieldError{{Field: "hours", Message: "bad"}}}), 400, "invalid_input"},
		{"no_data", fmt.Errorf("player 3: %w", service.ErrNoData), 404, "no_data"},
		{"not_found", fmt.Errorf("team %q: %w", "x", repository.ErrNotFound), 404, "not_found"},
		{"out_of_range", repository.ErrOutOfRange, 400, "invalid_input"},
		{"already_exists", repository.ErrAlreadyExists, 409, "already_exists"},
		{"conflict", repository.ErrConflict, 409, "conflict"},
		{"timeout", fmt.Errorf("list: %w", context.DeadlineExceeded), 504, "timeout"},
		{"internal", errors.New("boom"), 500, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, payload.Error)
			if tc.name == "invalid_input" || tc.name == "wrapped_invalid_input" {
				assert.NotEmpty(t, payload.FieldErrors)
			}
		})
	}
}

func TestWriteError_Aborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.WriteError(c, service.ErrNoData)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"no_data","message":"no readings in the requested window"}`, w.Body.String())
}

func TestWriteError_RecordsInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.WriteError(c, errors.New("pool exhausted"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, w.Body.String())
	assert.Len(t, c.Errors, 1)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	response.WriteError(c, repository.ErrNotFound)
	assert.Empty(t, c.Errors)
}
