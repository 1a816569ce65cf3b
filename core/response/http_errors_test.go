package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/raptor/core/response"
)

func TestHTTPErrorCatalogue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    response.HTTPError
		status int
		name   string
	}{
		{response.ErrBadRequest, http.StatusBadRequest, "Bad Request"},
		{response.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{response.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{response.ErrNotFound, http.StatusNotFound, "Not Found"},
		{response.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed"},
		{response.ErrNotAcceptable, http.StatusNotAcceptable, "Not Acceptable"},
		{response.ErrRequestTimeout, http.StatusRequestTimeout, "Request Timeout"},
		{response.ErrConflict, http.StatusConflict, "Conflict"},
		{response.ErrGone, http.StatusGone, "Gone"},
		{response.ErrTeapot, http.StatusTeapot, "I'm a Teapot"},
		{response.ErrUnprocessableEntity, http.StatusUnprocessableEntity, "Unprocessable Entity"},
		{response.ErrTooManyRequests, http.StatusTooManyRequests, "Too Many Requests"},
		{response.ErrServerError, http.StatusInternalServerError, "Server Error"},
		{response.ErrTypeError, http.StatusInternalServerError, "Type Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.status, tt.err.StatusCode())
			assert.Equal(t, tt.name, tt.err.ErrorName())
			assert.NotEmpty(t, tt.err.Error())
			assert.Nil(t, tt.err.ErrorDetails())
		})
	}
}

func TestHTTPErrorCopies(t *testing.T) {
	t.Parallel()

	custom := response.ErrNotFound.WithMessage("X")

	assert.Equal(t, "X", custom.Error())
	assert.Equal(t, "The resource requested could not be found", response.ErrNotFound.Error())
	assert.True(t, errors.Is(custom, response.ErrNotFound))
	assert.False(t, errors.Is(custom, response.ErrBadRequest))
	assert.False(t, errors.Is(response.ErrSerialization, response.ErrServerError))
}

func TestHTTPErrorWithErrors(t *testing.T) {
	t.Parallel()

	details := map[string][]string{"email": {"is required"}}
	err := response.ErrBadRequest.WithErrors(details)

	assert.Equal(t, details, err.ErrorDetails())
	assert.Nil(t, response.ErrBadRequest.ErrorDetails())

	// map details must not break errors.Is
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), response.ErrBadRequest))
}

func TestHTTPErrorWithCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("db down")
	err := response.ErrServerError.WithCause(cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, errors.Unwrap(err))

	var httpErr response.HTTPError
	require.True(t, errors.As(fmt.Errorf("ctx: %w", err), &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestNewHTTPError(t *testing.T) {
	t.Parallel()

	err := response.NewHTTPError("custom")
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode())
	assert.Equal(t, "Server Error", err.ErrorName())
	assert.Equal(t, "custom", err.Error())
}
