package health

import (
	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/response"
)

// Liveness indicates the service process is running.
// Always returns "ALIVE" with 200 OK.
func Liveness(*handler.Context, handler.Next) (any, error) {
	return "ALIVE", nil
}

// NoContent returns HTTP 204 without body.
func NoContent(*handler.Context, handler.Next) (any, error) {
	return response.NoContent(), nil
}
