package response

import (
	"github.com/dmitrymomot/raptor/core/handler"
)

// Processor converts a classified body into a finished response.
// Processors may read from ctx but should build a new response rather
// than mutating ctx.Response in place.
type Processor interface {
	Process(ctx *handler.Context, body any) (*handler.Response, error)
}

// ProcessorFunc adapts an ordinary function to the Processor interface.
type ProcessorFunc func(ctx *handler.Context, body any) (*handler.Response, error)

// Process calls f(ctx, body).
func (f ProcessorFunc) Process(ctx *handler.Context, body any) (*handler.Response, error) {
	return f(ctx, body)
}

// inherit starts a response from the in-progress one so headers and status
// set by earlier middleware carry over.
func inherit(ctx *handler.Context) *handler.Response {
	resp := ctx.Response().Clone()
	if resp == nil {
		return handler.NewResponse()
	}
	resp.Body = nil
	return resp
}
