package handler

import (
	"context"
	"net/http"
	"time"
)

// Context carries the state of a single request through the pipeline.
// It is not safe for concurrent use and must not outlive the request.
type Context struct {
	r        *http.Request
	response *Response
	err      error
}

// NewContext creates a context for r with an empty 200 response.
func NewContext(r *http.Request) *Context {
	return &Context{
		r:        r,
		response: NewResponse(),
	}
}

// Deadline delegates to the request context.
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done delegates to the request context.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err delegates to the request context.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value delegates to the request context.
func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// SetValue stores a request-scoped value retrievable through Value.
func (c *Context) SetValue(key, val any) {
	ctx := context.WithValue(c.r.Context(), key, val)
	c.r = c.r.WithContext(ctx)
}

// Request returns the inbound request.
func (c *Context) Request() *http.Request {
	return c.r
}

// Response returns the in-progress response.
func (c *Context) Response() *Response {
	return c.response
}

// SetResponse replaces the in-progress response. A nil response is ignored.
func (c *Context) SetResponse(resp *Response) {
	if resp != nil {
		c.response = resp
	}
}

// HasContentType reports whether the in-progress response has a Content-Type.
func (c *Context) HasContentType() bool {
	return c.response.ContentType() != ""
}

// Error returns the error captured while processing the request, if any.
func (c *Context) Error() error {
	return c.err
}

// SetError records a captured error. Nil errors are ignored.
func (c *Context) SetError(err error) {
	if err != nil {
		c.err = err
	}
}
