package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/raptor/core/handler"
)

// Builders return finished responses which the manager passes through
// untouched, bypassing negotiation and HTML sniffing.

// String creates a text/plain response with 200 OK status.
func String(body string) *handler.Response {
	return StringWithStatus(body, http.StatusOK)
}

// StringWithStatus creates a text/plain response with a custom status code.
func StringWithStatus(body string, status int) *handler.Response {
	return build(status, "text/plain; charset=utf-8", []byte(body))
}

// HTML creates a text/html response with 200 OK status.
func HTML(body string) *handler.Response {
	return HTMLWithStatus(body, http.StatusOK)
}

// HTMLWithStatus creates a text/html response with a custom status code.
func HTMLWithStatus(body string, status int) *handler.Response {
	return build(status, "text/html; charset=utf-8", []byte(body))
}

// Bytes creates a response with raw bytes and the given content type.
func Bytes(data []byte, contentType string) *handler.Response {
	return build(http.StatusOK, contentType, data)
}

// JSON creates an application/json response with 200 OK status.
// The error is ErrSerialization when v cannot be encoded, so handlers can
// simply `return response.JSON(v)`.
func JSON(v any) (*handler.Response, error) {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with a custom status code.
// A zero status becomes 204 for nil data and 200 otherwise; 204 and 304 carry no body.
func JSONWithStatus(v any, status int) (*handler.Response, error) {
	if status == 0 {
		status = http.StatusOK
		if v == nil {
			status = http.StatusNoContent
		}
	}

	switch status {
	case http.StatusNoContent, http.StatusNotModified:
		return build(status, "application/json; charset=utf-8", nil), nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, ErrSerialization.WithCause(err)
	}
	return build(status, "application/json; charset=utf-8", data), nil
}

// NoContent creates an empty 204 response.
func NoContent() *handler.Response {
	return Status(http.StatusNoContent)
}

// Status creates an empty response with the given status code.
func Status(code int) *handler.Response {
	return build(code, "", nil)
}

// Redirect creates a 302 Found redirect.
func Redirect(url string) *handler.Response {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectPermanent creates a 301 Moved Permanently redirect.
func RedirectPermanent(url string) *handler.Response {
	return RedirectWithStatus(url, http.StatusMovedPermanently)
}

// RedirectSeeOther creates a 303 See Other redirect, typically after a POST.
func RedirectSeeOther(url string) *handler.Response {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectWithStatus creates a redirect with a custom 3xx status.
// Any status outside 300-399 falls back to 302.
func RedirectWithStatus(url string, status int) *handler.Response {
	if status < 300 || status > 399 {
		status = http.StatusFound
	}
	resp := build(status, "", nil)
	resp.Header.Set("Location", url)
	return resp
}

// WithHeaders sets headers on resp and returns it.
func WithHeaders(resp *handler.Response, headers map[string]string) *handler.Response {
	if resp == nil {
		return nil
	}
	for k, v := range headers {
		resp.Header.Set(k, v)
	}
	return resp
}

// WithCache sets cache headers on resp. A non-positive maxAge disables caching.
func WithCache(resp *handler.Response, maxAge time.Duration) *handler.Response {
	if resp == nil {
		return nil
	}
	if maxAge > 0 {
		resp.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())))
		resp.Header.Set("Expires", time.Now().Add(maxAge).UTC().Format(http.TimeFormat))
	} else {
		resp.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		resp.Header.Set("Pragma", "no-cache")
		resp.Header.Set("Expires", "0")
	}
	return resp
}

func build(status int, contentType string, body []byte) *handler.Response {
	resp := handler.NewResponse()
	resp.Status = status
	if contentType != "" {
		resp.Header.Set("Content-Type", contentType)
	}
	resp.Body = body
	return resp
}
