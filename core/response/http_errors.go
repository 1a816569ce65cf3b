package response

import (
	"errors"
	"net/http"
)

// HTTPError is an error carrying an HTTP status, a short name and optional
// structured details. Values are immutable; the With* methods return copies.
type HTTPError struct {
	_ [0]func() // not comparable; Errors may hold maps or slices

	Status  int
	Name    string
	Message string
	Errors  any

	cause error
}

// NewHTTPError creates a 500 error with a custom message.
func NewHTTPError(message string) HTTPError {
	return ErrServerError.WithMessage(message)
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// ErrorName returns the short error name, e.g. "Not Found".
func (e HTTPError) ErrorName() string {
	return e.Name
}

// ErrorDetails returns the structured details attached with WithErrors.
func (e HTTPError) ErrorDetails() any {
	return e.Errors
}

// Unwrap returns the underlying cause.
func (e HTTPError) Unwrap() error {
	return e.cause
}

// Is matches any HTTPError with the same status and name, so
// errors.Is(err, ErrNotFound) holds for customised copies.
func (e HTTPError) Is(target error) bool {
	var t HTTPError
	if !errors.As(target, &t) {
		return false
	}
	return t.Status == e.Status && t.Name == e.Name
}

// WithMessage returns a copy with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithErrors returns a copy carrying structured details, typically a list of
// validation messages or a field-to-messages map.
func (e HTTPError) WithErrors(details any) HTTPError {
	e.Errors = details
	return e
}

// WithCause returns a copy wrapping err.
func (e HTTPError) WithCause(err error) HTTPError {
	e.cause = err
	return e
}

func newHTTPError(status int, name, message string) HTTPError {
	return HTTPError{Status: status, Name: name, Message: message}
}

// Predefined HTTP errors.
var (
	// 4xx Client Errors
	ErrBadRequest          = newHTTPError(http.StatusBadRequest, "Bad Request", "There was an issue handling your request")
	ErrUnauthorized        = newHTTPError(http.StatusUnauthorized, "Unauthorized", "Authentication required")
	ErrForbidden           = newHTTPError(http.StatusForbidden, "Forbidden", "Server refused request")
	ErrNotFound            = newHTTPError(http.StatusNotFound, "Not Found", "The resource requested could not be found")
	ErrMethodNotAllowed    = newHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed", "Request method not permitted")
	ErrNotAcceptable       = newHTTPError(http.StatusNotAcceptable, "Not Acceptable", "Resource can't return requested format")
	ErrRequestTimeout      = newHTTPError(http.StatusRequestTimeout, "Request Timeout", "Server timed out waiting for request")
	ErrConflict            = newHTTPError(http.StatusConflict, "Conflict", "Resource already exists")
	ErrGone                = newHTTPError(http.StatusGone, "Gone", "Resource no longer exists")
	ErrTeapot              = newHTTPError(http.StatusTeapot, "I'm a Teapot", "Yes, you are.")
	ErrUnprocessableEntity = newHTTPError(http.StatusUnprocessableEntity, "Unprocessable Entity", "Semantic errors in request")
	ErrTooManyRequests     = newHTTPError(http.StatusTooManyRequests, "Too Many Requests", "You have exceeded the maximum number of requests")

	// 5xx Server Errors
	ErrServerError        = newHTTPError(http.StatusInternalServerError, "Server Error", msgUnexpected)
	ErrTypeError          = newHTTPError(http.StatusInternalServerError, "Type Error", "There was a problem running the application code")
	ErrSerialization      = newHTTPError(http.StatusInternalServerError, "Serialization Error", msgSerialization)
	ErrServiceUnavailable = newHTTPError(http.StatusServiceUnavailable, "Service Unavailable", "Server is not ready to handle the request")
)
