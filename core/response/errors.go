package response

import "errors"

// Manager and processor failures. They surface as the cause of a 500 HTTPError.
var (
	// ErrNoProcessor means no processor is registered for the body type.
	ErrNoProcessor = errors.New("no processor registered for body type")
	// ErrNilResponse means a processor returned neither a response nor an error.
	ErrNilResponse = errors.New("processor returned nil response")
	// ErrUnexpectedBody means a processor was handed a body it does not handle.
	ErrUnexpectedBody = errors.New("unexpected body type for processor")
)

// Fixed failure messages rendered to clients.
const (
	msgSerialization = "There was a problem stringifying the JSON object."
	msgUnexpected    = "There was an unexpected error handling your request"
)
