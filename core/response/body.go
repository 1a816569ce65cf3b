package response

import (
	"reflect"

	"github.com/dmitrymomot/raptor/core/handler"
)

// BodyType classifies a value returned by a middleware or captured as an error.
type BodyType string

// Body types handled by the built-in processors.
const (
	BodyResponse BodyType = "response"
	BodyError    BodyType = "error"
	BodyString   BodyType = "string"
	BodyObject   BodyType = "object"

	// BodyUnknown is reported for nil values; no processor handles it.
	BodyUnknown BodyType = "unknown"
)

// String implements fmt.Stringer.
func (t BodyType) String() string {
	return string(t)
}

// Classify returns the body type of v. The order of checks matters:
// a finished response wins over everything, errors over text, text over objects.
func Classify(v any) BodyType {
	switch v.(type) {
	case nil:
		return BodyUnknown
	case *handler.Response, handler.Response:
		return BodyResponse
	case error:
		return BodyError
	case string, []byte:
		return BodyString
	}

	if isNilValue(v) {
		return BodyUnknown
	}
	return BodyObject
}

// IsEmpty reports whether v carries no body: nil, a typed nil, or an empty string.
func IsEmpty(v any) bool {
	switch b := v.(type) {
	case nil:
		return true
	case string:
		return b == ""
	case *handler.Response:
		return b == nil
	}
	return isNilValue(v)
}

func isNilValue(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
