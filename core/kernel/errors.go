package kernel

import (
	"errors"
	"fmt"
)

// ErrSealed is the panic value for registration after the first request.
var ErrSealed = errors.New("kernel: registration after serving started")

// PanicError is returned for a recovered middleware, error handler or processor panic.
// Error handlers can detect it with errors.As to inspect the original value.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap exposes the panic value when it is an error.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
