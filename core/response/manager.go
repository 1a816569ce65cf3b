package response

import (
	"fmt"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/negotiator"
)

// Manager turns arbitrary bodies into responses by dispatching on their BodyType.
type Manager interface {
	Process(ctx *handler.Context, body any) (*handler.Response, error)
	SetProcessor(t BodyType, p Processor)
}

// ManagerOption configures a DefaultManager during creation.
type ManagerOption func(*DefaultManager)

// WithStrictContentNegotiation rejects responses whose Content-Type the
// client does not accept with 406 Not Acceptable.
func WithStrictContentNegotiation(strict bool) ManagerOption {
	return func(m *DefaultManager) {
		m.strict = strict
	}
}

// WithProcessor registers p for t, replacing the built-in processor.
func WithProcessor(t BodyType, p Processor) ManagerOption {
	return func(m *DefaultManager) {
		m.SetProcessor(t, p)
	}
}

// DefaultManager owns one processor per body type.
// Registration is a setup-time operation; Process is safe for concurrent use
// once registration has finished.
type DefaultManager struct {
	processors map[BodyType]Processor
	strict     bool
}

// NewManager creates a manager with the four built-in processors registered.
func NewManager(opts ...ManagerOption) *DefaultManager {
	m := &DefaultManager{
		processors: map[BodyType]Processor{
			BodyResponse: ResponseProcessor{},
			BodyError:    ErrorProcessor{},
			BodyString:   StringProcessor{},
			BodyObject:   ObjectProcessor{},
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// SetProcessor registers p for t. The last registration wins; a nil
// processor removes the registration.
func (m *DefaultManager) SetProcessor(t BodyType, p Processor) {
	if p == nil {
		delete(m.processors, t)
		return
	}
	m.processors[t] = p
}

// Processor returns the processor registered for t.
func (m *DefaultManager) Processor(t BodyType) (Processor, bool) {
	p, ok := m.processors[t]
	return p, ok
}

// Strict reports whether strict content negotiation is enabled.
func (m *DefaultManager) Strict() bool {
	return m.strict
}

// Process classifies body and delegates to the matching processor.
func (m *DefaultManager) Process(ctx *handler.Context, body any) (*handler.Response, error) {
	t := Classify(body)

	p, ok := m.processors[t]
	if !ok {
		return nil, ErrServerError.
			WithMessage(fmt.Sprintf("No processor found for type: %s", t)).
			WithCause(ErrNoProcessor)
	}

	resp, err := p.Process(ctx, body)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrServerError.WithCause(fmt.Errorf("%w: %s", ErrNilResponse, t))
	}

	// Error responses are never rejected, otherwise the original failure would be masked.
	if m.strict && t != BodyError {
		if ct := resp.ContentType(); ct != "" && !negotiator.IsAcceptable(ctx.Request(), ct) {
			return m.notAcceptable(ctx)
		}
	}

	return resp, nil
}

func (m *DefaultManager) notAcceptable(ctx *handler.Context) (*handler.Response, error) {
	p, ok := m.processors[BodyError]
	if !ok {
		return nil, ErrNotAcceptable
	}
	return p.Process(ctx, ErrNotAcceptable)
}
