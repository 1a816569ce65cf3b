package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/negotiator"
)

// ResponseProcessor passes finished responses through unchanged.
type ResponseProcessor struct{}

// Process implements Processor.
func (ResponseProcessor) Process(_ *handler.Context, body any) (*handler.Response, error) {
	switch b := body.(type) {
	case *handler.Response:
		if b == nil {
			return nil, fmt.Errorf("%w: nil *handler.Response", ErrUnexpectedBody)
		}
		return b, nil
	case handler.Response:
		return &b, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnexpectedBody, body)
}

var htmlTag = regexp.MustCompile(`<[a-zA-Z/][^>]*>`)

// StringProcessor writes text bodies, sniffing HTML when no Content-Type was set.
type StringProcessor struct{}

// Process implements Processor.
func (StringProcessor) Process(ctx *handler.Context, body any) (*handler.Response, error) {
	var data []byte
	switch b := body.(type) {
	case string:
		data = []byte(b)
	case []byte:
		data = b
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedBody, body)
	}

	resp := inherit(ctx)
	if resp.ContentType() == "" {
		if htmlTag.Match(data) {
			resp.Header.Set("Content-Type", negotiator.MediaTypeHTML)
		} else {
			resp.Header.Set("Content-Type", negotiator.MediaTypePlain)
		}
	}
	resp.Body = append([]byte(nil), data...)

	return resp, nil
}

// ObjectProcessor serializes structured values as JSON.
type ObjectProcessor struct{}

// Process implements Processor.
func (ObjectProcessor) Process(ctx *handler.Context, body any) (*handler.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, ErrSerialization.WithCause(err)
	}

	resp := inherit(ctx)
	if resp.ContentType() == "" {
		resp.Header.Set("Content-Type", negotiator.MediaTypeJSON)
	}
	resp.Body = data

	return resp, nil
}

// ErrorProcessor renders errors as JSON, HTML or plain text depending on
// what the client negotiates.
type ErrorProcessor struct{}

// Process implements Processor.
func (ErrorProcessor) Process(ctx *handler.Context, body any) (*handler.Response, error) {
	err, ok := body.(error)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedBody, body)
	}

	view := describe(err)
	mediaType := negotiator.Negotiate(ctx.Request())

	var (
		data   []byte
		render error
	)
	switch mediaType {
	case negotiator.MediaTypeJSON:
		data, render = view.json()
	case negotiator.MediaTypeHTML:
		data, render = view.html(ctx)
	default:
		data = []byte(view.Name + " - " + view.Message)
	}
	if render != nil {
		return nil, render
	}

	resp := inherit(ctx)
	resp.Status = view.Status
	resp.Header.Set("Content-Type", mediaType+"; charset=utf-8")
	resp.Body = data

	return resp, nil
}

// errorView is the rendered shape of an error.
type errorView struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Errors  any    `json:"errors,omitempty"`
}

func describe(err error) errorView {
	v := errorView{
		Status:  http.StatusInternalServerError,
		Message: err.Error(),
	}

	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		if s := sc.StatusCode(); s >= 100 && s <= 999 {
			v.Status = s
		}
	}

	var en interface{ ErrorName() string }
	if errors.As(err, &en) {
		v.Name = en.ErrorName()
	}
	if v.Name == "" {
		v.Name = http.StatusText(v.Status)
	}
	if v.Name == "" {
		v.Name = "Error"
	}

	var ed interface{ ErrorDetails() any }
	if errors.As(err, &ed) {
		v.Errors = ed.ErrorDetails()
	}

	if v.Message == "" {
		v.Message = msgUnexpected
	}

	return v
}

func (v errorView) json() ([]byte, error) {
	data, err := json.Marshal(v)
	if err == nil {
		return data, nil
	}
	// Details that cannot be encoded are dropped rather than failing the error page.
	v.Errors = nil
	return json.Marshal(v)
}
