package response

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrymomot/raptor/core/handler"
)

// ErrNilTemplate is returned by the template builders for a nil template.
var ErrNilTemplate = errors.New("template is nil")

// Component is anything renderable into HTML, such as a templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Templ renders a templ component into a 200 text/html response.
// The component receives ctx so it can read request-scoped values.
func Templ(ctx context.Context, component Component) (*handler.Response, error) {
	return TemplWithStatus(ctx, component, http.StatusOK)
}

// TemplWithStatus renders a templ component with a custom status code.
func TemplWithStatus(ctx context.Context, component Component, status int) (*handler.Response, error) {
	if component == nil {
		return nil, ErrNilTemplate
	}

	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("templ component render error: %w", err)
	}
	return HTMLWithStatus(buf.String(), statusOrOK(status)), nil
}

// Template renders an html/template into a 200 text/html response.
// Output is buffered so a failing template produces no partial body.
func Template(tmpl *template.Template, data any) (*handler.Response, error) {
	return TemplateNameWithStatus(tmpl, "", data, http.StatusOK)
}

// TemplateWithStatus renders an html/template with a custom status code.
func TemplateWithStatus(tmpl *template.Template, data any, status int) (*handler.Response, error) {
	return TemplateNameWithStatus(tmpl, "", data, status)
}

// TemplateName renders a named template from a collection, e.g. one built with ParseGlob.
func TemplateName(tmpl *template.Template, name string, data any) (*handler.Response, error) {
	return TemplateNameWithStatus(tmpl, name, data, http.StatusOK)
}

// TemplateNameWithStatus renders a named template with a custom status code.
// An empty name executes the root template.
func TemplateNameWithStatus(tmpl *template.Template, name string, data any, status int) (*handler.Response, error) {
	if tmpl == nil {
		return nil, ErrNilTemplate
	}

	var buf bytes.Buffer
	var err error
	if name != "" {
		err = tmpl.ExecuteTemplate(&buf, name, data)
	} else {
		err = tmpl.Execute(&buf, data)
	}
	if err != nil {
		return nil, err
	}

	return HTMLWithStatus(buf.String(), statusOrOK(status)), nil
}

// Attachment creates a download response for in-memory data.
// An empty contentType is detected from the filename extension,
// defaulting to application/octet-stream.
func Attachment(data []byte, filename, contentType string) *handler.Response {
	// Newlines and quotes would allow header injection.
	filename = strings.NewReplacer("\n", "", "\r", "", `"`, "'").Replace(filename)

	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filename))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	resp := build(http.StatusOK, contentType, data)
	resp.Header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	resp.Header.Set("Content-Length", strconv.Itoa(len(data)))
	return resp
}

// CSV creates a text/csv download. A missing .csv extension is appended.
func CSV(records [][]string, filename string) (*handler.Response, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	if !strings.HasSuffix(filename, ".csv") {
		filename += ".csv"
	}

	return Attachment(buf.Bytes(), filename, "text/csv; charset=utf-8"), nil
}

// CSVWithHeaders is CSV with a header row prepended.
func CSVWithHeaders(headers []string, rows [][]string, filename string) (*handler.Response, error) {
	return CSV(append([][]string{headers}, rows...), filename)
}

func statusOrOK(status int) int {
	if status == 0 {
		return http.StatusOK
	}
	return status
}
