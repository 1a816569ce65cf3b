package response

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/a-h/templ"
)

// errorPage renders the HTML error document. All interpolated text is escaped.
func errorPage(v errorView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		title := templ.EscapeString(v.Name)
		var buf bytes.Buffer

		buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		buf.WriteString("<title>" + strconv.Itoa(v.Status) + " " + title + "</title>\n")
		buf.WriteString("</head>\n<body>\n")
		buf.WriteString("<h1>" + title + "</h1>\n")
		buf.WriteString("<p>" + templ.EscapeString(v.Message) + "</p>\n")

		if items := detailItems(v.Errors); len(items) > 0 {
			buf.WriteString("<ul>\n")
			for _, item := range items {
				buf.WriteString("<li>" + templ.EscapeString(item) + "</li>\n")
			}
			buf.WriteString("</ul>\n")
		}

		buf.WriteString("</body>\n</html>\n")

		_, err := w.Write(buf.Bytes())
		return err
	})
}

func (v errorView) html(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := errorPage(v).Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("render error page: %w", err)
	}
	return buf.Bytes(), nil
}

// detailItems flattens error details into list entries. Map keys are sorted.
func detailItems(details any) []string {
	switch d := details.(type) {
	case nil:
		return nil
	case string:
		if d == "" {
			return nil
		}
		return []string{d}
	case []string:
		return d
	case map[string][]string:
		var items []string
		for _, k := range slices.Sorted(maps.Keys(d)) {
			for _, msg := range d[k] {
				items = append(items, k+": "+msg)
			}
		}
		return items
	case map[string]string:
		items := make([]string, 0, len(d))
		for _, k := range slices.Sorted(maps.Keys(d)) {
			items = append(items, k+": "+d[k])
		}
		return items
	case map[string]any:
		items := make([]string, 0, len(d))
		for _, k := range slices.Sorted(maps.Keys(d)) {
			items = append(items, k+": "+fmt.Sprint(d[k]))
		}
		return items
	case []any:
		items := make([]string, 0, len(d))
		for _, item := range d {
			items = append(items, fmt.Sprint(item))
		}
		return items
	default:
		return []string{fmt.Sprint(d)}
	}
}
