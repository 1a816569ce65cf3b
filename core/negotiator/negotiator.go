package negotiator

import (
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// Supported media types.
const (
	MediaTypeJSON  = "application/json"
	MediaTypeHTML  = "text/html"
	MediaTypePlain = "text/plain"
)

const wildcard = "*/*"

// Specificity ranks of a media range.
const (
	specificityAny     = 0 // */*
	specificitySubtype = 1 // type/*
	specificityExact   = 2 // type/subtype
)

// acceptEntry is a single parsed media range from an Accept header.
type acceptEntry struct {
	mediaType   string
	quality     float64
	specificity int
}

// Negotiate returns the most appropriate media type for the request.
// The result is always one of MediaTypeJSON, MediaTypeHTML or MediaTypePlain.
func Negotiate(r *http.Request) string {
	accept := acceptHeader(r)

	if accept != "" && accept != wildcard {
		hasWildcard := false

		for _, t := range ParseAccept(accept) {
			base := BaseType(t)

			// Wildcards only decide when no concrete type matched.
			if strings.Contains(base, "*") {
				hasWildcard = true
				continue
			}

			switch {
			case IsJSON(base):
				return MediaTypeJSON
			case base == MediaTypeHTML:
				return MediaTypeHTML
			case strings.HasPrefix(base, "text/"):
				return MediaTypePlain
			}
		}

		if hasWildcard {
			return MediaTypePlain
		}
	}

	if ct := r.Header.Get("Content-Type"); ct != "" {
		base := BaseType(ct)

		switch {
		case IsJSON(base):
			return MediaTypeJSON
		case base == MediaTypeHTML:
			return MediaTypeHTML
		}
	}

	return MediaTypePlain
}

// ParseAccept parses an Accept header value into media ranges ordered by
// quality (descending) and specificity. Entries with q <= 0 and empty entries
// are dropped. A missing or malformed q parameter counts as 1.0.
func ParseAccept(header string) []string {
	parts := strings.Split(header, ",")
	entries := make([]acceptEntry, 0, len(parts))

	for _, part := range parts {
		mediaType, params, _ := strings.Cut(part, ";")
		mediaType = strings.TrimSpace(mediaType)
		if mediaType == "" {
			continue
		}

		q := parseQuality(params)
		if q <= 0 {
			continue
		}

		entries = append(entries, acceptEntry{
			mediaType:   mediaType,
			quality:     q,
			specificity: specificity(BaseType(mediaType)),
		})
	}

	slices.SortStableFunc(entries, func(a, b acceptEntry) int {
		switch {
		case a.quality > b.quality:
			return -1
		case a.quality < b.quality:
			return 1
		}
		return b.specificity - a.specificity
	})

	types := make([]string, len(entries))
	for i, e := range entries {
		types[i] = e.mediaType
	}
	return types
}

// IsAcceptable reports whether contentType satisfies the request Accept header.
// A missing Accept header or a bare */* accepts everything.
func IsAcceptable(r *http.Request, contentType string) bool {
	accept := acceptHeader(r)
	if accept == "" || accept == wildcard {
		return true
	}

	base := BaseType(contentType)
	typ, _, _ := strings.Cut(base, "/")

	for part := range strings.SplitSeq(accept, ",") {
		accepted := BaseType(part)

		switch accepted {
		case base, wildcard, typ + "/*":
			return true
		}
	}

	return false
}

// BaseType returns the media type without parameters, trimmed and lower-cased.
func BaseType(mediaType string) string {
	base, _, _ := strings.Cut(mediaType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// IsJSON reports whether the base media type belongs to the JSON family.
func IsJSON(base string) bool {
	switch base {
	case "application/json", "application/hal+json", "application/problem+json":
		return true
	}
	return strings.HasSuffix(base, "+json")
}

// acceptHeader joins every Accept header line into a single value.
func acceptHeader(r *http.Request) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(r.Header.Values("Accept"), ", "))
}

// parseQuality extracts the q parameter from a ";"-separated parameter list.
func parseQuality(params string) float64 {
	for param := range strings.SplitSeq(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}

		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(q) || math.IsInf(q, 0) {
			return 1.0
		}
		return q
	}
	return 1.0
}

func specificity(base string) int {
	switch {
	case base == wildcard:
		return specificityAny
	case strings.HasSuffix(base, "/*"):
		return specificitySubtype
	}
	return specificityExact
}
