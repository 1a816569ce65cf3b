// Package negotiator selects the media type used to represent a response body.
//
// The functions in this package are pure: they only inspect request headers and
// never mutate the request. Three representations are supported and every
// decision resolves to exactly one of them:
//
//	application/json
//	text/html
//	text/plain
//
// # Negotiation
//
// Negotiate reads the Accept header first. Entries are ordered by quality value
// and, at equal quality, by specificity (type/subtype before type/* before */*).
// JSON-family types (application/json, application/hal+json,
// application/problem+json and any +json suffix) resolve to application/json.
// When Accept does not decide, the request Content-Type is used as a hint, and
// text/plain is the final default.
//
//	r := httptest.NewRequest(http.MethodGet, "/", nil)
//	r.Header.Set("Accept", "text/html;q=0.5, application/json;q=0.9")
//	negotiator.Negotiate(r) // "application/json"
//
// # Acceptability
//
// IsAcceptable reports whether a concrete content type satisfies the Accept
// header. It is used by strict content negotiation to reject representations
// the client explicitly ruled out.
package negotiator
