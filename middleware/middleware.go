package middleware

import "github.com/dmitrymomot/raptor/core/handler"

// skip delegates to the rest of the chain without contributing a body.
func skip(next handler.Next) (any, error) {
	next()
	return nil, nil
}

// ensureHeaders fills in headers missing from the context response. Finished
// responses returned downstream may be shared between requests, so the
// response is cloned before it is modified.
func ensureHeaders(ctx *handler.Context, headers map[string]string) {
	resp := ctx.Response()
	if resp == nil {
		return
	}

	var clone *handler.Response
	for k, v := range headers {
		if resp.Header.Get(k) != "" {
			continue
		}
		if clone == nil {
			clone = resp.Clone()
		}
		clone.Header.Set(k, v)
	}
	if clone != nil {
		ctx.SetResponse(clone)
	}
}
