// Package response turns values returned by middleware into HTTP responses.
//
// Every value is classified into one BodyType and handed to the Processor
// registered for it:
//
//	*handler.Response  -> response  (passed through unchanged)
//	error              -> error     (negotiated JSON, HTML or plain text)
//	string, []byte     -> string    (HTML sniffed unless Content-Type is set)
//	anything else      -> object    (encoded as JSON)
//
// A nil value has no processor and is reported as a server error naming the
// "unknown" type.
//
// # Manager
//
//	m := response.NewManager(
//		response.WithStrictContentNegotiation(true),
//		response.WithProcessor(response.BodyString, myProcessor),
//	)
//	resp, err := m.Process(ctx, body)
//
// With strict negotiation enabled, a non-error response whose Content-Type
// the client does not accept is replaced by a 406 Not Acceptable error page.
//
// # Errors
//
// The error processor reads optional StatusCode() int, ErrorName() string and
// ErrorDetails() any methods anywhere in the error chain. HTTPError
// implements all three:
//
//	return nil, response.ErrUnprocessableEntity.WithErrors(map[string][]string{
//		"email": {"is required"},
//	})
//
// Any other error is rendered as a 500 using its message.
//
// # Builders
//
// String, HTML, JSON, Redirect and friends build finished responses that
// skip processing:
//
//	return response.JSON(user)
//	return response.Redirect("/login"), nil
package response
