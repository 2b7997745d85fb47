package client

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// Params carries the per-request parameters for one endpoint invocation:
// query string values, path template substitutions, and extra headers.
type Params struct {
	// Query holds URL query parameters, encoded in canonical (sorted) order.
	Query url.Values

	// Path holds values for path template placeholders. A urlPath of
	// "/users/{id}" requires Path["id"] to be set.
	Path map[string]string

	// Header holds additional request headers merged over the client defaults.
	Header http.Header
}

// RequestOptions bundles everything the client needs to execute a request
// beyond the method and URL path.
type RequestOptions struct {
	Params Params

	// Body is JSON-encoded when non-nil.
	Body any
}

// Envelope is the discriminated result of one request: exactly one of Data
// or Err is populated. A 2xx response sets Data to the raw response body;
// any other status parses into Err.
type Envelope struct {
	Data json.RawMessage
	Err  *APIError
}

// OK reports whether the envelope carries the success branch.
func (e *Envelope) OK() bool {
	return e != nil && e.Err == nil
}
