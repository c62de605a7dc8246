// Package message defines the abstract request/response envelope that flows
// through the load-balanced client.
//
// Request is what the caller hands in together with a logical service name;
// it deliberately carries a target path but no host — the host is resolved
// per attempt by the instance selector. Response is what the transport hands
// back, whatever the status code; interpreting error-range codes is a retry
// policy decision, not a transport decision.
package message

// Request carries one logical request to a load-balanced service.
//
// The Path is relative to whatever instance ends up being selected
// (e.g. "/v1/orders"), never a full URL.
type Request struct {
	Method string            // HTTP-style verb, e.g. "GET"
	Path   string            // target path on the selected instance
	Header map[string]string // request headers, also passed to the selector as hints
	Body   []byte
}

// Response carries the result of one attempt.
type Response struct {
	StatusCode int
	Header     map[string]string
	Body       []byte
}
