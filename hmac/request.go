package hmac

import (
	"net/http"
	"strings"
)

// SignableRequest exposes the parts of a request that are covered by a Gap-Signature
type SignableRequest interface {
	// Method returns the request method, e.g. "GET"
	Method() string

	// Header returns the value of the named header, matched case-insensitively, or an
	// empty string if the header is not present. A header sent more than once is
	// combined into a single value as described by joinHeaderValues.
	Header(name string) string

	// URL returns the request target as sent by the client: the path, plus the query
	// string if any
	URL() string
}

// HTTPRequest adapts an *http.Request to the SignableRequest interface
func HTTPRequest(r *http.Request) SignableRequest {
	return httpRequest{r}
}

type httpRequest struct {
	r *http.Request
}

func (h httpRequest) Method() string {
	return h.r.Method
}

func (h httpRequest) Header(name string) string {
	return joinHeaderValues(name, h.r.Header.Values(name))
}

func (h httpRequest) URL() string {
	// Server-side requests carry the request target exactly as received; requests
	// that we're building to send don't have it yet
	if h.r.RequestURI != "" {
		return h.r.RequestURI
	}
	if h.r.URL == nil {
		return ""
	}
	return h.r.URL.RequestURI()
}

var _ SignableRequest = httpRequest{}

// joinHeaderValues combines the values of a header that was sent more than once, the
// same way the proxy sees them: Cookie values are joined with "; ", other headers with
// ", ", except for headers that can't be repeated, where only the first value counts
func joinHeaderValues(name string, values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	}
	switch http.CanonicalHeaderKey(name) {
	case "Content-Length", "Content-Type", "Authorization":
		return values[0]
	case "Cookie":
		return strings.Join(values, "; ")
	}
	return strings.Join(values, ", ")
}
