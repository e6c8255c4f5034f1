package hmac

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
)

const testPayload = `{ "hello": "world!" }`

// newGetRequest returns the GET request used throughout these tests, optionally
// carrying a Gap-Signature header
func newGetRequest(signature string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/foo/bar", nil)
	req.Header.Set("Date", "2015-09-29")
	req.Header.Set("Cookie", "foo; bar; baz=quux")
	req.Header.Set("Gap-Auth", "mbland")
	if signature != "" {
		req.Header.Set(HeaderSignature, signature)
	}
	return req
}

// newPostRequest returns a POST request that sets every signed header
func newPostRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/foo/bar", bytes.NewReader([]byte(testPayload)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Length", strconv.Itoa(len(testPayload)))
	req.Header.Set("Content-MD5", "deadbeef")
	req.Header.Set("Date", "2015-09-28")
	req.Header.Set("Authorization", "trust me")
	req.Header.Set("X-Forwarded-User", "mbland")
	req.Header.Set("X-Forwarded-Email", "mbland@acm.org")
	req.Header.Set("X-Forwarded-Access-Token", "feedbead")
	req.Header.Set("Cookie", "foo; bar; baz=quux")
	req.Header.Set("Gap-Auth", "mbland")
	return req
}
