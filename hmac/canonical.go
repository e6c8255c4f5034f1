package hmac

import "strings"

// StringToSign builds the canonical string for a request: the method, the value of
// each signed header in order (with an empty line in place of any header that's
// absent), and the request URL, separated by newlines
func StringToSign(req SignableRequest) string {
	var b strings.Builder
	b.WriteString(req.Method())
	b.WriteByte('\n')
	for i, name := range signedHeaders {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(req.Header(name))
	}
	b.WriteByte('\n')
	b.WriteString(req.URL())
	return b.String()
}
