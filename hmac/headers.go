package hmac

const (
	// HeaderSignature is the name of the header that carries the signature computed
	// by the proxy, formatted as "<algorithm> <base64-digest>"
	HeaderSignature = "Gap-Signature"

	// HeaderGapAuth is the name of the header in which the proxy identifies the
	// end user it has authenticated
	HeaderGapAuth = "Gap-Auth"
)

// signedHeaders is the ordered list of headers whose values are included in the
// canonical string for a request. Changing the contents or the order of this list
// breaks compatibility with every proxy that signs requests for us.
var signedHeaders = [...]string{
	"Content-Length",
	"Content-Md5",
	"Content-Type",
	"Date",
	"Authorization",
	"X-Forwarded-User",
	"X-Forwarded-Email",
	"X-Forwarded-Access-Token",
	"Cookie",
	HeaderGapAuth,
}

// SignedHeaders returns a copy of the ordered list of headers that participate in
// the signature
func SignedHeaders() []string {
	headers := make([]string, len(signedHeaders))
	copy(headers, signedHeaders[:])
	return headers
}
