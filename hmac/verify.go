package hmac

import (
	"crypto/hmac"
	"net/http"
	"strings"
)

// ValidateRequest checks the Gap-Signature presented with a request against the
// signature we compute for it using the given secret. It returns the Result along with
// the presented header value (unless no signature was presented) and the computed
// signature (only when we got far enough to compute one).
//
// The header's format and algorithm are checked before any MAC is computed, so
// malformed signatures are rejected without doing any hashing.
func ValidateRequest(req SignableRequest, body []byte, secret string) (Result, string, string) {
	header := req.Header(HeaderSignature)
	if header == "" {
		return ResultNoSignature, "", ""
	}

	components := strings.Split(header, " ")
	if len(components) != 2 {
		return ResultInvalidFormat, header, ""
	}

	algorithm := components[0]
	newHash, ok := lookupDigest(algorithm)
	if !ok {
		return ResultUnsupportedAlgorithm, header, ""
	}

	computed, err := computeSignature(req, body, algorithm, newHash, secret)
	if err != nil {
		return ResultMismatch, header, ""
	}
	if !hmac.Equal([]byte(header), []byte(computed)) {
		return ResultMismatch, header, computed
	}
	return ResultMatch, header, computed
}

// Verifier checks that incoming requests were signed by a proxy that shares our
// secret. Verify returns nil if the request's signature matches; otherwise it returns
// a *ValidationError.
type Verifier interface {
	Verify(req *http.Request, body []byte) error
}

// NewVerifier initializes a Verifier that checks signatures against the given secret.
// The secret must be the same value the proxy signs with; callers are expected to
// reject an empty secret when loading their configuration.
func NewVerifier(secret string) Verifier {
	return &verifier{
		secret: secret,
	}
}

type verifier struct {
	secret string
}

func (v *verifier) Verify(req *http.Request, body []byte) error {
	return verify(HTTPRequest(req), body, v.secret)
}

func verify(req SignableRequest, body []byte, secret string) error {
	result, header, computed := ValidateRequest(req, body, secret)
	if result != ResultMatch {
		return NewValidationError(result, header, computed)
	}
	return nil
}

var _ Verifier = (*verifier)(nil)
