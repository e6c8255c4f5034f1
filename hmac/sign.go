package hmac

import (
	"crypto/hmac"
	"encoding/base64"
	"errors"
	"fmt"
	"hash"
	"net/http"
)

// ErrNoSecret is returned when a signer, verifier, or middleware is configured with
// an empty secret key
var ErrNoSecret = errors.New("secret key must not be empty")

// RequestSignature computes the Gap-Signature value for a request: an HMAC, using the
// named digest algorithm and the given secret, over the canonical string for the
// request followed by the raw request body. The result has the form
// "<algorithm> <base64-digest>", with algorithm exactly as supplied by the caller.
func RequestSignature(req SignableRequest, body []byte, algorithm string, secret string) (string, error) {
	newHash, ok := lookupDigest(algorithm)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
	return computeSignature(req, body, algorithm, newHash, secret)
}

func computeSignature(req SignableRequest, body []byte, algorithm string, newHash func() hash.Hash, secret string) (string, error) {
	mac := hmac.New(newHash, []byte(secret))
	if _, err := mac.Write([]byte(StringToSign(req))); err != nil {
		return "", fmt.Errorf("failed to write canonical string to hash: %w", err)
	}
	if _, err := mac.Write(body); err != nil {
		return "", fmt.Errorf("failed to write request body to hash: %w", err)
	}
	return algorithm + " " + base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Signer attaches a Gap-Signature to outgoing requests, as a proxy does before
// forwarding a request to the backend it protects
type Signer interface {
	Sign(req *http.Request, body []byte) (*http.Request, error)
}

// NewSigner initializes a Signer that will compute signatures with the named digest
// algorithm and the given secret
func NewSigner(algorithm string, secret string) (Signer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if !IsSupportedAlgorithm(algorithm) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
	return &signer{
		algorithm: algorithm,
		secret:    secret,
	}, nil
}

type signer struct {
	algorithm string
	secret    string
}

func (s *signer) Sign(req *http.Request, body []byte) (*http.Request, error) {
	signature, err := RequestSignature(HTTPRequest(req), body, s.algorithm, s.secret)
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderSignature, signature)
	return req, nil
}

var _ Signer = (*signer)(nil)
