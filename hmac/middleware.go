package hmac

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/golden-vcr/gap-auth/entry"
)

// MiddlewareConfig configures the HTTP middleware that rejects requests lacking a
// valid Gap-Signature
type MiddlewareConfig struct {
	// Secret is the key shared with the signing proxy. Required.
	Secret string

	// MaxBodyBytes, if greater than zero, limits the size of the request body that
	// will be buffered in order to verify the signature: larger requests are rejected
	// with 413 Request Entity Too Large
	MaxBodyBytes int64

	// OnReject, if set, is called with every request that fails validation, before the
	// error response is written
	OnReject func(r *http.Request, err *ValidationError)

	// OnError writes the response for a request that fails validation. When nil, a
	// plain 401 Unauthorized response is sent. Diagnostic details are never included
	// in the default response.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// Middleware returns an HTTP middleware function that buffers the body of each
// incoming request, verifies its Gap-Signature, and only passes the request on to the
// next handler if the signature matches. The body is restored before the next handler
// is called, so it can be read again as normal.
func Middleware(cfg MiddlewareConfig) (func(http.Handler) http.Handler, error) {
	if cfg.Secret == "" {
		return nil, ErrNoSecret
	}

	onError := cfg.OnError
	if onError == nil {
		onError = defaultOnError
	}
	secret := cfg.Secret
	maxBodyBytes := cfg.MaxBodyBytes
	onReject := cfg.OnReject

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := entry.Log(r)

			body, err := readAndRestoreBody(w, r, maxBodyBytes)
			if err != nil {
				var maxBytesErr *http.MaxBytesError
				if errors.As(err, &maxBytesErr) {
					logger.Warn("Request body too large to verify signature", "limit", maxBytesErr.Limit)
					http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
					return
				}
				logger.Error("Failed to read request body", "error", err)
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}

			err = verify(HTTPRequest(r), body, secret)
			if err != nil {
				var validationErr *ValidationError
				if errors.As(err, &validationErr) {
					logger.Warn("Rejected request with invalid signature", "result", validationErr.Result.String())
					if onReject != nil {
						onReject(r, validationErr)
					}
				}
				onError(w, r, err)
				return
			}

			// The proxy's identity assertion is trustworthy now that the signature
			// covering it has been validated
			if gapAuth := r.Header.Get(HeaderGapAuth); gapAuth != "" {
				r = r.WithContext(entry.WithLogger(r.Context(), logger.With("gapAuth", gapAuth)))
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}

// readAndRestoreBody reads the entire request body and replaces it with a new reader
// so the body can be consumed again by downstream handlers
func readAndRestoreBody(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	reader := r.Body
	if maxBytes > 0 {
		reader = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

// defaultOnError writes a 401 Unauthorized response with a generic message
func defaultOnError(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}
