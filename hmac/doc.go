// Package hmac implements the Gap-Signature scheme used to authenticate requests that
// arrive from a trusted reverse proxy: the proxy (which handles end-user
// authentication) signs each request it forwards with a shared secret, attaching the
// signature in the Gap-Signature header. A backend service configured with the same
// secret uses hmac.NewVerifier (or hmac.Middleware) to recompute the signature and
// reject any request that the proxy did not sign, or that was altered in transit.
//
// The signature is an HMAC, computed with a named digest algorithm, over a canonical
// string built from the request method, a fixed, ordered set of headers, and the
// request URL, followed immediately by the raw request body. The header value has the
// form "<algorithm> <base64-digest>", e.g. "sha1 JBQJcmSTteQyHZXFUA9glis9BIk=".
//
// Example usage:
//
//	mw, err := hmac.Middleware(hmac.MiddlewareConfig{Secret: secret})
//	if err != nil {
//		app.Fail("Failed to initialize signature validation", err)
//	}
//	entry.RunServer(app, mw(handler), "", 5000)
package hmac
