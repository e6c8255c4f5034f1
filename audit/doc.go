// Package audit records requests that were rejected by Gap-Signature validation. A
// rejected request is a security-relevant event: a misconfigured proxy, a rotated
// secret that hasn't been rolled out everywhere, or a client attempting to bypass the
// proxy altogether. Each rejection is captured as a Rejection and handed to a
// Recorder, which may log it, publish it to RabbitMQ, or store it in Postgres.
//
// Example usage:
//
//	recorder := audit.Multi(audit.NewLogRecorder(app.Log()), audit.NewQueueRecorder(producer))
//	mw, err := hmac.Middleware(hmac.MiddlewareConfig{
//		Secret:   secret,
//		OnReject: audit.Hook(recorder, 5*time.Second),
//	})
package audit
