package audit

import (
	"context"
	"net/http"
	"time"

	"github.com/golden-vcr/gap-auth/entry"
	"github.com/golden-vcr/gap-auth/hmac"
)

// Hook adapts a Recorder for use as hmac.MiddlewareConfig.OnReject. Each rejection is
// recorded before the error response is sent, allowing up to timeout for the recorder
// to finish; failures are logged and otherwise ignored, since the request is rejected
// either way.
func Hook(recorder Recorder, timeout time.Duration) func(r *http.Request, err *hmac.ValidationError) {
	return func(r *http.Request, err *hmac.ValidationError) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), timeout)
		defer cancel()

		rejection := NewRejection(r, err)
		if recordErr := recorder.Record(ctx, rejection); recordErr != nil {
			entry.Log(r).Error("Failed to record rejected request", "rejectionId", rejection.Id.String(), "error", recordErr)
		}
	}
}
