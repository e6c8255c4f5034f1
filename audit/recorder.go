package audit

import (
	"context"
	"errors"
	"log/slog"
)

// Recorder stores or forwards a record of a rejected request
type Recorder interface {
	Record(ctx context.Context, rejection Rejection) error
}

// NewLogRecorder initializes a Recorder that writes each rejection to the given logger
// as a warning
func NewLogRecorder(logger *slog.Logger) Recorder {
	return &logRecorder{logger: logger}
}

type logRecorder struct {
	logger *slog.Logger
}

func (l *logRecorder) Record(ctx context.Context, rejection Rejection) error {
	l.logger.WarnContext(ctx, "Request rejected",
		"rejectionId", rejection.Id.String(),
		"result", rejection.Result,
		"method", rejection.Method,
		"url", rejection.Url,
		"gapAuthClaimed", rejection.GapAuth,
		"remoteAddr", rejection.RemoteAddr,
		"requestId", rejection.RequestId,
	)
	return nil
}

// Multi returns a Recorder that passes each rejection to all of the given recorders,
// in order. Every recorder is called even if an earlier one fails; the returned error
// joins all failures.
func Multi(recorders ...Recorder) Recorder {
	return multiRecorder(recorders)
}

type multiRecorder []Recorder

func (m multiRecorder) Record(ctx context.Context, rejection Rejection) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, rejection); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ Recorder = (*logRecorder)(nil)
var _ Recorder = multiRecorder(nil)
