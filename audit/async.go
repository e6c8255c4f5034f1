package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrQueueFull is returned by an AsyncRecorder that has no room for another rejection
var ErrQueueFull = errors.New("rejection queue is full")

// ErrRecorderClosed is returned by an AsyncRecorder after Close has been called
var ErrRecorderClosed = errors.New("recorder is closed")

// AsyncRecorder hands rejections to a background worker, so that recording to a slow or
// unavailable store doesn't hold up the response to a rejected request. At most
// capacity rejections are buffered: further rejections are refused with ErrQueueFull
// until the worker catches up.
type AsyncRecorder struct {
	recorder Recorder
	timeout  time.Duration
	logger   *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Rejection
	done   chan struct{}
}

// NewAsyncRecorder starts a worker that passes each queued rejection to recorder,
// allowing up to timeout for each one. Failures are logged to logger. The caller must
// call Close when done.
func NewAsyncRecorder(recorder Recorder, capacity int, timeout time.Duration, logger *slog.Logger) *AsyncRecorder {
	a := &AsyncRecorder{
		recorder: recorder,
		timeout:  timeout,
		logger:   logger,
		queue:    make(chan Rejection, capacity),
		done:     make(chan struct{}),
	}
	go a.run()
	return a
}

// Record queues the rejection without waiting for it to be recorded
func (a *AsyncRecorder) Record(ctx context.Context, rejection Rejection) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrRecorderClosed
	}
	select {
	case a.queue <- rejection:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting rejections and blocks until every queued rejection has been
// passed to the underlying recorder
func (a *AsyncRecorder) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()
	<-a.done
}

func (a *AsyncRecorder) run() {
	defer close(a.done)
	for rejection := range a.queue {
		a.record(rejection)
	}
}

func (a *AsyncRecorder) record(rejection Rejection) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	if err := a.recorder.Record(ctx, rejection); err != nil {
		a.logger.Error("Failed to record rejected request",
			"rejectionId", rejection.Id.String(),
			"requestId", rejection.RequestId,
			"error", err,
		)
	}
}

var _ Recorder = (*AsyncRecorder)(nil)
