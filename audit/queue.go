package audit

import (
	"context"
	"fmt"

	"github.com/golden-vcr/gap-auth/rmq"
)

// NewQueueRecorder initializes a Recorder that publishes each rejection, as JSON, via
// the given producer (typically one declared with rmq.RejectionsQueue)
func NewQueueRecorder(producer rmq.Producer) Recorder {
	return &queueRecorder{producer: producer}
}

type queueRecorder struct {
	producer rmq.Producer
}

func (q *queueRecorder) Record(ctx context.Context, rejection Rejection) error {
	if err := q.producer.Send(ctx, rejection); err != nil {
		return fmt.Errorf("failed to publish rejection %s: %w", rejection.Id, err)
	}
	return nil
}

var _ Recorder = (*queueRecorder)(nil)
