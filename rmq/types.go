package rmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Producer publishes arbitrary values, serialized as JSON, to a single exchange
type Producer interface {
	Send(ctx context.Context, data interface{}) error
}

// Consumer receives AMQP deliveries from a queue bound to a single exchange. Each
// delivery must be acked or nacked.
type Consumer interface {
	Close()
	Recv(ctx context.Context) (<-chan amqp.Delivery, error)
}
