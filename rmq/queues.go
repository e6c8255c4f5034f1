package rmq

import (
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueDeclaration names a fanout exchange: producers publish each message to the
// exchange, and every consumer receives a copy through its own queue bound to it
type QueueDeclaration struct {
	Name string

	// ConsumerQueue, if set, names a durable queue that consumers bind to the exchange,
	// so that messages published while no consumer is running are kept until one
	// reconnects. Consumers sharing a ConsumerQueue split its messages between them.
	// When empty, each consumer gets an exclusive, server-named queue that's deleted
	// when it disconnects.
	ConsumerQueue string
}

// RejectionsQueue carries a record of each request that was rejected because its
// Gap-Signature could not be validated
var RejectionsQueue = QueueDeclaration{
	Name: "gap-rejections",
}

// WithConsumerQueue returns a copy of d whose consumers read from the named durable
// queue
func (d QueueDeclaration) WithConsumerQueue(name string) QueueDeclaration {
	d.ConsumerQueue = name
	return d
}

func (d QueueDeclaration) validate() error {
	if d.Name == "" {
		return errors.New("exchange name must not be empty")
	}
	return nil
}

// consumerQueueOptions returns the arguments used to declare a consumer's queue
func (d QueueDeclaration) consumerQueueOptions() (name string, durable bool, exclusive bool) {
	if d.ConsumerQueue != "" {
		return d.ConsumerQueue, true, false
	}
	return "", false, true
}

// declareExchange declares the durable fanout exchange described by d
func (d QueueDeclaration) declareExchange(ch *amqp.Channel) error {
	durable := true
	autoDelete := false
	internal := false
	noWait := false
	return ch.ExchangeDeclare(d.Name, amqp.ExchangeFanout, durable, autoDelete, internal, noWait, nil)
}
