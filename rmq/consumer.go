package rmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// consumerPrefetch limits how many unacknowledged deliveries the server will push to a
// single consumer
const consumerPrefetch = 32

// NewConsumer declares the exchange described by d, binds a queue to it, and returns
// a Consumer that receives from that queue. The caller must call Close when done.
func NewConsumer(conn *amqp.Connection, d QueueDeclaration) (Consumer, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}
	q, err := d.declareConsumerQueue(ch)
	if err != nil {
		ch.Close()
		return nil, err
	}
	if err := ch.Qos(consumerPrefetch, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to set prefetch count: %w", err)
	}
	return &consumer{
		ch:    ch,
		queue: q.Name,
	}, nil
}

func (d QueueDeclaration) declareConsumerQueue(ch *amqp.Channel) (*amqp.Queue, error) {
	if err := d.declareExchange(ch); err != nil {
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", d.Name, err)
	}

	name, durable, exclusive := d.consumerQueueOptions()
	autoDelete := false
	noWait := false
	q, err := ch.QueueDeclare(name, durable, autoDelete, exclusive, noWait, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to declare consumer queue for exchange '%s': %w", d.Name, err)
	}
	if err := ch.QueueBind(q.Name, "", d.Name, noWait, nil); err != nil {
		return nil, fmt.Errorf("failed to bind queue '%s' to exchange '%s': %w", q.Name, d.Name, err)
	}
	return &q, nil
}

type consumer struct {
	ch    *amqp.Channel
	queue string
}

func (c *consumer) Close() {
	c.ch.Close()
}

func (c *consumer) Recv(ctx context.Context) (<-chan amqp.Delivery, error) {
	autoAck := false
	exclusive := false
	noLocal := false
	noWait := false
	return c.ch.ConsumeWithContext(ctx, c.queue, "", autoAck, exclusive, noLocal, noWait, nil)
}
