package rmq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NewProducer declares the exchange described by d and returns a Producer that
// publishes to it
func NewProducer(conn *amqp.Connection, d QueueDeclaration) (Producer, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}
	if err := d.declareExchange(ch); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", d.Name, err)
	}
	return &producer{
		conn:     conn,
		exchange: d.Name,
		ch:       ch,
	}, nil
}

// producer publishes to a fanout exchange over a single channel, which is reopened if
// the server closes it (e.g. after a failed publish)
type producer struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch *amqp.Channel
}

func (p *producer) Send(ctx context.Context, data interface{}) error {
	msg, err := newPublishing(data)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil || p.ch.IsClosed() {
		ch, err := p.conn.Channel()
		if err != nil {
			return fmt.Errorf("failed to reopen channel: %w", err)
		}
		p.ch = ch
	}

	mandatory := false
	immediate := false
	if err := p.ch.PublishWithContext(ctx, p.exchange, "", mandatory, immediate, msg); err != nil {
		return fmt.Errorf("failed to publish to exchange '%s': %w", p.exchange, err)
	}
	return nil
}
