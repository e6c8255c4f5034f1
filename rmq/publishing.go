package rmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// newPublishing serializes data to JSON and wraps it in a persistent AMQP message,
// tagged with a unique message ID so that consumers can discard duplicate deliveries
func newPublishing(data interface{}) (amqp.Publishing, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to serialize message: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         jsonData,
	}, nil
}
