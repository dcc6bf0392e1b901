package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// QueueName is both the durable queue name and the routing key used on
// the default exchange.
const QueueName = "kosmonaut_queue"

const (
	DriverAMQP   = "amqp"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

var ErrUnknownDriver = errors.New("unknown publisher driver")

// Message is the creation announcement for a single cosmonaut.
type Message struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type Publisher interface {
	// Publish delivers msg to QueueName. It returns once the transport has
	// accepted the message or failed.
	Publish(ctx context.Context, msg Message) error
}

// Encode returns the wire body for msg.
func Encode(msg Message) ([]byte, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return body, nil
}
