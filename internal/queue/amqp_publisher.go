package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	DefaultPublishTimeout = 5 * time.Second

	// closeGrace bounds the connection.close handshake with the broker.
	closeGrace = time.Second
)

// AMQPPublisher opens a fresh broker connection for every Publish call,
// declares the durable queue, publishes and closes the connection again.
// Nothing is pooled.
type AMQPPublisher struct {
	url         string
	timeout     time.Duration
	dialTimeout time.Duration
	log         *zap.SugaredLogger
}

type AMQPOption func(*AMQPPublisher)

// WithDialTimeout bounds the TCP connect and AMQP handshake separately
// from the overall publish timeout.
func WithDialTimeout(d time.Duration) AMQPOption {
	return func(p *AMQPPublisher) { p.dialTimeout = d }
}

// NewAMQPPublisher returns a publisher for the broker at url. timeout
// bounds a whole Publish call, from dial to close; zero means
// DefaultPublishTimeout.
func NewAMQPPublisher(url string, timeout time.Duration, log *zap.SugaredLogger, opts ...AMQPOption) *AMQPPublisher {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	p := &AMQPPublisher{url: url, timeout: timeout, dialTimeout: timeout, log: log}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish returns when the message is handed to the broker, when a step
// fails or when the timeout or ctx expires, whichever comes first. The
// library ignores contexts after the handshake, so the broker exchange
// runs in its own goroutine and an abandoned connection is torn down with
// a close deadline.
func (p *AMQPPublisher) Publish(ctx context.Context, msg Message) error {
	body, err := Encode(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	connCh := make(chan *amqp.Connection, 1)
	done := make(chan error, 1)
	go func() { done <- p.publish(ctx, body, connCh) }()

	select {
	case err := <-done:
		if err != nil {
			return err
		}
		p.log.Debugw("published message", "queue", QueueName, "name", msg.Name, "age", msg.Age)
		return nil
	case <-ctx.Done():
		select {
		case conn := <-connCh:
			p.closeConn(conn)
		default:
			// Still dialing; publish closes the connection itself once
			// it sees ctx is done.
		}
		return fmt.Errorf("publish to %s: %w", QueueName, ctx.Err())
	}
}

func (p *AMQPPublisher) publish(ctx context.Context, body []byte, connCh chan<- *amqp.Connection) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.dialTimeout)})
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	connCh <- conn
	defer p.closeConn(conn)
	if err := ctx.Err(); err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", QueueName, err)
	}

	err = ch.PublishWithContext(ctx, "", QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", QueueName, err)
	}
	return nil
}

// closeConn may run twice for one connection when a timeout races the
// broker exchange; the second call reports ErrClosed and is ignored.
func (p *AMQPPublisher) closeConn(conn *amqp.Connection) {
	err := conn.CloseDeadline(time.Now().Add(closeGrace))
	if err != nil && !errors.Is(err, amqp.ErrClosed) {
		p.log.Warnw("failed to close broker connection", "error", err)
	}
}
