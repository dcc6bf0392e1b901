package queue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher appends messages to a Redis list named QueueName.
// Consumers pop from the head, so the list behaves as a FIFO queue.
type RedisPublisher struct {
	rdb redis.Cmdable
}

func NewRedisPublisher(rdb redis.Cmdable) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, msg Message) error {
	body, err := Encode(msg)
	if err != nil {
		return err
	}
	if err := p.rdb.RPush(ctx, QueueName, body).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", QueueName, err)
	}
	return nil
}
