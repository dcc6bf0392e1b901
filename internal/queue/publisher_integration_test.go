//go:build integration
// +build integration

package queue

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
)

const (
	rabbitImage    = "rabbitmq:3.13-alpine"
	redisImage     = "redis:7-alpine"
	startupTimeout = 60 * time.Second
)

// startContainer runs image and returns host:port for the mapped port.
func startContainer(t *testing.T, image, port string, waitFor wait.Strategy) string {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{port},
			WaitingFor:   waitFor,
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate %s container: %v", image, err)
		}
	})

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, mapped.Port())
}

func TestAMQPPublisher_Integration(t *testing.T) {
	addr := startContainer(t, rabbitImage, "5672/tcp",
		wait.ForLog("Server startup complete").WithStartupTimeout(startupTimeout))
	url := "amqp://guest:guest@" + addr + "/"

	p := NewAMQPPublisher(url, 10*time.Second, zaptest.NewLogger(t).Sugar())
	require.NoError(t, p.Publish(t.Context(), Message{Name: "Yuri Gagarin", Age: 27}))

	conn, err := amqp.Dial(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	// Redeclaring with durable=false must clash with the queue the publisher declared.
	ch, err := conn.Channel()
	require.NoError(t, err)
	_, err = ch.QueueDeclare(QueueName, false, false, false, false, nil)
	var amqpErr *amqp.Error
	require.True(t, errors.As(err, &amqpErr), "expected a channel error, got %v", err)
	assert.Equal(t, amqp.PreconditionFailed, amqpErr.Code)

	// The failed declare closed that channel.
	ch, err = conn.Channel()
	require.NoError(t, err)
	q, err := ch.QueueDeclarePassive(QueueName, true, false, false, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Messages)

	d, ok, err := ch.Get(QueueName, true)
	require.NoError(t, err)
	require.True(t, ok, "queue is empty")
	assert.Equal(t, "", d.Exchange)
	assert.Equal(t, QueueName, d.RoutingKey)
	assert.Equal(t, "application/json", d.ContentType)
	assert.Equal(t, amqp.Persistent, d.DeliveryMode)
	assert.Equal(t, `{"name":"Yuri Gagarin","age":27}`, string(d.Body))
}

func TestRedisPublisher_Integration(t *testing.T) {
	addr := startContainer(t, redisImage, "6379/tcp",
		wait.ForLog("Ready to accept connections").WithStartupTimeout(startupTimeout))

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := t.Context()
	require.NoError(t, rdb.Del(ctx, QueueName).Err())

	p := NewRedisPublisher(rdb)
	require.NoError(t, p.Publish(ctx, Message{Name: "Valentina Tereshkova", Age: 26}))
	require.NoError(t, p.Publish(ctx, Message{Name: "Laika", Age: 0}))

	items, err := rdb.LRange(ctx, QueueName, 0, -1).Result()
	require.NoError(t, err)
	assert.Equal(t, []string{
		`{"name":"Valentina Tereshkova","age":26}`,
		`{"name":"Laika","age":0}`,
	}, items)
}
