package mq

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, msg []byte) error
	Close() error
}

// RedisPublisher publishes on Redis pub/sub channels.
type RedisPublisher struct {
	conn *redis.Client
}

func NewRedisPublisher(conn *redis.Client) *RedisPublisher {
	return &RedisPublisher{conn: conn}
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	return p.conn.Publish(ctx, topic, msg).Err()
}

// Close leaves the client open; it is shared with the store.
func (p *RedisPublisher) Close() error {
	return nil
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("broilers"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(_ context.Context, topic string, msg []byte) error {
	return p.conn.Publish(topic, msg)
}

func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
