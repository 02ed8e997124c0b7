package rdx

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client and checks that the server answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.Ping(ctx).Err(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cannot reach redis at %s: %w", addr, err)
	}
	log.Printf("rdx: connected to redis at %s", addr)
	return conn, nil
}

// KV is the slice of Redis the blob store needs.
type KV interface {
	// Get reports false when the key does not exist.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}

type redisKV struct {
	conn *redis.Client
}

// NewKV adapts a Redis client to KV.
func NewKV(conn *redis.Client) KV {
	return redisKV{conn: conn}
}

func (r redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.conn.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r redisKV) Set(ctx context.Context, key, value string) error {
	return r.conn.Set(ctx, key, value, 0).Err()
}

func (r redisKV) Ping(ctx context.Context) error {
	return r.conn.Ping(ctx).Err()
}
