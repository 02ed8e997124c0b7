package main

import (
	"context"
	"fmt"
	"log"

	"broilers/config"
	"broilers/content"
	"broilers/db"
	"broilers/mq"
	"broilers/orders"
	"broilers/rdx"
	"broilers/sqldb"

	"github.com/redis/go-redis/v9"
)

// backend is the storage selected by STORE_BACKEND plus whatever has to be
// released on shutdown.
type backend struct {
	orders  orders.Repository
	content content.Repository
	redis   *redis.Client
	closers []func(context.Context) error
}

func (b *backend) close(ctx context.Context) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			log.Printf("close backend: %v", err)
		}
	}
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{}

	switch cfg.StoreBackend {
	case config.BackendMongo:
		store, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		b.orders = db.NewOrderRepo(store)
		b.content = db.NewContentRepo(store)
		b.closers = append(b.closers, store.Disconnect)

	case config.BackendRedis:
		conn, err := rdx.Connect(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		blobs := rdx.NewBlobStore(rdx.NewKV(conn))
		b.orders, b.content, b.redis = blobs, blobs, conn
		b.closers = append(b.closers, func(context.Context) error { return conn.Close() })

	case config.BackendSQLite:
		store, err := sqldb.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.orders, b.content = store, store
		b.closers = append(b.closers, func(context.Context) error { return store.Close() })

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	log.Printf("Using %s store", cfg.StoreBackend)
	return b, nil
}

// openPublisher returns nil when no event bus is configured.
func openPublisher(ctx context.Context, cfg *config.Config, b *backend) (mq.Publisher, error) {
	switch cfg.EventBus {
	case config.BusNone, "":
		return nil, nil

	case config.BusRedis:
		conn := b.redis
		if conn == nil {
			var err error
			conn, err = rdx.Connect(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
			if err != nil {
				return nil, err
			}
			b.closers = append(b.closers, func(context.Context) error { return conn.Close() })
		}
		return mq.NewRedisPublisher(conn), nil

	case config.BusNATS:
		pub, err := mq.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			return nil, err
		}
		return pub, nil

	default:
		return nil, fmt.Errorf("unknown EVENT_BUS %q", cfg.EventBus)
	}
}
