package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	ordersCollection  = "orders"
	contentCollection = "content"
)

// Store holds the MongoDB client and the collections the service uses.
type Store struct {
	Client  *mongo.Client
	Orders  *mongo.Collection
	Content *mongo.Collection
}

// Connect dials MongoDB, checks the connection and creates the indexes
// the order queries rely on.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("cannot connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("cannot reach mongodb at %s: %w", uri, err)
	}

	dbh := client.Database(database)
	s := &Store{
		Client:  client,
		Orders:  dbh.Collection(ordersCollection),
		Content: dbh.Collection(contentCollection),
	}

	if err := s.createIndexes(ctx); err != nil {
		log.Printf("db: cannot create indexes: %v", err)
	}
	log.Printf("db: connected to mongodb database %q", database)
	return s, nil
}

func (s *Store) createIndexes(ctx context.Context) error {
	_, err := s.Orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (s *Store) Disconnect(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}
