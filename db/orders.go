package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"broilers/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepo keeps one document per order, keyed by the order id.
type OrderRepo struct {
	store *Store
}

func NewOrderRepo(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

func (r *OrderRepo) Insert(ctx context.Context, o *models.Order) error {
	if _, err := r.store.Orders.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("failed to insert order %s: %w", o.ID, err)
	}
	return nil
}

func (r *OrderRepo) List(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepo) ListByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *OrderRepo) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.store.Orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return list, nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := r.store.Orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", id, err)
	}
	return &o, nil
}

// CompareAndSetStatus only matches the order while it is still in from.
func (r *OrderRepo) CompareAndSetStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error) {
	res, err := r.store.Orders.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": at}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	return res.MatchedCount == 1, nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.store.Orders.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

func (r *OrderRepo) RenameStatus(ctx context.Context, from, to models.OrderStatus) (int64, error) {
	res, err := r.store.Orders.UpdateMany(ctx,
		bson.M{"status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to rename status %s: %w", from, err)
	}
	return res.ModifiedCount, nil
}

func (r *OrderRepo) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
