package db

import (
	"context"
	"errors"
	"fmt"

	"broilers/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const siteContentID = "site"

type contentDoc struct {
	ID                     string `bson:"_id"`
	models.EditableContent `bson:",inline"`
}

// ContentRepo stores the site content as a single document.
type ContentRepo struct {
	store *Store
}

func NewContentRepo(store *Store) *ContentRepo {
	return &ContentRepo{store: store}
}

func (r *ContentRepo) Load(ctx context.Context) (*models.EditableContent, error) {
	var doc contentDoc
	err := r.store.Content.FindOne(ctx, bson.M{"_id": siteContentID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load site content: %w", err)
	}
	return &doc.EditableContent, nil
}

func (r *ContentRepo) Save(ctx context.Context, c *models.EditableContent) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.store.Content.ReplaceOne(ctx,
		bson.M{"_id": siteContentID},
		contentDoc{ID: siteContentID, EditableContent: *c},
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to save site content: %w", err)
	}
	return nil
}
