package repository

import (
	"context"
	"fmt"

	"lagerbok/pkg/config"
	"lagerbok/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Storages"
)

// StorageRepository is the read-only view the deadline scanner needs: every
// active storage with its embedded bookings.
type StorageRepository interface {
	FindAllActive(ctx context.Context) ([]*model.Storage, error)
}

type mongoStorageRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoStorageRepository(cfg *config.Config) StorageRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoStorageRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoStorageRepository) FindAllActive(ctx context.Context) ([]*model.Storage, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find storages: %w", err)
	}
	defer cursor.Close(ctx)

	var storages []*model.Storage
	if err = cursor.All(ctx, &storages); err != nil {
		return nil, fmt.Errorf("failed to decode storages: %w", err)
	}

	return storages, nil
}
