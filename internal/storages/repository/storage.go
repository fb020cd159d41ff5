package repository

import (
	"context"
	"errors"
	"fmt"
	storageserrors "lagerbok/internal/storages/errors"
	"lagerbok/pkg/config"
	"lagerbok/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Storages"
)

type StorageRepository interface {
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Storage, error)
	FindAllActive(ctx context.Context) ([]*model.Storage, error)
	FindByID(ctx context.Context, id int64) (*model.Storage, error)
	Count(ctx context.Context) (int64, error)
}

type mongoStorageRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

func NewMongoStorageRepository(cfg *config.Config) StorageRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoStorageRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout wraps the context with a timeout unless it already carries a
// tighter deadline or belongs to a transaction session.
func (r *mongoStorageRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// activeFilter excludes storages taken out of rotation. Inactive documents
// stay in the collection for history but never reach search or booking.
func activeFilter() bson.M {
	return bson.M{"active": true}
}

func (r *mongoStorageRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Storage, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, activeFilter(), opts)
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

func (r *mongoStorageRepository) FindAllActive(ctx context.Context) ([]*model.Storage, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, activeFilter(), opts)
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

func (r *mongoStorageRepository) FindByID(ctx context.Context, id int64) (*model.Storage, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := activeFilter()
	filter["_id"] = id

	var storage model.Storage
	err := r.collection.FindOne(ctx, filter).Decode(&storage)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storageserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find storage: %w", err)
	}

	return &storage, nil
}

func (r *mongoStorageRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, activeFilter())
	if err != nil {
		return 0, fmt.Errorf("failed to count storages: %w", err)
	}

	return count, nil
}
