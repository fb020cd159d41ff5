package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "lagerbok/internal/bookings/errors"
	"lagerbok/pkg/config"
	mongotx "lagerbok/pkg/db/mongo"
	"lagerbok/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// Bookings live embedded in storage documents, so this repository
	// writes into the same collection the storages service reads from.
	CollectionName = "Storages"
)

type BookingRepository interface {
	FindStorage(ctx context.Context, storageID int64) (*model.Storage, error)
	AddBooking(ctx context.Context, storageID int64, slotID int64, booking model.Booking) error
	RemoveBooking(ctx context.Context, storageID int64, slotID int64, bookingID string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless it already carries a
// tighter deadline or belongs to a transaction session.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoBookingRepository) FindStorage(ctx context.Context, storageID int64) (*model.Storage, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"_id": storageID, "active": true}

	var storage model.Storage
	err := r.collection.FindOne(ctx, filter).Decode(&storage)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrStorageNotFound
		}
		return nil, fmt.Errorf("failed to find storage: %w", err)
	}

	return &storage, nil
}

// AddBooking pushes one booking onto the target slot's booking list. The
// availability re-check happens in the service before the transaction; here
// the slot only has to exist.
func (r *mongoBookingRepository) AddBooking(ctx context.Context, storageID int64, slotID int64, booking model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	filter := bson.M{"_id": storageID, "active": true}
	update := bson.M{
		"$push": bson.M{"slots.$[s].bookings": booking},
		"$set":  bson.M{"updated_at": now},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"s.id": slotID}},
	})

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to add booking: %w", err)
	}

	if result.MatchedCount == 0 {
		return bookingserrors.ErrStorageNotFound
	}
	if result.ModifiedCount == 0 {
		return bookingserrors.ErrSlotNotFound
	}

	return nil
}

func (r *mongoBookingRepository) RemoveBooking(ctx context.Context, storageID int64, slotID int64, bookingID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)

	filter := bson.M{"_id": storageID, "active": true}
	update := bson.M{
		"$pull": bson.M{"slots.$[s].bookings": bson.M{"id": bookingID}},
		"$set":  bson.M{"updated_at": now},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"s.id": slotID}},
	})

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to remove booking: %w", err)
	}

	if result.MatchedCount == 0 {
		return bookingserrors.ErrStorageNotFound
	}
	if result.ModifiedCount == 0 {
		return bookingserrors.ErrBookingNotFound
	}

	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
