package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lagerbok/internal/migrations/mongo/validators"
)

const (
	StoragesCollection = "Storages"
)

var (
	StoragesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "active", Value: 1}}},
		{Keys: bson.D{{Key: "storage_type", Value: 1}, {Key: "frost_free", Value: 1}}},
		{Keys: bson.D{
			{Key: "slots.bookings.start_date", Value: 1},
			{Key: "slots.bookings.end_date", Value: 1},
		}},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("🚀 Running Lagerbok Mongo migrations on database: %s\n", dbName)

	if err := ensureCollection(ctx, db, StoragesCollection, validators.StorageValidator); err != nil {
		return fmt.Errorf("failed to ensure collection %s: %w", StoragesCollection, err)
	}
	if err := ensureIndexes(ctx, db, StoragesCollection, StoragesIndexes); err != nil {
		return fmt.Errorf("failed to ensure indexes for %s: %w", StoragesCollection, err)
	}

	if err := seedStorages(ctx, db); err != nil {
		return fmt.Errorf("failed to seed storages: %w", err)
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("ℹ️ Collection %s already exists, updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}
