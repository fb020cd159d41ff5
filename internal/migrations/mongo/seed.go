package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"lagerbok/pkg/model"
)

// seedStorages inserts the initial fleet on an empty collection. Existing
// data is never touched, so re-running the migration is safe.
func seedStorages(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(StoragesCollection)

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		fmt.Printf("ℹ️ Collection %s already has %d documents, skipping seed\n", StoragesCollection, count)
		return nil
	}

	storages := seedFleet()
	docs := make([]interface{}, len(storages))
	for i := range storages {
		docs[i] = storages[i]
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return err
	}

	fmt.Printf("🌱 Seeded %d storages\n", len(storages))
	return nil
}

func seedFleet() []model.Storage {
	now := time.Now().UTC().Truncate(time.Millisecond)

	warehouseA := fleetStorage(1, "Warehouse A", "Havnegata 12, Oslo", 200, 100, now)
	warehouseA.Slots = namedSlots(1, "A", 10)
	// Slot A3 carries the long-running tenant the fleet started with.
	warehouseA.Slots[2].Bookings = []model.Booking{{
		ID:                "seed-a3",
		StartDate:         time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
		ResponsiblePerson: "Mette Holm",
		CompanyName:       "Global Shipping ApS",
		CompanyEmail:      "booking@globalshipping.dk",
		CompanyTlf:        "+4533221100",
		CreatedAt:         now,
	}}

	warehouseB := fleetStorage(2, "Warehouse B", "Kaiveien 4, Drammen", 160, 120, now)
	warehouseB.Slots = namedSlots(11, "B", 10)

	warehouseC := fleetStorage(3, "Warehouse C", "Industrivegen 30, Moss", 220, 90, now)
	warehouseC.Slots = namedSlots(21, "C", 10)
	warehouseC.FrostFree = false
	warehouseC.GateHeight = 3.8

	outsideD := model.Storage{
		ID:              4,
		Name:            "Outside Yard D",
		Address:         "Terminalgata 8, Oslo",
		Width:           80,
		Length:          150,
		StorageType:     model.StorageTypeOutside,
		SlotVolume:      50,
		GatePositioning: []model.GatePosition{},
		Slots:           namedSlots(31, "D", 6),
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return []model.Storage{warehouseA, warehouseB, warehouseC, outsideD}
}

func fleetStorage(id int64, name, address string, width, length float64, now time.Time) model.Storage {
	return model.Storage{
		ID:              id,
		Name:            name,
		Address:         address,
		Width:           width,
		Length:          length,
		StorageType:     model.StorageTypeWarehouse,
		GateHeight:      4.5,
		GateWidth:       4.0,
		FrostFree:       true,
		SlotVolume:      25,
		GatePositioning: []model.GatePosition{model.GateFront, model.GateBack},
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func namedSlots(firstID int64, prefix string, n int) []model.Slot {
	slots := make([]model.Slot, n)
	for i := 0; i < n; i++ {
		slots[i] = model.Slot{
			ID:       firstID + int64(i),
			Name:     fmt.Sprintf("%s%d", prefix, i+1),
			Bookings: []model.Booking{},
		}
	}
	return slots
}
