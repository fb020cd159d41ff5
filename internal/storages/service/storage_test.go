package service

import (
	"testing"
	"time"

	"lagerbok/pkg/model"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func freeSlots(n int) []model.Slot {
	slots := make([]model.Slot, n)
	for i := range slots {
		slots[i] = model.Slot{ID: int64(i + 1), Name: string(rune('A' + i)), Bookings: []model.Booking{}}
	}
	return slots
}

func warehouse(id int64, opts ...func(*model.Storage)) *model.Storage {
	st := &model.Storage{
		ID:          id,
		Name:        "Hall",
		StorageType: model.StorageTypeWarehouse,
		GateHeight:  4.5,
		GateWidth:   4.0,
		FrostFree:   true,
		SlotVolume:  25,
		Slots:       freeSlots(4),
		Active:      true,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

func baseFilter() model.SearchFilter {
	return model.SearchFilter{
		StartDate: date("2025-09-01"),
		EndDate:   date("2025-09-10"),
	}
}

func TestValidSearchFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter model.SearchFilter
		want   bool
	}{
		{"both dates", baseFilter(), true},
		{"missing start", model.SearchFilter{EndDate: date("2025-09-10")}, false},
		{"missing end", model.SearchFilter{StartDate: date("2025-09-01")}, false},
		{"no dates", model.SearchFilter{}, false},
		{
			"negative min meters",
			model.SearchFilter{StartDate: date("2025-09-01"), EndDate: date("2025-09-10"), MinAvailableMeters: -1},
			false,
		},
		{
			"negative cargo height",
			model.SearchFilter{StartDate: date("2025-09-01"), EndDate: date("2025-09-10"), CargoHeight: -0.5},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validSearchFilter(tt.filter); got != tt.want {
				t.Errorf("validSearchFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterStoragesFrostFree(t *testing.T) {
	cold := warehouse(1, func(st *model.Storage) { st.FrostFree = false })
	heated := warehouse(2)

	filter := baseFilter()
	filter.FrostFreeOnly = true

	results := FilterStorages([]*model.Storage{cold, heated}, filter)
	if len(results) != 1 || results[0].Storage.ID != 2 {
		t.Fatalf("expected only the frost-free storage, got %d results", len(results))
	}
}

func TestFilterStoragesTrailerClearance(t *testing.T) {
	// Gate 4.0m. Mafi clearance eats 1.0m, so effective height is 3.0m.
	st := warehouse(1, func(st *model.Storage) { st.GateHeight = 4.0 })

	filter := baseFilter()
	filter.MafiTrailer = true
	filter.CargoHeight = 3.5

	if results := FilterStorages([]*model.Storage{st}, filter); len(results) != 0 {
		t.Fatal("cargo of 3.5m must not pass a 4.0m gate under mafi clearance")
	}

	filter.CargoHeight = 3.0
	if results := FilterStorages([]*model.Storage{st}, filter); len(results) != 1 {
		t.Fatal("cargo of 3.0m should pass a 4.0m gate under mafi clearance")
	}
}

// Both the clearance-adjusted check and the raw gate comparison apply when a
// mafi trailer and cargo dimensions are both set. This combination is relied
// on downstream; the test pins it.
func TestFilterStoragesCargoChecksStack(t *testing.T) {
	st := warehouse(1, func(st *model.Storage) {
		st.GateHeight = 5.0
		st.GateWidth = 3.0
	})

	filter := baseFilter()
	filter.MafiTrailer = true
	filter.CargoHeight = 3.8 // passes 5.0-1.0=4.0 effective height
	filter.CargoWidth = 3.2  // fails raw width check

	if results := FilterStorages([]*model.Storage{st}, filter); len(results) != 0 {
		t.Fatal("raw gate width check must still apply in trailer mode")
	}
}

func TestFilterStoragesOutsideExemptFromGateChecks(t *testing.T) {
	st := warehouse(1, func(st *model.Storage) {
		st.StorageType = model.StorageTypeOutside
		st.GateHeight = 0
		st.GateWidth = 0
	})

	filter := baseFilter()
	filter.MafiTrailer = true
	filter.CargoHeight = 6.0
	filter.CargoWidth = 6.0

	if results := FilterStorages([]*model.Storage{st}, filter); len(results) != 1 {
		t.Fatal("outside storages have no gates and must pass dimension checks")
	}
}

func TestFilterStoragesAreaThreshold(t *testing.T) {
	// 4 free slots x 25 m2 = 100 m2 available.
	st := warehouse(1)

	filter := baseFilter()
	filter.MinAvailableMeters = 100
	if results := FilterStorages([]*model.Storage{st}, filter); len(results) != 1 {
		t.Fatal("exactly the available area should satisfy the threshold")
	}

	filter.MinAvailableMeters = 101
	if results := FilterStorages([]*model.Storage{st}, filter); len(results) != 0 {
		t.Fatal("101 m2 must not be satisfied by 100 m2 available")
	}
}

func TestFilterStoragesDropsFullyBookedStorage(t *testing.T) {
	booked := warehouse(1, func(st *model.Storage) {
		for i := range st.Slots {
			st.Slots[i].Bookings = []model.Booking{{
				ID:        "b",
				StartDate: date("2025-08-20"),
				EndDate:   date("2025-09-20"),
			}}
		}
	})

	if results := FilterStorages([]*model.Storage{booked}, baseFilter()); len(results) != 0 {
		t.Fatal("a storage with zero free slots for the range must be dropped")
	}
}

func TestFilterStoragesTypeAll(t *testing.T) {
	wh := warehouse(1)
	out := warehouse(2, func(st *model.Storage) { st.StorageType = model.StorageTypeOutside })

	filter := baseFilter()
	filter.StorageType = model.StorageTypeAll
	if results := FilterStorages([]*model.Storage{wh, out}, filter); len(results) != 2 {
		t.Fatal("'all' must match every storage type")
	}

	filter.StorageType = model.StorageTypeOutside
	results := FilterStorages([]*model.Storage{wh, out}, filter)
	if len(results) != 1 || results[0].Storage.ID != 2 {
		t.Fatal("type filter should keep only outside storages")
	}
}

func TestFilterStoragesPreservesInputOrder(t *testing.T) {
	storages := []*model.Storage{warehouse(3), warehouse(1), warehouse(2)}

	results := FilterStorages(storages, baseFilter())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, wantID := range []int64{3, 1, 2} {
		if results[i].Storage.ID != wantID {
			t.Errorf("result %d: got storage %d, want %d", i, results[i].Storage.ID, wantID)
		}
	}
}

// Adding criteria can only shrink the result set, never grow it.
func TestFilterStoragesMonotonicity(t *testing.T) {
	storages := []*model.Storage{
		warehouse(1),
		warehouse(2, func(st *model.Storage) { st.FrostFree = false }),
		warehouse(3, func(st *model.Storage) { st.StorageType = model.StorageTypeOutside }),
		warehouse(4, func(st *model.Storage) { st.GateHeight = 3.0 }),
	}

	loose := baseFilter()
	prev := len(FilterStorages(storages, loose))

	tighter := []model.SearchFilter{}
	f := loose
	f.FrostFreeOnly = true
	tighter = append(tighter, f)
	f.CargoHeight = 3.5
	tighter = append(tighter, f)
	f.MafiTrailer = true
	tighter = append(tighter, f)
	f.MinAvailableMeters = 100
	tighter = append(tighter, f)

	for i, filter := range tighter {
		n := len(FilterStorages(storages, filter))
		if n > prev {
			t.Fatalf("step %d: result grew from %d to %d after adding a criterion", i, prev, n)
		}
		prev = n
	}
}

func TestSystemCapacityFor(t *testing.T) {
	today := date("2025-09-05")

	a := warehouse(1) // 4 slots, all free, 25 m2 each
	b := warehouse(2, func(st *model.Storage) {
		st.SlotVolume = 10
		st.Slots = freeSlots(2)
		st.Slots[0].Bookings = []model.Booking{{
			StartDate: date("2025-09-01"),
			EndDate:   date("2025-09-10"),
		}}
	})

	got := SystemCapacityFor([]*model.Storage{a, b}, today)

	if got.TotalSlots != 6 || got.AvailableSlots != 5 {
		t.Fatalf("slots: got %d/%d, want 5/6", got.AvailableSlots, got.TotalSlots)
	}
	if got.TotalMeters != 120 || got.AvailableMeters != 110 {
		t.Fatalf("meters: got %.1f/%.1f, want 110/120", got.AvailableMeters, got.TotalMeters)
	}
	if got.UtilizationPct != 83.33 {
		t.Fatalf("utilization: got %.2f, want 83.33", got.UtilizationPct)
	}
}
