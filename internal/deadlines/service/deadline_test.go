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

func booking(id, start, end string) model.Booking {
	return model.Booking{
		ID:          id,
		StartDate:   date(start),
		EndDate:     date(end),
		CompanyName: "Fjordlast AS",
	}
}

func storageWith(id int64, name string, slots ...model.Slot) *model.Storage {
	return &model.Storage{ID: id, Name: name, Active: true, Slots: slots}
}

func slot(id int64, name string, bookings ...model.Booking) model.Slot {
	return model.Slot{ID: id, Name: name, Bookings: bookings}
}

func ids(entries []model.ExpiringBooking) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Booking.ID
	}
	return out
}

func TestScanKeepsOnlyBookingsActiveToday(t *testing.T) {
	today := date("2025-09-05")
	storages := []*model.Storage{
		storageWith(1, "Kai 4 Hall",
			slot(1, "A1",
				booking("ended", "2025-08-01", "2025-09-04"),
				booking("active", "2025-09-01", "2025-09-07"),
				booking("future", "2025-09-10", "2025-09-20"),
			),
		),
	}

	got := Scan(storages, today)

	if len(got) != 1 || got[0].Booking.ID != "active" {
		t.Fatalf("got %v, want only the active booking", ids(got))
	}
	if got[0].DaysUntilExpiry != 2 {
		t.Errorf("DaysUntilExpiry = %d, want 2", got[0].DaysUntilExpiry)
	}
}

func TestScanEndingTodayCountsAsActive(t *testing.T) {
	today := date("2025-09-05")
	storages := []*model.Storage{
		storageWith(1, "Kai 4 Hall",
			slot(1, "A1", booking("last-day", "2025-09-01", "2025-09-05")),
		),
	}

	got := Scan(storages, today)

	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].DaysUntilExpiry != 0 {
		t.Errorf("DaysUntilExpiry = %d, want 0", got[0].DaysUntilExpiry)
	}
}

func TestScanSortsByDaysUntilExpiryAscending(t *testing.T) {
	today := date("2025-09-05")
	storages := []*model.Storage{
		storageWith(1, "Kai 4 Hall",
			slot(1, "A1", booking("b-far", "2025-09-01", "2025-09-15")),
			slot(2, "A2", booking("b-soon", "2025-09-01", "2025-09-06")),
		),
		storageWith(2, "Ytre Felt",
			slot(1, "U1", booking("b-today", "2025-09-01", "2025-09-05")),
		),
	}

	got := Scan(storages, today)

	want := []string{"b-today", "b-soon", "b-far"}
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func TestScanEqualDeadlinesKeepInputOrder(t *testing.T) {
	today := date("2025-09-05")
	storages := []*model.Storage{
		storageWith(1, "Kai 4 Hall",
			slot(1, "A1", booking("first", "2025-09-01", "2025-09-08")),
			slot(2, "A2", booking("second", "2025-09-03", "2025-09-08")),
		),
	}

	got := Scan(storages, today)

	gotIDs := ids(got)
	if len(gotIDs) != 2 || gotIDs[0] != "first" || gotIDs[1] != "second" {
		t.Fatalf("got %v, want stable [first second]", gotIDs)
	}
}

func TestScanEmptyFleet(t *testing.T) {
	if got := Scan(nil, date("2025-09-05")); len(got) != 0 {
		t.Fatalf("got %d entries for an empty fleet, want 0", len(got))
	}
}
