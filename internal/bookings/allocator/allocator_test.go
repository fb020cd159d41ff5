package allocator

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

var (
	start = date("2025-09-01")
	end   = date("2025-09-10")
)

func slots(names ...string) []model.Slot {
	out := make([]model.Slot, len(names))
	for i, name := range names {
		out[i] = model.Slot{ID: int64(i + 1), Name: name, Bookings: []model.Booking{}}
	}
	return out
}

func booked(s model.Slot) model.Slot {
	s.Bookings = []model.Booking{{
		StartDate: date("2025-08-01"),
		EndDate:   date("2025-12-31"),
	}}
	return s
}

func names(slots []model.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Name
	}
	return out
}

func assertNames(t *testing.T, got []model.Slot, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", names(got), want)
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Fatalf("got %v, want %v", names(got), want)
		}
	}
}

func TestLayoutOrder(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"empty", nil, nil},
		{"single", []string{"A"}, []string{"A"}},
		{"even", []string{"A", "B", "C", "D"}, []string{"B", "C", "A", "D"}},
		{"six", []string{"A", "B", "C", "D", "E", "F"}, []string{"C", "D", "B", "E", "A", "F"}},
		// Odd counts put the extra slot in the first half.
		{"odd", []string{"A", "B", "C", "D", "E"}, []string{"C", "D", "B", "E", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LayoutOrder(slots(tt.input...))
			assertNames(t, got, tt.want...)
		})
	}
}

func TestRequiredSlotCount(t *testing.T) {
	tests := []struct {
		name       string
		minMeters  float64
		slotVolume float64
		available  int
		want       int
	}{
		{"ceil and fit", 250, 100, 10, 3},
		{"exact fit", 200, 100, 10, 2},
		{"clamped to available", 1000, 100, 4, 4},
		{"zero requirement", 0, 100, 10, 0},
		{"negative requirement", -5, 100, 10, 0},
		{"zero volume", 250, 0, 10, 0},
		{"nothing available", 250, 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequiredSlotCount(tt.minMeters, tt.slotVolume, tt.available)
			if got != tt.want {
				t.Errorf("RequiredSlotCount(%v, %v, %d) = %d, want %d",
					tt.minMeters, tt.slotVolume, tt.available, got, tt.want)
			}
		})
	}
}

func TestAutoSelectConsumesLayoutOrder(t *testing.T) {
	a := New()
	a.AutoSelect(slots("A", "B", "C", "D"), start, end, 2)

	// Layout order is B, C, A, D.
	assertNames(t, a.Selected(), "B", "C")
}

func TestAutoSelectSkipsUnavailable(t *testing.T) {
	all := slots("A", "B", "C", "D")
	all[1] = booked(all[1]) // B unavailable; layout order B, C, A, D

	a := New()
	a.AutoSelect(all, start, end, 2)

	assertNames(t, a.Selected(), "C", "A")
}

func TestToggleKeepsInsertionOrder(t *testing.T) {
	all := slots("A", "B", "C")

	a := New()
	a.Toggle(all[2], start, end)
	a.Toggle(all[0], start, end)

	assertNames(t, a.Selected(), "C", "A")

	a.Toggle(all[2], start, end)
	assertNames(t, a.Selected(), "A")
}

func TestToggleIgnoresUnavailableSlot(t *testing.T) {
	all := slots("A", "B")
	unavailable := booked(all[1])

	a := New()
	a.Toggle(unavailable, start, end)

	if len(a.Selected()) != 0 || a.UserTouched() {
		t.Fatal("toggling an unavailable slot must be a no-op")
	}
}

// An intentionally emptied selection must stay empty when criteria change.
func TestEmptiedSelectionStaysEmpty(t *testing.T) {
	all := slots("A", "B", "C", "D")

	a := New()
	a.AutoSelect(all, start, end, 1)
	assertNames(t, a.Selected(), "B")

	a.Toggle(a.Selected()[0], start, end)
	if len(a.Selected()) != 0 {
		t.Fatal("expected empty selection after deselect")
	}

	a.CriteriaChanged(all, date("2025-10-01"), date("2025-10-05"), 2)
	if len(a.Selected()) != 0 {
		t.Fatal("criteria change must not re-fill a selection the user emptied")
	}
}

func TestCriteriaChangedRerunsAutoSelectWhenUntouched(t *testing.T) {
	all := slots("A", "B", "C", "D")

	a := New()
	a.AutoSelect(all, start, end, 1)
	assertNames(t, a.Selected(), "B")

	a.CriteriaChanged(all, start, end, 3)
	assertNames(t, a.Selected(), "B", "C", "A")
}

func TestCriteriaChangedPrunesTouchedSelection(t *testing.T) {
	all := slots("A", "B", "C")

	a := New()
	a.Toggle(all[0], start, end)
	a.Toggle(all[1], start, end)
	assertNames(t, a.Selected(), "A", "B")

	// B gains a booking covering the new range.
	all[1] = booked(all[1])

	a.CriteriaChanged(all, start, end, 2)
	assertNames(t, a.Selected(), "A")
	if !a.UserTouched() {
		t.Fatal("pruning must not reset the sticky flag")
	}
}

func TestSelectionNeverContainsUnavailableSlot(t *testing.T) {
	all := slots("A", "B", "C", "D")
	all[0] = booked(all[0])
	all[3] = booked(all[3])

	a := New()
	a.AutoSelect(all, start, end, 4)

	for _, sel := range a.Selected() {
		if !sel.AvailableFor(start, end) {
			t.Fatalf("selected unavailable slot %s", sel.Name)
		}
	}
	assertNames(t, a.Selected(), "B", "C")
}
