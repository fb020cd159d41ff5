package dates

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{
			name:   "booking ends on query start day",
			aStart: "2025-09-01", aEnd: "2025-09-10",
			bStart: "2025-09-10", bEnd: "2025-09-15",
			want: true,
		},
		{
			name:   "booking ends day before query starts",
			aStart: "2025-09-01", aEnd: "2025-09-10",
			bStart: "2025-09-11", bEnd: "2025-09-20",
			want: false,
		},
		{
			name:   "query fully inside booking",
			aStart: "2025-09-01", aEnd: "2025-09-30",
			bStart: "2025-09-10", bEnd: "2025-09-12",
			want: true,
		},
		{
			name:   "single day query on single day booking",
			aStart: "2025-09-05", aEnd: "2025-09-05",
			bStart: "2025-09-05", bEnd: "2025-09-05",
			want: true,
		},
		{
			name:   "disjoint months",
			aStart: "2025-08-01", aEnd: "2025-08-31",
			bStart: "2025-09-01", bEnd: "2025-09-30",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(date(tt.aStart), date(tt.aEnd), date(tt.bStart), date(tt.bEnd))
			if got != tt.want {
				t.Errorf("Overlaps(%s..%s, %s..%s) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}

			// The overlap relation is symmetric.
			rev := Overlaps(date(tt.bStart), date(tt.bEnd), date(tt.aStart), date(tt.aEnd))
			if rev != got {
				t.Errorf("Overlaps is not symmetric for %s..%s vs %s..%s", tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			}
		})
	}
}

func TestOverlapsIgnoresTimeOfDay(t *testing.T) {
	// Two intervals on the same calendar day overlap regardless of wall clock.
	aStart := time.Date(2025, 9, 10, 23, 59, 0, 0, time.UTC)
	aEnd := aStart
	bStart := time.Date(2025, 9, 10, 0, 1, 0, 0, time.UTC)
	bEnd := bStart

	if !Overlaps(aStart, aEnd, bStart, bEnd) {
		t.Error("expected same-day intervals with different times to overlap")
	}
}

func TestContains(t *testing.T) {
	start, end := date("2025-09-01"), date("2025-09-10")

	if !Contains(date("2025-09-01"), start, end) {
		t.Error("start day should be contained")
	}
	if !Contains(date("2025-09-10"), start, end) {
		t.Error("end day should be contained")
	}
	if Contains(date("2025-09-11"), start, end) {
		t.Error("day after end should not be contained")
	}
	if Contains(date("2025-08-31"), start, end) {
		t.Error("day before start should not be contained")
	}
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		end, today string
		want       int
	}{
		{"2025-09-12", "2025-09-10", 2},
		{"2025-09-10", "2025-09-10", 0},
		{"2025-09-09", "2025-09-10", -1},
		{"2025-10-10", "2025-09-10", 30},
	}

	for _, tt := range tests {
		if got := DaysUntil(date(tt.end), date(tt.today)); got != tt.want {
			t.Errorf("DaysUntil(%s, %s) = %d, want %d", tt.end, tt.today, got, tt.want)
		}
	}
}

func TestDaysUntilIgnoresTimeOfDay(t *testing.T) {
	end := time.Date(2025, 9, 12, 1, 0, 0, 0, time.UTC)
	today := time.Date(2025, 9, 10, 22, 30, 0, 0, time.UTC)

	if got := DaysUntil(end, today); got != 2 {
		t.Errorf("DaysUntil with times = %d, want 2", got)
	}
}

func TestDay(t *testing.T) {
	in := time.Date(2025, 9, 10, 13, 37, 42, 99, time.UTC)
	got := Day(in)
	want := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Day(%v) = %v, want %v", in, got, want)
	}
}

func TestDayNormalizesAcrossLocations(t *testing.T) {
	// A server clock east of UTC and a wire-parsed UTC date on the same
	// calendar day must normalize to the same instant.
	cest := time.FixedZone("CEST", 2*60*60)
	local := time.Date(2025, 9, 1, 8, 0, 0, 0, cest)

	if !Day(local).Equal(Day(date("2025-09-01"))) {
		t.Errorf("Day(%v) = %v, want %v", local, Day(local), Day(date("2025-09-01")))
	}
}

func TestContainsAcrossLocations(t *testing.T) {
	cest := time.FixedZone("CEST", 2*60*60)
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, cest)

	if !Contains(now, date("2025-09-01"), date("2025-09-10")) {
		t.Error("local time on the interval's start day should be contained")
	}
	if Contains(now, date("2025-09-02"), date("2025-09-10")) {
		t.Error("local time on the day before the interval should not be contained")
	}
}

func TestOverlapsAcrossLocations(t *testing.T) {
	cest := time.FixedZone("CEST", 2*60*60)
	today := time.Date(2025, 9, 1, 1, 30, 0, 0, cest)

	// A booking covering only today must overlap a single-day query made
	// with the server's local clock.
	if !Overlaps(date("2025-09-01"), date("2025-09-01"), today, today) {
		t.Error("expected local-clock query day to overlap UTC booking on the same day")
	}
}
