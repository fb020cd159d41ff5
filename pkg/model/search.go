package model

import (
	"math"
	"time"
)

// SearchFilter is the ephemeral query record assembled from search input.
// Zero values mean "criterion not supplied": a zero date invalidates the
// query as a whole, while zero numerics and empty/all storage type are
// no-op predicates.
type SearchFilter struct {
	StartDate          time.Time
	EndDate            time.Time
	MinAvailableMeters float64
	StorageType        StorageType
	CargoHeight        float64
	CargoWidth         float64
	FrostFreeOnly      bool
	MafiTrailer        bool
}

// HasDates reports whether both interval bounds were supplied.
func (f SearchFilter) HasDates() bool {
	return !f.StartDate.IsZero() && !f.EndDate.IsZero()
}

// SearchResult is one storage that passed the filter pipeline, together with
// its slot view restricted to the slots free for the queried interval.
type SearchResult struct {
	Storage            *Storage `json:"storage"`
	AvailableSlots     []Slot   `json:"available_slots"`
	AvailableSlotCount int      `json:"available_slot_count"`
	AvailableMeters    float64  `json:"available_meters"`
}

// StorageCapacity summarizes occupancy of one storage, or of the whole fleet
// when aggregated.
type StorageCapacity struct {
	TotalSlots      int     `json:"total_slots"`
	AvailableSlots  int     `json:"available_slots"`
	TotalMeters     float64 `json:"total_meters"`
	AvailableMeters float64 `json:"available_meters"`
	UtilizationPct  float64 `json:"utilization_pct"`
}

// NewStorageCapacity derives the capacity figures from slot counts.
// Utilization is the share of available slots, rounded to two decimals, the
// way the reporting screens have always presented it.
func NewStorageCapacity(totalSlots, availableSlots int, slotVolume float64) StorageCapacity {
	pct := 0.0
	if totalSlots > 0 {
		pct = float64(availableSlots) / float64(totalSlots) * 100
		pct = math.Round(pct*100) / 100
	}
	return StorageCapacity{
		TotalSlots:      totalSlots,
		AvailableSlots:  availableSlots,
		TotalMeters:     float64(totalSlots) * slotVolume,
		AvailableMeters: float64(availableSlots) * slotVolume,
		UtilizationPct:  pct,
	}
}

// ExpiringBooking is one entry of the renewal worklist: a booking active
// today together with how many days remain until it expires.
type ExpiringBooking struct {
	StorageID       int64   `json:"storage_id"`
	StorageName     string  `json:"storage_name"`
	StorageAddress  string  `json:"storage_address"`
	SlotID          int64   `json:"slot_id"`
	SlotName        string  `json:"slot_name"`
	Booking         Booking `json:"booking"`
	DaysUntilExpiry int     `json:"days_until_expiry"`
}

// Confirmation is the aggregate result of a multi-slot booking commit. It is
// produced only when every per-slot write succeeded.
type Confirmation struct {
	StorageID  int64     `json:"storage_id"`
	SlotIDs    []int64   `json:"slot_ids"`
	SlotNames  []string  `json:"slot_names"`
	Company    string    `json:"company"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalSlots int       `json:"total_slots"`
}
