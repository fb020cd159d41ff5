package model

import (
	"time"

	"lagerbok/pkg/dates"
)

type StorageType string

const (
	StorageTypeWarehouse StorageType = "warehouse"
	StorageTypeOutside   StorageType = "outside"

	// StorageTypeAll is only valid inside a SearchFilter and matches
	// every storage type.
	StorageTypeAll StorageType = "all"
)

type GatePosition string

const (
	GateFront GatePosition = "front"
	GateBack  GatePosition = "back"
	GateSide  GatePosition = "side"
)

// Booking reserves one slot for the closed day interval [StartDate, EndDate].
// Bookings are immutable once written; removal is a separate delete by id.
type Booking struct {
	ID                string    `json:"id,omitempty" bson:"id,omitempty"`
	StartDate         time.Time `json:"start_date" bson:"start_date" validate:"required"`
	EndDate           time.Time `json:"end_date" bson:"end_date" validate:"required"`
	ResponsiblePerson string    `json:"responsible_person" bson:"responsible_person" validate:"required,min=2,max=100"`
	Administrator     string    `json:"administrator,omitempty" bson:"administrator,omitempty" validate:"omitempty,max=100"`
	CompanyName       string    `json:"company_name" bson:"company_name" validate:"required,min=2,max=100"`
	CompanyEmail      string    `json:"company_email" bson:"company_email" validate:"required,email"`
	CompanyTlf        string    `json:"company_tlf" bson:"company_tlf" validate:"required,min=5,max=20"`
	CreatedAt         time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// Slot is the smallest rentable unit of a storage. A slot exists only inside
// its parent storage document.
type Slot struct {
	ID       int64     `json:"id" bson:"id"`
	Name     string    `json:"name" bson:"name"`
	Bookings []Booking `json:"bookings" bson:"bookings"`
}

// AvailableFor reports whether no booking on the slot overlaps the closed day
// interval [start, end]. Availability is always derived from the booking list,
// never stored; a slot without bookings is available.
func (s Slot) AvailableFor(start, end time.Time) bool {
	for _, b := range s.Bookings {
		if dates.Overlaps(start, end, b.StartDate, b.EndDate) {
			return false
		}
	}
	return true
}

// AvailableOn is the single-day form of AvailableFor.
func (s Slot) AvailableOn(day time.Time) bool {
	return s.AvailableFor(day, day)
}

// Utilization returns 100 when the slot is booked on the given day, else 0.
func (s Slot) Utilization(day time.Time) float64 {
	if s.AvailableOn(day) {
		return 0
	}
	return 100
}

// Storage is a physical facility containing rentable slots. Dimensions and
// gate measurements are in meters; SlotVolume is the fixed area attributed to
// each slot of this storage.
type Storage struct {
	ID              int64          `json:"id" bson:"_id"`
	Name            string         `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Address         string         `json:"address" bson:"address"`
	Width           float64        `json:"width" bson:"width"`
	Length          float64        `json:"length" bson:"length"`
	StorageType     StorageType    `json:"storage_type" bson:"storage_type" validate:"required,oneof=warehouse outside"`
	GateHeight      float64        `json:"gate_height" bson:"gate_height"`
	GateWidth       float64        `json:"gate_width" bson:"gate_width"`
	FrostFree       bool           `json:"frost_free" bson:"frost_free"`
	SlotVolume      float64        `json:"slot_volume" bson:"slot_volume"`
	GatePositioning []GatePosition `json:"gate_positioning" bson:"gate_positioning"`
	Slots           []Slot         `json:"slots" bson:"slots"`
	Active          bool           `json:"active" bson:"active"`
	CreatedAt       time.Time      `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt       time.Time      `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// TotalSlotCount returns the number of slots regardless of availability.
func (st *Storage) TotalSlotCount() int {
	return len(st.Slots)
}

// AvailableSlots returns the slots free for the whole interval, in storage
// order.
func (st *Storage) AvailableSlots(start, end time.Time) []Slot {
	var free []Slot
	for _, s := range st.Slots {
		if s.AvailableFor(start, end) {
			free = append(free, s)
		}
	}
	return free
}

// AvailableSlotCount returns how many slots are free for the interval.
func (st *Storage) AvailableSlotCount(start, end time.Time) int {
	return len(st.AvailableSlots(start, end))
}

// AvailableMeters converts the free slot count for the interval into square
// meters using the storage's per-slot area.
func (st *Storage) AvailableMeters(start, end time.Time) float64 {
	return float64(st.AvailableSlotCount(start, end)) * st.SlotVolume
}

// TotalMeters is the full storage capacity in square meters.
func (st *Storage) TotalMeters() float64 {
	return float64(st.TotalSlotCount()) * st.SlotVolume
}

// FindSlot returns the slot with the given id, or false when absent.
func (st *Storage) FindSlot(id int64) (Slot, bool) {
	for _, s := range st.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}
