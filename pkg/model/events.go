package model

import "time"

// Event types carried in the event-type Kafka header.
const (
	EventBookingCommitted = "booking.committed"
	EventBookingRemoved   = "booking.removed"
	EventRenewalDue       = "booking.renewal_due"
)

// BookingCommittedEvent is published after a multi-slot commit fully
// succeeded, keyed by storage id.
type BookingCommittedEvent struct {
	StorageID   int64     `json:"storage_id"`
	SlotIDs     []int64   `json:"slot_ids"`
	SlotNames   []string  `json:"slot_names"`
	CompanyName string    `json:"company_name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TotalSlots  int       `json:"total_slots"`
}

// BookingRemovedEvent is published when a booking is deleted by id.
type BookingRemovedEvent struct {
	StorageID int64  `json:"storage_id"`
	SlotID    int64  `json:"slot_id"`
	BookingID string `json:"booking_id"`
}

// RenewalDueEvent is published by the deadline scanner for bookings whose
// expiry falls within the notification window.
type RenewalDueEvent struct {
	StorageID       int64     `json:"storage_id"`
	StorageName     string    `json:"storage_name"`
	SlotID          int64     `json:"slot_id"`
	SlotName        string    `json:"slot_name"`
	CompanyName     string    `json:"company_name"`
	CompanyEmail    string    `json:"company_email"`
	EndDate         time.Time `json:"end_date"`
	DaysUntilExpiry int       `json:"days_until_expiry"`
}
