package errors

import "errors"

var (
	ErrStorageNotFound = errors.New("storage not found")

	ErrSlotNotFound = errors.New("slot not found in storage")

	ErrBookingNotFound = errors.New("booking not found")

	ErrSlotUnavailable = errors.New("slot is no longer available for the requested interval")
)
