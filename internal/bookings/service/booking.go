package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"lagerbok/internal/bookings/allocator"
	bookingserrors "lagerbok/internal/bookings/errors"
	"lagerbok/internal/bookings/repository"
	"lagerbok/internal/bookings/validator"
	"lagerbok/pkg/config"
	apperrors "lagerbok/pkg/errors"
	"lagerbok/pkg/kafka"
	"lagerbok/pkg/model"
	"lagerbok/pkg/sanitizer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommitInput is a request to book the given slots of one storage with a
// single shared booking payload. The commit is all-or-nothing across slots.
type CommitInput struct {
	StorageID int64         `json:"storage_id"`
	SlotIDs   []int64       `json:"slot_ids"`
	Payload   model.Booking `json:"payload"`
}

// SuggestInput asks for an automatic slot selection covering the area
// requirement over the date range.
type SuggestInput struct {
	StorageID int64     `json:"storage_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	MinMeters float64   `json:"min_meters"`
}

// Suggestion is the allocator's answer: which slots to take and how much
// area they add up to.
type Suggestion struct {
	StorageID     int64        `json:"storage_id"`
	RequiredSlots int          `json:"required_slots"`
	Slots         []model.Slot `json:"slots"`
	TotalMeters   float64      `json:"total_meters"`
}

type BookingService interface {
	Commit(ctx context.Context, input *CommitInput) (*model.Confirmation, error)
	Suggest(ctx context.Context, input *SuggestInput) (*Suggestion, error)
	Remove(ctx context.Context, storageID int64, slotID int64, bookingID string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	events    *kafka.Producer
	cfg       *config.Config
}

// NewBookingService wires the commit pipeline. The events producer may be
// nil, in which case commits succeed without publishing.
func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	events *kafka.Producer,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

func (s *bookingService) Commit(ctx context.Context, input *CommitInput) (*model.Confirmation, error) {
	s.sanitize(&input.Payload)

	if err := s.validator.ValidateCommit(input.StorageID, input.SlotIDs, &input.Payload); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, apperrors.Validation("Booking validation failed", toDetails(validationErrs))
		}
		return nil, apperrors.Internal("Failed to validate booking", err)
	}

	storage, err := s.repo.FindStorage(ctx, input.StorageID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrStorageNotFound) {
			return nil, apperrors.NotFoundWithID("storage", strconv.FormatInt(input.StorageID, 10))
		}
		return nil, apperrors.Internal("Failed to load storage", err)
	}

	slotNames, err := resolveSlots(storage, input.SlotIDs, input.Payload.StartDate, input.Payload.EndDate)
	if err != nil {
		return nil, err
	}

	var confirmation *model.Confirmation
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// Re-read inside the transaction so a booking committed between
		// the first check and this point is seen.
		fresh, err := s.repo.FindStorage(sessCtx, input.StorageID)
		if err != nil {
			return apperrors.Internal("Failed to reload storage", err)
		}
		if _, err := resolveSlots(fresh, input.SlotIDs, input.Payload.StartDate, input.Payload.EndDate); err != nil {
			return err
		}

		completed := 0
		for _, slotID := range input.SlotIDs {
			booking := input.Payload
			booking.ID = uuid.New().String()

			if err := s.repo.AddBooking(sessCtx, input.StorageID, slotID, booking); err != nil {
				return apperrors.Internal(
					fmt.Sprintf("Failed to book slot %d", slotID), err)
			}
			completed++
		}

		// Every slot write must have landed before a confirmation exists.
		if completed != len(input.SlotIDs) {
			return apperrors.Internal("Booking commit incomplete", nil)
		}

		confirmation = &model.Confirmation{
			StorageID:  input.StorageID,
			SlotIDs:    input.SlotIDs,
			SlotNames:  slotNames,
			Company:    input.Payload.CompanyName,
			StartDate:  input.Payload.StartDate,
			EndDate:    input.Payload.EndDate,
			TotalSlots: completed,
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to commit booking",
			"storage_id", input.StorageID,
			"slot_ids", input.SlotIDs,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Booking committed",
		"storage_id", input.StorageID,
		"slot_ids", input.SlotIDs,
		"company", input.Payload.CompanyName,
	)

	s.publishCommitted(ctx, confirmation)

	return confirmation, nil
}

func (s *bookingService) Suggest(ctx context.Context, input *SuggestInput) (*Suggestion, error) {
	if input.StorageID <= 0 {
		return nil, apperrors.InvalidInput("storage_id must be a positive integer")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, apperrors.InvalidInput("start_date and end_date are required")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, apperrors.InvalidInput("end_date must not be before start_date")
	}

	storage, err := s.repo.FindStorage(ctx, input.StorageID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrStorageNotFound) {
			return nil, apperrors.NotFoundWithID("storage", strconv.FormatInt(input.StorageID, 10))
		}
		return nil, apperrors.Internal("Failed to load storage", err)
	}

	available := storage.AvailableSlotCount(input.StartDate, input.EndDate)
	required := allocator.RequiredSlotCount(input.MinMeters, storage.SlotVolume, available)

	alloc := allocator.New()
	alloc.AutoSelect(storage.Slots, input.StartDate, input.EndDate, required)
	selected := alloc.Selected()

	return &Suggestion{
		StorageID:     input.StorageID,
		RequiredSlots: required,
		Slots:         selected,
		TotalMeters:   float64(len(selected)) * storage.SlotVolume,
	}, nil
}

func (s *bookingService) Remove(ctx context.Context, storageID int64, slotID int64, bookingID string) error {
	if storageID <= 0 || slotID <= 0 {
		return apperrors.InvalidInput("storage_id and slot_id must be positive integers")
	}
	if bookingID == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	err := s.repo.RemoveBooking(ctx, storageID, slotID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrStorageNotFound):
			return apperrors.NotFoundWithID("storage", strconv.FormatInt(storageID, 10))
		case errors.Is(err, bookingserrors.ErrBookingNotFound):
			return apperrors.NotFoundWithID("booking", bookingID)
		default:
			return apperrors.Internal("Failed to remove booking", err)
		}
	}

	s.cfg.Log.Info("Booking removed",
		"storage_id", storageID,
		"slot_id", slotID,
		"booking_id", bookingID,
	)

	s.publishRemoved(ctx, storageID, slotID, bookingID)

	return nil
}

func (s *bookingService) sanitize(booking *model.Booking) {
	booking.ResponsiblePerson = sanitizer.NormalizeName(booking.ResponsiblePerson)
	booking.Administrator = sanitizer.NormalizeName(booking.Administrator)
	booking.CompanyName = sanitizer.NormalizeName(booking.CompanyName)
	booking.CompanyEmail = sanitizer.NormalizeEmail(booking.CompanyEmail)
	booking.CompanyTlf = sanitizer.NormalizePhone(booking.CompanyTlf)
}

// resolveSlots maps the requested ids onto the storage's slots and confirms
// each one is still free for the whole interval. One stale slot refuses the
// whole request.
func resolveSlots(storage *model.Storage, slotIDs []int64, start, end time.Time) ([]string, error) {
	names := make([]string, 0, len(slotIDs))
	for _, id := range slotIDs {
		slot, ok := storage.FindSlot(id)
		if !ok {
			return nil, apperrors.NotFoundWithID("slot", strconv.FormatInt(id, 10))
		}
		if !slot.AvailableFor(start, end) {
			return nil, apperrors.Conflict(
				fmt.Sprintf("Slot %s is no longer available for the requested dates", slot.Name))
		}
		names = append(names, slot.Name)
	}
	return names, nil
}

func (s *bookingService) publishCommitted(ctx context.Context, c *model.Confirmation) {
	if s.events == nil {
		return
	}

	event := model.BookingCommittedEvent{
		StorageID:   c.StorageID,
		SlotIDs:     c.SlotIDs,
		SlotNames:   c.SlotNames,
		CompanyName: c.Company,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		TotalSlots:  c.TotalSlots,
	}

	msg := kafka.NewMessage().
		WithKey(strconv.FormatInt(c.StorageID, 10)).
		WithValue(event).
		WithEventType(model.EventBookingCommitted).
		WithSource("bookings").
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish booking committed event",
			"storage_id", c.StorageID,
			"error", err,
		)
	}
}

func (s *bookingService) publishRemoved(ctx context.Context, storageID, slotID int64, bookingID string) {
	if s.events == nil {
		return
	}

	event := model.BookingRemovedEvent{
		StorageID: storageID,
		SlotID:    slotID,
		BookingID: bookingID,
	}

	msg := kafka.NewMessage().
		WithKey(strconv.FormatInt(storageID, 10)).
		WithValue(event).
		WithEventType(model.EventBookingRemoved).
		WithSource("bookings").
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish booking removed event",
			"storage_id", storageID,
			"booking_id", bookingID,
			"error", err,
		)
	}
}

func toDetails(errs validator.ValidationErrors) map[string]any {
	details := make(map[string]any, len(errs))
	for _, e := range errs {
		details[e.Field] = e.Message
	}
	return details
}
