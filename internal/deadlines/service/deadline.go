package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"lagerbok/internal/deadlines/repository"
	"lagerbok/pkg/config"
	"lagerbok/pkg/dates"
	apperrors "lagerbok/pkg/errors"
	"lagerbok/pkg/kafka"
	"lagerbok/pkg/model"
)

type DeadlineService interface {
	Expiring(ctx context.Context) ([]model.ExpiringBooking, error)
	RunScanner(ctx context.Context)
}

type deadlineService struct {
	repo   repository.StorageRepository
	events *kafka.Producer
	cfg    *config.Config
}

// NewDeadlineService builds the renewal worklist service. The events
// producer may be nil when only the HTTP listing is needed.
func NewDeadlineService(repo repository.StorageRepository, events *kafka.Producer, cfg *config.Config) DeadlineService {
	return &deadlineService{
		repo:   repo,
		events: events,
		cfg:    cfg,
	}
}

// Scan builds the renewal worklist from a storage snapshot: every booking
// active on the given day, ordered by how soon it expires. Bookings that
// start in the future or already ended are not on anyone's desk yet.
func Scan(storages []*model.Storage, today time.Time) []model.ExpiringBooking {
	today = dates.Day(today)

	var expiring []model.ExpiringBooking
	for _, storage := range storages {
		for _, slot := range storage.Slots {
			for _, booking := range slot.Bookings {
				if !dates.Contains(today, booking.StartDate, booking.EndDate) {
					continue
				}
				expiring = append(expiring, model.ExpiringBooking{
					StorageID:       storage.ID,
					StorageName:     storage.Name,
					StorageAddress:  storage.Address,
					SlotID:          slot.ID,
					SlotName:        slot.Name,
					Booking:         booking,
					DaysUntilExpiry: dates.DaysUntil(booking.EndDate, today),
				})
			}
		}
	}

	// Stable so equal deadlines keep storage and slot order.
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].DaysUntilExpiry < expiring[j].DaysUntilExpiry
	})

	return expiring
}

func (s *deadlineService) Expiring(ctx context.Context) ([]model.ExpiringBooking, error) {
	storages, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load storages", err)
	}

	return Scan(storages, time.Now()), nil
}

// RunScanner periodically rebuilds the worklist and publishes a renewal
// notice for every booking expiring within the configured window. It blocks
// until the context is cancelled.
func (s *deadlineService) RunScanner(ctx context.Context) {
	s.cfg.Log.Info("Deadline scanner started",
		"interval", s.cfg.DeadlineScanInterval,
		"notice_days", s.cfg.RenewalNoticeDays,
	)

	ticker := time.NewTicker(s.cfg.DeadlineScanInterval)
	defer ticker.Stop()

	s.scanOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.cfg.Log.Info("Deadline scanner stopped")
			return
		case <-ticker.C:
			s.scanOnce(ctx)
		}
	}
}

func (s *deadlineService) scanOnce(ctx context.Context) {
	expiring, err := s.Expiring(ctx)
	if err != nil {
		s.cfg.Log.Error("Deadline scan failed", "error", err)
		return
	}

	due := 0
	for _, entry := range expiring {
		if entry.DaysUntilExpiry > s.cfg.RenewalNoticeDays {
			break
		}
		s.publishRenewalDue(ctx, entry)
		due++
	}

	s.cfg.Log.Info("Deadline scan completed",
		"active_bookings", len(expiring),
		"renewals_due", due,
	)
}

func (s *deadlineService) publishRenewalDue(ctx context.Context, entry model.ExpiringBooking) {
	if s.events == nil {
		return
	}

	event := model.RenewalDueEvent{
		StorageID:       entry.StorageID,
		StorageName:     entry.StorageName,
		SlotID:          entry.SlotID,
		SlotName:        entry.SlotName,
		CompanyName:     entry.Booking.CompanyName,
		CompanyEmail:    entry.Booking.CompanyEmail,
		EndDate:         entry.Booking.EndDate,
		DaysUntilExpiry: entry.DaysUntilExpiry,
	}

	msg := kafka.NewMessage().
		WithKey(strconv.FormatInt(entry.StorageID, 10)).
		WithValue(event).
		WithEventType(model.EventRenewalDue).
		WithSource("deadlines").
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish renewal due event",
			"storage_id", entry.StorageID,
			"booking_id", entry.Booking.ID,
			"error", err,
		)
	}
}
