package service

import (
	"context"
	"testing"
	"time"

	bookingserrors "lagerbok/internal/bookings/errors"
	"lagerbok/internal/bookings/validator"
	"lagerbok/pkg/config"
	mongotx "lagerbok/pkg/db/mongo"
	apperrors "lagerbok/pkg/errors"
	"lagerbok/pkg/logger"
	"lagerbok/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type addedBooking struct {
	storageID int64
	slotID    int64
	booking   model.Booking
}

type mockBookingRepository struct {
	findStorageFunc   func(ctx context.Context, storageID int64) (*model.Storage, error)
	addBookingFunc    func(ctx context.Context, storageID int64, slotID int64, booking model.Booking) error
	removeBookingFunc func(ctx context.Context, storageID int64, slotID int64, bookingID string) error
	added             []addedBooking
}

func (m *mockBookingRepository) FindStorage(ctx context.Context, storageID int64) (*model.Storage, error) {
	if m.findStorageFunc != nil {
		return m.findStorageFunc(ctx, storageID)
	}
	return nil, bookingserrors.ErrStorageNotFound
}

func (m *mockBookingRepository) AddBooking(ctx context.Context, storageID int64, slotID int64, booking model.Booking) error {
	if m.addBookingFunc != nil {
		if err := m.addBookingFunc(ctx, storageID, slotID, booking); err != nil {
			return err
		}
	}
	m.added = append(m.added, addedBooking{storageID: storageID, slotID: slotID, booking: booking})
	return nil
}

func (m *mockBookingRepository) RemoveBooking(ctx context.Context, storageID int64, slotID int64, bookingID string) error {
	if m.removeBookingFunc != nil {
		return m.removeBookingFunc(ctx, storageID, slotID, bookingID)
	}
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	sessCtx := mongo.NewSessionContext(ctx, nil)
	return fn(sessCtx)
}

func newTestService(repo *mockBookingRepository) BookingService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "bookings-test",
	})

	cfg := &config.Config{Log: log}
	v := validator.NewBookingValidator(log)

	return NewBookingService(repo, v, nil, cfg)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testStorage() *model.Storage {
	return &model.Storage{
		ID:          7,
		Name:        "Kai 4 Hall",
		StorageType: model.StorageTypeWarehouse,
		SlotVolume:  25,
		Active:      true,
		Slots: []model.Slot{
			{ID: 1, Name: "A1", Bookings: []model.Booking{}},
			{ID: 2, Name: "A2", Bookings: []model.Booking{}},
			{ID: 3, Name: "A3", Bookings: []model.Booking{}},
			{ID: 4, Name: "A4", Bookings: []model.Booking{}},
		},
	}
}

func validPayload() model.Booking {
	return model.Booking{
		StartDate:         date("2025-09-01"),
		EndDate:           date("2025-09-10"),
		ResponsiblePerson: "Kari Nordmann",
		CompanyName:       "Fjordlast AS",
		CompanyEmail:      "post@fjordlast.no",
		CompanyTlf:        "+47 22 33 44 55",
	}
}

func TestCommitSucceedsAcrossAllSlots(t *testing.T) {
	repo := &mockBookingRepository{
		findStorageFunc: func(ctx context.Context, storageID int64) (*model.Storage, error) {
			return testStorage(), nil
		},
	}
	svc := newTestService(repo)

	confirmation, err := svc.Commit(context.Background(), &CommitInput{
		StorageID: 7,
		SlotIDs:   []int64{1, 3},
		Payload:   validPayload(),
	})
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}

	if confirmation.TotalSlots != 2 {
		t.Errorf("TotalSlots = %d, want 2", confirmation.TotalSlots)
	}
	if len(confirmation.SlotNames) != 2 || confirmation.SlotNames[0] != "A1" || confirmation.SlotNames[1] != "A3" {
		t.Errorf("SlotNames = %v, want [A1 A3]", confirmation.SlotNames)
	}
	if len(repo.added) != 2 {
		t.Fatalf("wrote %d bookings, want 2", len(repo.added))
	}
	if repo.added[0].booking.ID == "" || repo.added[0].booking.ID == repo.added[1].booking.ID {
		t.Error("each slot write must carry its own fresh booking id")
	}
}

func TestCommitFailedSlotWriteYieldsNoConfirmation(t *testing.T) {
	calls := 0
	repo := &mockBookingRepository{
		findStorageFunc: func(ctx context.Context, storageID int64) (*model.Storage, error) {
			return testStorage(), nil
		},
		addBookingFunc: func(ctx context.Context, storageID int64, slotID int64, booking model.Booking) error {
			calls++
			if calls == 2 {
				return bookingserrors.ErrSlotUnavailable
			}
			return nil
		},
	}
	svc := newTestService(repo)

	confirmation, err := svc.Commit(context.Background(), &CommitInput{
		StorageID: 7,
		SlotIDs:   []int64{1, 2, 3},
		Payload:   validPayload(),
	})
	if err == nil {
		t.Fatal("expected error when a slot write fails")
	}
	if confirmation != nil {
		t.Error("a partially written commit must not produce a confirmation")
	}
}

func TestCommitStaleSlotRefusesWholeRequest(t *testing.T) {
	storage := testStorage()
	storage.Slots[1].Bookings = []model.Booking{{
		StartDate: date("2025-09-05"),
		EndDate:   date("2025-09-06"),
	}}

	repo := &mockBookingRepository{
		findStorageFunc: func(ctx context.Context, storageID int64) (*model.Storage, error) {
			return storage, nil
		},
	}
	svc := newTestService(repo)

	confirmation, err := svc.Commit(context.Background(), &CommitInput{
		StorageID: 7,
		SlotIDs:   []int64{1, 2},
		Payload:   validPayload(),
	})
	if err == nil {
		t.Fatal("expected conflict for stale slot")
	}

	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.StatusCode() != 409 {
		t.Errorf("err = %v, want conflict", err)
	}
	if confirmation != nil {
		t.Error("stale request must not produce a confirmation")
	}
	if len(repo.added) != 0 {
		t.Errorf("wrote %d bookings for a stale request, want 0", len(repo.added))
	}
}

func TestCommitBookingAddedBetweenChecksAborts(t *testing.T) {
	reads := 0
	repo := &mockBookingRepository{}
	repo.findStorageFunc = func(ctx context.Context, storageID int64) (*model.Storage, error) {
		reads++
		storage := testStorage()
		if reads > 1 {
			// A competing commit landed before the transaction re-read.
			storage.Slots[0].Bookings = []model.Booking{{
				StartDate: date("2025-09-01"),
				EndDate:   date("2025-09-10"),
			}}
		}
		return storage, nil
	}
	svc := newTestService(repo)

	_, err := svc.Commit(context.Background(), &CommitInput{
		StorageID: 7,
		SlotIDs:   []int64{1},
		Payload:   validPayload(),
	})
	if err == nil {
		t.Fatal("expected conflict from the in-transaction re-check")
	}
	if len(repo.added) != 0 {
		t.Errorf("wrote %d bookings after a lost race, want 0", len(repo.added))
	}
}

func TestCommitValidationFailureTouchesNothing(t *testing.T) {
	repoCalled := false
	repo := &mockBookingRepository{
		findStorageFunc: func(ctx context.Context, storageID int64) (*model.Storage, error) {
			repoCalled = true
			return testStorage(), nil
		},
	}
	svc := newTestService(repo)

	payload := validPayload()
	payload.CompanyEmail = "not-an-email"

	_, err := svc.Commit(context.Background(), &CommitInput{
		StorageID: 7,
		SlotIDs:   []int64{1},
		Payload:   payload,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if repoCalled || len(repo.added) != 0 {
		t.Error("a rejected payload must not reach the repository")
	}
}

func TestCommitRejectsEmptySlotSelection(t *testing.T) {
	repo := &mockBookingRepository{}
	svc := newTestService(repo)

	_, err := svc.Commit(context.Background(), &CommitInput{
		StorageID: 7,
		SlotIDs:   nil,
		Payload:   validPayload(),
	})
	if err == nil {
		t.Fatal("expected validation error for empty slot selection")
	}
}

func TestCommitUnknownSlotIsNotFound(t *testing.T) {
	repo := &mockBookingRepository{
		findStorageFunc: func(ctx context.Context, storageID int64) (*model.Storage, error) {
			return testStorage(), nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.Commit(context.Background(), &CommitInput{
		StorageID: 7,
		SlotIDs:   []int64{99},
		Payload:   validPayload(),
	})

	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.StatusCode() != 404 {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestSuggestSelectsInLayoutOrder(t *testing.T) {
	repo := &mockBookingRepository{
		findStorageFunc: func(ctx context.Context, storageID int64) (*model.Storage, error) {
			return testStorage(), nil
		},
	}
	svc := newTestService(repo)

	suggestion, err := svc.Suggest(context.Background(), &SuggestInput{
		StorageID: 7,
		StartDate: date("2025-09-01"),
		EndDate:   date("2025-09-10"),
		MinMeters: 50,
	})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}

	if suggestion.RequiredSlots != 2 {
		t.Errorf("RequiredSlots = %d, want 2", suggestion.RequiredSlots)
	}
	// Layout order for A1..A4 is A2, A3, A1, A4.
	if len(suggestion.Slots) != 2 || suggestion.Slots[0].Name != "A2" || suggestion.Slots[1].Name != "A3" {
		t.Errorf("suggested slots = %v, want [A2 A3]", suggestion.Slots)
	}
	if suggestion.TotalMeters != 50 {
		t.Errorf("TotalMeters = %v, want 50", suggestion.TotalMeters)
	}
}

func TestSuggestClampsToAvailableSlots(t *testing.T) {
	repo := &mockBookingRepository{
		findStorageFunc: func(ctx context.Context, storageID int64) (*model.Storage, error) {
			return testStorage(), nil
		},
	}
	svc := newTestService(repo)

	suggestion, err := svc.Suggest(context.Background(), &SuggestInput{
		StorageID: 7,
		StartDate: date("2025-09-01"),
		EndDate:   date("2025-09-10"),
		MinMeters: 1000,
	})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}

	if suggestion.RequiredSlots != 4 || len(suggestion.Slots) != 4 {
		t.Errorf("got %d required / %d selected, want all 4 slots", suggestion.RequiredSlots, len(suggestion.Slots))
	}
}

func TestRemoveMapsRepositoryErrors(t *testing.T) {
	tests := []struct {
		name       string
		repoErr    error
		wantStatus int
	}{
		{"storage missing", bookingserrors.ErrStorageNotFound, 404},
		{"booking missing", bookingserrors.ErrBookingNotFound, 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{
				removeBookingFunc: func(ctx context.Context, storageID int64, slotID int64, bookingID string) error {
					return tt.repoErr
				},
			}
			svc := newTestService(repo)

			err := svc.Remove(context.Background(), 7, 1, "abc-123")

			appErr := apperrors.AsAppError(err)
			if appErr == nil || appErr.StatusCode() != tt.wantStatus {
				t.Errorf("err = %v, want status %d", err, tt.wantStatus)
			}
		})
	}
}

func TestRemovePublishesNothingWithoutProducer(t *testing.T) {
	repo := &mockBookingRepository{}
	svc := newTestService(repo)

	if err := svc.Remove(context.Background(), 7, 1, "abc-123"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
}
