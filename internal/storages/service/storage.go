package service

import (
	"context"
	"errors"
	"fmt"
	storageserrors "lagerbok/internal/storages/errors"
	"lagerbok/internal/storages/repository"
	"lagerbok/pkg/config"
	"lagerbok/pkg/dates"
	apperrors "lagerbok/pkg/errors"
	"lagerbok/pkg/model"
	"math"
	"sync"
	"time"
)

// Gate clearance margins in meters. A mafi trailer lifts the cargo higher
// off the ground, so more of the nominal gate height is consumed.
const (
	gateClearanceDefault = 0.4
	gateClearanceMafi    = 1.0
)

type StorageService interface {
	Search(ctx context.Context, filter model.SearchFilter) ([]model.SearchResult, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Storage, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Storage, error)
	Capacity(ctx context.Context, id int64) (model.StorageCapacity, error)
	SystemCapacity(ctx context.Context) (model.StorageCapacity, error)
}

type storageService struct {
	repo repository.StorageRepository
	cfg  *config.Config
}

func NewStorageService(repo repository.StorageRepository, cfg *config.Config) StorageService {
	return &storageService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *storageService) Search(ctx context.Context, filter model.SearchFilter) ([]model.SearchResult, error) {
	if !validSearchFilter(filter) {
		return []model.SearchResult{}, nil
	}

	storages, err := s.repo.FindAllActive(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load storages for search", "error", err)
		return nil, apperrors.Internal("Failed to search storages", err)
	}

	results := FilterStorages(storages, filter)

	s.cfg.Log.Debug("Storage search completed",
		"candidates", len(storages),
		"matches", len(results),
	)
	return results, nil
}

// validSearchFilter rejects queries that cannot produce a meaningful result.
// An invalid query is not an error; it yields an empty list.
func validSearchFilter(filter model.SearchFilter) bool {
	if !filter.HasDates() {
		return false
	}
	if filter.MinAvailableMeters < 0 || filter.CargoHeight < 0 || filter.CargoWidth < 0 {
		return false
	}
	return true
}

// FilterStorages applies the canonical predicate order: frost-free, gate
// clearance under trailer mode, per-slot availability, minimum area, storage
// type, raw cargo dimensions. Predicates are independent, so the order only
// matters for early exit. Input order is preserved.
func FilterStorages(storages []*model.Storage, filter model.SearchFilter) []model.SearchResult {
	results := make([]model.SearchResult, 0, len(storages))

	for _, st := range storages {
		if filter.FrostFreeOnly && !st.FrostFree {
			continue
		}

		if !passesTrailerClearance(st, filter) {
			continue
		}

		available := st.AvailableSlots(filter.StartDate, filter.EndDate)
		if len(available) == 0 {
			continue
		}

		availableMeters := float64(len(available)) * st.SlotVolume
		if filter.MinAvailableMeters > 0 && availableMeters < filter.MinAvailableMeters {
			continue
		}

		if filter.StorageType != "" && filter.StorageType != model.StorageTypeAll &&
			st.StorageType != filter.StorageType {
			continue
		}

		if !passesCargoDimensions(st, filter) {
			continue
		}

		results = append(results, model.SearchResult{
			Storage:            st,
			AvailableSlots:     available,
			AvailableSlotCount: len(available),
			AvailableMeters:    availableMeters,
		})
	}

	return results
}

// passesTrailerClearance checks the effective gate height once trailer
// clearance is subtracted. Outside storages have no gates to clear.
func passesTrailerClearance(st *model.Storage, filter model.SearchFilter) bool {
	if !filter.MafiTrailer {
		return true
	}
	if st.StorageType == model.StorageTypeOutside {
		return true
	}

	margin := gateClearanceDefault
	if filter.MafiTrailer {
		margin = gateClearanceMafi
	}

	return st.GateHeight-margin >= filter.CargoHeight
}

// passesCargoDimensions compares raw cargo measurements against the nominal
// gate opening. This runs in addition to the trailer clearance check when
// both apply; booking screens have always combined the two.
func passesCargoDimensions(st *model.Storage, filter model.SearchFilter) bool {
	if st.StorageType == model.StorageTypeOutside {
		return true
	}

	if filter.CargoHeight > 0 && st.GateHeight < filter.CargoHeight {
		return false
	}
	if filter.CargoWidth > 0 && st.GateWidth < filter.CargoWidth {
		return false
	}
	return true
}

func (s *storageService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Storage, int64, error) {
	var count int64
	var storages []*model.Storage
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count storages", "error", errCount)
			errCount = apperrors.Internal("Failed to count storages", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		storages, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list storages", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve storages", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return storages, count, nil
}

func (s *storageService) GetByID(ctx context.Context, id int64) (*model.Storage, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("Storage ID must be positive")
	}

	storage, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storageserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Storage", fmt.Sprintf("%d", id))
		}
		return nil, apperrors.Internal("Failed to retrieve storage", err)
	}

	return storage, nil
}

func (s *storageService) Capacity(ctx context.Context, id int64) (model.StorageCapacity, error) {
	storage, err := s.GetByID(ctx, id)
	if err != nil {
		return model.StorageCapacity{}, err
	}

	return capacityFor(storage, time.Now()), nil
}

func (s *storageService) SystemCapacity(ctx context.Context) (model.StorageCapacity, error) {
	storages, err := s.repo.FindAllActive(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load storages for capacity report", "error", err)
		return model.StorageCapacity{}, apperrors.Internal("Failed to compute system capacity", err)
	}

	return SystemCapacityFor(storages, time.Now()), nil
}

// capacityFor reports a storage's occupancy figures as of the given day.
func capacityFor(st *model.Storage, today time.Time) model.StorageCapacity {
	day := dates.Day(today)
	available := st.AvailableSlotCount(day, day)
	return model.NewStorageCapacity(st.TotalSlotCount(), available, st.SlotVolume)
}

// SystemCapacityFor aggregates capacity across the fleet. Meters are summed
// per storage since slot volume differs between facilities.
func SystemCapacityFor(storages []*model.Storage, today time.Time) model.StorageCapacity {
	day := dates.Day(today)

	var total model.StorageCapacity
	for _, st := range storages {
		available := st.AvailableSlotCount(day, day)
		total.TotalSlots += st.TotalSlotCount()
		total.AvailableSlots += available
		total.TotalMeters += st.TotalMeters()
		total.AvailableMeters += float64(available) * st.SlotVolume
	}

	if total.TotalSlots > 0 {
		pct := float64(total.AvailableSlots) / float64(total.TotalSlots) * 100
		total.UtilizationPct = math.Round(pct*100) / 100
	}

	return total
}
