package livestock

import (
	"context"
	"time"

	"github.com/dombastis/backend/internal/domain/livestock"
	"github.com/dombastis/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LifecycleService orchestrates the cross-entity herd workflows. It is the
// only component that writes to the registry and the mutation log in the
// same operation; both writes run inside one unit of work so that a partial
// outcome is never visible.
type LifecycleService struct {
	registry  livestock.Repository
	mutations livestock.MutationLogRepository
	uow       shared.UnitOfWork
	logger    *zap.Logger
	now       func() time.Time
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(
	registry livestock.Repository,
	mutations livestock.MutationLogRepository,
	uow shared.UnitOfWork,
	logger *zap.Logger,
) *LifecycleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{
		registry:  registry,
		mutations: mutations,
		uow:       uow,
		logger:    logger,
		now:       time.Now,
	}
}

// AddAnimalRequest carries the attributes of a new animal
type AddAnimalRequest struct {
	Name        string
	Sex         livestock.Sex
	WeightKg    decimal.Decimal
	EarTag      string
	Breed       string
	PenLocation livestock.PenLocation
	PenNumber   int
}

// RetireAnimalRequest carries the details of an animal leaving the herd
type RetireAnimalRequest struct {
	ID            int64
	Date          time.Time
	Reason        string
	Note          string
	EvidencePhoto string
}

// UpdateAnimalRequest carries replacement attributes for an existing animal
type UpdateAnimalRequest struct {
	ID          int64
	Name        string
	Sex         livestock.Sex
	WeightKg    decimal.Decimal
	EarTag      string
	Breed       string
	PenLocation livestock.PenLocation
	PenNumber   int
}

// AddAnimal registers a new animal and appends the matching entry record to
// the mutation log. Both writes commit together or not at all.
func (s *LifecycleService) AddAnimal(ctx context.Context, actor string, req AddAnimalRequest) (*livestock.Livestock, error) {
	animal, err := livestock.NewLivestock(req.Name, req.Sex, req.WeightKg, req.EarTag, req.Breed, req.PenLocation, req.PenNumber)
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.registry.Create(ctx, animal); err != nil {
			return err
		}
		entry, err := livestock.NewEntryMutation(animal.ID, s.now(), actor)
		if err != nil {
			return err
		}
		return s.mutations.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("animal added",
		zap.Int64("livestock_id", animal.ID),
		zap.String("name", animal.Name),
		zap.String("location", animal.PenLocation.String()),
	)
	return animal, nil
}

// RetireAnimal appends an exit record to the mutation log and removes the
// animal from the active registry in one atomic unit. Returns
// shared.ErrNotFound when the animal does not exist.
func (s *LifecycleService) RetireAnimal(ctx context.Context, actor string, req RetireAnimalRequest) error {
	if req.Reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Retirement reason cannot be empty")
	}
	date := req.Date
	if date.IsZero() {
		date = s.now()
	}

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.registry.FindByID(ctx, req.ID); err != nil {
			return err
		}
		exit, err := livestock.NewExitMutation(req.ID, req.Reason, date, req.Note, req.EvidencePhoto, actor)
		if err != nil {
			return err
		}
		if err := s.mutations.Append(ctx, exit); err != nil {
			return err
		}
		return s.registry.Delete(ctx, req.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("animal retired",
		zap.Int64("livestock_id", req.ID),
		zap.String("reason", req.Reason),
	)
	return nil
}

// UpdateAnimal replaces the attributes of an existing animal
func (s *LifecycleService) UpdateAnimal(ctx context.Context, req UpdateAnimalRequest) (*livestock.Livestock, error) {
	animal, err := s.registry.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := animal.UpdateAttributes(req.Name, req.Sex, req.WeightKg, req.EarTag, req.Breed, req.PenLocation, req.PenNumber); err != nil {
		return nil, err
	}
	if err := s.registry.Update(ctx, animal); err != nil {
		return nil, err
	}
	return animal, nil
}

// GetAnimal fetches one animal by ID
func (s *LifecycleService) GetAnimal(ctx context.Context, id int64) (*livestock.Livestock, error) {
	return s.registry.FindByID(ctx, id)
}

// ListAnimals lists animals, optionally filtered by pen location
func (s *LifecycleService) ListAnimals(ctx context.Context, location *livestock.PenLocation) ([]livestock.Livestock, error) {
	if location != nil && !location.IsValid() {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Pen location must be Barat or Timur")
	}
	return s.registry.FindAll(ctx, livestock.Filter{Location: location})
}

// DeleteAnimal removes an animal without writing a mutation record. The
// retire workflow is the audited path; this is the bare registry delete.
func (s *LifecycleService) DeleteAnimal(ctx context.Context, id int64) error {
	if _, err := s.registry.FindByID(ctx, id); err != nil {
		return err
	}
	return s.registry.Delete(ctx, id)
}

// HerdCounts aggregates the registry for the dashboard
func (s *LifecycleService) HerdCounts(ctx context.Context) (livestock.HerdCounts, error) {
	return s.registry.Counts(ctx)
}

// MutationHistory lists all mutation records for one animal, newest first.
// The animal itself may no longer exist; the log is read regardless.
func (s *LifecycleService) MutationHistory(ctx context.Context, livestockID int64) ([]livestock.MutationEntryRecord, error) {
	return s.mutations.FindByLivestock(ctx, livestockID)
}

// RecentMutations lists the most recent mutation records across the herd
func (s *LifecycleService) RecentMutations(ctx context.Context, limit int) ([]livestock.MutationEntryRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.mutations.FindRecent(ctx, limit)
}

// MutationsByLocation lists recent mutations of animals currently housed at
// the given location
func (s *LifecycleService) MutationsByLocation(ctx context.Context, location livestock.PenLocation, limit int) ([]livestock.MutationEntryRecord, error) {
	if !location.IsValid() {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Pen location must be Barat or Timur")
	}
	if limit <= 0 {
		limit = 20
	}
	return s.mutations.FindByLocation(ctx, location, limit)
}
