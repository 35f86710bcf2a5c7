package persistence

import (
	"context"

	"github.com/dombastis/backend/internal/domain/livestock"
	"github.com/dombastis/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMutationLogRepository implements livestock.MutationLogRepository using
// GORM. The table is append-only: this type exposes no update or delete.
type GormMutationLogRepository struct {
	db *gorm.DB
}

// NewGormMutationLogRepository creates a new GormMutationLogRepository
func NewGormMutationLogRepository(db *gorm.DB) *GormMutationLogRepository {
	return &GormMutationLogRepository{db: db}
}

// Append writes a new mutation record. The referenced livestock ID is not
// validated against the registry: the log must accept records about animals
// that were just deleted.
func (r *GormMutationLogRepository) Append(ctx context.Context, entry *livestock.MutationEntryRecord) error {
	model := models.MutationLogModelFromDomain(entry)
	model.ID = 0
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	entry.ID = model.ID
	entry.CreatedAt = model.CreatedAt
	entry.UpdatedAt = model.CreatedAt
	return nil
}

// FindByLivestock lists all mutations for one animal, newest first
func (r *GormMutationLogRepository) FindByLivestock(ctx context.Context, livestockID int64) ([]livestock.MutationEntryRecord, error) {
	var rows []models.MutationLogModel
	err := dbFromContext(ctx, r.db).
		Where("livestock_id = ?", livestockID).
		Order("date DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainMutations(rows), nil
}

// FindRecent lists the most recent mutations across the herd
func (r *GormMutationLogRepository) FindRecent(ctx context.Context, limit int) ([]livestock.MutationEntryRecord, error) {
	var rows []models.MutationLogModel
	err := dbFromContext(ctx, r.db).
		Order("date DESC").Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainMutations(rows), nil
}

// FindByLocation lists recent mutations of animals currently housed at a
// location. Joins the registry, so exits of deleted animals are not listed.
func (r *GormMutationLogRepository) FindByLocation(ctx context.Context, location livestock.PenLocation, limit int) ([]livestock.MutationEntryRecord, error) {
	var rows []models.MutationLogModel
	err := dbFromContext(ctx, r.db).
		Model(&models.MutationLogModel{}).
		Joins("JOIN livestock ON livestock.id = mutation_log.livestock_id").
		Where("livestock.location = ?", location.String()).
		Order("mutation_log.date DESC").Order("mutation_log.id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainMutations(rows), nil
}

func toDomainMutations(rows []models.MutationLogModel) []livestock.MutationEntryRecord {
	entries := make([]livestock.MutationEntryRecord, len(rows))
	for i, row := range rows {
		entries[i] = *row.ToDomain()
	}
	return entries
}
