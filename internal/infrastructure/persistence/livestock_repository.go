package persistence

import (
	"context"
	"errors"

	"github.com/dombastis/backend/internal/domain/livestock"
	"github.com/dombastis/backend/internal/domain/shared"
	"github.com/dombastis/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLivestockRepository implements livestock.Repository using GORM
type GormLivestockRepository struct {
	db *gorm.DB
}

// NewGormLivestockRepository creates a new GormLivestockRepository
func NewGormLivestockRepository(db *gorm.DB) *GormLivestockRepository {
	return &GormLivestockRepository{db: db}
}

// Create inserts a new animal and assigns the store-generated ID
func (r *GormLivestockRepository) Create(ctx context.Context, animal *livestock.Livestock) error {
	model := models.LivestockModelFromDomain(animal)
	model.ID = 0
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	animal.ID = model.ID
	animal.CreatedAt = model.CreatedAt
	animal.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID finds an animal by ID
func (r *GormLivestockRepository) FindByID(ctx context.Context, id int64) (*livestock.Livestock, error) {
	var model models.LivestockModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists animals, optionally filtered by location, ordered by
// location then pen number
func (r *GormLivestockRepository) FindAll(ctx context.Context, filter livestock.Filter) ([]livestock.Livestock, error) {
	query := dbFromContext(ctx, r.db).Model(&models.LivestockModel{})
	if filter.Location != nil {
		query = query.Where("location = ?", filter.Location.String())
	}

	var rows []models.LivestockModel
	if err := query.Order("location").Order("pen").Find(&rows).Error; err != nil {
		return nil, err
	}

	animals := make([]livestock.Livestock, len(rows))
	for i, row := range rows {
		animals[i] = *row.ToDomain()
	}
	return animals, nil
}

// Update persists changed attributes of an existing animal
func (r *GormLivestockRepository) Update(ctx context.Context, animal *livestock.Livestock) error {
	conn := dbFromContext(ctx, r.db)

	var existing models.LivestockModel
	if err := conn.First(&existing, "id = ?", animal.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}

	model := models.LivestockModelFromDomain(animal)
	model.CreatedAt = existing.CreatedAt
	return conn.Model(&models.LivestockModel{}).
		Where("id = ?", animal.ID).
		Updates(map[string]interface{}{
			"name":     model.Name,
			"sex":      model.Sex,
			"weight":   model.Weight,
			"tag":      model.Tag,
			"breed":    model.Breed,
			"location": model.Location,
			"pen":      model.Pen,
		}).Error
}

// Delete removes an animal unconditionally
func (r *GormLivestockRepository) Delete(ctx context.Context, id int64) error {
	return dbFromContext(ctx, r.db).Delete(&models.LivestockModel{}, "id = ?", id).Error
}

// Counts aggregates the registry for the dashboard
func (r *GormLivestockRepository) Counts(ctx context.Context) (livestock.HerdCounts, error) {
	conn := dbFromContext(ctx, r.db)
	var counts livestock.HerdCounts

	count := func(query *gorm.DB, dst *int64) error {
		return query.Count(dst).Error
	}

	if err := count(conn.Model(&models.LivestockModel{}), &counts.Total); err != nil {
		return livestock.HerdCounts{}, err
	}
	if err := count(conn.Model(&models.LivestockModel{}).Where("sex = ?", livestock.SexMale.String()), &counts.Male); err != nil {
		return livestock.HerdCounts{}, err
	}
	if err := count(conn.Model(&models.LivestockModel{}).Where("sex = ?", livestock.SexFemale.String()), &counts.Female); err != nil {
		return livestock.HerdCounts{}, err
	}
	if err := count(conn.Model(&models.LivestockModel{}).Where("location = ?", livestock.PenWest.String()), &counts.West); err != nil {
		return livestock.HerdCounts{}, err
	}
	if err := count(conn.Model(&models.LivestockModel{}).Where("location = ?", livestock.PenEast.String()), &counts.East); err != nil {
		return livestock.HerdCounts{}, err
	}
	return counts, nil
}
