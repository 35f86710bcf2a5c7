package persistence

import (
	"context"
	"errors"

	"github.com/dombastis/backend/internal/domain/sales"
	"github.com/dombastis/backend/internal/domain/shared"
	"github.com/dombastis/backend/internal/domain/shared/valueobject"
	"github.com/dombastis/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSalesRepository implements sales.Repository using GORM
type GormSalesRepository struct {
	db *gorm.DB
}

// NewGormSalesRepository creates a new GormSalesRepository
func NewGormSalesRepository(db *gorm.DB) *GormSalesRepository {
	return &GormSalesRepository{db: db}
}

// Insert records a sale. A unique-constraint violation on the receipt
// column is surfaced as shared.ErrDuplicateReceipt; the store is the
// final authority on receipt uniqueness.
func (r *GormSalesRepository) Insert(ctx context.Context, tx *sales.SalesTransaction) error {
	model := models.SalesModelFromDomain(tx)
	model.ID = 0
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateReceipt
		}
		return err
	}
	tx.ID = model.ID
	tx.CreatedAt = model.CreatedAt
	tx.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID finds a sale by ID
func (r *GormSalesRepository) FindByID(ctx context.Context, id int64) (*sales.SalesTransaction, error) {
	var model models.SalesModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists all sales ordered by date descending, then ID descending
func (r *GormSalesRepository) FindAll(ctx context.Context) ([]sales.SalesTransaction, error) {
	var rows []models.SalesModel
	err := dbFromContext(ctx, r.db).
		Order("date DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	txs := make([]sales.SalesTransaction, len(rows))
	for i, row := range rows {
		txs[i] = *row.ToDomain()
	}
	return txs, nil
}

// Delete removes a sale unconditionally
func (r *GormSalesRepository) Delete(ctx context.Context, id int64) error {
	return dbFromContext(ctx, r.db).Delete(&models.SalesModel{}, "id = ?", id).Error
}

// CountByReceiptPrefix counts sales whose receipt number begins with prefix
func (r *GormSalesRepository) CountByReceiptPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).
		Model(&models.SalesModel{}).
		Where("receipt_id LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}

// Count counts all sales ever recorded
func (r *GormSalesRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).
		Model(&models.SalesModel{}).
		Count(&count).Error
	return count, err
}

// Aggregate computes the ledger summary over all rows
func (r *GormSalesRepository) Aggregate(ctx context.Context) (sales.Summary, error) {
	conn := dbFromContext(ctx, r.db)

	var totals struct {
		TotalRevenue   valueobject.Money
		TotalUnitsSold int64
	}
	err := conn.Model(&models.SalesModel{}).
		Select("COALESCE(SUM(total), 0) AS total_revenue, COALESCE(SUM(quantity), 0) AS total_units_sold").
		Scan(&totals).Error
	if err != nil {
		return sales.Summary{}, err
	}

	var unpaid int64
	err = conn.Model(&models.SalesModel{}).
		Where("balance > 0").
		Count(&unpaid).Error
	if err != nil {
		return sales.Summary{}, err
	}

	return sales.Summary{
		TotalRevenue:   totals.TotalRevenue,
		TotalUnitsSold: totals.TotalUnitsSold,
		CountUnpaid:    unpaid,
	}, nil
}
