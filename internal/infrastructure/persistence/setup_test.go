package persistence

import (
	"testing"
	"time"

	"github.com/dombastis/backend/internal/domain/livestock"
	"github.com/dombastis/backend/internal/domain/sales"
	"github.com/dombastis/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Same setting as the production connection, so unique-constraint
		// violations arrive as gorm.ErrDuplicatedKey here too.
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.LivestockModel{},
		&models.MutationLogModel{},
		&models.SalesModel{},
	)
	require.NoError(t, err)

	return db
}

func newTestAnimal(t *testing.T, name string, sex livestock.Sex, location livestock.PenLocation, pen int) *livestock.Livestock {
	t.Helper()
	animal, err := livestock.NewLivestock(name, sex, decimal.NewFromInt(30), "", "", location, pen)
	require.NoError(t, err)
	return animal
}

func newTestSale(t *testing.T, receipt string, date time.Time, quantity int, unitPrice, paid int64) *sales.SalesTransaction {
	t.Helper()
	tx, err := sales.NewSalesTransaction(
		receipt, "Budi", "", "", quantity,
		decimal.NewFromInt(unitPrice), decimal.NewFromInt(paid),
		date, "", "admin",
	)
	require.NoError(t, err)
	return tx
}
