package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/dombastis/backend/internal/domain/shared"
	"github.com/dombastis/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleDay(day int) time.Time {
	return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
}

func TestGormSalesRepository_Insert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesRepository(db)
	ctx := context.Background()

	t.Run("assigns the ID and persists the money fields", func(t *testing.T) {
		tx := newTestSale(t, "JL-20260801-001", saleDay(1), 3, 1500000, 2000000)
		require.NoError(t, repo.Insert(ctx, tx))
		assert.Greater(t, tx.ID, int64(0))

		found, err := repo.FindByID(ctx, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, "JL-20260801-001", found.ReceiptNumber)
		assert.True(t, decimal.NewFromInt(4500000).Equal(found.TotalPrice))
		assert.True(t, decimal.NewFromInt(2500000).Equal(found.Outstanding))
	})

	t.Run("duplicate receipt number is rejected by the store", func(t *testing.T) {
		dup := newTestSale(t, "JL-20260801-001", saleDay(1), 1, 1000000, 0)
		err := repo.Insert(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrDuplicateReceipt)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "failed insert leaves the ledger untouched")
	})
}

func TestGormSalesRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newTestSale(t, "JL-20260801-001", saleDay(1), 1, 1000000, 1000000)))
	require.NoError(t, repo.Insert(ctx, newTestSale(t, "JL-20260803-001", saleDay(3), 1, 1000000, 0)))
	require.NoError(t, repo.Insert(ctx, newTestSale(t, "JL-20260802-001", saleDay(2), 1, 1000000, 0)))

	txs, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, "JL-20260803-001", txs[0].ReceiptNumber, "newest sale first")
	assert.Equal(t, "JL-20260802-001", txs[1].ReceiptNumber)
	assert.Equal(t, "JL-20260801-001", txs[2].ReceiptNumber)
}

func TestGormSalesRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesRepository(db)
	ctx := context.Background()

	tx := newTestSale(t, "JL-20260801-001", saleDay(1), 1, 1000000, 0)
	require.NoError(t, repo.Insert(ctx, tx))
	require.NoError(t, repo.Delete(ctx, tx.ID))

	_, err := repo.FindByID(ctx, tx.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	t.Run("receipt number becomes reusable after delete", func(t *testing.T) {
		again := newTestSale(t, "JL-20260801-001", saleDay(1), 1, 1000000, 0)
		assert.NoError(t, repo.Insert(ctx, again))
	})
}

func TestGormSalesRepository_CountByReceiptPrefix(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newTestSale(t, "JL-20260801-001", saleDay(1), 1, 1000000, 0)))
	require.NoError(t, repo.Insert(ctx, newTestSale(t, "JL-20260801-002", saleDay(1), 1, 1000000, 0)))
	require.NoError(t, repo.Insert(ctx, newTestSale(t, "JL-20260802-001", saleDay(2), 1, 1000000, 0)))

	count, err := repo.CountByReceiptPrefix(ctx, "JL-20260801-")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByReceiptPrefix(ctx, "JL-20260899-")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGormSalesRepository_Aggregate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesRepository(db)
	ctx := context.Background()

	t.Run("empty ledger aggregates to zero", func(t *testing.T) {
		summary, err := repo.Aggregate(ctx)
		require.NoError(t, err)
		assert.True(t, summary.TotalRevenue.IsZero())
		assert.Equal(t, int64(0), summary.TotalUnitsSold)
		assert.Equal(t, int64(0), summary.CountUnpaid)
	})

	require.NoError(t, repo.Insert(ctx, newTestSale(t, "JL-20260801-001", saleDay(1), 3, 1500000, 4500000)))
	require.NoError(t, repo.Insert(ctx, newTestSale(t, "JL-20260801-002", saleDay(1), 2, 1000000, 500000)))
	require.NoError(t, repo.Insert(ctx, newTestSale(t, "JL-20260802-001", saleDay(2), 1, 2000000, 0)))

	t.Run("sums revenue and units and counts unpaid rows", func(t *testing.T) {
		summary, err := repo.Aggregate(ctx)
		require.NoError(t, err)

		assert.True(t, summary.TotalRevenue.Equals(valueobject.NewMoneyIDR(decimal.NewFromInt(8500000))), "got %s", summary.TotalRevenue)
		assert.Equal(t, int64(6), summary.TotalUnitsSold)
		assert.Equal(t, int64(2), summary.CountUnpaid)
	})
}
