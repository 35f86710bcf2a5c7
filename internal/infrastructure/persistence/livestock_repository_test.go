package persistence

import (
	"context"
	"testing"

	"github.com/dombastis/backend/internal/domain/livestock"
	"github.com/dombastis/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormLivestockRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLivestockRepository(db)
	ctx := context.Background()

	animal := newTestAnimal(t, "Domba 1", livestock.SexMale, livestock.PenWest, 1)
	require.NoError(t, repo.Create(ctx, animal))

	assert.Greater(t, animal.ID, int64(0), "store assigns the ID")
	assert.False(t, animal.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, animal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Domba 1", found.Name)
	assert.Equal(t, livestock.DefaultEarTag, found.EarTag)
	assert.Equal(t, livestock.DefaultBreed, found.Breed)
}

func TestGormLivestockRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLivestockRepository(db)
	ctx := context.Background()

	t.Run("missing animal returns not found", func(t *testing.T) {
		found, err := repo.FindByID(ctx, 999)
		assert.Nil(t, found)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormLivestockRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLivestockRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestAnimal(t, "Timur 2", livestock.SexMale, livestock.PenEast, 2)))
	require.NoError(t, repo.Create(ctx, newTestAnimal(t, "Barat 5", livestock.SexFemale, livestock.PenWest, 5)))
	require.NoError(t, repo.Create(ctx, newTestAnimal(t, "Barat 1", livestock.SexMale, livestock.PenWest, 1)))

	t.Run("lists everything ordered by location then pen", func(t *testing.T) {
		animals, err := repo.FindAll(ctx, livestock.Filter{})
		require.NoError(t, err)
		require.Len(t, animals, 3)

		assert.Equal(t, "Barat 1", animals[0].Name)
		assert.Equal(t, "Barat 5", animals[1].Name)
		assert.Equal(t, "Timur 2", animals[2].Name)
	})

	t.Run("filters by location", func(t *testing.T) {
		east := livestock.PenEast
		animals, err := repo.FindAll(ctx, livestock.Filter{Location: &east})
		require.NoError(t, err)
		require.Len(t, animals, 1)
		assert.Equal(t, "Timur 2", animals[0].Name)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		empty := setupTestDB(t)
		animals, err := NewGormLivestockRepository(empty).FindAll(ctx, livestock.Filter{})
		require.NoError(t, err)
		assert.Empty(t, animals)
	})
}

func TestGormLivestockRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLivestockRepository(db)
	ctx := context.Background()

	animal := newTestAnimal(t, "Domba 1", livestock.SexMale, livestock.PenWest, 1)
	require.NoError(t, repo.Create(ctx, animal))

	t.Run("persists replaced attributes", func(t *testing.T) {
		require.NoError(t, animal.UpdateAttributes("Domba 1b", livestock.SexMale, decimal.NewFromInt(42), "ET-9", "Garut", livestock.PenEast, 7))
		require.NoError(t, repo.Update(ctx, animal))

		found, err := repo.FindByID(ctx, animal.ID)
		require.NoError(t, err)
		assert.Equal(t, "Domba 1b", found.Name)
		assert.True(t, decimal.NewFromInt(42).Equal(found.WeightKg))
		assert.Equal(t, "ET-9", found.EarTag)
		assert.Equal(t, livestock.PenEast, found.PenLocation)
		assert.Equal(t, 7, found.PenNumber)
	})

	t.Run("missing animal returns not found", func(t *testing.T) {
		ghost := newTestAnimal(t, "Ghost", livestock.SexMale, livestock.PenWest, 1)
		ghost.ID = 999
		assert.ErrorIs(t, repo.Update(ctx, ghost), shared.ErrNotFound)
	})
}

func TestGormLivestockRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLivestockRepository(db)
	ctx := context.Background()

	animal := newTestAnimal(t, "Domba 1", livestock.SexMale, livestock.PenWest, 1)
	require.NoError(t, repo.Create(ctx, animal))
	require.NoError(t, repo.Delete(ctx, animal.ID))

	_, err := repo.FindByID(ctx, animal.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormLivestockRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLivestockRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestAnimal(t, "A", livestock.SexMale, livestock.PenWest, 1)))
	require.NoError(t, repo.Create(ctx, newTestAnimal(t, "B", livestock.SexMale, livestock.PenEast, 2)))
	require.NoError(t, repo.Create(ctx, newTestAnimal(t, "C", livestock.SexFemale, livestock.PenWest, 3)))

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), counts.Total)
	assert.Equal(t, int64(2), counts.Male)
	assert.Equal(t, int64(1), counts.Female)
	assert.Equal(t, int64(2), counts.West)
	assert.Equal(t, int64(1), counts.East)
}
