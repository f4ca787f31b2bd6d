package repository_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinetrip-backend/internal/domains/scene/model"
	"cinetrip-backend/internal/domains/scene/repository"
)

func location(tmdbID int, name string, lat, lng string) *model.SceneLocation {
	return &model.SceneLocation{
		TMDBID:  tmdbID,
		Name:    name,
		Scene:   "scene of " + name,
		Address: "address of " + name,
		Country: "South Korea",
		City:    "Seoul",
		Lat:     decimal.RequireFromString(lat),
		Lng:     decimal.RequireFromString(lng),
	}
}

// runStoreContract exercises the behaviour every Repository implementation must share.
func runStoreContract(t *testing.T, repo repository.Repository, tmdbID int) {
	ctx := context.Background()

	t.Run("upsert same key keeps id and refreshes details", func(t *testing.T) {
		first, err := repo.Upsert(ctx, location(tmdbID, "Harbor Bridge", "10.0", "20.0"))
		require.NoError(t, err)
		require.NotZero(t, first.ID)

		updated := location(tmdbID, "Harbor Bridge", "10.00000000", "20")
		updated.Scene = "new scene"
		updated.Address = "new address"
		updated.Country = "Australia"
		updated.City = "Sydney"

		second, err := repo.Upsert(ctx, updated)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "new scene", second.Scene)
		assert.Equal(t, "Sydney", second.City)

		rows, err := repo.FindByMovieOrdered(ctx, tmdbID, 0)
		require.NoError(t, err)
		assert.Len(t, rows, 1)

		found, err := repo.FindByUniqueKey(ctx, tmdbID, "Harbor Bridge", decimal.NewFromInt(10), decimal.NewFromInt(20))
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)
		assert.Equal(t, "new address", found.Address)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := repo.FindByUniqueKey(ctx, tmdbID, "nowhere", decimal.Zero, decimal.Zero)
		assert.ErrorIs(t, err, model.ErrSceneLocationNotFound)
	})

	t.Run("ordering limit and deletes", func(t *testing.T) {
		require.NoError(t, repo.DeleteAllForMovie(ctx, tmdbID))

		var ids []int64
		for i, name := range []string{"A", "B", "C", "D"} {
			saved, err := repo.Upsert(ctx, location(tmdbID, name, "37.1", decimal.NewFromInt(int64(120+i)).String()))
			require.NoError(t, err)
			ids = append(ids, saved.ID)
		}

		rows, err := repo.FindByMovieOrdered(ctx, tmdbID, 2)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, ids[0], rows[0].ID)
		assert.Equal(t, ids[1], rows[1].ID)

		require.NoError(t, repo.DeleteByIDs(ctx, ids[2:]))
		require.NoError(t, repo.DeleteByIDs(ctx, nil))

		rows, err = repo.FindByMovieOrdered(ctx, tmdbID, 0)
		require.NoError(t, err)
		assert.Len(t, rows, 2)

		require.NoError(t, repo.DeleteAllForMovie(ctx, tmdbID))
		rows, err = repo.FindByMovieOrdered(ctx, tmdbID, 0)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestMemoryRepository(t *testing.T) {
	runStoreContract(t, repository.NewMemoryRepository(), 496243)
}

func TestMemoryRepository_MoviesAreIsolated(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Upsert(ctx, location(1, "Same", "1", "1"))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, location(2, "Same", "1", "1"))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteAllForMovie(ctx, 1))

	rows, err := repo.FindByMovieOrdered(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
