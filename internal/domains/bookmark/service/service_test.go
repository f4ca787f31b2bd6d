package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinetrip-backend/internal/domains/bookmark/model"
	"cinetrip-backend/internal/domains/bookmark/repository"
	"cinetrip-backend/internal/domains/bookmark/service"
	moviemodel "cinetrip-backend/internal/domains/movie/model"
	"cinetrip-backend/internal/shared"
)

func strPtr(s string) *string { return &s }

func TestAdd_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := service.NewService(repository.NewMemoryRepository())
	userID := uuid.New()

	first, err := svc.Add(ctx, userID, model.CreateBookmarkRequest{TMDBID: 496243, Title: " Parasite ", PosterPath: strPtr("/p.jpg")})
	require.NoError(t, err)
	assert.Equal(t, "Parasite", first.Title)

	second, err := svc.Add(ctx, userID, model.CreateBookmarkRequest{TMDBID: 496243, Title: "Parasite"})
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	require.NotNil(t, second.PosterPath)
	assert.Equal(t, "/p.jpg", *second.PosterPath)

	items, total, err := svc.List(ctx, userID, shared.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)
}

func TestAdd_Validation(t *testing.T) {
	svc := service.NewService(repository.NewMemoryRepository())

	_, err := svc.Add(context.Background(), uuid.New(), model.CreateBookmarkRequest{TMDBID: 0, Title: "  "})

	var bErr *model.BookmarkError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, model.ErrCodeInvalidRequest, bErr.Code)
}

func TestRemoveAndStatus(t *testing.T) {
	ctx := context.Background()
	svc := service.NewService(repository.NewMemoryRepository())
	userID := uuid.New()

	_, err := svc.Add(ctx, userID, model.CreateBookmarkRequest{TMDBID: 1, Title: "Oldboy"})
	require.NoError(t, err)

	ok, err := svc.IsBookmarked(ctx, userID, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	other, err := svc.IsBookmarked(ctx, uuid.New(), 1)
	require.NoError(t, err)
	assert.False(t, other)

	require.NoError(t, svc.Remove(ctx, userID, 1))
	require.NoError(t, svc.Remove(ctx, userID, 1))

	ok, err = svc.IsBookmarked(ctx, userID, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemove_InvalidID(t *testing.T) {
	err := service.NewService(repository.NewMemoryRepository()).Remove(context.Background(), uuid.New(), -3)

	var movieErr *moviemodel.MovieError
	require.ErrorAs(t, err, &movieErr)
	assert.Equal(t, moviemodel.ErrCodeInvalidMovieID, movieErr.Code)
}

func TestList_Paginates(t *testing.T) {
	ctx := context.Background()
	svc := service.NewService(repository.NewMemoryRepository())
	userID := uuid.New()
	for id := 1; id <= 5; id++ {
		_, err := svc.Add(ctx, userID, model.CreateBookmarkRequest{TMDBID: id, Title: "Movie"})
		require.NoError(t, err)
	}

	items, total, err := svc.List(ctx, userID, shared.Pagination{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, items, 2)

	items, _, err = svc.List(ctx, userID, shared.Pagination{Page: 4, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, items)
}
