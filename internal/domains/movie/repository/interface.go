package repository

import (
	"context"

	"cinetrip-backend/internal/domains/movie/model"
)

type Repository interface {
	// Upsert inserts the movie or refreshes its columns. NULL fields never erase stored values.
	Upsert(ctx context.Context, movie *model.Movie) error

	// EnsureExists inserts the movie only when the id is unknown.
	EnsureExists(ctx context.Context, movie *model.Movie) error

	// GetByID returns model.ErrMovieNotFound for unknown ids.
	GetByID(ctx context.Context, tmdbID int) (*model.Movie, error)
}
