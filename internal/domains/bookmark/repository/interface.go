package repository

import (
	"context"

	"github.com/google/uuid"

	"cinetrip-backend/internal/domains/bookmark/model"
	moviemodel "cinetrip-backend/internal/domains/movie/model"
)

type Repository interface {
	// Add stores the movie row (title and poster refreshed) and the bookmark in one transaction.
	// Adding an existing bookmark returns the existing one.
	Add(ctx context.Context, userID uuid.UUID, movie *moviemodel.Movie) (*model.Bookmark, error)

	// Remove is a no-op for unknown bookmarks.
	Remove(ctx context.Context, userID uuid.UUID, tmdbID int) error

	Exists(ctx context.Context, userID uuid.UUID, tmdbID int) (bool, error)

	// List returns newest first plus the total count.
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Bookmark, int, error)
}
