package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"cinetrip-backend/internal/domains/scene/model"
)

// =====================================================
// SCENE LOCATION STORE
// =====================================================

// Repository is the persistence boundary of scene locations. Rows are unique on (tmdb_id, name, lat, lng).
type Repository interface {
	// FindByMovieOrdered returns rows by ascending id. limit <= 0 means all rows.
	FindByMovieOrdered(ctx context.Context, tmdbID int, limit int) ([]*model.SceneLocation, error)

	// FindByUniqueKey returns model.ErrSceneLocationNotFound when nothing matches.
	FindByUniqueKey(ctx context.Context, tmdbID int, name string, lat, lng decimal.Decimal) (*model.SceneLocation, error)

	// Upsert inserts a new key or refreshes scene, address, country, city (and timestamp) of the existing row.
	// Id, movie, name and coordinates of an existing row never change.
	Upsert(ctx context.Context, loc *model.SceneLocation) (*model.SceneLocation, error)

	DeleteAllForMovie(ctx context.Context, tmdbID int) error

	DeleteByIDs(ctx context.Context, ids []int64) error
}
