package provider

import (
	"context"

	"cinetrip-backend/internal/domains/movie/model"
)

//go:generate mockgen -source=interface.go -destination=../../../mocks/movie_provider.go -package=mocks -mock_names=Provider=MockMovieProvider,Fetcher=MockMovieFetcher

// Provider resolves a movie id to metadata. It never fails: unknown ids get a synthesized placeholder.
type Provider interface {
	Get(ctx context.Context, tmdbID int) model.MovieMetadata
}

// Fetcher is the external movie database.
type Fetcher interface {
	Movie(ctx context.Context, tmdbID int) (model.MovieMetadata, error)
}
