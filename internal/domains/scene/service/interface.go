package service

import (
	"context"

	"cinetrip-backend/internal/domains/scene/model"
)

//go:generate mockgen -source=interface.go -destination=../../../mocks/scene_resolver.go -package=mocks -mock_names=Resolver=MockSceneResolver

// Resolver returns the scene locations of a movie, generating and storing them on a cache miss.
type Resolver interface {
	// Resolve returns at most model.MaxLocationsPerMovie rows ordered by id.
	// A generation failure is a *model.SceneError with code SCN002, store errors are returned wrapped.
	Resolve(ctx context.Context, tmdbID int, opts model.ResolveOptions) ([]*model.SceneLocation, error)
}
