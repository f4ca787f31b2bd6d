package repository

import (
	"context"
	"sync"
	"time"

	"cinetrip-backend/internal/domains/movie/model"
)

// MemoryRepository keeps movies in a map. Used by tests and database-less local runs.
type MemoryRepository struct {
	mu     sync.RWMutex
	movies map[int]model.Movie
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{movies: make(map[int]model.Movie), now: time.Now}
}

func (r *MemoryRepository) Upsert(_ context.Context, m *model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	existing, ok := r.movies[m.TMDBID]
	if !ok {
		m.CreatedAt, m.UpdatedAt = now, now
		r.movies[m.TMDBID] = *m
		return nil
	}

	existing.Title = m.Title
	existing.OriginalTitle = coalesce(m.OriginalTitle, existing.OriginalTitle)
	existing.PosterPath = coalesce(m.PosterPath, existing.PosterPath)
	existing.ReleaseDate = coalesce(m.ReleaseDate, existing.ReleaseDate)
	existing.Country = coalesce(m.Country, existing.Country)
	existing.Language = coalesce(m.Language, existing.Language)
	existing.UpdatedAt = now
	r.movies[m.TMDBID] = existing

	*m = existing
	return nil
}

func (r *MemoryRepository) EnsureExists(_ context.Context, m *model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.movies[m.TMDBID]; ok {
		return nil
	}
	now := r.now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.movies[m.TMDBID] = *m
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, tmdbID int) (*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.movies[tmdbID]
	if !ok {
		return nil, model.ErrMovieNotFound
	}
	return &m, nil
}

func coalesce(v, fallback *string) *string {
	if v != nil {
		return v
	}
	return fallback
}
