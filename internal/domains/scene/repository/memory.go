package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"cinetrip-backend/internal/domains/scene/model"
)

// MemoryRepository mirrors the PostgreSQL semantics in process.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]model.SceneLocation
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rows: make(map[int64]model.SceneLocation),
		now:  time.Now,
	}
}

func (r *MemoryRepository) FindByMovieOrdered(_ context.Context, tmdbID int, limit int) ([]*model.SceneLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.SceneLocation, 0, model.MaxLocationsPerMovie)
	for _, row := range r.rows {
		if row.TMDBID == tmdbID {
			row := row
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepository) FindByUniqueKey(_ context.Context, tmdbID int, name string, lat, lng decimal.Decimal) (*model.SceneLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if row, ok := r.findLocked(tmdbID, name, lat, lng); ok {
		return &row, nil
	}
	return nil, model.ErrSceneLocationNotFound
}

func (r *MemoryRepository) findLocked(tmdbID int, name string, lat, lng decimal.Decimal) (model.SceneLocation, bool) {
	key := &model.SceneLocation{
		TMDBID: tmdbID,
		Name:   name,
		Lat:    model.RoundCoordinate(lat),
		Lng:    model.RoundCoordinate(lng),
	}
	for _, row := range r.rows {
		if row.SameKey(key) {
			return row, true
		}
	}
	return model.SceneLocation{}, false
}

func (r *MemoryRepository) Upsert(_ context.Context, loc *model.SceneLocation) (*model.SceneLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if existing, ok := r.findLocked(loc.TMDBID, loc.Name, loc.Lat, loc.Lng); ok {
		existing.Scene = loc.Scene
		existing.Timestamp = loc.Timestamp
		existing.Address = loc.Address
		existing.Country = loc.Country
		existing.City = loc.City
		existing.UpdatedAt = now
		r.rows[existing.ID] = existing
		return &existing, nil
	}

	r.nextID++
	row := *loc
	row.ID = r.nextID
	row.Lat = model.RoundCoordinate(loc.Lat)
	row.Lng = model.RoundCoordinate(loc.Lng)
	row.CreatedAt = now
	row.UpdatedAt = now
	r.rows[row.ID] = row
	return &row, nil
}

func (r *MemoryRepository) DeleteAllForMovie(_ context.Context, tmdbID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, row := range r.rows {
		if row.TMDBID == tmdbID {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *MemoryRepository) DeleteByIDs(_ context.Context, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		delete(r.rows, id)
	}
	return nil
}
