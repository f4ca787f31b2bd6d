package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"cinetrip-backend/internal/domains/bookmark/model"
	moviemodel "cinetrip-backend/internal/domains/movie/model"
)

type bookmarkKey struct {
	userID uuid.UUID
	tmdbID int
}

// MemoryRepository keeps bookmarks in process.
type MemoryRepository struct {
	mu        sync.RWMutex
	bookmarks map[bookmarkKey]model.Bookmark
	movies    map[int]moviemodel.Movie
	now       func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		bookmarks: make(map[bookmarkKey]model.Bookmark),
		movies:    make(map[int]moviemodel.Movie),
		now:       time.Now,
	}
}

func (r *MemoryRepository) Add(_ context.Context, userID uuid.UUID, movie *moviemodel.Movie) (*model.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.movies[movie.TMDBID]
	stored.TMDBID = movie.TMDBID
	stored.Title = movie.Title
	if movie.PosterPath != nil {
		stored.PosterPath = movie.PosterPath
	}
	r.movies[movie.TMDBID] = stored

	key := bookmarkKey{userID: userID, tmdbID: movie.TMDBID}
	b, ok := r.bookmarks[key]
	if !ok {
		b = model.Bookmark{UserID: userID, TMDBID: movie.TMDBID, CreatedAt: r.now()}
		r.bookmarks[key] = b
	}
	b.Title = stored.Title
	b.PosterPath = stored.PosterPath
	return &b, nil
}

func (r *MemoryRepository) Remove(_ context.Context, userID uuid.UUID, tmdbID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bookmarks, bookmarkKey{userID: userID, tmdbID: tmdbID})
	return nil
}

func (r *MemoryRepository) Exists(_ context.Context, userID uuid.UUID, tmdbID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bookmarks[bookmarkKey{userID: userID, tmdbID: tmdbID}]
	return ok, nil
}

func (r *MemoryRepository) List(_ context.Context, userID uuid.UUID, limit, offset int) ([]model.Bookmark, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []model.Bookmark
	for key, b := range r.bookmarks {
		if key.userID != userID {
			continue
		}
		m := r.movies[key.tmdbID]
		b.Title = m.Title
		b.PosterPath = m.PosterPath
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].TMDBID > all[j].TMDBID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return []model.Bookmark{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}
