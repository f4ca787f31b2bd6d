package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"cinetrip-backend/internal/domains/bookmark/model"
	"cinetrip-backend/internal/domains/bookmark/repository"
	moviemodel "cinetrip-backend/internal/domains/movie/model"
	"cinetrip-backend/internal/shared"
)

type Service interface {
	Add(ctx context.Context, userID uuid.UUID, req model.CreateBookmarkRequest) (*model.Bookmark, error)
	Remove(ctx context.Context, userID uuid.UUID, tmdbID int) error
	IsBookmarked(ctx context.Context, userID uuid.UUID, tmdbID int) (bool, error)
	List(ctx context.Context, userID uuid.UUID, page shared.Pagination) ([]model.Bookmark, int, error)
}

type bookmarkService struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) Service {
	return &bookmarkService{repo: repo}
}

func (s *bookmarkService) Add(ctx context.Context, userID uuid.UUID, req model.CreateBookmarkRequest) (*model.Bookmark, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err)
	}

	movie := &moviemodel.Movie{TMDBID: req.TMDBID, Title: req.Title}
	if req.PosterPath != nil && strings.TrimSpace(*req.PosterPath) != "" {
		poster := strings.TrimSpace(*req.PosterPath)
		movie.PosterPath = &poster
	}

	b, err := s.repo.Add(ctx, userID, movie)
	if err != nil {
		return nil, fmt.Errorf("add bookmark %d: %w", req.TMDBID, err)
	}
	return b, nil
}

// Remove is idempotent.
func (s *bookmarkService) Remove(ctx context.Context, userID uuid.UUID, tmdbID int) error {
	if tmdbID <= 0 {
		return moviemodel.NewInvalidMovieIDError(fmt.Sprint(tmdbID))
	}
	return s.repo.Remove(ctx, userID, tmdbID)
}

func (s *bookmarkService) IsBookmarked(ctx context.Context, userID uuid.UUID, tmdbID int) (bool, error) {
	if tmdbID <= 0 {
		return false, moviemodel.NewInvalidMovieIDError(fmt.Sprint(tmdbID))
	}
	return s.repo.Exists(ctx, userID, tmdbID)
}

func (s *bookmarkService) List(ctx context.Context, userID uuid.UUID, page shared.Pagination) ([]model.Bookmark, int, error) {
	page = page.Normalize()
	return s.repo.List(ctx, userID, page.Limit, page.Offset())
}
