package repository

import (
	"context"

	"github.com/google/uuid"

	"cinetrip-backend/internal/domains/post/model"
)

//go:generate mockgen -source=interface.go -destination=../../../mocks/post_repository.go -package=mocks -mock_names=Repository=MockPostRepository

type Repository interface {
	// ========================================
	// POSTS
	// ========================================

	// Create fills ID and timestamps.
	// Returns: model.ErrUnknownReference when tmdbId or sceneLocationId has no row
	Create(ctx context.Context, p *model.Post) error

	// FindByID returns model.ErrPostNotFound for unknown ids. viewer may be nil.
	FindByID(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*model.PostView, error)

	// List returns newest first plus the total count matching the filter.
	List(ctx context.Context, filter model.ListFilter) ([]model.PostView, int, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// ToggleLike inserts or deletes the like and adjusts like_count in one transaction.
	ToggleLike(ctx context.Context, postID, userID uuid.UUID) (*model.LikeResult, error)

	// ========================================
	// COMMENTS
	// ========================================

	// CreateComment inserts the comment and increments comment_count in one transaction.
	CreateComment(ctx context.Context, c *model.Comment) error

	FindCommentByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)

	// ListComments returns oldest first.
	ListComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]model.Comment, int, error)

	// DeleteComment removes the comment and decrements comment_count in one transaction.
	DeleteComment(ctx context.Context, c *model.Comment) error
}
