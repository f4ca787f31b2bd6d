package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/domains/post/model"
	"cinetrip-backend/internal/domains/post/repository"
	"cinetrip-backend/internal/shared"
)

// ImageStore resolves and deletes uploaded images. Satisfied by *storage.MinIOStorage.
type ImageStore interface {
	KeyFromURL(raw string) (string, bool)
	RemoveObjects(ctx context.Context, keys []string) error
}

type Service interface {
	List(ctx context.Context, viewer *uuid.UUID, q model.ListPostsQuery) ([]model.PostView, int, error)
	Gallery(ctx context.Context, viewer *uuid.UUID, q model.GalleryQuery) ([]model.PostView, int, error)
	Get(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*model.PostView, error)
	Create(ctx context.Context, authorID uuid.UUID, req model.CreatePostRequest) (*model.PostView, error)
	Delete(ctx context.Context, userID, postID uuid.UUID) error
	ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*model.LikeResult, error)

	ListComments(ctx context.Context, postID uuid.UUID, page shared.Pagination) ([]model.Comment, int, error)
	AddComment(ctx context.Context, userID, postID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
}

type postService struct {
	repo   repository.Repository
	images ImageStore
}

func NewService(repo repository.Repository, images ImageStore) Service {
	return &postService{repo: repo, images: images}
}

// ========================================
// POSTS
// ========================================

func (s *postService) List(ctx context.Context, viewer *uuid.UUID, q model.ListPostsQuery) ([]model.PostView, int, error) {
	if err := q.Validate(); err != nil {
		return nil, 0, model.NewInvalidRequestError(err)
	}

	page := q.Pagination.Normalize()
	filter := model.ListFilter{Viewer: viewer, Limit: page.Limit, Offset: page.Offset()}
	if q.Feed == model.FeedFollowing {
		if viewer == nil {
			return nil, 0, model.NewLoginRequiredError()
		}
		filter.FollowedBy = viewer
	}

	posts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, total, nil
}

func (s *postService) Gallery(ctx context.Context, viewer *uuid.UUID, q model.GalleryQuery) ([]model.PostView, int, error) {
	if err := q.Validate(); err != nil {
		return nil, 0, model.NewInvalidRequestError(err)
	}

	page := q.Pagination.Normalize()
	posts, total, err := s.repo.List(ctx, model.ListFilter{
		Viewer:          viewer,
		TMDBID:          q.TMDBID,
		SceneLocationID: q.SceneLocationID,
		WithImages:      true,
		Limit:           page.Limit,
		Offset:          page.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list gallery: %w", err)
	}
	return posts, total, nil
}

func (s *postService) Get(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*model.PostView, error) {
	post, err := s.repo.FindByID(ctx, id, viewer)
	if err != nil {
		return nil, translate(err)
	}
	return post, nil
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, req model.CreatePostRequest) (*model.PostView, error) {
	// Step 1: validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err)
	}

	// Step 2: insert
	post := &model.Post{
		AuthorID:        authorID,
		Content:         req.Content,
		ImageURLs:       req.ImageURLs,
		TMDBID:          req.TMDBID,
		SceneLocationID: req.SceneLocationID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, translate(err)
	}

	log.Info().
		Str("post_id", post.ID.String()).
		Str("author_id", authorID.String()).
		Int("images", len(post.ImageURLs)).
		Msg("[POST] created")

	// Step 3: read back with the author summary
	return s.Get(ctx, post.ID, &authorID)
}

// Delete removes the post, then its images. Image cleanup failures are only logged.
func (s *postService) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.repo.FindByID(ctx, postID, nil)
	if err != nil {
		return translate(err)
	}
	if post.AuthorID != userID {
		return model.NewForbiddenError()
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return translate(err)
	}

	keys := make([]string, 0, len(post.ImageURLs))
	for _, u := range post.ImageURLs {
		if key, ok := s.images.KeyFromURL(u); ok {
			keys = append(keys, key)
		}
	}
	if err := s.images.RemoveObjects(ctx, keys); err != nil {
		log.Warn().Err(err).Str("post_id", postID.String()).Strs("keys", keys).Msg("[POST] image cleanup failed")
	}
	return nil
}

func (s *postService) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*model.LikeResult, error) {
	result, err := s.repo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, translate(err)
	}
	return result, nil
}

// ========================================
// COMMENTS
// ========================================

func (s *postService) ListComments(ctx context.Context, postID uuid.UUID, page shared.Pagination) ([]model.Comment, int, error) {
	if _, err := s.repo.FindByID(ctx, postID, nil); err != nil {
		return nil, 0, translate(err)
	}

	page = page.Normalize()
	comments, total, err := s.repo.ListComments(ctx, postID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	return comments, total, nil
}

func (s *postService) AddComment(ctx context.Context, userID, postID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err)
	}

	comment := &model.Comment{PostID: postID, AuthorID: userID, Content: req.Content}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, translate(err)
	}
	return comment, nil
}

func (s *postService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.repo.FindCommentByID(ctx, commentID)
	if err != nil {
		return translate(err)
	}
	if comment.AuthorID != userID {
		return model.NewForbiddenError()
	}
	return translate(s.repo.DeleteComment(ctx, comment))
}

// translate turns repository sentinels into coded errors. Other errors pass through.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrPostNotFound):
		return model.NewPostNotFoundError()
	case errors.Is(err, model.ErrCommentNotFound):
		return model.NewCommentNotFoundError()
	case errors.Is(err, model.ErrUnknownReference):
		return model.NewUnknownReferenceError()
	default:
		return err
	}
}
