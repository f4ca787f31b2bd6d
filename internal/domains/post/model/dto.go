package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"cinetrip-backend/internal/shared"
)

const (
	MaxContentLength = 2000
	MaxCommentLength = 500
	MaxImagesPerPost = 10
	FeedFollowing    = "following"
)

// CreatePostRequest - POST /posts
type CreatePostRequest struct {
	Content         string   `json:"content"`
	ImageURLs       []string `json:"imageUrls"`
	TMDBID          *int     `json:"tmdbId"`
	SceneLocationID *int64   `json:"sceneLocationId"`
}

func (r *CreatePostRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
	for i, u := range r.ImageURLs {
		r.ImageURLs[i] = strings.TrimSpace(u)
	}
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.RuneLength(1, MaxContentLength)),
		validation.Field(&r.ImageURLs,
			validation.Required,
			validation.Length(1, MaxImagesPerPost),
			validation.Each(validation.Required, is.URL),
		),
		validation.Field(&r.TMDBID, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.SceneLocationID, validation.NilOrNotEmpty, validation.Min(int64(1))),
	)
}

// CreateCommentRequest - POST /posts/:id/comments
type CreateCommentRequest struct {
	Content string `json:"content"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.RuneLength(1, MaxCommentLength)),
	)
}

// ListPostsQuery - GET /posts
type ListPostsQuery struct {
	shared.Pagination
	Feed string `form:"feed"`
}

func (q ListPostsQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Feed, validation.In("", FeedFollowing)),
	)
}

// GalleryQuery - GET /gallery
type GalleryQuery struct {
	shared.Pagination
	TMDBID          *int   `form:"tmdbId"`
	SceneLocationID *int64 `form:"sceneLocationId"`
}

func (q GalleryQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.TMDBID, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&q.SceneLocationID, validation.NilOrNotEmpty, validation.Min(int64(1))),
	)
}
