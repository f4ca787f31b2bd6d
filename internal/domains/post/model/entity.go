package model

import (
	"time"

	"github.com/google/uuid"
)

// Post is a row of the posts table.
type Post struct {
	ID              uuid.UUID `json:"id"`
	AuthorID        uuid.UUID `json:"authorId"`
	Content         string    `json:"content"`
	ImageURLs       []string  `json:"imageUrls"`
	TMDBID          *int      `json:"tmdbId,omitempty"`
	SceneLocationID *int64    `json:"sceneLocationId,omitempty"`
	LikeCount       int       `json:"likeCount"`
	CommentCount    int       `json:"commentCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Author is the public part of a user shown next to posts and comments.
type Author struct {
	ID              uuid.UUID `json:"id"`
	Nickname        string    `json:"nickname"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
}

// PostView is a post as returned to clients.
// LikedByMe is always false for anonymous viewers.
type PostView struct {
	Post
	Author    Author `json:"author"`
	LikedByMe bool   `json:"likedByMe"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"postId"`
	AuthorID  uuid.UUID `json:"-"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LikeResult is the state after a like toggle.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

// ListFilter selects posts for feeds and the gallery. Nil fields do not filter.
type ListFilter struct {
	Viewer          *uuid.UUID
	FollowedBy      *uuid.UUID
	AuthorID        *uuid.UUID
	TMDBID          *int
	SceneLocationID *int64
	WithImages      bool
	Limit           int
	Offset          int
}
