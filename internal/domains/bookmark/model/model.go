package model

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Bookmark is a saved movie, joined with its title for listing.
type Bookmark struct {
	UserID     uuid.UUID `json:"-"`
	TMDBID     int       `json:"tmdbId"`
	Title      string    `json:"title"`
	PosterPath *string   `json:"posterPath,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateBookmarkRequest - POST /bookmarks
type CreateBookmarkRequest struct {
	TMDBID     int     `json:"tmdbId"`
	Title      string  `json:"title"`
	PosterPath *string `json:"posterPath"`
}

func (r CreateBookmarkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TMDBID, validation.Required, validation.Min(1)),
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&r.PosterPath, validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
	)
}

type StatusResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

// Error codes
const (
	ErrCodeInvalidRequest = "BMK001"
)

var ErrInvalidBookmark = errors.New("invalid bookmark")

type BookmarkError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookmarkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BookmarkError) Unwrap() error {
	return e.Err
}

func NewInvalidRequestError(err error) *BookmarkError {
	return &BookmarkError{Code: ErrCodeInvalidRequest, Message: "Invalid bookmark request", Err: err}
}
