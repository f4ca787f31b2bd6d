package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodePostNotFound     = "PST001"
	ErrCodeForbidden        = "PST002"
	ErrCodeInvalidRequest   = "PST003"
	ErrCodeCommentNotFound  = "PST004"
	ErrCodeUnknownReference = "PST005"
	ErrCodeLoginRequired    = "PST006"
)

// Sentinel errors
var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotAuthor        = errors.New("only the author can do this")
	ErrUnknownReference = errors.New("movie or scene location does not exist")
	ErrLoginRequired    = errors.New("sign in required")
)

type PostError struct {
	Code    string
	Message string
	Err     error
}

func (e *PostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PostError) Unwrap() error {
	return e.Err
}

func NewPostNotFoundError() *PostError {
	return &PostError{Code: ErrCodePostNotFound, Message: "Post not found", Err: ErrPostNotFound}
}

func NewCommentNotFoundError() *PostError {
	return &PostError{Code: ErrCodeCommentNotFound, Message: "Comment not found", Err: ErrCommentNotFound}
}

func NewForbiddenError() *PostError {
	return &PostError{Code: ErrCodeForbidden, Message: "Only the author can delete this", Err: ErrNotAuthor}
}

// NewInvalidRequestError keeps the ozzo validation.Errors in Err for field details.
func NewInvalidRequestError(err error) *PostError {
	return &PostError{Code: ErrCodeInvalidRequest, Message: "Invalid request", Err: err}
}

func NewUnknownReferenceError() *PostError {
	return &PostError{Code: ErrCodeUnknownReference, Message: "Unknown tmdbId or sceneLocationId", Err: ErrUnknownReference}
}

func NewLoginRequiredError() *PostError {
	return &PostError{Code: ErrCodeLoginRequired, Message: "Sign in to see the following feed", Err: ErrLoginRequired}
}
