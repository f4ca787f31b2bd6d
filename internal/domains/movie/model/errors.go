package model

import (
	"errors"
	"fmt"
)

const (
	ErrCodeMovieNotFound  = "MOV001"
	ErrCodeInvalidMovieID = "MOV002"
)

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrInvalidMovieID = errors.New("invalid movie id")
)

type MovieError struct {
	Code    string
	Message string
	Err     error
}

func (e *MovieError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *MovieError) Unwrap() error {
	return e.Err
}

func NewMovieNotFoundError() *MovieError {
	return &MovieError{
		Code:    ErrCodeMovieNotFound,
		Message: "Movie not found",
		Err:     ErrMovieNotFound,
	}
}

func NewInvalidMovieIDError(raw string) *MovieError {
	return &MovieError{
		Code:    ErrCodeInvalidMovieID,
		Message: fmt.Sprintf("Invalid movie id %q", raw),
		Err:     ErrInvalidMovieID,
	}
}
