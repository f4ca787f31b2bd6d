package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeGenerationFailed = "SCN002"
	ErrCodeInvalidRequest   = "SCN003"
)

var (
	ErrSceneLocationNotFound = errors.New("scene location not found")
	ErrGenerationFailed      = errors.New("scene location generation failed")
	ErrInvalidMovieID        = errors.New("movie id must be a positive integer")
)

// SceneError custom error type
type SceneError struct {
	Code    string
	Message string
	Err     error
}

func (e *SceneError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SceneError) Unwrap() error {
	return e.Err
}

// Error constructors

// NewGenerationFailedError hides the cause from the client but keeps it for logs and errors.Is.
func NewGenerationFailedError(cause error) *SceneError {
	return &SceneError{
		Code:    ErrCodeGenerationFailed,
		Message: "Scene location service is unavailable, please try again",
		Err:     errors.Join(ErrGenerationFailed, cause),
	}
}

func NewInvalidRequestError(err error) *SceneError {
	return &SceneError{
		Code:    ErrCodeInvalidRequest,
		Message: "Invalid scene location request",
		Err:     err,
	}
}

// IsGenerationFailed reports whether err is (or wraps) a generation failure.
func IsGenerationFailed(err error) bool {
	return errors.Is(err, ErrGenerationFailed)
}
