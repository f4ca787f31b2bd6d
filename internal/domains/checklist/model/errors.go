package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodePreconditionFailed = "CHK001"
	ErrCodeGenerationFailed   = "CHK002"
	ErrCodeInvalidRequest     = "CHK003"
)

var (
	ErrNoSceneLocations = errors.New("no cached scene locations for movie")
	ErrGenerationFailed = errors.New("checklist generation failed")
)

type ChecklistError struct {
	Code    string
	Message string
	Err     error
}

func (e *ChecklistError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ChecklistError) Unwrap() error {
	return e.Err
}

func NewPreconditionFailedError(tmdbID int) *ChecklistError {
	return &ChecklistError{
		Code:    ErrCodePreconditionFailed,
		Message: "No scene locations for this movie, generate scene locations first",
		Err:     fmt.Errorf("movie %d: %w", tmdbID, ErrNoSceneLocations),
	}
}

func NewGenerationFailedError(cause error) *ChecklistError {
	return &ChecklistError{
		Code:    ErrCodeGenerationFailed,
		Message: "Checklist service is unavailable, please try again",
		Err:     errors.Join(ErrGenerationFailed, cause),
	}
}

func NewInvalidRequestError(err error) *ChecklistError {
	return &ChecklistError{
		Code:    ErrCodeInvalidRequest,
		Message: "Invalid checklist request",
		Err:     err,
	}
}
