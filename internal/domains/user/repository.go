package user

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repository.go -destination=../../mocks/user_repository.go -package=mocks -mock_names=Repository=MockUserRepository

// Repository is the data access contract of the user domain.
type Repository interface {
	// ========================================
	// ACCOUNTS
	// ========================================

	// UpsertByGoogleSub creates the account on first sign-in and refreshes the email afterwards.
	// Nickname and profile image of an existing account are kept.
	// Returns: ErrEmailAlreadyExists when the email belongs to another account
	UpsertByGoogleSub(ctx context.Context, u *User) (*User, error)

	// FindByID returns ErrUserNotFound for unknown ids
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// UpdateProfile sets the non-nil fields
	UpdateProfile(ctx context.Context, id uuid.UUID, nickname, profileImageURL *string) (*User, error)

	Stats(ctx context.Context, id uuid.UUID) (*Stats, error)

	// ========================================
	// FOLLOWS
	// ========================================

	// Follow is idempotent. Returns ErrUserNotFound when either user is missing.
	Follow(ctx context.Context, followerID, followingID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)

	// ListFollowers and ListFollowing return one page, newest first, plus the total count
	ListFollowers(ctx context.Context, id uuid.UUID, limit, offset int) ([]User, int, error)
	ListFollowing(ctx context.Context, id uuid.UUID, limit, offset int) ([]User, int, error)
}
