package user

import (
	"context"

	"github.com/google/uuid"

	"cinetrip-backend/internal/shared"
)

// Service is the business logic contract of the user domain.
type Service interface {
	// Authentication
	LoginWithGoogle(ctx context.Context, req GoogleLoginRequest) (*LoginResult, error)

	// Profiles
	GetMe(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	GetProfile(ctx context.Context, viewerID *uuid.UUID, userID uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)

	// Follows
	Follow(ctx context.Context, followerID, followingID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error
	ListFollowers(ctx context.Context, userID uuid.UUID, page shared.Pagination) (*FollowListResponse, error)
	ListFollowing(ctx context.Context, userID uuid.UUID, page shared.Pagination) (*FollowListResponse, error)
}
