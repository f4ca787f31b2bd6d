package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/domains/user"
	"cinetrip-backend/internal/infrastructure/oauth"
	"cinetrip-backend/internal/shared"
	"cinetrip-backend/pkg/jwt"
)

// TokenVerifier checks a Google ID token.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*oauth.GoogleIdentity, error)
}

// userService implements user.Service
type userService struct {
	repo       user.Repository
	verifier   TokenVerifier
	jwtManager *jwt.Manager
}

func NewUserService(repo user.Repository, verifier TokenVerifier, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo:       repo,
		verifier:   verifier,
		jwtManager: jwtManager,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) LoginWithGoogle(ctx context.Context, req user.GoogleLoginRequest) (*user.LoginResult, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. VERIFY CREDENTIAL
	identity, err := s.verifier.Verify(ctx, req.Credential)
	if err != nil {
		switch {
		case errors.Is(err, oauth.ErrNotConfigured):
			return nil, user.ErrSignInUnavailable
		case errors.Is(err, oauth.ErrTokenRejected):
			return nil, fmt.Errorf("%w: %v", user.ErrInvalidGoogleToken, err)
		default:
			return nil, fmt.Errorf("verify google credential: %w", err)
		}
	}

	// 3. UPSERT ACCOUNT
	candidate := &user.User{
		GoogleSub: identity.Subject,
		Email:     identity.Email,
		Nickname:  defaultNickname(identity),
	}
	if identity.Picture != "" {
		candidate.ProfileImageURL = &identity.Picture
	}
	u, err := s.repo.UpsertByGoogleSub(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	// 4. ISSUE ACCESS TOKEN
	token, expiresAt, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	log.Info().Str("user_id", u.ID.String()).Msg("[AUTH] google sign-in")

	return &user.LoginResult{
		User:        user.ToDTO(u),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// defaultNickname uses the Google display name, then the email local part.
func defaultNickname(id *oauth.GoogleIdentity) string {
	candidates := []string{id.Name}
	if local, _, ok := strings.Cut(id.Email, "@"); ok {
		candidates = append(candidates, local)
	}
	for _, c := range candidates {
		r := []rune(strings.TrimSpace(c))
		if len(r) > user.NicknameMaxLength {
			r = r[:user.NicknameMaxLength]
		}
		if len(r) >= user.NicknameMinLength {
			return string(r)
		}
	}

	suffix := id.Subject
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return "traveler" + suffix
}

// ========================================
// PROFILES
// ========================================

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*user.ProfileDTO, error) {
	return s.GetProfile(ctx, &userID, userID)
}

func (s *userService) GetProfile(ctx context.Context, viewerID *uuid.UUID, userID uuid.UUID) (*user.ProfileDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile stats: %w", err)
	}

	profile := &user.ProfileDTO{
		ID:              u.ID,
		Nickname:        u.Nickname,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
		Stats:           *stats,
	}

	if viewerID == nil {
		return profile, nil
	}
	if *viewerID == userID {
		profile.IsMe = true
		profile.Email = u.Email
		return profile, nil
	}

	following, err := s.repo.IsFollowing(ctx, *viewerID, userID)
	if err != nil {
		return nil, fmt.Errorf("check follow: %w", err)
	}
	profile.IsFollowing = following
	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req user.UpdateProfileRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var nickname *string
	if req.Nickname != nil {
		trimmed := strings.TrimSpace(*req.Nickname)
		nickname = &trimmed
	}

	u, err := s.repo.UpdateProfile(ctx, userID, nickname, req.ProfileImageURL)
	if err != nil {
		return nil, err
	}
	dto := user.ToDTO(u)
	return &dto, nil
}

// ========================================
// FOLLOWS
// ========================================

func (s *userService) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return user.ErrCannotFollowSelf
	}
	return s.repo.Follow(ctx, followerID, followingID)
}

func (s *userService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return user.ErrCannotFollowSelf
	}
	return s.repo.Unfollow(ctx, followerID, followingID)
}

func (s *userService) ListFollowers(ctx context.Context, userID uuid.UUID, page shared.Pagination) (*user.FollowListResponse, error) {
	return s.list(ctx, userID, page, s.repo.ListFollowers)
}

func (s *userService) ListFollowing(ctx context.Context, userID uuid.UUID, page shared.Pagination) (*user.FollowListResponse, error) {
	return s.list(ctx, userID, page, s.repo.ListFollowing)
}

type listFunc func(ctx context.Context, id uuid.UUID, limit, offset int) ([]user.User, int, error)

func (s *userService) list(ctx context.Context, userID uuid.UUID, page shared.Pagination, fetch listFunc) (*user.FollowListResponse, error) {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	page = page.Normalize()
	users, total, err := fetch(ctx, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}

	dtos := make([]user.UserDTO, 0, len(users))
	for i := range users {
		dto := user.ToDTO(&users[i])
		dto.Email = ""
		dtos = append(dtos, dto)
	}
	return &user.FollowListResponse{Users: dtos, Total: total, Pagination: page}, nil
}
