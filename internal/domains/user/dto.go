package user

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"cinetrip-backend/internal/shared"
)

// ========================================
// AUTH DTOs
// ========================================

// GoogleLoginRequest carries the ID token returned by Google Identity Services.
type GoogleLoginRequest struct {
	Credential string `json:"credential"`
}

func (r GoogleLoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Credential, validation.Required.Error("credential is required")),
	)
}

type LoginResult struct {
	User        UserDTO
	AccessToken string
	ExpiresAt   time.Time
}

// ========================================
// PROFILE DTOs
// ========================================

type UserDTO struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email,omitempty"`
	Nickname        string    `json:"nickname"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func ToDTO(u *User) UserDTO {
	return UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		Nickname:        u.Nickname,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
	}
}

// ProfileDTO is a public profile. Email is only filled for the owner.
type ProfileDTO struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email,omitempty"`
	Nickname        string    `json:"nickname"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	Stats
	IsFollowing bool `json:"isFollowing"`
	IsMe        bool `json:"isMe"`
}

// UpdateProfileRequest - PATCH /auth/me. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Nickname        *string `json:"nickname"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nickname,
			validation.NilOrNotEmpty.Error("nickname cannot be empty"),
			validation.By(func(v interface{}) error {
				p, _ := v.(*string)
				if p == nil {
					return nil
				}
				return validation.Validate(strings.TrimSpace(*p),
					validation.RuneLength(NicknameMinLength, NicknameMaxLength).
						Error("nickname must be 2-30 characters"))
			}),
		),
		validation.Field(&r.ProfileImageURL, validation.NilOrNotEmpty, is.URL),
	)
}

// FollowListResponse is a page of followers or followings.
type FollowListResponse struct {
	Users []UserDTO `json:"users"`
	Total int       `json:"total"`
	shared.Pagination
}
