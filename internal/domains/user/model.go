package user

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the users table. Accounts exist only through Google sign-in.
type User struct {
	ID              uuid.UUID `json:"id"`
	GoogleSub       string    `json:"-"`
	Email           string    `json:"email"`
	Nickname        string    `json:"nickname"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Stats are the counters shown on a profile page.
type Stats struct {
	Followers int `json:"followerCount"`
	Following int `json:"followingCount"`
	Posts     int `json:"postCount"`
}

const (
	NicknameMinLength = 2
	NicknameMaxLength = 30
)
