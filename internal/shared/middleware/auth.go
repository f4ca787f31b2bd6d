package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/shared/response"
	"cinetrip-backend/pkg/jwt"
)

const (
	ctxUserID    = "userID"
	ctxUserEmail = "userEmail"
)

// AuthMiddleware rejects requests without a valid access token.
// Token được đọc từ auth cookie trước, sau đó từ "Authorization: Bearer"
func AuthMiddleware(manager *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		if !authenticate(c, manager, token) {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuthMiddleware set user nếu có token hợp lệ, không bao giờ reject request
func OptionalAuthMiddleware(manager *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c, cookieName); token != "" {
			authenticate(c, manager, token)
		}
		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func authenticate(c *gin.Context, manager *jwt.Manager, token string) bool {
	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		log.Debug().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("token rejected")
		return false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return false
	}

	c.Set(ctxUserID, userID)
	c.Set(ctxUserEmail, claims.Email)
	return true
}

// GetUserID returns the authenticated user, ok=false for anonymous requests.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// OptionalUserID is GetUserID returning a pointer, nil for anonymous requests.
func OptionalUserID(c *gin.Context) *uuid.UUID {
	id, ok := GetUserID(c)
	if !ok {
		return nil
	}
	return &id
}
