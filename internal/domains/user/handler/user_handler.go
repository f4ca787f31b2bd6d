package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/domains/user"
	"cinetrip-backend/internal/shared"
	"cinetrip-backend/internal/shared/middleware"
	"cinetrip-backend/internal/shared/response"
)

// CookieConfig describes the access token cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// UserHandler serves authentication, profile and follow endpoints.
type UserHandler struct {
	service user.Service
	cookie  CookieConfig
}

func NewUserHandler(service user.Service, cookie CookieConfig) *UserHandler {
	return &UserHandler{service: service, cookie: cookie}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// GoogleLogin POST /auth/google
func (h *UserHandler) GoogleLogin(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	var req user.GoogleLoginRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return
	}

	// STEP 2: CALL SERVICE LAYER
	result, err := h.service.LoginWithGoogle(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// STEP 3: SET COOKIE, the token never goes into the body
	h.setTokenCookie(c, result.AccessToken, time.Until(result.ExpiresAt))

	response.SuccessWithMessage(c, http.StatusOK, result.User, "Signed in")
}

// Logout POST /auth/logout
func (h *UserHandler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -time.Second)
	response.SuccessWithMessage(c, http.StatusOK, nil, "Signed out")
}

func (h *UserHandler) setTokenCookie(c *gin.Context, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// GetMe GET /auth/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	profile, err := h.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// UpdateMe PATCH /auth/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req user.UpdateProfileRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// GetProfile GET /users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.pathUserID(c)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), middleware.OptionalUserID(c), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// ========================================
// FOLLOW ENDPOINTS
// ========================================

// Follow POST /users/:id/follow
func (h *UserHandler) Follow(c *gin.Context) {
	h.changeFollow(c, h.service.Follow, "Followed")
}

// Unfollow DELETE /users/:id/follow
func (h *UserHandler) Unfollow(c *gin.Context) {
	h.changeFollow(c, h.service.Unfollow, "Unfollowed")
}

func (h *UserHandler) changeFollow(c *gin.Context, op func(ctx context.Context, follower, following uuid.UUID) error, message string) {
	viewerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	targetID, ok := h.pathUserID(c)
	if !ok {
		return
	}

	if err := op(c.Request.Context(), viewerID, targetID); err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, gin.H{"following": message == "Followed"}, message)
}

// Followers GET /users/:id/followers
func (h *UserHandler) Followers(c *gin.Context) {
	h.listFollows(c, h.service.ListFollowers)
}

// Following GET /users/:id/following
func (h *UserHandler) Following(c *gin.Context) {
	h.listFollows(c, h.service.ListFollowing)
}

func (h *UserHandler) listFollows(c *gin.Context, list func(ctx context.Context, id uuid.UUID, page shared.Pagination) (*user.FollowListResponse, error)) {
	userID, ok := h.pathUserID(c)
	if !ok {
		return
	}

	var page shared.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "Invalid pagination")
		return
	}

	result, err := list(c.Request.Context(), userID, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Users, response.NewMeta(result.Page, result.Limit, result.Total))
}

// ========================================
// HELPERS
// ========================================

func (h *UserHandler) pathUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return uuid.Nil, false
	}
	return id, true
}

// handleError maps domain errors to HTTP status codes
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	// 400 Bad Request
	case errors.As(err, &verrs):
		response.ValidationError(c, err)
	case errors.Is(err, user.ErrCannotFollowSelf):
		response.BadRequest(c, err.Error())

	// 401 Unauthorized
	case errors.Is(err, user.ErrInvalidGoogleToken):
		response.Unauthorized(c, "Invalid Google credential")

	// 404 Not Found
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())

	// 409 Conflict
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())

	// 503 Service Unavailable
	case errors.Is(err, user.ErrSignInUnavailable):
		response.ServiceUnavailable(c, "AUTH_UNAVAILABLE", err.Error())

	// 500 Internal Server Error
	default:
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("[USER] request failed")
		response.InternalServerError(c, "Internal server error")
	}
}

// bindAndValidate binds JSON and runs the request's ozzo rules. It writes the response on failure.
func (h *UserHandler) bindAndValidate(c *gin.Context, req validation.Validatable) error {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return err
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return err
	}
	return nil
}
