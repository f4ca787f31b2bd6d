package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/domains/post/model"
	"cinetrip-backend/internal/domains/post/service"
	"cinetrip-backend/internal/shared"
	"cinetrip-backend/internal/shared/middleware"
	"cinetrip-backend/internal/shared/response"
)

// PostHandler serves posts, likes, comments and the gallery.
type PostHandler struct {
	service service.Service
}

func NewPostHandler(service service.Service) *PostHandler {
	return &PostHandler{service: service}
}

// ========================================
// POSTS
// ========================================

// List GET /posts?page&limit&feed=following
func (h *PostHandler) List(c *gin.Context) {
	var q model.ListPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	posts, total, err := h.service.List(c.Request.Context(), middleware.OptionalUserID(c), q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	page := q.Pagination.Normalize()
	response.SuccessWithMeta(c, http.StatusOK, posts, response.NewMeta(page.Page, page.Limit, total))
}

// Gallery GET /gallery?tmdbId&sceneLocationId&page&limit
func (h *PostHandler) Gallery(c *gin.Context) {
	var q model.GalleryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	posts, total, err := h.service.Gallery(c.Request.Context(), middleware.OptionalUserID(c), q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	page := q.Pagination.Normalize()
	response.SuccessWithMeta(c, http.StatusOK, posts, response.NewMeta(page.Page, page.Limit, total))
}

// Get GET /posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}

	post, err := h.service.Get(c.Request.Context(), postID, middleware.OptionalUserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// Create POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	// Step 1: auth
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	// Step 2: body
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 3: service
	post, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, post, "Post created")
}

// Delete DELETE /posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	postID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, postID); err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "Post deleted")
}

// ToggleLike POST /posts/:id/like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	postID, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.service.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// ========================================
// COMMENTS
// ========================================

// ListComments GET /posts/:id/comments
func (h *PostHandler) ListComments(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}

	var page shared.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "Invalid pagination")
		return
	}
	page = page.Normalize()

	comments, total, err := h.service.ListComments(c.Request.Context(), postID, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, comments, response.NewMeta(page.Page, page.Limit, total))
}

// AddComment POST /posts/:id/comments
func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	postID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), userID, postID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, comment, "Comment added")
}

// DeleteComment DELETE /comments/:id
func (h *PostHandler) DeleteComment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	commentID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "Comment deleted")
}

// ========================================
// HELPERS
// ========================================

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// handleError maps PostError codes to HTTP status codes
func (h *PostHandler) handleError(c *gin.Context, err error) {
	var pErr *model.PostError
	if !errors.As(err, &pErr) {
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("[POST] request failed")
		response.InternalServerError(c, "Internal server error")
		return
	}

	switch pErr.Code {
	case model.ErrCodeInvalidRequest:
		var verrs validation.Errors
		if errors.As(pErr.Err, &verrs) {
			response.ValidationError(c, verrs)
			return
		}
		response.ErrorResponse(c, http.StatusBadRequest, pErr.Code, pErr.Message)
	case model.ErrCodeUnknownReference:
		response.ErrorResponse(c, http.StatusBadRequest, pErr.Code, pErr.Message)
	case model.ErrCodeLoginRequired:
		response.ErrorResponse(c, http.StatusUnauthorized, pErr.Code, pErr.Message)
	case model.ErrCodeForbidden:
		response.ErrorResponse(c, http.StatusForbidden, pErr.Code, pErr.Message)
	case model.ErrCodePostNotFound, model.ErrCodeCommentNotFound:
		response.ErrorResponse(c, http.StatusNotFound, pErr.Code, pErr.Message)
	default:
		response.InternalServerError(c, "Internal server error")
	}
}
