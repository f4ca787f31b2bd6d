package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/domains/bookmark/model"
	"cinetrip-backend/internal/domains/bookmark/service"
	moviemodel "cinetrip-backend/internal/domains/movie/model"
	"cinetrip-backend/internal/shared"
	"cinetrip-backend/internal/shared/middleware"
	"cinetrip-backend/internal/shared/response"
)

type BookmarkHandler struct {
	service service.Service
}

func NewBookmarkHandler(service service.Service) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

// List GET /bookmarks
func (h *BookmarkHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var page shared.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "Invalid pagination")
		return
	}
	page = page.Normalize()

	items, total, err := h.service.List(c.Request.Context(), userID, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, items, response.NewMeta(page.Page, page.Limit, total))
}

// Add POST /bookmarks
func (h *BookmarkHandler) Add(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CreateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.Add(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, b, "Bookmarked")
}

// Remove DELETE /bookmarks/:tmdbId
func (h *BookmarkHandler) Remove(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	tmdbID, err := moviemodel.ParseTMDBID(c.Param("tmdbId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, tmdbID); err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, model.StatusResponse{Bookmarked: false}, "Bookmark removed")
}

// Status GET /bookmarks/:tmdbId
func (h *BookmarkHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	tmdbID, err := moviemodel.ParseTMDBID(c.Param("tmdbId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	bookmarked, err := h.service.IsBookmarked(c.Request.Context(), userID, tmdbID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.StatusResponse{Bookmarked: bookmarked})
}

func (h *BookmarkHandler) handleError(c *gin.Context, err error) {
	var bErr *model.BookmarkError
	var movieErr *moviemodel.MovieError

	switch {
	case errors.As(err, &bErr):
		response.ValidationError(c, bErr.Err)
	case errors.As(err, &movieErr) && movieErr.Code == moviemodel.ErrCodeInvalidMovieID:
		response.ErrorResponse(c, http.StatusBadRequest, movieErr.Code, movieErr.Message)
	default:
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("[BOOKMARK] request failed")
		response.InternalServerError(c, "Internal server error")
	}
}
