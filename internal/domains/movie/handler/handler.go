package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cinetrip-backend/internal/domains/movie/model"
	"cinetrip-backend/internal/domains/movie/provider"
	"cinetrip-backend/internal/shared/response"
)

type MovieHandler struct {
	provider provider.Provider
}

func NewMovieHandler(p provider.Provider) *MovieHandler {
	return &MovieHandler{provider: p}
}

// GetMovie returns metadata tagged with its source. Unknown ids get a placeholder, never 404.
// GET /movies/:tmdbId
func (h *MovieHandler) GetMovie(c *gin.Context) {
	tmdbID, err := model.ParseTMDBID(c.Param("tmdbId"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidMovieID, err.Error())
		return
	}

	response.Success(c, http.StatusOK, h.provider.Get(c.Request.Context(), tmdbID))
}
