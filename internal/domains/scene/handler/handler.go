package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	moviemodel "cinetrip-backend/internal/domains/movie/model"
	"cinetrip-backend/internal/domains/scene/model"
	"cinetrip-backend/internal/domains/scene/service"
	"cinetrip-backend/internal/shared/middleware"
	"cinetrip-backend/internal/shared/response"
)

type SceneHandler struct {
	resolver service.Resolver
}

func NewSceneHandler(resolver service.Resolver) *SceneHandler {
	return &SceneHandler{resolver: resolver}
}

// =====================================================
// SCENE LOCATIONS
// =====================================================

// ResolveScenes POST /llm/scenes
// Cache first, like the GET route. "regenerate": true forces a new set.
func (h *SceneHandler) ResolveScenes(c *gin.Context) {
	// Step 1: bind body
	var req model.ResolveScenesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 2: validate
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	// Step 3: resolve
	opts := model.ResolveOptions{ForceRegenerate: req.Regenerate != nil && *req.Regenerate}
	locations, err := h.resolver.Resolve(c.Request.Context(), req.TMDBID, opts)
	if err != nil {
		h.mapSceneError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewScenesResponse(locations))
}

// GetScenes GET /llm/scenes/:tmdbId?regen=&title=&originalTitle=&country=&language=
func (h *SceneHandler) GetScenes(c *gin.Context) {
	// Step 1: path param
	tmdbID, err := moviemodel.ParseTMDBID(c.Param("tmdbId"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, err.Error())
		return
	}

	// Step 2: query
	var query model.ScenesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	// Step 3: resolve
	locations, err := h.resolver.Resolve(c.Request.Context(), tmdbID, model.ResolveOptions{
		ForceRegenerate:   query.Regen,
		MovieInfoOverride: query.Override(),
	})
	if err != nil {
		h.mapSceneError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewScenesResponse(locations))
}

// =====================================================
// ERROR MAPPING
// =====================================================

func (h *SceneHandler) mapSceneError(c *gin.Context, err error) {
	var sceneErr *model.SceneError
	if errors.As(err, &sceneErr) {
		switch sceneErr.Code {
		case model.ErrCodeGenerationFailed:
			response.ServiceUnavailable(c, sceneErr.Code, sceneErr.Message)
		case model.ErrCodeInvalidRequest:
			response.ErrorResponse(c, http.StatusBadRequest, sceneErr.Code, sceneErr.Error())
		default:
			response.InternalServerError(c, "Internal server error")
		}
		return
	}

	log.Error().Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("path", c.FullPath()).
		Msg("[SCENE] request failed")
	response.InternalServerError(c, "Internal server error")
}
