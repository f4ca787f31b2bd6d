package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/domains/checklist/model"
	"cinetrip-backend/internal/domains/checklist/service"
	"cinetrip-backend/internal/shared/middleware"
	"cinetrip-backend/internal/shared/response"
)

type ChecklistHandler struct {
	service service.Service
}

func NewChecklistHandler(s service.Service) *ChecklistHandler {
	return &ChecklistHandler{service: s}
}

// Generate POST /checklist/generate
func (h *ChecklistHandler) Generate(c *gin.Context) {
	var req model.ChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	h.generate(c, req)
}

// GenerateFromQuery GET /checklist/generate?tmdbId=&startDate=&endDate=&destinations=a,b&movieTitle=
func (h *ChecklistHandler) GenerateFromQuery(c *gin.Context) {
	var query model.ChecklistQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	h.generate(c, query.ToRequest())
}

func (h *ChecklistHandler) generate(c *gin.Context, req model.ChecklistRequest) {
	// validated before any I/O
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	items, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.mapChecklistError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, items, "Checklist generated")
}

func (h *ChecklistHandler) mapChecklistError(c *gin.Context, err error) {
	var chkErr *model.ChecklistError
	if errors.As(err, &chkErr) {
		switch chkErr.Code {
		case model.ErrCodePreconditionFailed, model.ErrCodeGenerationFailed:
			response.ServiceUnavailable(c, chkErr.Code, chkErr.Message)
		case model.ErrCodeInvalidRequest:
			response.ValidationError(c, chkErr.Err)
		default:
			response.InternalServerError(c, "Internal server error")
		}
		return
	}

	log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("[CHECKLIST] request failed")
	response.InternalServerError(c, "Internal server error")
}
