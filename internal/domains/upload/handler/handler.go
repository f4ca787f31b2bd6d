package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/domains/upload/model"
	"cinetrip-backend/internal/domains/upload/service"
	"cinetrip-backend/internal/shared/middleware"
	"cinetrip-backend/internal/shared/response"
)

type UploadHandler struct {
	service service.Service
}

func NewUploadHandler(service service.Service) *UploadHandler {
	return &UploadHandler{service: service}
}

// Presign POST /uploads/presign
func (h *UploadHandler) Presign(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Presign(c.Request.Context(), userID, req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			response.ValidationError(c, err)
		case errors.Is(err, model.ErrStorageUnavailable):
			response.ServiceUnavailable(c, model.ErrCodeUnavailable, model.ErrStorageUnavailable.Error())
		default:
			log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("[UPLOAD] request failed")
			response.InternalServerError(c, "Internal server error")
		}
		return
	}
	response.Success(c, http.StatusOK, result)
}
