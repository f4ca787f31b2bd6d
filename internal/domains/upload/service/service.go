package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/domains/upload/model"
)

const (
	defaultPresignExpiry = 15 * time.Minute
	defaultMaxUploadMB   = 10
)

// Presigner signs direct uploads. Satisfied by *storage.MinIOStorage.
type Presigner interface {
	PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error)
	PublicURL(key string) string
}

type Service interface {
	Presign(ctx context.Context, userID uuid.UUID, req model.PresignRequest) (*model.PresignResponse, error)
}

type uploadService struct {
	presigner Presigner
	expiry    time.Duration
	maxBytes  int64
	timeNow   func() time.Time
	newID     func() uuid.UUID
}

func NewService(presigner Presigner, expiry time.Duration, maxUploadMB int) Service {
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}
	if maxUploadMB <= 0 {
		maxUploadMB = defaultMaxUploadMB
	}
	return &uploadService{
		presigner: presigner,
		expiry:    expiry,
		maxBytes:  int64(maxUploadMB) << 20,
		timeNow:   time.Now,
		newID:     uuid.New,
	}
}

// Presign returns a PUT URL for posts/<userId>/<uuid><ext>.
func (s *uploadService) Presign(ctx context.Context, userID uuid.UUID, req model.PresignRequest) (*model.PresignResponse, error) {
	req.ContentType = strings.ToLower(strings.TrimSpace(req.ContentType))
	if err := req.Validate(s.maxBytes); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("posts/%s/%s%s", userID, s.newID(), model.AllowedContentTypes[req.ContentType])
	issued := s.timeNow()

	url, err := s.presigner.PresignPut(ctx, key, s.expiry)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("[UPLOAD] presign failed")
		return nil, fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}

	return &model.PresignResponse{
		URL:       url,
		Key:       key,
		PublicURL: s.presigner.PublicURL(key),
		ExpiresAt: issued.Add(s.expiry).UTC(),
	}, nil
}
