package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AllowedContentTypes maps accepted image MIME types to object key extensions.
var AllowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// PresignRequest - POST /uploads/presign
type PresignRequest struct {
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// Validate checks the request against the configured size limit.
func (r PresignRequest) Validate(maxBytes int64) error {
	types := make([]interface{}, 0, len(AllowedContentTypes))
	for ct := range AllowedContentTypes {
		types = append(types, ct)
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.ContentType,
			validation.Required,
			validation.In(types...).Error("must be one of image/jpeg, image/png, image/webp, image/heic"),
		),
		validation.Field(&r.SizeBytes, validation.Required, validation.Min(int64(1)), validation.Max(maxBytes)),
	)
}

type PresignResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Error codes
const (
	ErrCodeInvalidRequest = "UPL001"
	ErrCodeUnavailable    = "UPL002"
)

var ErrStorageUnavailable = errors.New("upload storage is unavailable")
