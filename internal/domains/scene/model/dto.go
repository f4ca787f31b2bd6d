package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ResolveOptions controls a resolution cycle.
type ResolveOptions struct {
	ForceRegenerate   bool
	MovieInfoOverride *MovieInfoOverride
}

// MovieInfoOverride is caller supplied metadata. It is used instead of a lookup when Title is set.
type MovieInfoOverride struct {
	Title         string
	OriginalTitle string
	Country       string
	Language      string
}

// Usable reports whether the override can replace the metadata lookup.
func (o *MovieInfoOverride) Usable() bool {
	return o != nil && strings.TrimSpace(o.Title) != ""
}

// ResolveScenesRequest is the body of POST /llm/scenes.
type ResolveScenesRequest struct {
	TMDBID     int   `json:"tmdbId"`
	Regenerate *bool `json:"regenerate"`
}

func (r ResolveScenesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TMDBID, validation.Required, validation.Min(1)),
	)
}

// ScenesQuery is the query string of GET /llm/scenes/:tmdbId.
type ScenesQuery struct {
	Regen         bool   `form:"regen"`
	Title         string `form:"title"`
	OriginalTitle string `form:"originalTitle"`
	Country       string `form:"country"`
	Language      string `form:"language"`
}

// Override returns nil when no metadata field was supplied.
func (q ScenesQuery) Override() *MovieInfoOverride {
	o := &MovieInfoOverride{
		Title:         strings.TrimSpace(q.Title),
		OriginalTitle: strings.TrimSpace(q.OriginalTitle),
		Country:       strings.TrimSpace(q.Country),
		Language:      strings.TrimSpace(q.Language),
	}
	if o.Title == "" && o.OriginalTitle == "" && o.Country == "" && o.Language == "" {
		return nil
	}
	return o
}

// SceneLocationResponse is the wire form of a scene location. Coordinates are JSON numbers.
type SceneLocationResponse struct {
	ID        int64     `json:"id"`
	TMDBID    int       `json:"tmdbId"`
	Name      string    `json:"name"`
	Scene     string    `json:"scene"`
	Timestamp *string   `json:"timestamp,omitempty"`
	Address   string    `json:"address"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ScenesResponse struct {
	Items []SceneLocationResponse `json:"items"`
}

func (s *SceneLocation) ToResponse() SceneLocationResponse {
	return SceneLocationResponse{
		ID:        s.ID,
		TMDBID:    s.TMDBID,
		Name:      s.Name,
		Scene:     s.Scene,
		Timestamp: s.Timestamp,
		Address:   s.Address,
		Country:   s.Country,
		City:      s.City,
		Lat:       s.Lat.InexactFloat64(),
		Lng:       s.Lng.InexactFloat64(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// NewScenesResponse never returns more than MaxLocationsPerMovie items, and never a null array.
func NewScenesResponse(locations []*SceneLocation) ScenesResponse {
	if len(locations) > MaxLocationsPerMovie {
		locations = locations[:MaxLocationsPerMovie]
	}
	items := make([]SceneLocationResponse, 0, len(locations))
	for _, l := range locations {
		items = append(items, l.ToResponse())
	}
	return ScenesResponse{Items: items}
}
