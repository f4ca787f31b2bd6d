package model

import (
	"strconv"
	"strings"
	"time"
)

// Source tells where a MovieMetadata came from.
type Source string

const (
	SourceFound       Source = "found"       // external movie database
	SourceFallback    Source = "fallback"    // static fallback table
	SourceSynthesized Source = "synthesized" // placeholder built from the id
	SourceOverride    Source = "override"    // supplied by the caller
)

// Authoritative reports whether the metadata may overwrite a stored movie row.
func (s Source) Authoritative() bool {
	return s == SourceFound || s == SourceFallback
}

const UnknownValue = "Unknown"

// MovieMetadata is the descriptive data used to build generation prompts.
// Title is never empty once returned by the provider.
type MovieMetadata struct {
	TMDBID        int    `json:"tmdbId"`
	Title         string `json:"title"`
	OriginalTitle string `json:"originalTitle"`
	Overview      string `json:"overview"`
	ReleaseDate   string `json:"releaseDate"` // YYYY-MM-DD, may be empty
	Country       string `json:"country"`
	Language      string `json:"language"`
	PosterPath    string `json:"posterPath,omitempty"`
	Source        Source `json:"source"`
}

// Movie is a row of the movies table, the parent of scene locations and bookmarks.
type Movie struct {
	TMDBID        int       `json:"tmdbId"`
	Title         string    `json:"title"`
	OriginalTitle *string   `json:"originalTitle,omitempty"`
	PosterPath    *string   `json:"posterPath,omitempty"`
	ReleaseDate   *string   `json:"releaseDate,omitempty"`
	Country       *string   `json:"country,omitempty"`
	Language      *string   `json:"language,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MovieFromMetadata keeps only the persisted columns. Placeholder values are stored as NULL.
func MovieFromMetadata(m MovieMetadata) *Movie {
	return &Movie{
		TMDBID:        m.TMDBID,
		Title:         m.Title,
		OriginalTitle: optional(m.OriginalTitle),
		PosterPath:    optional(m.PosterPath),
		ReleaseDate:   optional(m.ReleaseDate),
		Country:       optional(m.Country),
		Language:      optional(m.Language),
	}
}

func optional(s string) *string {
	if s == "" || s == UnknownValue {
		return nil
	}
	return &s
}

// ParseTMDBID accepts positive decimal ids only.
func ParseTMDBID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, NewInvalidMovieIDError(raw)
	}
	return id, nil
}
