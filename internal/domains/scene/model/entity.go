package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MaxLocationsPerMovie caps both the generated candidates and the rows kept per movie.
	MaxLocationsPerMovie = 5

	MaxNameLength      = 255
	MaxCountryLength   = 100
	MaxCityLength      = 100
	MaxTimestampLength = 64

	// CoordinateScale matches NUMERIC(11,8).
	CoordinateScale = 8

	PlaceholderScene = "Scene description unavailable"
	UnknownValue     = "Unknown"
)

// Fallback coordinate used for candidates without a usable position (Seoul City Hall).
var (
	DefaultLatitude  = decimal.RequireFromString("37.5665")
	DefaultLongitude = decimal.RequireFromString("126.978")
)

// SceneLocation is a row of scene_locations.
// (TMDBID, Name, Lat, Lng) is unique.
type SceneLocation struct {
	ID        int64
	TMDBID    int
	Name      string
	Scene     string
	Timestamp *string
	Address   string
	Country   string
	City      string
	Lat       decimal.Decimal
	Lng       decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SameKey reports whether both rows share the de-duplication key.
func (s *SceneLocation) SameKey(o *SceneLocation) bool {
	return s.TMDBID == o.TMDBID &&
		s.Name == o.Name &&
		s.Lat.Equal(o.Lat) &&
		s.Lng.Equal(o.Lng)
}

// RoundCoordinate brings a coordinate to the stored precision.
func RoundCoordinate(d decimal.Decimal) decimal.Decimal {
	return d.Round(CoordinateScale)
}
