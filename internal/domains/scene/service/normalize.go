package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"cinetrip-backend/internal/domains/scene/model"
)

// candidate is one generated item after type coercion, before defaults.
type candidate struct {
	Name      string           `json:"name"`
	Scene     string           `json:"scene"`
	Timestamp string           `json:"timestamp"`
	Address   string           `json:"address"`
	Country   string           `json:"country"`
	City      string           `json:"city"`
	Lat       *decimal.Decimal `json:"lat"`
	Lng       *decimal.Decimal `json:"lng"`
}

var (
	latRange = decimalRange(decimal.NewFromInt(-90), decimal.NewFromInt(90))
	lngRange = decimalRange(decimal.NewFromInt(-180), decimal.NewFromInt(180))
)

func decimalRange(lo, hi decimal.Decimal) validation.Rule {
	return validation.By(func(value interface{}) error {
		d, ok := value.(*decimal.Decimal)
		if !ok || d == nil {
			return nil
		}
		if d.LessThan(lo) || d.GreaterThan(hi) {
			return fmt.Errorf("must be between %s and %s", lo, hi)
		}
		return nil
	})
}

func (c *candidate) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.RuneLength(1, model.MaxNameLength)),
		validation.Field(&c.Scene, validation.Required),
		validation.Field(&c.Timestamp, validation.RuneLength(0, model.MaxTimestampLength)),
		validation.Field(&c.Address, validation.Required),
		validation.Field(&c.Country, validation.Required, validation.RuneLength(1, model.MaxCountryLength)),
		validation.Field(&c.City, validation.Required, validation.RuneLength(1, model.MaxCityLength)),
		validation.Field(&c.Lat, validation.Required, latRange),
		validation.Field(&c.Lng, validation.Required, lngRange),
	)
}

// normalizeCandidate turns an untrusted generated item into a storable row. It never fails:
// every missing or invalid field gets a default. position is 1-based.
func normalizeCandidate(tmdbID int, position int, raw json.RawMessage) *model.SceneLocation {
	c := decodeCandidate(raw)

	var fieldErrs validation.Errors
	if err := c.Validate(); err != nil {
		if !errors.As(err, &fieldErrs) {
			fieldErrs = validation.Errors{}
		}
	}
	invalid := func(field string) bool {
		_, ok := fieldErrs[field]
		return ok
	}

	loc := &model.SceneLocation{
		TMDBID:  tmdbID,
		Name:    c.Name,
		Scene:   c.Scene,
		Address: c.Address,
		Country: c.Country,
		City:    c.City,
	}

	if invalid("name") {
		loc.Name = repair(c.Name, model.MaxNameLength, fmt.Sprintf("Filming location %d", position))
	}
	if invalid("scene") {
		loc.Scene = model.PlaceholderScene
	}
	if invalid("address") {
		loc.Address = model.UnknownValue
	}
	if invalid("country") {
		loc.Country = repair(c.Country, model.MaxCountryLength, model.UnknownValue)
	}
	if invalid("city") {
		loc.City = repair(c.City, model.MaxCityLength, model.UnknownValue)
	}

	if ts := truncateRunes(c.Timestamp, model.MaxTimestampLength); ts != "" {
		loc.Timestamp = &ts
	}

	if invalid("lat") || invalid("lng") {
		loc.Lat, loc.Lng = model.DefaultLatitude, model.DefaultLongitude
	} else {
		loc.Lat, loc.Lng = *c.Lat, *c.Lng
	}
	loc.Lat = model.RoundCoordinate(loc.Lat)
	loc.Lng = model.RoundCoordinate(loc.Lng)

	return loc
}

// repair keeps a too long value (truncated) and replaces an empty one.
func repair(value string, limit int, def string) string {
	if value == "" {
		return def
	}
	return truncateRunes(value, limit)
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// decodeCandidate reads a free-form object. Anything that is not an object yields an empty candidate.
func decodeCandidate(raw json.RawMessage) *candidate {
	fields := map[string]interface{}{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		fields = map[string]interface{}{}
	}

	return &candidate{
		Name:      coerceString(fields["name"]),
		Scene:     coerceString(fields["scene"]),
		Timestamp: coerceString(fields["timestamp"]),
		Address:   coerceString(fields["address"]),
		Country:   coerceString(fields["country"]),
		City:      coerceString(fields["city"]),
		Lat:       coerceDecimal(fields["lat"]),
		Lng:       coerceDecimal(fields["lng"]),
	}
}

func coerceString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func coerceDecimal(v interface{}) *decimal.Decimal {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
