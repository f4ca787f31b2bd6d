package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxItems        = 20
	DateLayout      = "2006-01-02"
	DefaultCategory = "general"
)

// Priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type TravelSchedule struct {
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Destinations []string `json:"destinations"`
}

func (s TravelSchedule) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.StartDate, validation.Required, validation.Date(DateLayout)),
		validation.Field(&s.EndDate, validation.Required, validation.Date(DateLayout), validation.By(s.notBeforeStart)),
		validation.Field(&s.Destinations, validation.Each(validation.Required, validation.RuneLength(1, 100))),
	)
}

func (s TravelSchedule) notBeforeStart(value interface{}) error {
	start, err1 := time.Parse(DateLayout, s.StartDate)
	end, err2 := time.Parse(DateLayout, s.EndDate)
	if err1 != nil || err2 != nil {
		return nil
	}
	if end.Before(start) {
		return errors.New("must not be before startDate")
	}
	return nil
}

// ChecklistRequest is the body of POST /checklist/generate.
type ChecklistRequest struct {
	TMDBID         int            `json:"tmdbId"`
	TravelSchedule TravelSchedule `json:"travelSchedule"`
	MovieTitle     string         `json:"movieTitle"`
}

func (r ChecklistRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TMDBID, validation.Required, validation.Min(1)),
		validation.Field(&r.TravelSchedule),
		validation.Field(&r.MovieTitle, validation.RuneLength(0, 255)),
	)
}

// ChecklistQuery is the query string variant, destinations comma separated.
type ChecklistQuery struct {
	TMDBID       int    `form:"tmdbId"`
	StartDate    string `form:"startDate"`
	EndDate      string `form:"endDate"`
	Destinations string `form:"destinations"`
	MovieTitle   string `form:"movieTitle"`
}

func (q ChecklistQuery) ToRequest() ChecklistRequest {
	var destinations []string
	for _, d := range strings.Split(q.Destinations, ",") {
		if d = strings.TrimSpace(d); d != "" {
			destinations = append(destinations, d)
		}
	}
	return ChecklistRequest{
		TMDBID: q.TMDBID,
		TravelSchedule: TravelSchedule{
			StartDate:    strings.TrimSpace(q.StartDate),
			EndDate:      strings.TrimSpace(q.EndDate),
			Destinations: destinations,
		},
		MovieTitle: strings.TrimSpace(q.MovieTitle),
	}
}

type ChecklistItem struct {
	ID          int     `json:"id"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    *string `json:"location,omitempty"`
	Priority    string  `json:"priority"`
	Checked     bool    `json:"checked"`
}
