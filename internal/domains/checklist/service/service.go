package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/domains/checklist/model"
	scenemodel "cinetrip-backend/internal/domains/scene/model"
	scenerepo "cinetrip-backend/internal/domains/scene/repository"
	"cinetrip-backend/internal/infrastructure/llm"
	"cinetrip-backend/pkg/metrics"
)

// Service builds a travel checklist around the stored scene locations of a movie.
type Service interface {
	// Generate never generates scene locations itself. With none stored it fails with CHK001
	// before calling the generator.
	Generate(ctx context.Context, req model.ChecklistRequest) ([]model.ChecklistItem, error)
}

type checklistService struct {
	scenes    scenerepo.Repository
	generator llm.Generator
	metrics   *metrics.Metrics
}

func NewService(scenes scenerepo.Repository, generator llm.Generator, m *metrics.Metrics) Service {
	return &checklistService{scenes: scenes, generator: generator, metrics: m}
}

func (s *checklistService) Generate(ctx context.Context, req model.ChecklistRequest) ([]model.ChecklistItem, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err)
	}

	// Step 1: stored scene locations only
	locations, err := s.scenes.FindByMovieOrdered(ctx, req.TMDBID, scenemodel.MaxLocationsPerMovie)
	if err != nil {
		return nil, fmt.Errorf("read scene locations: %w", err)
	}

	// Step 2: precondition
	if len(locations) == 0 {
		return nil, model.NewPreconditionFailedError(req.TMDBID)
	}

	// Step 3: generate
	started := time.Now()
	items, err := s.generator.GenerateItems(ctx, buildPrompt(req, locations))
	s.metrics.ObserveGeneration("checklist", time.Since(started).Seconds(), err)
	if err != nil {
		log.Error().Err(err).Int("tmdb_id", req.TMDBID).Msg("[CHECKLIST] generation failed")
		return nil, model.NewGenerationFailedError(err)
	}

	// Step 4: normalize
	return normalizeItems(items), nil
}

func buildPrompt(req model.ChecklistRequest, locations []*scenemodel.SceneLocation) string {
	title := strings.TrimSpace(req.MovieTitle)
	if title == "" {
		title = "this movie"
	}
	destinations := "not decided"
	if len(req.TravelSchedule.Destinations) > 0 {
		destinations = strings.Join(req.TravelSchedule.Destinations, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a practical travel checklist for a trip to the filming locations of %s.\n\n", title)
	fmt.Fprintf(&b, "Travel dates: %s to %s\n", req.TravelSchedule.StartDate, req.TravelSchedule.EndDate)
	fmt.Fprintf(&b, "Destinations: %s\n\n", destinations)
	b.WriteString("Filming locations to visit:\n")
	for i, l := range locations {
		fmt.Fprintf(&b, "%d. %s (%s, %s, %s)\n", i+1, l.Name, l.Address, l.City, l.Country)
	}
	fmt.Fprintf(&b, "\nReturn at most %d items covering preparation, transport, tickets and on-site tips.\n", model.MaxItems)
	b.WriteString("Answer with a single JSON object exactly in this shape:\n")
	b.WriteString(`{"items":[{"id":1,"category":"transport","title":"Book KTX tickets","description":"...","location":"Seoul Station","priority":"high"}]}`)
	b.WriteString("\n")
	return b.String()
}

// normalizeItems drops items without a title and renumbers the rest from 1.
func normalizeItems(raw []json.RawMessage) []model.ChecklistItem {
	out := make([]model.ChecklistItem, 0, len(raw))
	for _, r := range raw {
		if len(out) == model.MaxItems {
			break
		}

		fields := map[string]interface{}{}
		dec := json.NewDecoder(bytes.NewReader(r))
		dec.UseNumber()
		if err := dec.Decode(&fields); err != nil {
			continue
		}

		title := stringField(fields, "title")
		if title == "" {
			continue
		}

		item := model.ChecklistItem{
			ID:          len(out) + 1,
			Category:    stringField(fields, "category"),
			Title:       title,
			Description: stringField(fields, "description"),
			Priority:    priority(stringField(fields, "priority")),
		}
		if item.Category == "" {
			item.Category = model.DefaultCategory
		}
		if loc := stringField(fields, "location"); loc != "" {
			item.Location = &loc
		}
		out = append(out, item)
	}
	return out
}

func stringField(fields map[string]interface{}, key string) string {
	switch v := fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func priority(p string) string {
	switch strings.ToLower(p) {
	case model.PriorityHigh:
		return model.PriorityHigh
	case model.PriorityLow:
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}
