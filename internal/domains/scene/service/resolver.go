package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	moviemodel "cinetrip-backend/internal/domains/movie/model"
	"cinetrip-backend/internal/domains/movie/provider"
	movierepo "cinetrip-backend/internal/domains/movie/repository"
	"cinetrip-backend/internal/domains/scene/model"
	"cinetrip-backend/internal/domains/scene/repository"
	"cinetrip-backend/internal/infrastructure/llm"
	"cinetrip-backend/pkg/cache"
	"cinetrip-backend/pkg/metrics"
)

// flightTimeout bounds a shared generation: the LLM call plus persistence.
const flightTimeout = 2 * time.Minute

type sceneResolver struct {
	repo      repository.Repository
	movies    movierepo.Repository
	provider  provider.Provider
	generator llm.Generator
	lock      *movieLock
	flights   singleflight.Group
	metrics   *metrics.Metrics
}

// NewResolver wires the resolver. locker and m may be nil.
func NewResolver(
	repo repository.Repository,
	movies movierepo.Repository,
	movieProvider provider.Provider,
	generator llm.Generator,
	locker cache.Locker,
	m *metrics.Metrics,
) Resolver {
	return &sceneResolver{
		repo:      repo,
		movies:    movies,
		provider:  movieProvider,
		generator: generator,
		lock:      newMovieLock(locker),
		metrics:   m,
	}
}

func (r *sceneResolver) Resolve(ctx context.Context, tmdbID int, opts model.ResolveOptions) ([]*model.SceneLocation, error) {
	if tmdbID <= 0 {
		return nil, model.NewInvalidRequestError(model.ErrInvalidMovieID)
	}

	if opts.ForceRegenerate {
		locations, err := r.generate(ctx, tmdbID, opts)
		r.observe(err, opts.ForceRegenerate)
		return locations, err
	}

	// Step 1: cached rows
	cached, err := r.repo.FindByMovieOrdered(ctx, tmdbID, model.MaxLocationsPerMovie)
	if err != nil {
		r.metrics.ObserveResolve(metrics.OutcomeError, false)
		return nil, fmt.Errorf("read cached scene locations: %w", err)
	}
	if len(cached) > 0 {
		r.metrics.ObserveResolve(metrics.OutcomeCacheHit, false)
		return cached, nil
	}

	// concurrent misses of the same movie share one generation. The flight outlives
	// any single caller; each caller stops waiting when its own ctx ends.
	ch := r.flights.DoChan(flightKey(tmdbID, opts.MovieInfoOverride), func() (interface{}, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()

		again, err := r.repo.FindByMovieOrdered(flightCtx, tmdbID, model.MaxLocationsPerMovie)
		if err == nil && len(again) > 0 {
			r.metrics.ObserveResolve(metrics.OutcomeCacheHit, false)
			return again, nil
		}
		locations, err := r.generate(flightCtx, tmdbID, opts)
		r.observe(err, false)
		return locations, err
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]*model.SceneLocation), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func flightKey(tmdbID int, override *model.MovieInfoOverride) string {
	key := strconv.Itoa(tmdbID)
	if override.Usable() {
		key += "|" + strings.Join([]string{
			strings.TrimSpace(override.Title),
			strings.TrimSpace(override.OriginalTitle),
			strings.TrimSpace(override.Country),
			strings.TrimSpace(override.Language),
		}, "|")
	}
	return key
}

func (r *sceneResolver) observe(err error, forced bool) {
	switch {
	case err == nil:
		r.metrics.ObserveResolve(metrics.OutcomeGenerated, forced)
	case model.IsGenerationFailed(err):
		r.metrics.ObserveResolve(metrics.OutcomeGenerationFailed, forced)
	default:
		r.metrics.ObserveResolve(metrics.OutcomeError, forced)
	}
}

// generate runs steps 2 to 10. Nothing is written before the generator answered.
func (r *sceneResolver) generate(ctx context.Context, tmdbID int, opts model.ResolveOptions) ([]*model.SceneLocation, error) {
	// Step 2: metadata
	meta := r.metadata(ctx, tmdbID, opts.MovieInfoOverride)

	// Step 3: prompt
	prompt := BuildPrompt(tmdbID, meta)

	// Step 4: generation, fail closed
	started := time.Now()
	items, err := r.generator.GenerateItems(ctx, prompt)
	r.metrics.ObserveGeneration("scenes", time.Since(started).Seconds(), err)
	if err != nil {
		log.Error().Err(err).
			Int("tmdb_id", tmdbID).
			Bool("forced", opts.ForceRegenerate).
			Msg("[SCENE] generation failed")
		return nil, model.NewGenerationFailedError(err)
	}

	// Step 5: cap
	if len(items) > model.MaxLocationsPerMovie {
		log.Debug().Int("tmdb_id", tmdbID).Int("received", len(items)).Msg("[SCENE] truncating generated items")
		items = items[:model.MaxLocationsPerMovie]
	}

	// Step 6: normalize
	candidates := normalizeAll(tmdbID, items)

	// Steps 7-10
	locations, err := r.persist(ctx, meta, candidates, opts.ForceRegenerate)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("tmdb_id", tmdbID).
		Str("movie_source", string(meta.Source)).
		Int("generated", len(candidates)).
		Int("stored", len(locations)).
		Bool("forced", opts.ForceRegenerate).
		Msg("[SCENE] scene locations generated")

	return locations, nil
}

func normalizeAll(tmdbID int, items []json.RawMessage) []*model.SceneLocation {
	out := make([]*model.SceneLocation, 0, len(items))
	for i, raw := range items {
		out = append(out, normalizeCandidate(tmdbID, i+1, raw))
	}
	return out
}

func (r *sceneResolver) metadata(ctx context.Context, tmdbID int, override *model.MovieInfoOverride) moviemodel.MovieMetadata {
	if !override.Usable() {
		return r.provider.Get(ctx, tmdbID)
	}
	return moviemodel.MovieMetadata{
		TMDBID:        tmdbID,
		Title:         strings.TrimSpace(override.Title),
		OriginalTitle: strings.TrimSpace(override.OriginalTitle),
		Country:       orUnknown(strings.TrimSpace(override.Country)),
		Language:      orUnknown(strings.TrimSpace(override.Language)),
		Source:        moviemodel.SourceOverride,
	}
}

func (r *sceneResolver) persist(ctx context.Context, meta moviemodel.MovieMetadata, candidates []*model.SceneLocation, forced bool) ([]*model.SceneLocation, error) {
	tmdbID := meta.TMDBID

	// Step 7: lock, parent row, optional wipe
	release, err := r.lock.acquire(ctx, tmdbID)
	if err != nil {
		return nil, err
	}
	defer release()

	movie := moviemodel.MovieFromMetadata(meta)
	if meta.Source.Authoritative() {
		err = r.movies.Upsert(ctx, movie)
	} else {
		err = r.movies.EnsureExists(ctx, movie)
	}
	if err != nil {
		return nil, fmt.Errorf("store movie %d: %w", tmdbID, err)
	}

	if forced {
		if err := r.repo.DeleteAllForMovie(ctx, tmdbID); err != nil {
			return nil, fmt.Errorf("clear scene locations of movie %d: %w", tmdbID, err)
		}
	}

	// Step 8: upsert
	for _, c := range candidates {
		if _, err := r.repo.Upsert(ctx, c); err != nil {
			return nil, fmt.Errorf("store scene location %q: %w", c.Name, err)
		}
	}

	// Step 9: prune beyond the first rows by id
	all, err := r.repo.FindByMovieOrdered(ctx, tmdbID, 0)
	if err != nil {
		return nil, fmt.Errorf("read scene locations: %w", err)
	}
	if len(all) > model.MaxLocationsPerMovie {
		extra := make([]int64, 0, len(all)-model.MaxLocationsPerMovie)
		for _, row := range all[model.MaxLocationsPerMovie:] {
			extra = append(extra, row.ID)
		}
		if err := r.repo.DeleteByIDs(ctx, extra); err != nil {
			return nil, fmt.Errorf("prune scene locations: %w", err)
		}
	}

	// Step 10: final read
	locations, err := r.repo.FindByMovieOrdered(ctx, tmdbID, model.MaxLocationsPerMovie)
	if err != nil {
		return nil, fmt.Errorf("read scene locations: %w", err)
	}
	return locations, nil
}
