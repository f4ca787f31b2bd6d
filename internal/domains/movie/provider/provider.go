package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/domains/movie/model"
	"cinetrip-backend/pkg/cache"
	"cinetrip-backend/pkg/metrics"
)

const cacheKeyPrefix = "movie:meta:"

type metadataProvider struct {
	cache    cache.Cache // optional
	fetcher  Fetcher
	fallback map[int]model.MovieMetadata
	ttl      time.Duration
	metrics  *metrics.Metrics
}

// NewProvider wires the lookup chain: cache, external fetcher, fallback table, placeholder.
// c may be nil when Redis is unavailable.
func NewProvider(c cache.Cache, fetcher Fetcher, fallback map[int]model.MovieMetadata, ttl time.Duration, m *metrics.Metrics) Provider {
	if fallback == nil {
		fallback = map[int]model.MovieMetadata{}
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &metadataProvider{
		cache:    c,
		fetcher:  fetcher,
		fallback: fallback,
		ttl:      ttl,
		metrics:  m,
	}
}

func cacheKey(tmdbID int) string {
	return cacheKeyPrefix + strconv.Itoa(tmdbID)
}

func (p *metadataProvider) Get(ctx context.Context, tmdbID int) model.MovieMetadata {
	// Step 1: cache
	if p.cache != nil {
		var cached model.MovieMetadata
		found, err := p.cache.Get(ctx, cacheKey(tmdbID), &cached)
		if err != nil {
			log.Warn().Err(err).Int("tmdb_id", tmdbID).Msg("movie metadata cache read failed")
		} else if found && cached.Title != "" {
			p.metrics.ObserveMovieLookup("cache")
			return cached
		}
	}

	// Step 2: external lookup
	if p.fetcher != nil {
		meta, err := p.fetcher.Movie(ctx, tmdbID)
		if err == nil {
			meta.TMDBID = tmdbID
			meta.Source = model.SourceFound
			p.store(ctx, meta)
			p.metrics.ObserveMovieLookup(string(model.SourceFound))
			return meta
		}
		log.Debug().Err(err).Int("tmdb_id", tmdbID).Msg("movie lookup failed, using fallback")
	}

	// Step 3: static table
	if meta, ok := p.fallback[tmdbID]; ok && meta.Title != "" {
		meta.TMDBID = tmdbID
		meta.Source = model.SourceFallback
		fillUnknown(&meta)
		p.metrics.ObserveMovieLookup(string(model.SourceFallback))
		return meta
	}

	// Step 4: placeholder
	p.metrics.ObserveMovieLookup(string(model.SourceSynthesized))
	return Synthesize(tmdbID)
}

func (p *metadataProvider) store(ctx context.Context, meta model.MovieMetadata) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Set(ctx, cacheKey(meta.TMDBID), meta, p.ttl); err != nil {
		log.Warn().Err(err).Int("tmdb_id", meta.TMDBID).Msg("movie metadata cache write failed")
	}
}

// Synthesize builds the placeholder used when nothing is known about tmdbID.
func Synthesize(tmdbID int) model.MovieMetadata {
	title := fmt.Sprintf("Movie %d", tmdbID)
	return model.MovieMetadata{
		TMDBID:        tmdbID,
		Title:         title,
		OriginalTitle: title,
		Country:       model.UnknownValue,
		Language:      model.UnknownValue,
		Source:        model.SourceSynthesized,
	}
}

func fillUnknown(meta *model.MovieMetadata) {
	if meta.OriginalTitle == "" {
		meta.OriginalTitle = meta.Title
	}
	if meta.Country == "" {
		meta.Country = model.UnknownValue
	}
	if meta.Language == "" {
		meta.Language = model.UnknownValue
	}
}
