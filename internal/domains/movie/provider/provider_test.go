package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cinetrip-backend/internal/config"
	"cinetrip-backend/internal/domains/movie/model"
	"cinetrip-backend/internal/domains/movie/provider"
	infracache "cinetrip-backend/internal/infrastructure/cache"
	"cinetrip-backend/internal/mocks"
	"cinetrip-backend/pkg/cache"
)

func newCache(t *testing.T) cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return infracache.NewRedisCache(client)
}

func TestProvider_FoundIsCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockMovieFetcher(ctrl)
	c := newCache(t)

	fetcher.EXPECT().Movie(gomock.Any(), 496243).Return(model.MovieMetadata{
		Title:         "기생충",
		OriginalTitle: "기생충",
		ReleaseDate:   "2019-05-30",
		Country:       "South Korea",
		Language:      "ko",
	}, nil).Times(1)

	p := provider.NewProvider(c, fetcher, nil, time.Hour, nil)

	first := p.Get(context.Background(), 496243)
	assert.Equal(t, model.SourceFound, first.Source)
	assert.Equal(t, 496243, first.TMDBID)
	assert.Equal(t, "기생충", first.Title)

	// served from the cache, the fetcher expectation is Times(1)
	second := p.Get(context.Background(), 496243)
	assert.Equal(t, first, second)
}

func TestProvider_FallbackTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockMovieFetcher(ctrl)
	fetcher.EXPECT().Movie(gomock.Any(), 670).Return(model.MovieMetadata{}, errors.New("timeout"))

	p := provider.NewProvider(nil, fetcher, provider.DefaultFallback(), time.Hour, nil)

	meta := p.Get(context.Background(), 670)
	assert.Equal(t, model.SourceFallback, meta.Source)
	assert.Equal(t, "올드보이", meta.Title)
	assert.Equal(t, "South Korea", meta.Country)
}

func TestProvider_Synthesized(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockMovieFetcher(ctrl)
	fetcher.EXPECT().Movie(gomock.Any(), 42).Return(model.MovieMetadata{}, errors.New("404"))

	p := provider.NewProvider(newCache(t), fetcher, provider.DefaultFallback(), time.Hour, nil)

	meta := p.Get(context.Background(), 42)
	assert.Equal(t, model.SourceSynthesized, meta.Source)
	assert.Equal(t, "Movie 42", meta.Title)
	assert.Equal(t, "Movie 42", meta.OriginalTitle)
	assert.Equal(t, model.UnknownValue, meta.Country)
	assert.Equal(t, model.UnknownValue, meta.Language)
}

func TestTMDBClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/496243", r.URL.Path)
		assert.Equal(t, "ko-KR", r.URL.Query().Get("language"))
		assert.Equal(t, "key", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`{
			"id": 496243,
			"title": "기생충",
			"original_title": "기생충",
			"overview": "...",
			"release_date": "2019-05-30",
			"poster_path": "/p.jpg",
			"original_language": "ko",
			"production_countries": [{"iso_3166_1": "KR", "name": "South Korea"}]
		}`))
	}))
	defer srv.Close()

	client := provider.NewTMDBClient(config.TMDBConfig{APIKey: "key", BaseURL: srv.URL, Language: "ko-KR", Timeout: time.Second})

	meta, err := client.Movie(context.Background(), 496243)
	require.NoError(t, err)
	assert.Equal(t, "기생충", meta.Title)
	assert.Equal(t, "South Korea", meta.Country)
	assert.Equal(t, "ko", meta.Language)
	assert.Equal(t, "/p.jpg", meta.PosterPath)
}

func TestTMDBClient_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/movie/1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id": 2, "title": ""}`))
	}))
	defer srv.Close()

	client := provider.NewTMDBClient(config.TMDBConfig{APIKey: "key", BaseURL: srv.URL})
	_, err := client.Movie(context.Background(), 1)
	assert.Error(t, err)
	_, err = client.Movie(context.Background(), 2)
	assert.Error(t, err, "empty title is a failed lookup")

	noKey := provider.NewTMDBClient(config.TMDBConfig{BaseURL: srv.URL})
	_, err = noKey.Movie(context.Background(), 3)
	assert.Error(t, err)
}

func TestProvider_WithTMDBDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := provider.NewTMDBClient(config.TMDBConfig{APIKey: "key", BaseURL: srv.URL})
	p := provider.NewProvider(nil, client, provider.DefaultFallback(), time.Hour, nil)

	assert.Equal(t, model.SourceFallback, p.Get(context.Background(), 496243).Source)
}

func TestLoadFallbackFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"tmdbId": 11, "title": "스타워즈", "originalTitle": "Star Wars", "releaseDate": "1977-05-25", "country": "United States of America", "language": "en"}
	]`), 0o600))

	table, err := provider.LoadFallbackFile(path, provider.DefaultFallback())
	require.NoError(t, err)
	assert.Equal(t, "스타워즈", table[11].Title)
	assert.Contains(t, table, 496243, "defaults are kept")

	require.NoError(t, os.WriteFile(path, []byte(`[{"tmdbId": 12}]`), 0o600))
	_, err = provider.LoadFallbackFile(path, nil)
	assert.Error(t, err)

	same, err := provider.LoadFallbackFile("", provider.DefaultFallback())
	require.NoError(t, err)
	assert.Len(t, same, len(provider.DefaultFallback()))
}
