package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinetrip-backend/internal/config"
	"cinetrip-backend/internal/domains/movie/model"
)

var errNoAPIKey = errors.New("tmdb api key not configured")

// TMDBClient fetches movie details from The Movie Database v3 API.
type TMDBClient struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
}

func NewTMDBClient(cfg config.TMDBConfig) *TMDBClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	lang := cfg.Language
	if lang == "" {
		lang = "ko-KR"
	}
	return &TMDBClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		language:   lang,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type tmdbMovie struct {
	ID                  int    `json:"id"`
	Title               string `json:"title"`
	OriginalTitle       string `json:"original_title"`
	Overview            string `json:"overview"`
	ReleaseDate         string `json:"release_date"`
	PosterPath          string `json:"poster_path"`
	OriginalLanguage    string `json:"original_language"`
	ProductionCountries []struct {
		ISO  string `json:"iso_3166_1"`
		Name string `json:"name"`
	} `json:"production_countries"`
}

// Movie returns the details of tmdbID. Any problem is an error, the caller falls back.
func (c *TMDBClient) Movie(ctx context.Context, tmdbID int) (model.MovieMetadata, error) {
	if c.apiKey == "" {
		return model.MovieMetadata{}, errNoAPIKey
	}

	q := url.Values{}
	q.Set("language", c.language)
	q.Set("api_key", c.apiKey)
	endpoint := fmt.Sprintf("%s/movie/%s?%s", c.baseURL, strconv.Itoa(tmdbID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.MovieMetadata{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.MovieMetadata{}, fmt.Errorf("tmdb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.MovieMetadata{}, fmt.Errorf("tmdb status %d", resp.StatusCode)
	}

	var m tmdbMovie
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return model.MovieMetadata{}, fmt.Errorf("tmdb decode: %w", err)
	}
	if strings.TrimSpace(m.Title) == "" {
		return model.MovieMetadata{}, errors.New("tmdb returned an empty title")
	}

	meta := model.MovieMetadata{
		TMDBID:        tmdbID,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		Overview:      m.Overview,
		ReleaseDate:   m.ReleaseDate,
		Language:      m.OriginalLanguage,
		PosterPath:    m.PosterPath,
		Country:       model.UnknownValue,
		Source:        model.SourceFound,
	}
	if meta.OriginalTitle == "" {
		meta.OriginalTitle = meta.Title
	}
	if len(m.ProductionCountries) > 0 && m.ProductionCountries[0].Name != "" {
		meta.Country = m.ProductionCountries[0].Name
	}
	if meta.Language == "" {
		meta.Language = model.UnknownValue
	}
	return meta, nil
}
