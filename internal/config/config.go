package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds the whole application configuration.
// Every value is populated from environment variables.
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Google GoogleConfig
	LLM    LLMConfig
	TMDB   TMDBConfig
	MinIO  MinIOConfig
	Movies MoviesConfig
}

type AppConfig struct {
	Name           string
	Environment    string // development, staging, production
	Port           string
	Version        string
	BasePath       string // prefix for every route, empty = root
	FrontendOrigin string // allowed CORS origin (cookies are sent cross-site)
	LogLevel       string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // hours
	CookieName        string
	CookieSecure      bool
}

type GoogleConfig struct {
	ClientID     string
	TokenInfoURL string
}

// =====================================================
// GENERATIVE TEXT (OpenAI-compatible chat completions)
// =====================================================

type LLMConfig struct {
	APIKey      string // empty = every generation call fails with a configuration error
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

type TMDBConfig struct {
	APIKey   string // optional, static fallback data is used when absent
	BaseURL  string
	Language string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type MinIOConfig struct {
	Endpoint      string // localhost:9000
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string // base URL used to build the public object URL
	PresignExpiry time.Duration
	MaxUploadMB   int
}

type MoviesConfig struct {
	FallbackFile string // optional JSON file extending the built-in fallback table
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "CineTrip API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "8080"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			BasePath:       strings.TrimRight(getEnv("API_BASE_PATH", ""), "/"),
			FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:5173"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY_HOURS", 24*7),
			CookieName:        getEnv("JWT_COOKIE_NAME", "access_token"),
			CookieSecure:      getEnvBool("JWT_COOKIE_SECURE", false),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			TokenInfoURL: getEnv("GOOGLE_TOKENINFO_URL", "https://oauth2.googleapis.com/tokeninfo"),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("LLM_MODEL", "gpt-4o-mini"),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.3),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 2000),
			Timeout:     getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		},
		TMDB: TMDBConfig{
			APIKey:   getEnv("TMDB_API_KEY", ""),
			BaseURL:  getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			Language: getEnv("TMDB_LANGUAGE", "ko-KR"),
			Timeout:  getEnvDuration("TMDB_TIMEOUT", 10*time.Second),
			CacheTTL: getEnvDuration("TMDB_CACHE_TTL", 24*time.Hour),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:        getEnv("MINIO_BUCKET", "cinetrip"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: getEnv("MINIO_PUBLIC_BASE_URL", ""),
			PresignExpiry: getEnvDuration("MINIO_PRESIGN_EXPIRY", 5*time.Minute),
			MaxUploadMB:   getEnvInt("MINIO_MAX_UPLOAD_MB", 15),
		},
		Movies: MoviesConfig{
			FallbackFile: getEnv("MOVIE_FALLBACK_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that must never reach production with defaults.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if os.Getenv("DB_PASSWORD") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Google.ClientID == "" {
			return fmt.Errorf("GOOGLE_CLIENT_ID must be set in production")
		}
	}

	// Generation credentials are checked per call so the service still boots without them
	if c.LLM.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set - scene and checklist generation will be unavailable")
	}
	if c.TMDB.APIKey == "" {
		log.Warn().Msg("TMDB_API_KEY not set - movie metadata falls back to static data")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
