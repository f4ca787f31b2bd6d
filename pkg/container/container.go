package container

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/config"
	infraCache "cinetrip-backend/internal/infrastructure/cache"
	"cinetrip-backend/internal/infrastructure/database"
	"cinetrip-backend/internal/infrastructure/llm"
	"cinetrip-backend/internal/infrastructure/oauth"
	"cinetrip-backend/internal/infrastructure/storage"
	"cinetrip-backend/pkg/cache"
	"cinetrip-backend/pkg/jwt"
	"cinetrip-backend/pkg/metrics"

	"cinetrip-backend/internal/domains/user"
	userHandler "cinetrip-backend/internal/domains/user/handler"
	userRepo "cinetrip-backend/internal/domains/user/repository"
	userService "cinetrip-backend/internal/domains/user/service"

	movieHandler "cinetrip-backend/internal/domains/movie/handler"
	movieProvider "cinetrip-backend/internal/domains/movie/provider"
	movieRepo "cinetrip-backend/internal/domains/movie/repository"

	sceneHandler "cinetrip-backend/internal/domains/scene/handler"
	sceneRepo "cinetrip-backend/internal/domains/scene/repository"
	sceneService "cinetrip-backend/internal/domains/scene/service"

	checklistHandler "cinetrip-backend/internal/domains/checklist/handler"
	checklistService "cinetrip-backend/internal/domains/checklist/service"

	bookmarkHandler "cinetrip-backend/internal/domains/bookmark/handler"
	bookmarkRepo "cinetrip-backend/internal/domains/bookmark/repository"
	bookmarkService "cinetrip-backend/internal/domains/bookmark/service"

	postHandler "cinetrip-backend/internal/domains/post/handler"
	postRepo "cinetrip-backend/internal/domains/post/repository"
	postService "cinetrip-backend/internal/domains/post/service"

	uploadHandler "cinetrip-backend/internal/domains/upload/handler"
	uploadService "cinetrip-backend/internal/domains/upload/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long-lived dependency of the API process.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infraCache.RedisClient
	Cache      cache.Cache
	Locker     cache.Locker
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager
	Metrics    *metrics.Metrics
	Generator  llm.Generator

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo     user.Repository
	MovieRepo    movieRepo.Repository
	SceneRepo    sceneRepo.Repository
	BookmarkRepo bookmarkRepo.Repository
	PostRepo     postRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	MovieProvider    movieProvider.Provider
	UserService      user.Service
	SceneResolver    sceneService.Resolver
	ChecklistService checklistService.Service
	BookmarkService  bookmarkService.Service
	PostService      postService.Service
	UploadService    uploadService.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler      *userHandler.UserHandler
	MovieHandler     *movieHandler.MovieHandler
	SceneHandler     *sceneHandler.SceneHandler
	ChecklistHandler *checklistHandler.ChecklistHandler
	BookmarkHandler  *bookmarkHandler.BookmarkHandler
	PostHandler      *postHandler.PostHandler
	UploadHandler    *uploadHandler.UploadHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	log.Info().Msg("[CONTAINER] initializing")
	c := &Container{}

	// STEP 1: CONFIGURATION
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// STEP 2: INFRASTRUCTURE
	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// STEP 3: REPOSITORIES
	c.initRepositories()

	// STEP 4: SERVICES
	if err := c.initServices(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	// STEP 5: HANDLERS
	c.initHandlers()

	log.Info().Str("env", cfg.App.Environment).Msg("[CONTAINER] ready")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	// PostgreSQL is required
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Redis failure is not critical: caches miss and locks fall back to in-process
	c.Redis = infraCache.NewRedisClient(cfg.Redis)
	if err := c.Redis.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[CONTAINER] redis unavailable, continuing without it")
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client)
	c.Locker = infraCache.NewRedisLocker(c.Redis.Client)

	// Object storage is required for uploads and post cleanup
	c.Storage, err = storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Hour)

	c.Metrics = metrics.New()
	if err := c.Metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	c.Generator = llm.NewClient(cfg.LLM)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.MovieRepo = movieRepo.NewPostgresRepository(pool)
	c.SceneRepo = sceneRepo.NewPostgresRepository(pool)
	c.BookmarkRepo = bookmarkRepo.NewPostgresRepository(pool)
	c.PostRepo = postRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() error {
	cfg := c.Config

	// ----------------------------------------
	// MOVIE METADATA
	// ----------------------------------------
	fallback := movieProvider.DefaultFallback()
	if cfg.Movies.FallbackFile != "" {
		extended, err := movieProvider.LoadFallbackFile(cfg.Movies.FallbackFile, fallback)
		if err != nil {
			return fmt.Errorf("failed to load movie fallback file: %w", err)
		}
		fallback = extended
	}
	c.MovieProvider = movieProvider.NewProvider(
		c.Cache,
		movieProvider.NewTMDBClient(cfg.TMDB),
		fallback,
		cfg.TMDB.CacheTTL,
		c.Metrics,
	)

	// ----------------------------------------
	// SCENES AND CHECKLISTS
	// ----------------------------------------
	c.SceneResolver = sceneService.NewResolver(
		c.SceneRepo,
		c.MovieRepo,
		c.MovieProvider,
		c.Generator,
		c.Locker,
		c.Metrics,
	)
	c.ChecklistService = checklistService.NewService(c.SceneRepo, c.Generator, c.Metrics)

	// ----------------------------------------
	// USERS AND SOCIAL
	// ----------------------------------------
	c.UserService = userService.NewUserService(c.UserRepo, oauth.NewGoogleVerifier(cfg.Google), c.JWTManager)
	c.BookmarkService = bookmarkService.NewService(c.BookmarkRepo)
	c.PostService = postService.NewService(c.PostRepo, c.Storage)
	c.UploadService = uploadService.NewService(c.Storage, cfg.MinIO.PresignExpiry, cfg.MinIO.MaxUploadMB)

	return nil
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService, userHandler.CookieConfig{
		Name:   c.Config.JWT.CookieName,
		Secure: c.Config.JWT.CookieSecure,
	})
	c.MovieHandler = movieHandler.NewMovieHandler(c.MovieProvider)
	c.SceneHandler = sceneHandler.NewSceneHandler(c.SceneResolver)
	c.ChecklistHandler = checklistHandler.NewChecklistHandler(c.ChecklistService)
	c.BookmarkHandler = bookmarkHandler.NewBookmarkHandler(c.BookmarkService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.UploadHandler = uploadHandler.NewUploadHandler(c.UploadService)
}

// Cleanup releases connections. Safe on a partially built container.
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] cleaning up")

	if c.DB != nil {
		_ = c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] failed to close redis")
		}
	}
}
