package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cinetrip-backend/internal/shared/middleware"
	"cinetrip-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.FrontendOrigin),
		middleware.HTTPMetrics(c.Metrics),
	)

	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group(c.Config.App.BasePath)
	{
		if c.Config.App.BasePath != "" {
			api.GET("/health", healthCheckHandler(c))
		}

		setupAuthRoutes(api, c)
		setupUserRoutes(api, c)
		setupMovieRoutes(api, c)
		setupSceneRoutes(api, c)
		setupBookmarkRoutes(api, c)
		setupPostRoutes(api, c)
		setupUploadRoutes(api, c)
	}

	return router
}

func authRequired(c *container.Container) gin.HandlerFunc {
	return middleware.AuthMiddleware(c.JWTManager, c.Config.JWT.CookieName)
}

func authOptional(c *container.Container) gin.HandlerFunc {
	return middleware.OptionalAuthMiddleware(c.JWTManager, c.Config.JWT.CookieName)
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := api.Group("/auth")
	{
		auth.POST("/google", c.UserHandler.GoogleLogin)
		auth.POST("/logout", c.UserHandler.Logout)
		auth.GET("/me", authRequired(c), c.UserHandler.GetMe)
		auth.PATCH("/me", authRequired(c), c.UserHandler.UpdateMe)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(api *gin.RouterGroup, c *container.Container) {
	users := api.Group("/users")
	{
		users.GET("/:id", authOptional(c), c.UserHandler.GetProfile)
		users.GET("/:id/followers", c.UserHandler.Followers)
		users.GET("/:id/following", c.UserHandler.Following)
		users.POST("/:id/follow", authRequired(c), c.UserHandler.Follow)
		users.DELETE("/:id/follow", authRequired(c), c.UserHandler.Unfollow)
	}
}

// ========================================
// MOVIE ROUTES
// ========================================
func setupMovieRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/movies/:tmdbId", c.MovieHandler.GetMovie)
}

// ========================================
// SCENE AND CHECKLIST ROUTES
// ========================================
func setupSceneRoutes(api *gin.RouterGroup, c *container.Container) {
	llm := api.Group("/llm")
	{
		llm.POST("/scenes", c.SceneHandler.ResolveScenes)
		llm.GET("/scenes/:tmdbId", c.SceneHandler.GetScenes)
	}

	checklist := api.Group("/checklist")
	{
		checklist.POST("/generate", c.ChecklistHandler.Generate)
		checklist.GET("/generate", c.ChecklistHandler.GenerateFromQuery)
	}
}

// ========================================
// BOOKMARK ROUTES
// ========================================
func setupBookmarkRoutes(api *gin.RouterGroup, c *container.Container) {
	bookmarks := api.Group("/bookmarks")
	bookmarks.Use(authRequired(c))
	{
		bookmarks.GET("", c.BookmarkHandler.List)
		bookmarks.POST("", c.BookmarkHandler.Add)
		bookmarks.GET("/:tmdbId", c.BookmarkHandler.Status)
		bookmarks.DELETE("/:tmdbId", c.BookmarkHandler.Remove)
	}
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(api *gin.RouterGroup, c *container.Container) {
	posts := api.Group("/posts")
	{
		posts.GET("", authOptional(c), c.PostHandler.List)
		posts.GET("/:id", authOptional(c), c.PostHandler.Get)
		posts.POST("", authRequired(c), c.PostHandler.Create)
		posts.DELETE("/:id", authRequired(c), c.PostHandler.Delete)
		posts.POST("/:id/like", authRequired(c), c.PostHandler.ToggleLike)
		posts.GET("/:id/comments", c.PostHandler.ListComments)
		posts.POST("/:id/comments", authRequired(c), c.PostHandler.AddComment)
	}

	api.DELETE("/comments/:id", authRequired(c), c.PostHandler.DeleteComment)
	api.GET("/gallery", authOptional(c), c.PostHandler.Gallery)
}

// ========================================
// UPLOAD ROUTES
// ========================================
func setupUploadRoutes(api *gin.RouterGroup, c *container.Container) {
	api.POST("/uploads/presign", authRequired(c), c.UploadHandler.Presign)
}

// ========================================
// HEALTH CHECK
// ========================================

// healthCheckHandler reports 503 when the database is down. Redis only degrades the status.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			health["status"] = "unavailable"
			status = http.StatusServiceUnavailable
		}

		redisStatus := "ok"
		if err := appCtx.Redis.HealthCheck(ctx); err != nil {
			redisStatus = "error: " + err.Error()
			if status == http.StatusOK {
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}
		c.JSON(status, health)
	}
}
