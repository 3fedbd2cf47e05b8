package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/radarloop/radarloop-backend/internal/handlers"
	"github.com/radarloop/radarloop-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	FeedHandler    *handlers.FeedHandler
	SignalsHandler *handlers.SignalsHandler

	AllowOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("radarloop-backend"))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
	}

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Feed
		protected.POST("/items", cfg.FeedHandler.IngestItem)
		protected.POST("/items/:id/decision", cfg.FeedHandler.Triage)
		protected.GET("/feed", cfg.FeedHandler.GetFeed)
		protected.GET("/decisions", cfg.FeedHandler.ListDecisions)

		// Signals
		protected.GET("/signals/weights", cfg.SignalsHandler.GetWeights)
		protected.POST("/signals/mute", cfg.SignalsHandler.Mute)
		protected.POST("/signals/unmute", cfg.SignalsHandler.Unmute)
		protected.POST("/signals/reset", cfg.SignalsHandler.Reset)
		protected.POST("/signals/extract", cfg.SignalsHandler.Extract)
	}

	return router
}
