package app

import (
	"github.com/gin-gonic/gin"

	"github.com/radarloop/radarloop-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:    h.Auth,
		AuthMiddleware: mw.Auth,
		FeedHandler:    h.Feed,
		SignalsHandler: h.Signals,
		AllowOrigins:   cfg.AllowOrigins,
	})
}
