package app

import (
	"github.com/radarloop/radarloop-backend/internal/handlers"
	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Feed    *handlers.FeedHandler
	Signals *handlers.SignalsHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:    handlers.NewAuthHandler(s.Auth),
		Feed:    handlers.NewFeedHandler(log, s.Feed),
		Signals: handlers.NewSignalsHandler(log, s.Signal),
	}
}
