package app

import (
	"fmt"

	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
	"github.com/radarloop/radarloop-backend/internal/services"
	"github.com/radarloop/radarloop-backend/internal/signals"
)

type Services struct {
	Auth   services.AuthService
	Signal services.SignalService
	Feed   services.FeedService
}

func wireServices(log *logger.Logger, cfg Config, r Repos, c Clients) (Services, error) {
	log.Info("Wiring services...")

	dict, err := signals.Load()
	if err != nil {
		return Services{}, fmt.Errorf("load signal dictionary: %w", err)
	}

	authService := services.NewAuthService(log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	signalService := services.NewSignalService(log, r.Weight, c.WeightCache, dict)
	feedService := services.NewFeedService(log, r.Item, r.Decision, signalService)

	return Services{
		Auth:   authService,
		Signal: signalService,
		Feed:   feedService,
	}, nil
}
