package app

import (
	"fmt"
	"strings"

	"github.com/radarloop/radarloop-backend/internal/clients/redis"
	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
)

type Clients struct {
	WeightCache redis.WeightCache // nil when REDIS_ADDR is unset
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var cache redis.WeightCache
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		c, err := redis.NewWeightCache(log, cfg.RedisAddr, cfg.WeightCacheTTL)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis weight cache: %w", err)
		}
		cache = c
	}

	return Clients{WeightCache: cache}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.WeightCache != nil {
		_ = c.WeightCache.Close()
	}
}
