package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
	"github.com/radarloop/radarloop-backend/internal/signals"
)

// WeightCache is a short-lived read cache of a user's loaded weight map.
// Every mutation path (decision, mute, reset) must call Invalidate, or
// scoring will run against stale weights until the TTL expires.
type WeightCache interface {
	Get(ctx context.Context, userID uuid.UUID) (map[string]signals.WeightRecord, bool)
	Set(ctx context.Context, userID uuid.UUID, weights map[string]signals.WeightRecord)
	Invalidate(ctx context.Context, userID uuid.UUID) error
	Close() error
}

type weightCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewWeightCache(log *logger.Logger, addr string, ttl time.Duration) (WeightCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &weightCache{
		log: log.With("service", "RedisWeightCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func cacheKey(userID uuid.UUID) string {
	return "radarloop:weights:" + userID.String()
}

func (c *weightCache) Get(ctx context.Context, userID uuid.UUID) (map[string]signals.WeightRecord, bool) {
	if c == nil || c.rdb == nil || userID == uuid.Nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("weight cache read failed", "user_id", userID, "error", err)
		}
		return nil, false
	}
	var weights map[string]signals.WeightRecord
	if err := json.Unmarshal(raw, &weights); err != nil {
		c.log.Warn("weight cache payload corrupt, dropping", "user_id", userID, "error", err)
		_ = c.rdb.Del(ctx, cacheKey(userID)).Err()
		return nil, false
	}
	return weights, true
}

func (c *weightCache) Set(ctx context.Context, userID uuid.UUID, weights map[string]signals.WeightRecord) {
	if c == nil || c.rdb == nil || userID == uuid.Nil {
		return
	}
	raw, err := json.Marshal(weights)
	if err != nil {
		c.log.Warn("weight cache encode failed", "user_id", userID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(userID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("weight cache write failed", "user_id", userID, "error", err)
	}
}

func (c *weightCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if c == nil || c.rdb == nil || userID == uuid.Nil {
		return nil
	}
	return c.rdb.Del(ctx, cacheKey(userID)).Err()
}

func (c *weightCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
