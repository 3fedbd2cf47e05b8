package app

import (
	"strings"
	"time"

	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
	"github.com/radarloop/radarloop-backend/internal/utils"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration

	RedisAddr      string
	WeightCacheTTL time.Duration

	AllowOrigins []string

	Environment string
	Version     string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	weightCacheTTLSeconds := utils.GetEnvAsInt("WEIGHT_CACHE_TTL", 300, log)

	var origins []string
	for _, o := range strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "", log), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		RedisAddr:      redisAddr,
		WeightCacheTTL: time.Duration(weightCacheTTLSeconds) * time.Second,
		AllowOrigins:   origins,
		Environment:    utils.GetEnv("APP_ENV", "development", log),
		Version:        utils.GetEnv("APP_VERSION", "dev", log),
	}
}
