package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis returns a client for REDIS_URL, or nil when it is unset and
// rate limiting should stay in process.
func ConnectRedis(ctx context.Context, cfg *Config, log *zap.Logger) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL not set, using in-process rate limiting")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := client.Ping(pingCtx).Result()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info("connected to redis", zap.String("ping", res))
	return client, nil
}
