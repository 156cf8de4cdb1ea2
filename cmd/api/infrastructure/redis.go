package infrastructure

import (
	"fmt"

	"go.uber.org/zap"

	"simple-crud-api/internal/config"
	redisclient "simple-crud-api/pkg/redis"
)

// NewRedisClient connects to the Redis instance backing the rate limiter
func NewRedisClient(cfg *config.Config, l *zap.Logger) (*redisclient.Client, error) {
	rdb, err := redisclient.NewClient(cfg.Redis, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}
