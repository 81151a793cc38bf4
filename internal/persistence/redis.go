package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/calendarapp/calendar-service/internal/config"
)

// Redis holds the client behind the failed-login counters. It stores no token state.
type Redis struct {
	Client *redis.Client
}

// NewRedis builds the client when an address is configured and returns nil
// otherwise. An unreachable server is logged, not fatal: throttling fails open.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	if cfg.Addr == "" {
		logger.Warn("REDIS_ADDR not provided; login attempts are counted in memory")
		return nil, nil
	}

	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.String("addr", opts.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", opts.Addr))
	}

	return &Redis{Client: client}, nil
}

// redisOptions accepts either host:port or a redis:// URL. Password and DB from cfg
// override whatever the URL carries.
func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	opts := &redis.Options{Addr: cfg.Addr}
	if strings.HasPrefix(cfg.Addr, "redis://") || strings.HasPrefix(cfg.Addr, "rediss://") {
		parsed, err := redis.ParseURL(cfg.Addr)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return opts, nil
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return ErrNotConfigured
	}
	return r.Client.Ping(ctx).Err()
}
