package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/erpsuite/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BlacklistFactory chooses the token blacklist backend from configuration
type BlacklistFactory struct {
	cfg           config.RedisConfig
	logger        *zap.Logger
	allowFallback bool
}

// BlacklistFactoryOption configures a BlacklistFactory
type BlacklistFactoryOption func(*BlacklistFactory)

// WithLogger sets the logger used to report fallbacks
func WithLogger(l *zap.Logger) BlacklistFactoryOption {
	return func(f *BlacklistFactory) { f.logger = l }
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory blacklist instead of failing startup. Enabled by default.
func WithInMemoryFallback(allow bool) BlacklistFactoryOption {
	return func(f *BlacklistFactory) { f.allowFallback = allow }
}

// NewBlacklistFactory creates a factory for cfg
func NewBlacklistFactory(cfg config.RedisConfig, opts ...BlacklistFactoryOption) *BlacklistFactory {
	f := &BlacklistFactory{cfg: cfg, logger: zap.NewNop(), allowFallback: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns the blacklist and a close function for its resources
func (f *BlacklistFactory) Create(ctx context.Context) (TokenBlacklist, func() error, error) {
	noop := func() error { return nil }
	if !f.cfg.Enabled {
		f.logger.Info("redis disabled, using in-memory token blacklist")
		return NewInMemoryTokenBlacklist(), noop, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         f.cfg.Addr(),
		Password:     f.cfg.Password,
		DB:           f.cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		if !f.allowFallback {
			return nil, noop, fmt.Errorf("connect to redis at %s: %w", f.cfg.Addr(), err)
		}
		f.logger.Warn("redis unavailable, falling back to in-memory token blacklist",
			zap.String("addr", f.cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryTokenBlacklist(), noop, nil
	}

	f.logger.Info("using redis token blacklist", zap.String("addr", f.cfg.Addr()))
	return NewRedisTokenBlacklist(client), client.Close, nil
}
