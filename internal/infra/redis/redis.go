// Package redis provides the optional cache used to serve ranking queries
// without hitting Postgres on every request.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"walkies/config"
	"walkies/internal/domain/repository"
	"walkies/internal/domain/service"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params defines the dependencies for creating the Redis client.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	LC     fx.Lifecycle
}

// NewClient builds a Redis client from configuration. It returns nil when no
// address is configured, in which case ranking queries always go to Postgres.
func NewClient(params Params) *redis.Client {
	cfg := params.Config
	if cfg.Redis == nil || cfg.Redis.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	params.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				params.Logger.Warn("Redis unreachable, ranking cache disabled", slog.String("error", err.Error()))
			}

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client
}

// rankingCache implements service.RankingCache over Redis. A nil client
// makes every method a no-op.
type rankingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRankingCache wires the ranking cache over the shared client.
func NewRankingCache(client *redis.Client, cfg *config.Config, logger *slog.Logger) service.RankingCache {
	ttl := time.Minute
	if cfg.Redis != nil && cfg.Redis.RankingTTL > 0 {
		ttl = cfg.Redis.RankingTTL
	}

	return &rankingCache{client: client, ttl: ttl, logger: logger}
}

func rankingKey(key string) string {
	return "walkies:ranking:" + key
}

// Get returns the cached rows for a key, or (nil, false) on miss. Cache
// failures are logged and treated as misses.
func (c *rankingCache) Get(ctx context.Context, key string) ([]repository.RankRow, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, rankingKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Ranking cache read failed", slog.String("error", err.Error()))
		}

		return nil, false
	}

	var rows []repository.RankRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		c.logger.Warn("Ranking cache entry corrupt, dropping", slog.String("error", err.Error()))
		c.client.Del(ctx, rankingKey(key))

		return nil, false
	}

	return rows, true
}

// Set stores the rows for a key with the configured TTL.
func (c *rankingCache) Set(ctx context.Context, key string, rows []repository.RankRow) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, rankingKey(key), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Ranking cache write failed", slog.String("error", err.Error()))
	}
}
