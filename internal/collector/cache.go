package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"SignalDesk/internal/metrics"
	"SignalDesk/internal/model"
)

// ErrCacheMiss is returned by a BarCache when no entry exists.
var ErrCacheMiss = errors.New("cache miss")

// BarCache stores fetched bars keyed by symbol and window.
type BarCache interface {
	GetBars(ctx context.Context, key string) ([]model.OHLCV, error)
	SetBars(ctx context.Context, key string, bars []model.OHLCV, ttl time.Duration) error
}

// RedisCache is a BarCache backed by Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects a Redis-backed bar cache.
func NewRedisCache(addr, password string, db int) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		prefix: "signaldesk:",
	}
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) GetBars(ctx context.Context, key string) ([]model.OHLCV, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var bars []model.OHLCV
	if err := json.Unmarshal(data, &bars); err != nil {
		return nil, fmt.Errorf("decode cached bars: %w", err)
	}
	return bars, nil
}

func (c *RedisCache) SetBars(ctx context.Context, key string, bars []model.OHLCV, ttl time.Duration) error {
	data, err := json.Marshal(bars)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CachedFetcher serves bars from a BarCache and falls back to the wrapped Fetcher.
type CachedFetcher struct {
	Fetcher Fetcher
	Cache   BarCache
	TTL     time.Duration
}

// NewCachedFetcher wraps fetcher with cache.
func NewCachedFetcher(fetcher Fetcher, cache BarCache, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{Fetcher: fetcher, Cache: cache, TTL: ttl}
}

func (f *CachedFetcher) Name() string { return f.Fetcher.Name() + "+cache" }

func barsKey(source, symbol string, days int) string {
	return fmt.Sprintf("bars:%s:%s:%d", source, strings.ToUpper(symbol), days)
}

func (f *CachedFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	key := barsKey(f.Fetcher.Name(), symbol, days)

	bars, err := f.Cache.GetBars(ctx, key)
	switch {
	case err == nil:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return bars, nil
	case errors.Is(err, ErrCacheMiss):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		log.Warn().Err(err).Str("key", key).Msg("bar cache read failed")
	}

	bars, err = f.Fetcher.FetchDailyBars(ctx, symbol, days)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return bars, nil
	}
	if err := f.Cache.SetBars(ctx, key, bars, f.TTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("bar cache write failed")
	}
	return bars, nil
}
