package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"linkpulse/internal/config"
	"linkpulse/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// GeoKeyPrefix prefixes cached geo lookups
	GeoKeyPrefix = "geo:"
	// DefaultGeoCacheTTL applies when SaveLocation gets a non-positive ttl
	DefaultGeoCacheTTL = 24 * time.Hour
)

// RedisRepository handles Redis operations
type RedisRepository struct {
	client *redis.Client
}

// NewRedisClient creates a client and checks the connection
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("Failed to connect to Redis")
	} else {
		log.Info().Msg("Redis connected successfully")
	}

	return rdb
}

// NewRedisRepository creates a repository on an existing client
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

// GetClient returns the Redis client
func (r *RedisRepository) GetClient() *redis.Client {
	return r.client
}

// GetLocation returns the cached location of ip. found is false on a cache miss.
func (r *RedisRepository) GetLocation(ctx context.Context, ip string) (loc model.Location, found bool, err error) {
	data, err := r.client.Get(ctx, r.geoKey(ip)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Location{}, false, nil
	}
	if err != nil {
		return model.Location{}, false, err
	}

	if err := json.Unmarshal(data, &loc); err != nil {
		return model.Location{}, false, fmt.Errorf("corrupt geo cache entry for %s: %w", ip, err)
	}
	return loc, true, nil
}

// SaveLocation caches the location of ip
func (r *RedisRepository) SaveLocation(ctx context.Context, ip string, loc model.Location, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultGeoCacheTTL
	}

	data, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.geoKey(ip), data, ttl).Err()
}

// Ping checks the Redis connection
func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func (r *RedisRepository) geoKey(ip string) string {
	return GeoKeyPrefix + ip
}
