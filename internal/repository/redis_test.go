package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkpulse/internal/config"
	"linkpulse/internal/model"
)

func newTestRedisRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	return NewRedisRepository(client), s
}

func TestNewRedisClient(t *testing.T) {
	s := miniredis.RunT(t)

	client := NewRedisClient(&config.RedisConfig{Addr: s.Addr()})
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	client := NewRedisClient(&config.RedisConfig{Addr: "127.0.0.1:1"})
	defer client.Close()

	assert.NotNil(t, client)
}

func TestRedisRepository_Location(t *testing.T) {
	repo, s := newTestRedisRepo(t)
	defer repo.Close()
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		loc, found, err := repo.GetLocation(ctx, "8.8.8.8")
		require.NoError(t, err)
		assert.False(t, found)
		assert.True(t, loc.IsEmpty())
	})

	t.Run("save then get", func(t *testing.T) {
		want := model.Location{Country: "US", City: "Mountain View"}
		require.NoError(t, repo.SaveLocation(ctx, "8.8.8.8", want, time.Hour))

		loc, found, err := repo.GetLocation(ctx, "8.8.8.8")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, want, loc)
		assert.Equal(t, time.Hour, s.TTL(GeoKeyPrefix+"8.8.8.8"))
	})

	t.Run("empty location is cached as a hit", func(t *testing.T) {
		require.NoError(t, repo.SaveLocation(ctx, "203.0.113.9", model.Location{}, 0))

		loc, found, err := repo.GetLocation(ctx, "203.0.113.9")
		require.NoError(t, err)
		assert.True(t, found)
		assert.True(t, loc.IsEmpty())
		assert.Equal(t, DefaultGeoCacheTTL, s.TTL(GeoKeyPrefix+"203.0.113.9"))
	})

	t.Run("corrupt entry", func(t *testing.T) {
		require.NoError(t, s.Set(GeoKeyPrefix+"1.1.1.1", "{not json"))

		_, found, err := repo.GetLocation(ctx, "1.1.1.1")
		assert.Error(t, err)
		assert.False(t, found)
	})
}

func TestRedisRepository_Ping(t *testing.T) {
	repo, s := newTestRedisRepo(t)
	defer repo.Close()

	assert.NoError(t, repo.Ping(context.Background()))

	s.Close()
	assert.Error(t, repo.Ping(context.Background()))
}

func TestRedisRepository_GetClient(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	defer repo.Close()

	assert.NotNil(t, repo.GetClient())
}
