package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:top"

// LeaderboardCache holds the serialized top-N snapshot in Redis so the
// leaderboard endpoint does not hit Postgres on every request. The cache
// is optional: a nil client disables it and callers fall back to the
// store.
type LeaderboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// ConnectLeaderboardCache dials Redis and verifies the connection. An
// empty addr means the cache is switched off; that is not an error.
func ConnectLeaderboardCache(addr, password string) (*LeaderboardCache, error) {
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Println("Connected to Redis")
	return &LeaderboardCache{rdb: rdb, ttl: 30 * time.Second}, nil
}

// Get returns the cached snapshot, or ok=false when the cache is cold,
// disabled, or unreachable. Cache misses are never fatal.
func (c *LeaderboardCache) Get(ctx context.Context) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a fresh snapshot with the cache TTL.
func (c *LeaderboardCache) Set(ctx context.Context, data []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, leaderboardKey, data, c.ttl).Err(); err != nil {
		log.Printf("[Cache] leaderboard set failed: %v", err)
	}
}
