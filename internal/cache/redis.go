package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fortuna/cedar/internal/league"
	"github.com/redis/go-redis/v9"
)

// snapshotKey is where the last good snapshot lives in Redis.
const snapshotKey = "cedar:snapshot"

// SnapshotStore persists the latest league snapshot in Redis so a
// restarted process can serve data before its first scrape completes.
// The in-memory cache stays authoritative; Redis is only a warm start.
type SnapshotStore struct {
	client *redis.Client
}

// NewSnapshotStore creates a Redis-backed snapshot store.
func NewSnapshotStore(redisURL string) (*SnapshotStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &SnapshotStore{client: client}, nil
}

// Close closes the Redis connection
func (s *SnapshotStore) Close() error {
	return s.client.Close()
}

// HealthCheck pings Redis to verify connection
func (s *SnapshotStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Save stores the snapshot. No TTL: stale data is better than none, and
// the refresh loop overwrites it every cycle.
func (s *SnapshotStore) Save(ctx context.Context, snap *league.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return s.client.Set(ctx, snapshotKey, data, 0).Err()
}

// Load retrieves the last saved snapshot. Returns (nil, nil) when none
// has been saved yet.
func (s *SnapshotStore) Load(ctx context.Context) (*league.Snapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap league.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}
