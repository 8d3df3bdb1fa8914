package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultSnapshotTTL bounds how long a stale table snapshot can be served.
// It is the only cache discipline in the system and applies per table.
const defaultSnapshotTTL = 30 * time.Second

// SnapshotStore caches whole-table snapshots in Redis, one key per table.
// Key format: snapshot:<table>
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotStore creates a SnapshotStore wrapping the given Redis client.
func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &SnapshotStore{client: client, ttl: ttl}
}

// Get unmarshals the live snapshot for table into dest, reporting whether
// one was found.
func (s *SnapshotStore) Get(ctx context.Context, table string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, s.key(table)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("snapshot get: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("snapshot decode: %w", err)
	}
	return true, nil
}

// Set stores the snapshot for table, expiring after the TTL.
func (s *SnapshotStore) Set(ctx context.Context, table string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	return s.client.Set(ctx, s.key(table), data, s.ttl).Err()
}

// Invalidate drops the snapshot for table so the next read loads fresh.
func (s *SnapshotStore) Invalidate(ctx context.Context, table string) error {
	return s.client.Del(ctx, s.key(table)).Err()
}

func (s *SnapshotStore) key(table string) string {
	return fmt.Sprintf("snapshot:%s", table)
}
