// internal/cache/snapshot.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"recruiting-workers/internal/common/metrics"
	"recruiting-workers/internal/models"
)

const (
	snapshotKeyPrefix = "candidates:snapshot:"
	recordKeyPrefix   = "candidate:record:"
)

// SnapshotCache keeps the owner's raw candidate records between list
// recomputations. A miss or a decode failure sends callers back to Postgres.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

func SnapshotKey(ownerID string) string {
	return snapshotKeyPrefix + ownerID
}

// RecordKey is the key under which score-candidate caches a single record.
func RecordKey(candidateID string) string {
	return recordKeyPrefix + candidateID
}

// Get returns the cached records and whether the snapshot was present.
func (c *SnapshotCache) Get(ctx context.Context, ownerID string) ([]models.CandidateRecord, bool, error) {
	val, err := c.client.Get(ctx, SnapshotKey(ownerID)).Result()
	if errors.Is(err, redis.Nil) {
		metrics.CandidateSnapshotLookups.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.CandidateSnapshotLookups.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("get snapshot: %w", err)
	}

	var records []models.CandidateRecord
	if err := json.Unmarshal([]byte(val), &records); err != nil {
		metrics.CandidateSnapshotLookups.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}

	metrics.CandidateSnapshotLookups.WithLabelValues("hit").Inc()
	return records, true, nil
}

func (c *SnapshotCache) Set(ctx context.Context, ownerID string, records []models.CandidateRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, SnapshotKey(ownerID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the owner's snapshot, and the cached records of
// candidateIDs, after a mutation.
func (c *SnapshotCache) Invalidate(ctx context.Context, ownerID string, candidateIDs ...string) error {
	keys := []string{SnapshotKey(ownerID)}
	for _, id := range candidateIDs {
		keys = append(keys, RecordKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}
