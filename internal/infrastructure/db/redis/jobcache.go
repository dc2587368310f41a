package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobtrackr/jobtracker-api/internal/core/domain"
)

const cacheTTL = time.Minute

// JobListCache caches each user's job list for a short window, invalidated
// on every mutation. Keys are scoped per user, so one account's cache can
// never serve another account's data.
// Key format: joblist:<user_id>
type JobListCache struct {
	client *redis.Client
}

// NewJobListCache creates a JobListCache wrapping the given Redis client.
func NewJobListCache(client *redis.Client) *JobListCache {
	return &JobListCache{client: client}
}

// Get returns the cached list for userID, with ok reporting a cache hit.
func (c *JobListCache) Get(ctx context.Context, userID string) ([]*domain.Job, bool, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("job list cache get: %w", err)
	}

	var jobs []*domain.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		// A corrupt entry behaves like a miss.
		return nil, false, nil
	}
	return jobs, true, nil
}

// Set stores the list for userID, expiring after cacheTTL.
func (c *JobListCache) Set(ctx context.Context, userID string, jobs []*domain.Job) error {
	raw, err := json.Marshal(jobs)
	if err != nil {
		return fmt.Errorf("job list cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(userID), raw, cacheTTL).Err()
}

// Invalidate drops the cached list for userID.
func (c *JobListCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *JobListCache) key(userID string) string {
	return "joblist:" + userID
}
