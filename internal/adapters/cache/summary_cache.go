package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"

	"github.com/redis/go-redis/v9"
)

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSummaryCache returns a RatingSummaryCache storing summaries as JSON under
// "rating:summary:<eventID>:<gen>" for ttl. The generation counter lives under
// "rating:summary:gen:<eventID>".
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) domain.RatingSummaryCache {
	return &redisSummaryCache{client: client, ttl: ttl}
}

func generationKey(eventID string) string {
	return fmt.Sprintf("rating:summary:gen:%s", eventID)
}

func summaryKey(eventID string, gen int64) string {
	return fmt.Sprintf("rating:summary:%s:%d", eventID, gen)
}

func (c *redisSummaryCache) Generation(ctx context.Context, eventID string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(eventID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get summary generation: %w", err)
	}
	return gen, nil
}

func (c *redisSummaryCache) Get(ctx context.Context, eventID string, gen int64) (*domain.RatingSummary, error) {
	raw, err := c.client.Get(ctx, summaryKey(eventID, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	var s domain.RatingSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	return &s, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, gen int64, s *domain.RatingSummary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return c.client.Set(ctx, summaryKey(s.EventID, gen), raw, c.ttl).Err()
}

// Bump increments the generation. Entries under older generations expire on their TTL.
func (c *redisSummaryCache) Bump(ctx context.Context, eventID string) error {
	if err := c.client.Incr(ctx, generationKey(eventID)).Err(); err != nil {
		return fmt.Errorf("failed to bump summary generation: %w", err)
	}
	return nil
}

type noopSummaryCache struct{}

// NewNoopSummaryCache returns a cache that never hits.
func NewNoopSummaryCache() domain.RatingSummaryCache {
	return noopSummaryCache{}
}

func (noopSummaryCache) Generation(context.Context, string) (int64, error) { return 0, nil }

func (noopSummaryCache) Get(context.Context, string, int64) (*domain.RatingSummary, error) {
	return nil, domain.ErrNotFound
}

func (noopSummaryCache) Set(context.Context, int64, *domain.RatingSummary) error { return nil }

func (noopSummaryCache) Bump(context.Context, string) error { return nil }
