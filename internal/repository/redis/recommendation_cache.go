package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"reelsense/domain"
)

// RecommendationCache is a serving-layer cache of finished
// recommendation lists. The engine stays pure; only the HTTP layer
// consults the cache. Cache failures are absorbed: a broken cache
// degrades to recomputation, never to an error.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(userID, topK int, strategy string) string {
	return fmt.Sprintf("reco:user:%d:k:%d:strategy:%s", userID, topK, strategy)
}

// Get returns the cached list for (user, k, strategy), or ok=false on a
// miss or any cache error.
func (c *RecommendationCache) Get(ctx context.Context, userID, topK int, strategy string) ([]domain.Recommendation, bool) {
	val, err := c.client.Get(ctx, cacheKey(userID, topK, strategy)).Result()
	if err != nil {
		// redis.Nil is a plain miss; anything else degrades to recompute
		return nil, false
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false
	}
	return recs, true
}

// Set stores a finished list. Best effort.
func (c *RecommendationCache) Set(ctx context.Context, userID, topK int, strategy string, recs []domain.Recommendation) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(userID, topK, strategy), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store recommendations in Redis: %w", err)
	}
	return nil
}
