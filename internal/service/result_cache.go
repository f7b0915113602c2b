package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"entrematch/internal/domain"
)

// ResultCache keeps the last computed recommendation set per profile.
type ResultCache interface {
	Put(ctx context.Context, set domain.RecommendationSet, ttl time.Duration) error
	Get(ctx context.Context, profileID string) (domain.RecommendationSet, bool, error)
	Invalidate(ctx context.Context, profileID string) error
}

type cachedSet struct {
	set     domain.RecommendationSet
	expires time.Time
}

type memoryResultCache struct {
	mu    sync.Mutex
	items map[string]cachedSet
}

func NewMemoryResultCache() ResultCache {
	return &memoryResultCache{
		items: make(map[string]cachedSet),
	}
}

func (c *memoryResultCache) Put(_ context.Context, set domain.RecommendationSet, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(set.ProfileID) == "" {
		return nil
	}
	c.items[set.ProfileID] = cachedSet{set: set, expires: time.Now().UTC().Add(ttl)}
	return nil
}

func (c *memoryResultCache) Get(_ context.Context, profileID string) (domain.RecommendationSet, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[profileID]
	if !ok {
		return domain.RecommendationSet{}, false, nil
	}
	if time.Now().UTC().After(item.expires) {
		delete(c.items, profileID)
		return domain.RecommendationSet{}, false, nil
	}
	return item.set, true, nil
}

func (c *memoryResultCache) Invalidate(_ context.Context, profileID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, profileID)
	return nil
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisResultCache struct {
	client redisKV
	prefix string
}

func NewRedisResultCache(client *redis.Client) ResultCache {
	if client == nil {
		return nil
	}
	return &redisResultCache{
		client: client,
		prefix: "result:",
	}
}

func (c *redisResultCache) Put(ctx context.Context, set domain.RecommendationSet, ttl time.Duration) error {
	if strings.TrimSpace(set.ProfileID) == "" {
		return nil
	}
	payload, err := json.Marshal(set)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+set.ProfileID, payload, ttl).Err()
}

func (c *redisResultCache) Get(ctx context.Context, profileID string) (domain.RecommendationSet, bool, error) {
	if strings.TrimSpace(profileID) == "" {
		return domain.RecommendationSet{}, false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.prefix+profileID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RecommendationSet{}, false, nil
	}
	if err != nil {
		return domain.RecommendationSet{}, false, err
	}
	var set domain.RecommendationSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return domain.RecommendationSet{}, false, err
	}
	return set, true, nil
}

func (c *redisResultCache) Invalidate(ctx context.Context, profileID string) error {
	if strings.TrimSpace(profileID) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Del(ctx, c.prefix+profileID).Err()
}
