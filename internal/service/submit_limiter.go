package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"entrematch/internal/domain"
)

// SubmitRateLimiter bounds how often a profile may resubmit one questionnaire
// section. Each section has its own budget; rejected attempts do not count.
type SubmitRateLimiter interface {
	Allow(ctx context.Context, profileID string, section domain.Section) bool
}

func submitKey(profileID string, section domain.Section) (string, bool) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" || !section.Valid() {
		return "", false
	}
	return profileID + ":" + string(section), true
}

type submitRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
}

// NewSubmitRateLimiter builds an in-memory sliding window limiter.
func NewSubmitRateLimiter(window time.Duration, max int) SubmitRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &submitRateLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
	}
}

func (l *submitRateLimiter) Allow(_ context.Context, profileID string, section domain.Section) bool {
	key, ok := submitKey(profileID, section)
	if !ok {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now().UTC()
	cutoff := now.Add(-l.window)
	entries := l.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	l.hits[key] = append(kept, now)
	return true
}

// Returns 0 once the section budget is spent, otherwise the new count.
// Rejected calls leave the counter and its expiry untouched.
const redisSubmitAllowScript = `
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
if current >= tonumber(ARGV[2]) then
  return 0
end
current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisSubmitRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

// NewRedisSubmitRateLimiter builds a fixed window limiter shared across instances.
func NewRedisSubmitRateLimiter(client *redis.Client, window time.Duration, max int) SubmitRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisSubmitRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "submit:rl:",
	}
}

// Allow fails open when redis is unreachable.
func (l *redisSubmitRateLimiter) Allow(ctx context.Context, profileID string, section domain.Section) bool {
	if l == nil || l.client == nil {
		return true
	}
	key, ok := submitKey(profileID, section)
	if !ok {
		return false
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	count, err := l.client.Eval(ctx, redisSubmitAllowScript, []string{l.prefix + key}, l.window.Milliseconds(), l.max).Int()
	if err != nil {
		return true
	}
	return count > 0
}
