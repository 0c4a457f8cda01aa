package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// BruteForceGate counts failed login attempts per identity in Redis.
// Key format: login_attempts:<identity>, expiring after the window so stale
// counters clean themselves up.
type BruteForceGate struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewBruteForceGate creates a gate blocking after maxAttempts failures within
// window. Zero or negative arguments fall back to defaults.
func NewBruteForceGate(client *redis.Client, maxAttempts int, window time.Duration) *BruteForceGate {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &BruteForceGate{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow reports whether the identity is still under the attempt threshold.
func (g *BruteForceGate) Allow(ctx context.Context, identity string) (bool, error) {
	n, err := g.client.Get(ctx, g.key(identity)).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("brute force check: %w", err)
	}
	return n < g.maxAttempts, nil
}

// RegisterFailure records one failed attempt. The window starts at the first
// failure; later failures do not extend it.
func (g *BruteForceGate) RegisterFailure(ctx context.Context, identity string) error {
	key := g.key(identity)
	n, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("brute force incr: %w", err)
	}
	if n == 1 {
		if err := g.client.Expire(ctx, key, g.window).Err(); err != nil {
			return fmt.Errorf("brute force expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (g *BruteForceGate) Reset(ctx context.Context, identity string) error {
	if err := g.client.Del(ctx, g.key(identity)).Err(); err != nil {
		return fmt.Errorf("brute force reset: %w", err)
	}
	return nil
}

func (g *BruteForceGate) key(identity string) string {
	return "login_attempts:" + strings.ToLower(strings.TrimSpace(identity))
}
