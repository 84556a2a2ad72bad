// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/passmeter/backend/internal/domain/error"
	"github.com/passmeter/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
	// redisKeyPrefix namespaces rate limit counters in Redis.
	redisKeyPrefix = "ratelimit"
)

// RateLimitStore counts attempts per key within a fixed window.
type RateLimitStore interface {
	// Allow records one attempt for key and reports whether it is within maxAttempts,
	// along with the time left until the key's window resets.
	Allow(ctx context.Context, key string, maxAttempts int, window time.Duration) (bool, time.Duration, error)
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// MemoryStore keeps counters in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

// Allow implements RateLimitStore.
func (s *MemoryStore) Allow(_ context.Context, key string, maxAttempts int, window time.Duration) (bool, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	entry, exists := s.entries[key]
	if !exists {
		s.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(window),
		}
		return true, window, nil
	}

	// Check if the window has expired
	if now.After(entry.resetTime) {
		entry.attempts = 1
		entry.resetTime = now.Add(window)
		return true, window, nil
	}

	remaining := entry.resetTime.Sub(now)
	if entry.attempts < maxAttempts {
		entry.attempts++
		return true, remaining, nil
	}

	return false, remaining, nil
}

// Reset clears the store state (useful for testing).
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*rateLimitEntry)
}

// Cleanup removes expired entries (can be called periodically to free memory).
func (s *MemoryStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}

// RedisStore keeps counters in Redis so limits hold across instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Allow implements RateLimitStore with INCR and a window-length expiry.
func (s *RedisStore) Allow(ctx context.Context, key string, maxAttempts int, window time.Duration) (bool, time.Duration, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	// A counter without expiry is either new or lost its TTL; both start the window now.
	remaining := ttl.Val()
	if remaining < 0 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return false, 0, err
		}
		remaining = window
	}

	return incr.Val() <= int64(maxAttempts), remaining, nil
}

// RateLimiter provides IP-based rate limiting functionality.
type RateLimiter struct {
	scope          string
	store          RateLimitStore
	fallback       *MemoryStore
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates a new in-memory rate limiter with default settings.
func NewRateLimiter(scope string) *RateLimiter {
	return NewRateLimiterWithConfig(scope, nil, defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
// A nil store keeps counters in memory. Store errors fall back to memory.
func NewRateLimiterWithConfig(scope string, store RateLimitStore, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if windowDuration <= 0 {
		windowDuration = defaultWindowDuration
	}
	fallback := NewMemoryStore()
	if store == nil {
		store = fallback
	}
	return &RateLimiter{
		scope:          scope,
		store:          store,
		fallback:       fallback,
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting in E2E mode or test environment
		if os.Getenv("E2E_MODE") == "true" || os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		// Get client IP
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, retryAfter := rl.allow(c.Request.Context(), clientIP)
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(retryAfter)))
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow checks if a request from the given client should be allowed and
// returns the time left in the client's window.
func (rl *RateLimiter) allow(ctx context.Context, clientIP string) (bool, time.Duration) {
	key := redisKeyPrefix + ":" + rl.scope + ":" + clientIP

	allowed, remaining, err := rl.store.Allow(ctx, key, rl.maxAttempts, rl.windowDuration)
	if err == nil {
		return allowed, remaining
	}

	slog.WarnContext(ctx, "Rate limit store unavailable, using in-memory counters",
		"scope", rl.scope,
		"error", err,
	)
	allowed, remaining, _ = rl.fallback.Allow(ctx, key, rl.maxAttempts, rl.windowDuration)
	return allowed, remaining
}

// retryAfterSeconds rounds up to whole seconds, never below one.
func retryAfterSeconds(remaining time.Duration) int {
	seconds := int((remaining + time.Second - 1) / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}

// Reset clears the in-memory state (useful for testing).
func (rl *RateLimiter) Reset() {
	rl.fallback.Reset()
	if mem, ok := rl.store.(*MemoryStore); ok && mem != rl.fallback {
		mem.Reset()
	}
}

// Cleanup removes expired in-memory entries.
func (rl *RateLimiter) Cleanup() {
	rl.fallback.Cleanup()
	if mem, ok := rl.store.(*MemoryStore); ok && mem != rl.fallback {
		mem.Cleanup()
	}
}

// StartCleanup runs Cleanup every interval until ctx is cancelled.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = rl.windowDuration
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}
