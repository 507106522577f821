package http

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/allisson/redactor/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = time.Hour
)

// ipRateLimiterStore holds one token bucket per client IP.
type ipRateLimiterStore struct {
	limiters sync.Map // map[string]*ipRateLimiterEntry
	rps      float64
	burst    int
	now      func() time.Time
}

type ipRateLimiterEntry struct {
	limiter    *rate.Limiter
	mu         sync.Mutex
	lastAccess time.Time
}

// UploadRateLimitMiddleware enforces per-IP rate limiting on the upload endpoint.
// Uploads are unauthenticated and expensive (RSA decryption plus a detection engine
// call) so each client IP gets its own token bucket. Stale buckets are evicted until
// ctx is done.
//
// Returns 429 Too Many Requests with a Retry-After header when the bucket is empty.
func UploadRateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newIPRateLimiterStore(rps, burst)
	go store.cleanupStale(ctx, limiterCleanupInterval)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP)

		if !limiter.Allow() {
			retryAfter := retryAfterSeconds(limiter)

			logger.Debug("upload rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Too many uploads from this IP, retry after the specified delay",
			})
			return
		}

		c.Next()
	}
}

func newIPRateLimiterStore(rps float64, burst int) *ipRateLimiterStore {
	return &ipRateLimiterStore{
		rps:   rps,
		burst: burst,
		now:   time.Now,
	}
}

func (s *ipRateLimiterStore) getLimiter(ip string) *rate.Limiter {
	now := s.now()

	if val, ok := s.limiters.Load(ip); ok {
		entry := val.(*ipRateLimiterEntry)
		entry.touch(now)
		return entry.limiter
	}

	entry := &ipRateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	}
	actual, loaded := s.limiters.LoadOrStore(ip, entry)
	if loaded {
		existing := actual.(*ipRateLimiterEntry)
		existing.touch(now)
		return existing.limiter
	}
	return entry.limiter
}

func (s *ipRateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle(s.now().Add(-limiterIdleTimeout))
		}
	}
}

// evictIdle drops limiters last used before threshold and returns how many were dropped.
func (s *ipRateLimiterStore) evictIdle(threshold time.Time) int {
	evicted := 0
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*ipRateLimiterEntry)
		entry.mu.Lock()
		idle := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if idle && s.limiters.CompareAndDelete(key, value) {
			evicted++
		}
		return true
	})
	return evicted
}

func (e *ipRateLimiterEntry) touch(now time.Time) {
	e.mu.Lock()
	e.lastAccess = now
	e.mu.Unlock()
}

func retryAfterSeconds(limiter *rate.Limiter) int {
	reservation := limiter.Reserve()
	defer reservation.Cancel()
	if !reservation.OK() {
		return 1
	}
	return max(1, int(math.Ceil(reservation.Delay().Seconds())))
}
