package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/LuizVictorr/Achadoos-Amazon/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter is a fixed-window limiter shared across instances through Redis.
// When Redis fails the request is let through and the failure logged.
func RateLimiter(client *redis.Client, maxRequests int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.ClientIP()
		endpoint := c.FullPath() // /api/v1/store/products, /api/v1/store/products/:id, ...
		method := c.Request.Method

		// Key is per-IP, per-method, per-endpoint
		key := "rl:" + ip + ":" + method + ":" + endpoint
		resetKey := key + ":resetAt"

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		// First request → set expiry and stable resetAt
		if count == 1 {
			resetAt := time.Now().Add(window)
			pipe := client.TxPipeline()
			pipe.Expire(ctx, key, window)
			pipe.Set(ctx, resetKey, resetAt.Unix(), window)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Warn("rate limiter window not persisted", zap.Error(err))
			}
		}

		resetAtUnix, _ := client.Get(ctx, resetKey).Int64()
		resetAt := time.Unix(resetAtUnix, 0)

		rl := newRateInfo(maxRequests, maxRequests-int(count), resetAt)
		enforce(c, rl, int(count) > maxRequests)
	}
}

// LocalRateLimiter is the in-process fallback: one token bucket per client IP
// refilling maxRequests per window.
func LocalRateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	limiter := newIPLimiter(maxRequests, window)
	return func(c *gin.Context) {
		l := limiter.get(c.ClientIP())
		allowed := l.Allow()
		remaining := int(l.Tokens())
		resetAt := time.Now()
		if remaining < maxRequests {
			perToken := window / time.Duration(maxRequests)
			resetAt = resetAt.Add(perToken * time.Duration(maxRequests-remaining))
		}
		enforce(c, newRateInfo(maxRequests, remaining, resetAt), !allowed)
	}
}

func newRateInfo(limit, remaining int, resetAt time.Time) *models.RateLimiter {
	// Calculate remaining requests (clamped at 0)
	if remaining < 0 {
		remaining = 0
	}
	resetInSeconds := int(time.Until(resetAt).Seconds())
	if resetInSeconds < 0 {
		resetInSeconds = 0
	}
	return &models.RateLimiter{
		Limit:          limit,
		Remaining:      remaining,
		ResetAt:        resetAt,
		ResetInSeconds: resetInSeconds,
	}
}

func enforce(c *gin.Context, rl *models.RateLimiter, exceeded bool) {
	// Store in context for controllers
	c.Set(models.RateLimiterKey, rl)

	if exceeded {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse(c, "Too many requests"))
		return
	}
	c.Next()
}

// ipLimiter keeps one bucket per client. A bucket idle for a whole window has
// refilled completely, so it is dropped and recreated on the next request.
type ipLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(maxRequests int, window time.Duration) *ipLimiter {
	if maxRequests < 1 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &ipLimiter{
		entries:   make(map[string]*limiterEntry),
		limit:     rate.Limit(float64(maxRequests) / window.Seconds()),
		burst:     maxRequests,
		idleTTL:   window,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *ipLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// sweep drops buckets not used for idleTTL. Callers hold mu.
func (l *ipLimiter) sweep(now time.Time) {
	for key, e := range l.entries {
		if now.Sub(e.lastSeen) >= l.idleTTL {
			delete(l.entries, key)
		}
	}
	l.lastSweep = now
}
