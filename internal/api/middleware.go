package api

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/auth"
	"github.com/yourname/dreamcatcher/internal/metrics"
	"github.com/yourname/dreamcatcher/internal/response"
	"golang.org/x/time/rate"
)

// RequestIDMiddleware ensures every request has a correlation/request ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("request_id", reqID)
		c.Writer.Header().Set("X-Request-ID", reqID)
		c.Next()
	}
}

// MetricsMiddleware records request counts and latency by route template.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.IncrementInFlight()
		start := time.Now()
		defer metrics.DecrementInFlight()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// AccessLogMiddleware logs one line per request.
func AccessLogMiddleware(logger internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugf("[request_id=%s] %s %s %d %s",
			c.GetString("request_id"), c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per key. Buckets idle for longer
// than limiterIdleTTL are swept on access.
type RateLimiter struct {
	limiters  map[string]*limiterEntry
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	ts := rl.now()
	if ts.Sub(rl.lastSweep) >= limiterIdleTTL {
		rl.sweep(ts)
	}
	entry, ok := rl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = ts
	return entry.limiter
}

// sweep must be called with rl.mu held.
func (rl *RateLimiter) sweep(ts time.Time) {
	for key, entry := range rl.limiters {
		if ts.Sub(entry.lastSeen) >= limiterIdleTTL {
			delete(rl.limiters, key)
		}
	}
	rl.lastSweep = ts
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Middleware keys on the authenticated user and falls back to the client IP.
// A non-positive rate disables limiting.
func (rl *RateLimiter) Middleware(logger internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rate <= 0 {
			c.Next()
			return
		}
		key := c.ClientIP()
		if user, ok := auth.CurrentUser(c); ok {
			key = user.ID
		}
		if !rl.Allow(key) {
			logger.Warnf("[request_id=%s] rate limit exceeded for %s on %s", c.GetString("request_id"), key, c.FullPath())
			c.AbortWithStatusJSON(429, response.TooManyRequests("Too many AI requests, slow down"))
			return
		}
		c.Next()
	}
}
