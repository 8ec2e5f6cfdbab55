package middlewares

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Limiter decides whether a request identified by key may pass.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// tokenBucketScript refills capacity tokens per second and takes one token per call.
// Returns {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_per_sec = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
tokens = math.min(capacity, tokens + (elapsed * refill_per_sec / 1000))
last_refill = now_ms

local allowed = 0
local retry_after_ms = 0
if tokens >= 1 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.ceil((1 - tokens) * 1000 / refill_per_sec)
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, math.floor(tokens), retry_after_ms }
`)

// RedisLimiter is a token bucket shared by all instances through redis.
type RedisLimiter struct {
	rdb    redis.Scripter
	prefix string
	rps    float64
	burst  int
	ttl    time.Duration
}

func NewRedisLimiter(rdb redis.Scripter, prefix string, rps float64, burst int) *RedisLimiter {
	ttl := time.Duration(math.Ceil(float64(burst)/rps)+1) * time.Second
	return &RedisLimiter{
		rdb:    rdb,
		prefix: prefix,
		rps:    rps,
		burst:  burst,
		ttl:    ttl,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	vals, err := tokenBucketScript.Run(ctx, r.rdb, []string{r.prefix + key},
		time.Now().UnixMilli(),
		r.burst,
		r.rps,
		int64(r.ttl/time.Second),
	).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit script: %w", err)
	}
	if len(vals) != 3 { //nolint:mnd
		return false, 0, fmt.Errorf("rate limit script: unexpected result %v", vals)
	}
	return vals[0] == 1, time.Duration(vals[2]) * time.Millisecond, nil
}

// DefaultLocalCleanupInterval is how often LocalLimiter.Run sweeps idle buckets.
const DefaultLocalCleanupInterval = 5 * time.Minute

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter keeps one token bucket per key in process memory. Buckets idle for longer than
// twice the cleanup interval are dropped by Run.
type LocalLimiter struct {
	mu      sync.Mutex
	buckets map[string]*localBucket
	rps     rate.Limit
	burst   int
	now     func() time.Time
}

func NewLocalLimiter(rps float64, burst int) *LocalLimiter {
	return &LocalLimiter{
		buckets: make(map[string]*localBucket),
		rps:     rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := l.now()

	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &localBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[key] = bucket
	}
	bucket.lastSeen = now
	l.mu.Unlock()

	reservation := bucket.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Second, nil
	}
	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return true, 0, nil
	}
	reservation.CancelAt(now)
	return false, delay, nil
}

// Run sweeps idle buckets every interval until ctx is done.
func (l *LocalLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle(2 * interval) //nolint:mnd
		case <-ctx.Done():
			return
		}
	}
}

func (l *LocalLimiter) evictIdle(ttl time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) > ttl {
			delete(l.buckets, key)
		}
	}
}

func (l *LocalLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// RateLimit limits requests per client ip and route. When the primary limiter fails the request is
// checked against fallback instead.
func RateLimit(primary, fallback Limiter, l *logrus.Logger) gin.HandlerFunc {
	entry := l.WithFields(logrus.Fields{
		"component": "http",
		"module":    "ratelimit",
	})
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()

		allowed, retryAfter, err := primary.Allow(c, key)
		if err != nil {
			entry.WithError(err).Warn("primary limiter failed, using fallback")
			allowed, retryAfter, err = fallback.Allow(c, key)
			if err != nil {
				entry.WithError(err).Error("fallback limiter failed")
				c.Next()
				return
			}
		}

		if !allowed {
			secs := int(math.Ceil(retryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(secs, 1)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
