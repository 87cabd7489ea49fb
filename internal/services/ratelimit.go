package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type RateLimiter interface {
	// Allow reports whether key may perform one more action in the current
	// window.
	Allow(ctx context.Context, key string) (bool, error)
}

// redisLimiter is a fixed one-minute window shared by every replica.
type redisLimiter struct {
	rdb    redis.UniversalClient
	log    *logger.Logger
	limit  int64
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRedisRateLimiter(rdb redis.UniversalClient, log *logger.Logger, perMinute int) RateLimiter {
	return &redisLimiter{
		rdb:    rdb,
		log:    log.With("service", "RateLimiter", "backend", "redis"),
		limit:  int64(perMinute),
		window: time.Minute,
		prefix: "humanizer:ratelimit:",
		now:    time.Now,
	}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	bucket := l.now().UTC().Truncate(l.window).Unix()
	k := fmt.Sprintf("%s%s:%d", l.prefix, key, bucket)

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, l.window+5*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}
	return incr.Val() <= l.limit, nil
}

// localLimiter keeps a token bucket per key in memory. A bucket idle for
// longer than idleTTL has refilled completely, so it is dropped on the next
// sweep and recreated on demand.
type localLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*localEntry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type localEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewLocalRateLimiter(perMinute int) RateLimiter {
	return newLocalLimiter(perMinute, time.Now)
}

func newLocalLimiter(perMinute int, now func() time.Time) *localLimiter {
	l := &localLimiter{
		limiters: map[string]*localEntry{},
		burst:    perMinute,
		idleTTL:  2 * time.Minute,
		now:      now,
	}
	if perMinute <= 0 {
		l.limit = rate.Inf
	} else {
		l.limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	l.lastSweep = now()
	return l
}

func (l *localLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.limit == rate.Inf {
		return true, nil
	}
	now := l.now()
	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}
	e, ok := l.limiters[key]
	if !ok {
		e = &localEntry{lim: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	l.mu.Unlock()
	return e.lim.AllowN(now, 1), nil
}

// sweep drops idle buckets. Callers hold mu.
func (l *localLimiter) sweep(now time.Time) {
	for key, e := range l.limiters {
		if now.Sub(e.lastSeen) >= l.idleTTL {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}
