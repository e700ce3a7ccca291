// Package cooldown rate-limits actions per key with a fixed window.
package cooldown

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Limiter decides whether an action keyed by key may proceed now.
type Limiter interface {
	// Allow consumes one token for key. When the window is exhausted it
	// returns false and the time until the window reopens.
	Allow(ctx context.Context, key string) (bool, time.Duration)

	// Size is the number of keys currently tracked.
	Size() int

	// Evictions counts buckets dropped to stay under the key limit.
	Evictions() int64
}

type bucket struct {
	tokens int
	window time.Time
}

// inMemoryLimiter keeps one bucket per key in a bounded LRU. All access is
// serialized by mu; the LRU's own locking is not relied upon for the
// read-modify-write of a bucket.
type inMemoryLimiter struct {
	mu        sync.Mutex
	buckets   *lru.Cache[string, *bucket]
	rate      int
	per       time.Duration
	maxKeys   int
	now       func() time.Time
	evictions atomic.Int64
}

// New creates a limiter; the default is 1 action per 10 seconds over at
// most 10000 keys.
func New(opts ...Option) Limiter {
	l := &inMemoryLimiter{
		rate:    1,
		per:     10 * time.Second,
		maxKeys: 10000,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.buckets = l.mustBuckets(l.maxKeys)
	return l
}

// mustBuckets builds the bucket LRU. Options only accept a positive size,
// so a failure here is a programming error.
func (l *inMemoryLimiter) mustBuckets(size int) *lru.Cache[string, *bucket] {
	cache, err := lru.NewWithEvict[string, *bucket](size, l.handleEviction)
	if err != nil {
		panic(fmt.Sprintf("cooldown: bucket cache of size %d: %v", size, err))
	}
	return cache
}

func (l *inMemoryLimiter) handleEviction(string, *bucket) {
	l.evictions.Add(1)
}

// Allow implements Limiter.
func (l *inMemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets.Get(key)
	if !ok {
		b = &bucket{tokens: l.rate}
		l.buckets.Add(key, b)
	}

	if now.After(b.window.Add(l.per)) {
		b.tokens = l.rate
	}
	if b.tokens == l.rate {
		b.window = now
	}
	if b.tokens == 0 {
		return false, l.per - now.Sub(b.window)
	}
	b.tokens--
	return true, 0
}

func (l *inMemoryLimiter) Size() int {
	return l.buckets.Len()
}

func (l *inMemoryLimiter) Evictions() int64 {
	return l.evictions.Load()
}
