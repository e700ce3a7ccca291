package cooldown

import "time"

// Option configures the in-memory limiter.
type Option func(*inMemoryLimiter)

// WithRate sets how many actions each window allows.
func WithRate(rate int) Option {
	return func(l *inMemoryLimiter) {
		if rate > 0 {
			l.rate = rate
		}
	}
}

// WithWindow sets the window length.
func WithWindow(per time.Duration) Option {
	return func(l *inMemoryLimiter) {
		if per > 0 {
			l.per = per
		}
	}
}

// WithMaxKeys bounds the number of tracked keys; the least recently used
// bucket is evicted past it.
func WithMaxKeys(n int) Option {
	return func(l *inMemoryLimiter) {
		if n > 0 {
			l.maxKeys = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *inMemoryLimiter) {
		if now != nil {
			l.now = now
		}
	}
}
