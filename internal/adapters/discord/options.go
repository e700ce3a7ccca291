package discord

import (
	"github.com/okian/gobu/internal/domain/cooldown"
	"github.com/okian/gobu/pkg/logger"
)

// Option configures a Gateway.
type Option func(*options)

type options struct {
	limiter       cooldown.Limiter
	pagerSessions int
	logger        logger.Logger
}

// WithMentionLimiter sets the per-guild limiter for mention-only messages.
func WithMentionLimiter(l cooldown.Limiter) Option {
	return func(o *options) {
		if l != nil {
			o.limiter = l
		}
	}
}

// WithPagerSessions bounds the number of live paginated messages.
func WithPagerSessions(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pagerSessions = n
		}
	}
}

// WithLogger sets the gateway logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
