package session

import (
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/dshills/textsync/internal/diff"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the clock used for the debounce timer. Tests inject a fake
// clock; the default is the real clock.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithDebounce sets the quiescence window after the last keystroke before a
// local patch is computed and sent. Defaults to one second.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithLimits sets the diff engine selection bounds.
func WithLimits(lim diff.Limits) Option {
	return func(s *Session) {
		s.limits = lim
	}
}

// WithFillerLines sets the number of line breaks seeding the shadow copy and
// buffer before the first inbound patch or snapshot arrives. Defaults to 3.
func WithFillerLines(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.fillerLines = n
		}
	}
}
