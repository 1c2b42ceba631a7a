package app

import (
	"time"

	"github.com/riskcraft/riskreg/internal/domain/classify"
	"github.com/riskcraft/riskreg/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithThresholdPercentile sets the high-risk threshold percentile.
func WithThresholdPercentile(p float64) Option {
	return func(s *Service) {
		if p > 0 && p <= 100 {
			s.thresholdPercentile = p
		}
	}
}

// WithSLAThresholdHours sets the resolution-time SLA used by the
// recommendation rules. Zero disables the rule.
func WithSLAThresholdHours(hours float64) Option {
	return func(s *Service) {
		if hours >= 0 {
			s.slaHours = hours
		}
	}
}

// WithTierPolicy sets the risk-level tiering policy.
func WithTierPolicy(policy classify.TierPolicy) Option {
	return func(s *Service) {
		if policy != nil {
			s.tierPolicy = policy
		}
	}
}

// WithStrictPercentile makes single-category datasets fail classification
// instead of falling back to labeling the lone category high-risk.
func WithStrictPercentile() Option {
	return func(s *Service) {
		s.strict = true
	}
}

// WithClock overrides the time source, used by tests for stable review
// dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
