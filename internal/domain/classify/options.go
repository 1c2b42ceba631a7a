package classify

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithThresholdPercentile sets the high-risk threshold percentile.
// Values outside (0,100] are ignored and the default of 75 is kept.
func WithThresholdPercentile(p float64) Option {
	return func(c *Classifier) {
		if p > 0 && p <= 100 {
			c.thresholdPercentile = p
		}
	}
}

// WithTierPolicy sets the policy that maps scores to risk levels.
func WithTierPolicy(policy TierPolicy) Option {
	return func(c *Classifier) {
		if policy != nil {
			c.tiers = policy
		}
	}
}

// WithStrictPercentile makes Classify fail with ErrInsufficientData when
// fewer than two categories exist, instead of falling back to labeling the
// single category high-risk.
func WithStrictPercentile() Option {
	return func(c *Classifier) {
		c.strict = true
	}
}
