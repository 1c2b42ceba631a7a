// Package config defines tool configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - Functions accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

// Tier policy names accepted by the classifier configuration.
const (
	TierPolicyFixed      = "fixed"
	TierPolicyPercentile = "percentile"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// InputPath is the incident CSV to analyze.
	InputPath string `koanf:"input_path"`

	// OutputDir receives the exported CSV tables.
	OutputDir string `koanf:"output_dir"`

	// ThresholdPercentile is the high-risk cutoff percentile, in (0,100].
	ThresholdPercentile float64 `koanf:"threshold_percentile"`

	// SLAThresholdHours triggers resourcing recommendations when a
	// category's mean resolution time exceeds it. Zero disables the rule.
	SLAThresholdHours float64 `koanf:"sla_threshold_hours"`

	// TierPolicy selects the risk-level tiering scheme: fixed or percentile.
	TierPolicy string `koanf:"tier_policy"`

	// Export controls whether CSV tables are written after analysis.
	Export bool `koanf:"export"`

	// MetricsDump logs the gathered pipeline metrics at the end of a run.
	MetricsDump bool `koanf:"metrics_dump"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		InputPath:           "incident_data.csv",
		OutputDir:           "output",
		ThresholdPercentile: 75,
		SLAThresholdHours:   0,
		TierPolicy:          TierPolicyFixed,
		Export:              true,
		MetricsDump:         false,
	}
}
