package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RISKREG_CONFIG is set
//  3. env (prefix RISKREG_)
func Load(ctx context.Context) (*Config, error) {
	_ = ctx // reserved for future remote providers

	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("RISKREG_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: RISKREG_OUTPUT_DIR, RISKREG_THRESHOLD_PERCENTILE, ...
	// Map env keys like RISKREG_OUTPUT_DIR -> output_dir (flat keys).
	// Underscores are preserved to match koanf tags on the struct.
	envProvider := env.Provider("RISKREG_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "riskreg_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.ThresholdPercentile <= 0 || c.ThresholdPercentile > 100 {
		return fmt.Errorf("%w: threshold_percentile must be in (0,100], got %g", ErrInvalidConfig, c.ThresholdPercentile)
	}
	if c.SLAThresholdHours < 0 {
		return fmt.Errorf("%w: sla_threshold_hours must not be negative", ErrInvalidConfig)
	}
	switch c.TierPolicy {
	case TierPolicyFixed, TierPolicyPercentile:
	default:
		return fmt.Errorf("%w: unknown tier_policy %q", ErrInvalidConfig, c.TierPolicy)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	return nil
}
