package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/riskcraft/riskreg/internal/adapters/report"
	app "github.com/riskcraft/riskreg/internal/app"
	"github.com/riskcraft/riskreg/internal/config"
	"github.com/riskcraft/riskreg/internal/domain/classify"
	"github.com/riskcraft/riskreg/pkg/logger"
	"github.com/riskcraft/riskreg/pkg/metrics"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// flagOverrides carries CLI flag values that take precedence over the
// file/env configuration when explicitly set.
type flagOverrides struct {
	input               string
	outputDir           string
	thresholdPercentile float64
	slaHours            float64
	tierPolicy          string
	export              bool
	metricsDump         bool
	logLevel            string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "riskreg",
		Short:         "Incident risk aggregation and reporting",
		Long:          "riskreg analyzes a CSV table of incident records, scores categories by composite risk, and produces an executive summary plus exported risk tables.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	var flags flagOverrides

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full risk analysis pipeline over an incident CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildConfig(cmd, &flags)
			if err != nil {
				os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
				return err
			}
			return runAnalyze(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "incident CSV file to analyze")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "directory for exported CSV tables")
	cmd.Flags().Float64Var(&flags.thresholdPercentile, "threshold-percentile", 0, "high-risk threshold percentile in (0,100]")
	cmd.Flags().Float64Var(&flags.slaHours, "sla-hours", 0, "resolution-time SLA in hours for recommendations (0 disables)")
	cmd.Flags().StringVar(&flags.tierPolicy, "tier-policy", "", "risk-level tiering: fixed or percentile")
	cmd.Flags().BoolVar(&flags.export, "export", true, "write CSV export tables")
	cmd.Flags().BoolVar(&flags.metricsDump, "metrics-dump", false, "log gathered pipeline metrics after the run")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log verbosity: debug, info, warn, error")
	return cmd
}

// buildConfig layers defaults, config file, env, then explicit CLI flags.
func buildConfig(cmd *cobra.Command, flags *flagOverrides) (*config.Config, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("input") {
		cfg.InputPath = flags.input
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = flags.outputDir
	}
	if cmd.Flags().Changed("threshold-percentile") {
		cfg.ThresholdPercentile = flags.thresholdPercentile
	}
	if cmd.Flags().Changed("sla-hours") {
		cfg.SLAThresholdHours = flags.slaHours
	}
	if cmd.Flags().Changed("tier-policy") {
		cfg.TierPolicy = flags.tierPolicy
	}
	if cmd.Flags().Changed("export") {
		cfg.Export = flags.export
	}
	if cmd.Flags().Changed("metrics-dump") {
		cfg.MetricsDump = flags.metricsDump
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runAnalyze(ctx context.Context, cfg *config.Config) error {
	// Logs go to stderr; the rendered summary owns stdout.
	if err := logger.Init(os.Stderr); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return err
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithThresholdPercentile(cfg.ThresholdPercentile),
		app.WithSLAThresholdHours(cfg.SLAThresholdHours),
		app.WithTierPolicy(tierPolicy(cfg.TierPolicy)),
	)

	rpt, err := svc.Run(ctx, cfg.InputPath)
	if err != nil {
		log.Error(ctx, "analysis failed", logger.Error(err))
		return err
	}

	report.Render(os.Stdout, rpt)

	if cfg.Export {
		if errs := svc.Export(ctx, rpt, cfg.OutputDir); len(errs) > 0 {
			joined := make([]error, len(errs))
			for i, e := range errs {
				joined[i] = e
			}
			return errors.Join(joined...)
		}
	}

	if cfg.MetricsDump {
		dump, err := metrics.Dump()
		if err != nil {
			log.Warn(ctx, "metrics dump failed", logger.Error(err))
		} else {
			log.Info(ctx, "pipeline metrics\n"+dump)
		}
	}
	return nil
}

func tierPolicy(name string) classify.TierPolicy {
	if name == config.TierPolicyPercentile {
		return classify.PercentileTiers
	}
	return classify.FixedScoreTiers
}
