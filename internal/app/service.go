// Package app wires the analysis pipeline stages together: loader ->
// aggregation engine -> risk classifier -> recommendation generator. Each
// stage consumes the previous stage's output immutably; the assembled
// Report is handed to the renderer and exporter by the caller.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/riskcraft/riskreg/internal/adapters/loader"
	"github.com/riskcraft/riskreg/internal/adapters/report"
	"github.com/riskcraft/riskreg/internal/domain/aggregate"
	"github.com/riskcraft/riskreg/internal/domain/classify"
	"github.com/riskcraft/riskreg/internal/domain/recommend"
	"github.com/riskcraft/riskreg/pkg/logger"
	"github.com/riskcraft/riskreg/pkg/metrics"
)

const defaultThresholdPercentile = 75.0

// Service runs the incident risk analysis pipeline.
type Service struct {
	logger              logger.Logger
	thresholdPercentile float64
	slaHours            float64
	tierPolicy          classify.TierPolicy
	strict              bool
	now                 func() time.Time
}

// New creates a Service with the given options.
func New(opts ...Option) *Service {
	s := &Service{
		thresholdPercentile: defaultThresholdPercentile,
		tierPolicy:          classify.FixedScoreTiers,
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the full pipeline over the CSV file at inputPath and returns
// the report snapshot. Fatal errors identify the failing stage; row-level
// diagnostics and classification warnings are carried in the report.
func (s *Service) Run(ctx context.Context, inputPath string) (*report.Report, error) {
	start := s.now()

	ds, err := s.load(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	aggs := aggregate.Compute(ds.Records)
	dist := aggregate.Distribution(ds.Records)
	bySeverity := aggregate.ResolutionBySeverity(ds.Records)
	recurring := aggregate.DetectRecurring(ds.Records)
	metrics.UpdateCategoriesAggregated(len(aggs))
	metrics.RecordStageDuration("aggregate", sinceMS(s.now, start))

	classifier := s.classifier()
	classified, err := classifier.Classify(aggs)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	metrics.UpdateHighRiskCategories(len(classified.HighRisk))

	recs := recommend.Build(recommend.Input{
		Aggregates:        classified.Aggregates,
		Recurring:         recurring,
		Records:           ds.Records,
		SLAThresholdHours: s.slaHours,
	})
	metrics.RecordRecommendations(len(recs))

	rpt := &report.Report{
		ID:              uuid.NewString(),
		GeneratedAt:     s.now(),
		TotalRecords:    len(ds.Records),
		Distribution:    dist,
		Aggregates:      classified.Aggregates,
		HighRisk:        classified.HighRisk,
		Threshold:       classified.Threshold,
		Recurring:       recurring,
		BySeverity:      bySeverity,
		Recommendations: recs,
		Diagnostics:     ds.Diagnostics,
		Warnings:        classified.Warnings,
	}

	metrics.RecordRun()
	if s.logger != nil {
		s.logger.Info(ctx, "analysis complete",
			logger.String("report_id", rpt.ID),
			logger.Int("records", rpt.TotalRecords),
			logger.Int("categories", len(rpt.Aggregates)),
			logger.Int("high_risk", len(rpt.HighRisk)),
			logger.Float64("threshold", rpt.Threshold))
		for _, warn := range rpt.Warnings {
			s.logger.Warn(ctx, warn)
		}
	}
	return rpt, nil
}

// Export writes the report tables into outputDir, counting successes and
// failures. A failed table never stops the remaining ones.
func (s *Service) Export(ctx context.Context, rpt *report.Report, outputDir string) []report.ExportError {
	start := s.now()
	errs := report.NewExporter(outputDir).Export(rpt)
	metrics.RecordStageDuration("export", sinceMS(s.now, start))

	failed := make(map[string]bool, len(errs))
	for _, e := range errs {
		failed[e.File] = true
		metrics.RecordExportFailure()
		if s.logger != nil {
			s.logger.Error(ctx, "export failed", logger.String("file", e.File), logger.Error(e.Err))
		}
	}
	written := 0
	for _, name := range []string{
		report.FileRiskRegister, report.FileHighRiskCategories,
		report.FileResolutionByCategory, report.FileResolutionBySeverity,
		report.FileRecurringByCategory,
	} {
		if !failed[name] {
			written++
			metrics.RecordExportWritten()
		}
	}
	if s.logger != nil {
		s.logger.Info(ctx, "export finished",
			logger.String("output_dir", outputDir),
			logger.Int("written", written),
			logger.Int("failed", len(errs)))
	}
	return errs
}

func (s *Service) load(ctx context.Context, inputPath string) (*loader.Dataset, error) {
	start := s.now()
	ds, err := loader.Load(ctx, inputPath)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	metrics.RecordRecordsLoaded(len(ds.Records))
	metrics.RecordRowsRejected(len(ds.Diagnostics))
	metrics.RecordStageDuration("load", sinceMS(s.now, start))

	if s.logger != nil {
		s.logger.Info(ctx, "dataset loaded",
			logger.String("path", inputPath),
			logger.Int("records", len(ds.Records)),
			logger.Int("skipped", len(ds.Diagnostics)))
		for _, d := range ds.Diagnostics {
			s.logger.Debug(ctx, "row skipped", logger.Int("row", d.Row), logger.String("reason", d.Reason))
		}
	}
	return ds, nil
}

func (s *Service) classifier() *classify.Classifier {
	opts := []classify.Option{
		classify.WithThresholdPercentile(s.thresholdPercentile),
		classify.WithTierPolicy(s.tierPolicy),
	}
	if s.strict {
		opts = append(opts, classify.WithStrictPercentile())
	}
	return classify.New(opts...)
}

func sinceMS(now func() time.Time, start time.Time) float64 {
	return float64(now().Sub(start)) / float64(time.Millisecond)
}
