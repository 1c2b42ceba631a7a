// Package report renders analysis results as a console executive summary
// and exports them as CSV tables, including the risk register.
package report

import (
	"time"

	"github.com/riskcraft/riskreg/internal/adapters/loader"
	"github.com/riskcraft/riskreg/internal/domain/model"
	"github.com/riskcraft/riskreg/internal/domain/recommend"
)

// Report is the immutable snapshot of one analysis run, the only input the
// renderer and exporter need.
type Report struct {
	ID          string // unique run identifier
	GeneratedAt time.Time

	TotalRecords int
	Distribution model.SeverityDistribution

	// Classified aggregates in engine order (risk score descending).
	Aggregates []model.CategoryAggregate
	HighRisk   []model.CategoryAggregate
	Threshold  float64

	Recurring  model.RecurringAnalysis
	BySeverity []model.SeverityResolution

	Recommendations []recommend.Recommendation

	Diagnostics []loader.Diagnostic
	Warnings    []string
}
