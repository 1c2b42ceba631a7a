package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/riskcraft/riskreg/internal/domain/model"
)

// Exported file names.
const (
	FileRiskRegister         = "risk_register.csv"
	FileHighRiskCategories   = "high_risk_categories.csv"
	FileResolutionByCategory = "resolution_by_category.csv"
	FileResolutionBySeverity = "resolution_by_severity.csv"
	FileRecurringByCategory  = "recurring_by_category.csv"
)

const outputDirPermission = 0750

// ExportError records the failure of one export file.
type ExportError struct {
	File string
	Err  error
}

func (e ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.File, e.Err)
}

// Exporter writes the report tables as CSV files into an output directory.
type Exporter struct {
	outputDir string
}

// NewExporter creates an Exporter writing into outputDir.
func NewExporter(outputDir string) *Exporter {
	return &Exporter{outputDir: outputDir}
}

// Export writes every table. A failure writing one file does not prevent
// the others from being attempted; all failures are collected and returned.
func (e *Exporter) Export(r *Report) []ExportError {
	var errs []ExportError
	if err := os.MkdirAll(e.outputDir, outputDirPermission); err != nil {
		// Every file would fail identically; report once per table.
		for _, name := range []string{
			FileRiskRegister, FileHighRiskCategories, FileResolutionByCategory,
			FileResolutionBySeverity, FileRecurringByCategory,
		} {
			errs = append(errs, ExportError{File: name, Err: err})
		}
		return errs
	}

	tables := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{FileRiskRegister, registerHeader, registerRows(r)},
		{FileHighRiskCategories, highRiskHeader, highRiskRows(r)},
		{FileResolutionByCategory, resolutionCategoryHeader, resolutionCategoryRows(r)},
		{FileResolutionBySeverity, resolutionSeverityHeader, resolutionSeverityRows(r)},
		{FileRecurringByCategory, recurringHeader, recurringRows(r)},
	}
	for _, t := range tables {
		if err := e.writeCSV(t.name, t.header, t.rows); err != nil {
			errs = append(errs, ExportError{File: t.name, Err: err})
		}
	}
	return errs
}

func (e *Exporter) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(e.outputDir, name))
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

var highRiskHeader = []string{
	"category", "risk_level", "risk_score", "incident_count",
	"severity_weighted_avg", "recurrence_rate", "avg_resolution_hours",
}

func highRiskRows(r *Report) [][]string {
	rows := make([][]string, 0, len(r.HighRisk))
	for _, a := range r.HighRisk {
		rows = append(rows, []string{
			a.Category,
			string(a.RiskLevel),
			formatFloat(a.RiskScore),
			strconv.Itoa(a.IncidentCount),
			formatFloat(a.SeverityWeightedAvg),
			formatFloat(a.RecurrenceRate),
			formatFloat(a.Resolution.Mean),
		})
	}
	return rows
}

var resolutionCategoryHeader = []string{
	"category", "mean_hours", "median_hours", "min_hours", "max_hours", "std_dev",
}

func resolutionCategoryRows(r *Report) [][]string {
	rows := make([][]string, 0, len(r.Aggregates))
	for _, a := range r.Aggregates {
		rows = append(rows, append([]string{a.Category}, statsFields(a.Resolution)...))
	}
	return rows
}

var resolutionSeverityHeader = []string{
	"severity", "incident_count", "mean_hours", "median_hours", "min_hours", "max_hours", "std_dev",
}

func resolutionSeverityRows(r *Report) [][]string {
	rows := make([][]string, 0, len(r.BySeverity))
	for _, sr := range r.BySeverity {
		row := []string{sr.Severity.String(), strconv.Itoa(sr.IncidentCount)}
		rows = append(rows, append(row, statsFields(sr.Resolution)...))
	}
	return rows
}

var recurringHeader = []string{
	"category", "recurring_count", "most_common_severity", "mean_resolution_hours",
}

func recurringRows(r *Report) [][]string {
	rows := make([][]string, 0, len(r.Recurring.ByCategory))
	for _, rc := range r.Recurring.ByCategory {
		rows = append(rows, []string{
			rc.Category,
			strconv.Itoa(rc.RecurringCount),
			rc.MostCommonSeverity.String(),
			formatFloat(rc.MeanResolutionHours),
		})
	}
	return rows
}

func statsFields(s model.ResolutionStats) []string {
	return []string{
		formatFloat(s.Mean),
		formatFloat(s.Median),
		formatFloat(s.Min),
		formatFloat(s.Max),
		formatFloat(s.StdDev),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
