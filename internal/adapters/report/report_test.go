package report_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskcraft/riskreg/internal/adapters/loader"
	"github.com/riskcraft/riskreg/internal/adapters/report"
	"github.com/riskcraft/riskreg/internal/domain/aggregate"
	"github.com/riskcraft/riskreg/internal/domain/classify"
	"github.com/riskcraft/riskreg/internal/domain/model"
	"github.com/riskcraft/riskreg/internal/domain/recommend"
	. "github.com/smartystreets/goconvey/convey"
)

// fixtureReport builds a classified report from a small fixed dataset.
func fixtureReport(t *testing.T) *report.Report {
	t.Helper()
	records := []model.Incident{
		{ID: "1", Category: "Network", Severity: model.SeverityCritical, RootCause: "Configuration drift", ResolutionHours: 36, Recurring: true},
		{ID: "2", Category: "Network", Severity: model.SeverityCritical, RootCause: "Configuration drift", ResolutionHours: 30, Recurring: true},
		{ID: "3", Category: "Network", Severity: model.SeverityHigh, RootCause: "Hardware failure", ResolutionHours: 24, Recurring: false},
		{ID: "4", Category: "Security", Severity: model.SeverityHigh, RootCause: "Missing patch", ResolutionHours: 12, Recurring: true},
		{ID: "5", Category: "Security", Severity: model.SeverityMedium, RootCause: "Weak password", ResolutionHours: 6, Recurring: false},
		{ID: "6", Category: "Facilities", Severity: model.SeverityLow, RootCause: "Wear", ResolutionHours: 2, Recurring: false},
	}

	aggs := aggregate.Compute(records)
	res, err := classify.New().Classify(aggs)
	if err != nil {
		t.Fatalf("classify fixture: %v", err)
	}

	return &report.Report{
		ID:           "test-report",
		GeneratedAt:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		TotalRecords: len(records),
		Distribution: aggregate.Distribution(records),
		Aggregates:   res.Aggregates,
		HighRisk:     res.HighRisk,
		Threshold:    res.Threshold,
		Recurring:    aggregate.DetectRecurring(records),
		BySeverity:   aggregate.ResolutionBySeverity(records),
		Recommendations: recommend.Build(recommend.Input{
			Aggregates: res.Aggregates,
			Recurring:  aggregate.DetectRecurring(records),
			Records:    records,
		}),
		Diagnostics: []loader.Diagnostic{{Row: 9, Reason: "negative resolution time"}},
	}
}

func TestRender(t *testing.T) {
	Convey("Given a classified report", t, func() {
		rpt := fixtureReport(t)
		var buf bytes.Buffer
		report.Render(&buf, rpt)
		out := buf.String()

		Convey("Then the sections appear in the fixed order", func() {
			sections := []string{
				"EXECUTIVE RISK SUMMARY REPORT",
				"OVERALL RISK PROFILE",
				"HIGH-RISK CATEGORIES",
				"RESOLUTION TIME ANALYSIS",
				"RECURRING ISSUES",
				"KEY RECOMMENDATIONS",
				"END OF EXECUTIVE SUMMARY",
			}
			last := -1
			for _, s := range sections {
				idx := bytes.Index(buf.Bytes(), []byte(s))
				So(idx, ShouldBeGreaterThan, last)
				last = idx
			}
		})

		Convey("Then the header carries the report identity", func() {
			So(out, ShouldContainSubstring, "test-report")
			So(out, ShouldContainSubstring, "2026-03-14 09:30:00")
			So(out, ShouldContainSubstring, "Total Incidents Analyzed: 6")
		})

		Convey("Then the top category is called out", func() {
			So(out, ShouldContainSubstring, "CRITICAL INSIGHT: 'Network'")
		})

		Convey("Then skipped rows surface in the data quality section", func() {
			So(out, ShouldContainSubstring, "1 malformed rows were skipped")
			So(out, ShouldContainSubstring, "row 9: negative resolution time")
		})
	})
}

func TestExport(t *testing.T) {
	Convey("Given a classified report and an output directory", t, func() {
		rpt := fixtureReport(t)
		dir := t.TempDir()

		errs := report.NewExporter(dir).Export(rpt)

		Convey("Then every table is written without errors", func() {
			So(errs, ShouldBeEmpty)
			for _, name := range []string{
				report.FileRiskRegister,
				report.FileHighRiskCategories,
				report.FileResolutionByCategory,
				report.FileResolutionBySeverity,
				report.FileRecurringByCategory,
			} {
				_, err := os.Stat(filepath.Join(dir, name))
				So(err, ShouldBeNil)
			}
		})

		Convey("Then the risk register has the documented columns and values", func() {
			So(errs, ShouldBeEmpty)
			rows := readCSV(t, filepath.Join(dir, report.FileRiskRegister))

			So(rows[0], ShouldResemble, []string{
				"risk_id", "category", "description", "risk_level", "likelihood", "impact",
				"risk_score", "incident_count", "avg_resolution_hours", "recurrence_rate_pct",
				"mitigation_strategy", "status", "review_date",
			})
			So(rows, ShouldHaveLength, len(rpt.HighRisk)+1)

			first := rows[1]
			So(first[0], ShouldEqual, "RISK-001")
			So(first[1], ShouldEqual, "Network")
			So(first[12], ShouldEqual, "2026-03-14")
		})

		Convey("Then the resolution tables carry the five statistics", func() {
			So(errs, ShouldBeEmpty)
			byCat := readCSV(t, filepath.Join(dir, report.FileResolutionByCategory))
			So(byCat[0], ShouldResemble, []string{
				"category", "mean_hours", "median_hours", "min_hours", "max_hours", "std_dev",
			})
			So(byCat, ShouldHaveLength, len(rpt.Aggregates)+1)

			bySev := readCSV(t, filepath.Join(dir, report.FileResolutionBySeverity))
			So(bySev, ShouldHaveLength, len(rpt.BySeverity)+1)
		})
	})

	Convey("Given a report with a singleton high-risk list", t, func() {
		rpt := fixtureReport(t)
		rpt.HighRisk = rpt.HighRisk[:1]
		dir := t.TempDir()

		Convey("Then the high-risk table is well-formed with one data row", func() {
			errs := report.NewExporter(dir).Export(rpt)
			So(errs, ShouldBeEmpty)
			rows := readCSV(t, filepath.Join(dir, report.FileHighRiskCategories))
			So(rows, ShouldHaveLength, 2)
		})
	})

	Convey("Given one unwritable export target", t, func() {
		rpt := fixtureReport(t)
		dir := t.TempDir()
		// A directory squatting on the register's file name forces that one
		// export to fail while the rest proceed.
		So(os.Mkdir(filepath.Join(dir, report.FileRiskRegister), 0750), ShouldBeNil)

		errs := report.NewExporter(dir).Export(rpt)

		Convey("Then only that table fails and the others are still written", func() {
			So(errs, ShouldHaveLength, 1)
			So(errs[0].File, ShouldEqual, report.FileRiskRegister)
			_, err := os.Stat(filepath.Join(dir, report.FileHighRiskCategories))
			So(err, ShouldBeNil)
			_, err = os.Stat(filepath.Join(dir, report.FileRecurringByCategory))
			So(err, ShouldBeNil)
		})
	})

	Convey("Given an output directory that cannot be created", t, func() {
		dir := t.TempDir()
		blocked := filepath.Join(dir, "blocked")
		So(os.WriteFile(blocked, []byte("file, not dir"), 0600), ShouldBeNil)

		Convey("Then every table reports a failure", func() {
			errs := report.NewExporter(filepath.Join(blocked, "out")).Export(fixtureReport(t))
			So(errs, ShouldHaveLength, 5)
		})
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return rows
}
