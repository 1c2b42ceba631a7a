package report

import (
	"fmt"
	"io"
	"strings"
)

const lineWidth = 80

// Render writes the executive summary in a fixed section order: header,
// overall risk profile, high-risk categories, resolution analysis,
// recurring issues, recommendations.
func Render(w io.Writer, r *Report) {
	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "EXECUTIVE RISK SUMMARY REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Report ID:               %s\n", r.ID)
	fmt.Fprintf(w, "Report Generated:        %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Total Incidents Analyzed: %d\n", r.TotalRecords)
	fmt.Fprintln(w, rule)

	section(w, thin, "OVERALL RISK PROFILE")
	fmt.Fprintln(w, "\nSeverity Distribution:")
	for _, sc := range r.Distribution.Counts {
		bar := strings.Repeat("#", int(sc.Percentage/2))
		fmt.Fprintf(w, "  %-12s: %3d incidents (%5.1f%%) %s\n", sc.Severity, sc.Count, sc.Percentage, bar)
	}
	fmt.Fprintf(w, "\nOverall Recurrence Rate: %.1f%%\n", r.Distribution.GlobalRecurrenceRate*100)

	section(w, thin, "HIGH-RISK CATEGORIES (Immediate Attention Required)")
	if len(r.HighRisk) > 0 {
		fmt.Fprintln(w, "\nRisk scores combine frequency, severity, recurrence, and resolution time.")
		fmt.Fprintf(w, "Threshold score: %.2f\n", r.Threshold)
		fmt.Fprintf(w, "\n%-20s %-10s %-12s %-10s %-15s %s\n",
			"Category", "Level", "Risk Score", "Incidents", "Recurrence %", "Avg Resolution")
		fmt.Fprintln(w, thin)
		for _, a := range r.HighRisk {
			fmt.Fprintf(w, "%-20s %-10s %-12.2f %-10d %-15.1f %.1f hours\n",
				a.Category, a.RiskLevel, a.RiskScore, a.IncidentCount, a.RecurrenceRate*100, a.Resolution.Mean)
		}
		top := r.HighRisk[0]
		fmt.Fprintf(w, "\nCRITICAL INSIGHT: '%s' presents the highest risk (score: %.2f) and requires immediate systematic intervention.\n",
			top.Category, top.RiskScore)
	}

	section(w, thin, "RESOLUTION TIME ANALYSIS")
	fmt.Fprintln(w, "\nResolution Time by Category:")
	fmt.Fprintf(w, "\n%-20s %-12s %-15s %-10s %s\n", "Category", "Avg Hours", "Median Hours", "Std Dev", "Range")
	fmt.Fprintln(w, thin)
	for _, a := range r.Aggregates {
		fmt.Fprintf(w, "%-20s %-12.1f %-15.1f %-10.1f %.0f - %.0f\n",
			a.Category, a.Resolution.Mean, a.Resolution.Median, a.Resolution.StdDev,
			a.Resolution.Min, a.Resolution.Max)
	}
	if len(r.BySeverity) > 0 {
		fmt.Fprintln(w, "\nResolution Time by Severity Level:")
		for _, sr := range r.BySeverity {
			fmt.Fprintf(w, "  %-10s: %6.1f hours average (%d incidents)\n",
				sr.Severity, sr.Resolution.Mean, sr.IncidentCount)
		}
	}

	section(w, thin, "RECURRING ISSUES (Systemic Problems)")
	if len(r.Recurring.ByCategory) == 0 {
		fmt.Fprintln(w, "\nNo recurring issues detected.")
	} else {
		fmt.Fprintln(w, "\nRecurring Issues by Category:")
		fmt.Fprintf(w, "\n%-20s %-18s %-22s %s\n",
			"Category", "Recurring Count", "Most Common Severity", "Avg Resolution")
		fmt.Fprintln(w, thin)
		for _, rc := range r.Recurring.ByCategory {
			fmt.Fprintf(w, "%-20s %-18d %-22s %.1f hours\n",
				rc.Category, rc.RecurringCount, rc.MostCommonSeverity, rc.MeanResolutionHours)
		}
		if len(r.Recurring.RootCauses) > 0 {
			fmt.Fprintln(w, "\nTop Recurring Root Causes:")
			for i, cause := range r.Recurring.RootCauses {
				fmt.Fprintf(w, "  %d. %s (%d occurrences)\n", i+1, cause.RootCause, cause.Count)
				fmt.Fprintf(w, "     Affects: %s\n", strings.Join(cause.AffectedCategories, ", "))
			}
		}
	}

	section(w, thin, "KEY RECOMMENDATIONS")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(w, "\n%d. %s\n   %s\n", i+1, rec.Title, rec.Detail)
	}

	if len(r.Warnings) > 0 || len(r.Diagnostics) > 0 {
		section(w, thin, "DATA QUALITY")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warn)
		}
		if len(r.Diagnostics) > 0 {
			fmt.Fprintf(w, "  %d malformed rows were skipped during load:\n", len(r.Diagnostics))
			for _, d := range r.Diagnostics {
				fmt.Fprintf(w, "    %s\n", d)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "END OF EXECUTIVE SUMMARY")
	fmt.Fprintln(w, rule)
}

func section(w io.Writer, thin, title string) {
	fmt.Fprintf(w, "\n> %s\n%s\n", title, thin)
}
