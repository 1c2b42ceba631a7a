package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskcraft/riskreg/internal/domain/model"
)

// Mitigation trigger thresholds for risk register entries.
const (
	mitigationRecurrenceRate  = 0.5
	mitigationResolutionHours = 30.0
	mitigationIncidentCount   = 8
)

var registerHeader = []string{
	"risk_id", "category", "description", "risk_level", "likelihood", "impact",
	"risk_score", "incident_count", "avg_resolution_hours", "recurrence_rate_pct",
	"mitigation_strategy", "status", "review_date",
}

// registerRows builds one risk register entry per high-risk category, in
// risk-score order. Risk ids are sequential (RISK-001, ...), review date is
// the report generation date.
func registerRows(r *Report) [][]string {
	rows := make([][]string, 0, len(r.HighRisk))
	for i, a := range r.HighRisk {
		rows = append(rows, []string{
			fmt.Sprintf("RISK-%03d", i+1),
			a.Category,
			registerDescription(a),
			string(a.RiskLevel),
			string(a.Likelihood),
			string(a.Impact),
			formatFloat(a.RiskScore),
			strconv.Itoa(a.IncidentCount),
			strconv.FormatFloat(a.Resolution.Mean, 'f', 1, 64),
			strconv.FormatFloat(a.RecurrenceRate*100, 'f', 1, 64),
			mitigationStrategy(a),
			registerStatus(a.RiskLevel),
			r.GeneratedAt.Format("2006-01-02"),
		})
	}
	return rows
}

func registerDescription(a model.CategoryAggregate) string {
	recurrence := ""
	if a.RecurringCount > 0 {
		recurrence = fmt.Sprintf(" with %.0f%% recurrence rate", a.RecurrenceRate*100)
	}
	return fmt.Sprintf(
		"Elevated incident rate in %s category (%d incidents%s). Average resolution time of %.1f hours indicates potential resource or process constraints.",
		a.Category, a.IncidentCount, recurrence, a.Resolution.Mean)
}

func mitigationStrategy(a model.CategoryAggregate) string {
	var actions []string
	if a.RecurrenceRate > mitigationRecurrenceRate {
		actions = append(actions, "Conduct root cause analysis to address systemic issues")
	}
	if a.Resolution.Mean > mitigationResolutionHours {
		actions = append(actions, "Review and optimize incident response procedures")
	}
	if a.IncidentCount > mitigationIncidentCount {
		actions = append(actions, "Implement preventive controls to reduce incident frequency")
	}
	if len(actions) == 0 {
		return "Monitor trends and maintain current controls"
	}
	return strings.Join(actions, "; ")
}

func registerStatus(level model.RiskLevel) string {
	if level == model.RiskCritical || level == model.RiskHigh {
		return "Active - Mitigation Required"
	}
	return "Active - Monitoring"
}
