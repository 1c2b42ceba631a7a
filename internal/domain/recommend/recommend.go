// Package recommend derives ordered, deterministic action items from the
// classified aggregates and the recurring-issue analysis. Each
// recommendation carries the structured facts behind its wording so
// renderers can phrase them differently without re-deriving numbers.
package recommend

import (
	"fmt"

	"github.com/riskcraft/riskreg/internal/domain/model"
)

// recurrenceActionRate is the recurrence rate above which the top category
// warrants a root-cause-elimination recommendation.
const recurrenceActionRate = 0.3

// Facts carries the numbers a recommendation was derived from.
type Facts struct {
	Category            string
	RootCause           string
	RecurrenceRate      float64
	MeanResolutionHours float64
	IncidentCount       int
	SLAThresholdHours   float64
	RecurringCategories int
	CriticalCount       int
}

// Recommendation is one rendered action item.
type Recommendation struct {
	Title  string
	Detail string
	Facts  Facts
}

// Input bundles the analysis outputs the rules are evaluated against.
// Aggregates must carry classifier labels and the engine's ordering.
type Input struct {
	Aggregates        []model.CategoryAggregate
	Recurring         model.RecurringAnalysis
	Records           []model.Incident
	SLAThresholdHours float64 // zero disables the SLA rule
}

// Build evaluates the rule set in a fixed order and returns the triggered
// recommendations. It is a pure function of its input.
func Build(in Input) []Recommendation {
	var out []Recommendation
	if len(in.Aggregates) == 0 {
		return out
	}

	if r, ok := rootCauseElimination(in); ok {
		out = append(out, r)
	}
	if r, ok := slaBreach(in); ok {
		out = append(out, r)
	}
	if r, ok := processRedesign(in); ok {
		out = append(out, r)
	}
	if r, ok := criticalResponse(in); ok {
		out = append(out, r)
	}
	out = append(out, resolutionOptimization(in))
	out = append(out, continuousMonitoring())
	return out
}

// rootCauseElimination fires when the top-risk category recurs more than 30%
// of the time, naming its most frequent root cause.
func rootCauseElimination(in Input) (Recommendation, bool) {
	top := in.Aggregates[0]
	if top.RecurrenceRate <= recurrenceActionRate {
		return Recommendation{}, false
	}

	cause := topRootCauseFor(in.Recurring, top.Category)
	detail := fmt.Sprintf(
		"'%s' presents the highest risk with a %.0f%% recurrence rate. Eliminate the dominant root cause (%s) through targeted root cause analysis and preventive controls.",
		top.Category, top.RecurrenceRate*100, cause)
	return Recommendation{
		Title:  fmt.Sprintf("Implement Risk Mitigation Plan for '%s'", top.Category),
		Detail: detail,
		Facts: Facts{
			Category:       top.Category,
			RootCause:      cause,
			RecurrenceRate: top.RecurrenceRate,
			IncidentCount:  top.IncidentCount,
		},
	}, true
}

// slaBreach fires when any category's mean resolution time exceeds the
// configured SLA threshold, naming the worst offender.
func slaBreach(in Input) (Recommendation, bool) {
	if in.SLAThresholdHours <= 0 {
		return Recommendation{}, false
	}

	var worst *model.CategoryAggregate
	for i := range in.Aggregates {
		a := &in.Aggregates[i]
		if a.Resolution.Mean <= in.SLAThresholdHours {
			continue
		}
		if worst == nil || a.Resolution.Mean > worst.Resolution.Mean {
			worst = a
		}
	}
	if worst == nil {
		return Recommendation{}, false
	}

	return Recommendation{
		Title: fmt.Sprintf("Increase Resolution Capacity for '%s'", worst.Category),
		Detail: fmt.Sprintf(
			"Mean resolution time of %.1f hours exceeds the %.1f hour SLA target. Review staffing, escalation paths, and tooling for this category.",
			worst.Resolution.Mean, in.SLAThresholdHours),
		Facts: Facts{
			Category:            worst.Category,
			MeanResolutionHours: worst.Resolution.Mean,
			SLAThresholdHours:   in.SLAThresholdHours,
			IncidentCount:       worst.IncidentCount,
		},
	}, true
}

func processRedesign(in Input) (Recommendation, bool) {
	n := len(in.Recurring.ByCategory)
	if n == 0 {
		return Recommendation{}, false
	}
	return Recommendation{
		Title: "Address Systemic Issues Through Process Redesign",
		Detail: fmt.Sprintf(
			"Recurring issues span %d categories. Implement preventive controls rather than reactive fixes.", n),
		Facts: Facts{RecurringCategories: n},
	}, true
}

func criticalResponse(in Input) (Recommendation, bool) {
	var count int
	var hours float64
	for _, r := range in.Records {
		if r.Severity == model.SeverityCritical {
			count++
			hours += r.ResolutionHours
		}
	}
	if count == 0 {
		return Recommendation{}, false
	}
	mean := hours / float64(count)
	return Recommendation{
		Title: "Strengthen Critical Incident Response Capabilities",
		Detail: fmt.Sprintf(
			"%d critical incidents averaged %.1f hours to resolve. Enhance emergency response procedures and resource allocation.",
			count, mean),
		Facts: Facts{CriticalCount: count, MeanResolutionHours: mean},
	}, true
}

// resolutionOptimization always names the slowest category by mean
// resolution time.
func resolutionOptimization(in Input) Recommendation {
	slowest := in.Aggregates[0]
	for _, a := range in.Aggregates[1:] {
		if a.Resolution.Mean > slowest.Resolution.Mean {
			slowest = a
		}
	}
	return Recommendation{
		Title: fmt.Sprintf("Optimize Resolution Processes for '%s'", slowest.Category),
		Detail: fmt.Sprintf(
			"The slowest category averages %.1f hours per incident. Investigate delays and reduce resolution time through process improvements, training, or automation.",
			slowest.Resolution.Mean),
		Facts: Facts{
			Category:            slowest.Category,
			MeanResolutionHours: slowest.Resolution.Mean,
			IncidentCount:       slowest.IncidentCount,
		},
	}
}

func continuousMonitoring() Recommendation {
	return Recommendation{
		Title: "Enhance Continuous Monitoring and Compliance Framework",
		Detail: "Establish regular executive reviews and alerting on high-risk patterns " +
			"to ensure prompt action on emerging risks.",
	}
}

// topRootCauseFor returns the most frequent recurring root cause affecting
// the given category, or "unknown" when none is recorded.
func topRootCauseFor(rec model.RecurringAnalysis, category string) string {
	for _, rc := range rec.RootCauses {
		for _, c := range rc.AffectedCategories {
			if c == category {
				return rc.RootCause
			}
		}
	}
	return "unknown"
}
