// Package aggregate implements the risk aggregation engine: it groups
// incident records by category and severity and derives the composite risk
// metrics consumed by the classifier and the report.
package aggregate

import (
	"sort"

	"github.com/riskcraft/riskreg/internal/domain/model"
)

// resolutionDamping divides the mean resolution time before it is added to
// the composite score, so hour-scale durations do not dominate the
// frequency and severity terms.
const resolutionDamping = 10.0

// Compute partitions records by category and derives one CategoryAggregate
// per partition. The result is sorted by risk score descending; ties break
// by incident count descending, then category name ascending, so the order
// is total and deterministic. Compute is a pure function: the same records
// always yield identical aggregates.
func Compute(records []model.Incident) []model.CategoryAggregate {
	groups := make(map[string][]model.Incident)
	for _, r := range records {
		groups[r.Category] = append(groups[r.Category], r)
	}

	aggs := make([]model.CategoryAggregate, 0, len(groups))
	for category, group := range groups {
		aggs = append(aggs, computeOne(category, group))
	}

	sort.Slice(aggs, func(i, j int) bool {
		a, b := aggs[i], aggs[j]
		if a.RiskScore != b.RiskScore {
			return a.RiskScore > b.RiskScore
		}
		if a.IncidentCount != b.IncidentCount {
			return a.IncidentCount > b.IncidentCount
		}
		return a.Category < b.Category
	})
	return aggs
}

func computeOne(category string, group []model.Incident) model.CategoryAggregate {
	count := len(group)

	var weightSum float64
	var recurring int
	hours := make([]float64, 0, count)
	for _, r := range group {
		weightSum += r.Severity.Weight()
		if r.Recurring {
			recurring++
		}
		hours = append(hours, r.ResolutionHours)
	}

	severityAvg := weightSum / float64(count)
	recurrenceRate := float64(recurring) / float64(count)
	stats := resolutionStats(hours)

	// Frequency and severity multiply, recurrence amplifies the base score
	// (zero recurrence leaves it unchanged), resolution time adds damped.
	score := float64(count)*severityAvg*(1+recurrenceRate) + stats.Mean/resolutionDamping

	return model.CategoryAggregate{
		Category:            category,
		IncidentCount:       count,
		SeverityWeightedAvg: severityAvg,
		RecurrenceRate:      recurrenceRate,
		RecurringCount:      recurring,
		Resolution:          stats,
		RiskScore:           score,
	}
}

// Distribution computes the severity distribution and the global recurrence
// rate over the full record set.
func Distribution(records []model.Incident) model.SeverityDistribution {
	total := len(records)
	dist := model.SeverityDistribution{Total: total}
	if total == 0 {
		return dist
	}

	counts := make(map[model.Severity]int)
	var recurring int
	for _, r := range records {
		counts[r.Severity]++
		if r.Recurring {
			recurring++
		}
	}

	for _, sev := range model.Severities {
		dist.Counts = append(dist.Counts, model.SeverityCount{
			Severity:   sev,
			Count:      counts[sev],
			Percentage: float64(counts[sev]) / float64(total) * 100,
		})
	}
	dist.GlobalRecurrenceRate = float64(recurring) / float64(total)
	return dist
}

// ResolutionBySeverity computes the resolution-time statistics for each
// severity level present in the dataset, in display order.
func ResolutionBySeverity(records []model.Incident) []model.SeverityResolution {
	hoursBySev := make(map[model.Severity][]float64)
	for _, r := range records {
		hoursBySev[r.Severity] = append(hoursBySev[r.Severity], r.ResolutionHours)
	}

	out := make([]model.SeverityResolution, 0, len(hoursBySev))
	for _, sev := range model.Severities {
		hours, ok := hoursBySev[sev]
		if !ok {
			continue
		}
		out = append(out, model.SeverityResolution{
			Severity:      sev,
			IncidentCount: len(hours),
			Resolution:    resolutionStats(hours),
		})
	}
	return out
}
