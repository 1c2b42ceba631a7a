package aggregate

import (
	"sort"

	"github.com/riskcraft/riskreg/internal/domain/model"
)

// topRootCauses caps the root-cause frequency table.
const topRootCauses = 10

// DetectRecurring filters the record set to recurring incidents and groups
// them by category and by exact root-cause string. Category rows sort by
// recurring count descending then category ascending; root causes sort by
// occurrence count descending then root cause ascending, truncated to the
// top ten. An empty analysis is returned when nothing recurs.
func DetectRecurring(records []model.Incident) model.RecurringAnalysis {
	var recurring []model.Incident
	for _, r := range records {
		if r.Recurring {
			recurring = append(recurring, r)
		}
	}
	if len(recurring) == 0 {
		return model.RecurringAnalysis{}
	}

	return model.RecurringAnalysis{
		ByCategory: recurringByCategory(recurring),
		RootCauses: rootCauseTable(recurring),
	}
}

func recurringByCategory(recurring []model.Incident) []model.RecurringCategory {
	groups := make(map[string][]model.Incident)
	for _, r := range recurring {
		groups[r.Category] = append(groups[r.Category], r)
	}

	out := make([]model.RecurringCategory, 0, len(groups))
	for category, group := range groups {
		var hours float64
		sevCounts := make(map[model.Severity]int)
		for _, r := range group {
			hours += r.ResolutionHours
			sevCounts[r.Severity]++
		}
		out = append(out, model.RecurringCategory{
			Category:            category,
			RecurringCount:      len(group),
			MostCommonSeverity:  mostCommonSeverity(sevCounts),
			MeanResolutionHours: hours / float64(len(group)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].RecurringCount != out[j].RecurringCount {
			return out[i].RecurringCount > out[j].RecurringCount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// mostCommonSeverity breaks ties toward the more severe level.
func mostCommonSeverity(counts map[model.Severity]int) model.Severity {
	var best model.Severity
	bestCount := -1
	for _, sev := range model.Severities {
		if counts[sev] > bestCount {
			best = sev
			bestCount = counts[sev]
		}
	}
	return best
}

func rootCauseTable(recurring []model.Incident) []model.RootCauseCount {
	counts := make(map[string]*model.RootCauseCount)
	order := make([]string, 0)
	for _, r := range recurring {
		rc, ok := counts[r.RootCause]
		if !ok {
			rc = &model.RootCauseCount{RootCause: r.RootCause}
			counts[r.RootCause] = rc
			order = append(order, r.RootCause)
		}
		rc.Count++
		if !contains(rc.AffectedCategories, r.Category) {
			rc.AffectedCategories = append(rc.AffectedCategories, r.Category)
		}
	}

	out := make([]model.RootCauseCount, 0, len(order))
	for _, cause := range order {
		out = append(out, *counts[cause])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].RootCause < out[j].RootCause
	})
	if len(out) > topRootCauses {
		out = out[:topRootCauses]
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
