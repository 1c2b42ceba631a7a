// Package classify maps composite risk scores to discrete risk levels and
// to likelihood and impact labels.
package classify

import (
	"fmt"
	"sort"

	"github.com/riskcraft/riskreg/internal/domain/model"
)

// defaultThresholdPercentile is the percentile at or above which a category
// is considered high-risk.
const defaultThresholdPercentile = 75.0

// Impact cut points over the mean resolution time in hours.
const (
	impactCriticalHours = 40.0
	impactHighHours     = 20.0
	impactMediumHours   = 10.0
)

// Impact cut points over the severity-weighted average.
const (
	impactCriticalWeight = 3.5
	impactHighWeight     = 2.5
	impactMediumWeight   = 1.5
)

// Classifier assigns risk levels, likelihood, and impact to category
// aggregates using an injectable tier policy and a percentile threshold.
type Classifier struct {
	thresholdPercentile float64
	tiers               TierPolicy
	strict              bool
}

// Result is the classifier output. Aggregates keep the engine's ordering,
// with classification fields populated.
type Result struct {
	Aggregates []model.CategoryAggregate
	HighRisk   []model.CategoryAggregate // subset at/above the threshold
	Threshold  float64                   // score at the configured percentile
	Warnings   []string
}

// New creates a Classifier with the given options.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		thresholdPercentile: defaultThresholdPercentile,
		tiers:               FixedScoreTiers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify assigns classification labels to the aggregates. The input slice
// is not modified; a classified copy is returned. With fewer than two
// categories the percentile is meaningless: unless strict mode is set, the
// single category is labeled high-risk and a warning is recorded.
func (c *Classifier) Classify(aggs []model.CategoryAggregate) (Result, error) {
	if len(aggs) == 0 {
		return Result{}, ErrNoAggregates
	}

	out := make([]model.CategoryAggregate, len(aggs))
	copy(out, aggs)

	scores := make([]float64, len(out))
	counts := make([]int, len(out))
	for i, a := range out {
		scores[i] = a.RiskScore
		counts[i] = a.IncidentCount
	}

	res := Result{}
	if len(out) < 2 {
		if c.strict {
			return Result{}, fmt.Errorf("%w: need at least 2 categories, got %d", ErrInsufficientData, len(out))
		}
		res.Warnings = append(res.Warnings,
			"single category in dataset; percentile threshold undefined, treating it as high-risk")
		res.Threshold = out[0].RiskScore
	} else {
		res.Threshold = Percentile(scores, c.thresholdPercentile)
	}

	for i := range out {
		out[i].RiskLevel = c.tiers(out[i].RiskScore, scores)
		out[i].Likelihood = likelihood(out[i].IncidentCount, counts)
		out[i].Impact = impact(out[i].Resolution.Mean, out[i].SeverityWeightedAvg)
		out[i].HighRisk = out[i].RiskScore >= res.Threshold
		if out[i].HighRisk {
			res.HighRisk = append(res.HighRisk, out[i])
		}
	}
	res.Aggregates = out
	return res, nil
}

// likelihood maps the incident-count rank across categories to an ordinal
// label: categories in the top quartile by count are Critical, and so on
// down. A lone category gets High.
func likelihood(count int, all []int) model.RiskLevel {
	if len(all) < 2 {
		return model.RiskHigh
	}

	sorted := make([]int, len(all))
	copy(sorted, all)
	sort.Ints(sorted)

	// Fraction of categories with a strictly smaller count.
	below := 0
	for _, c := range sorted {
		if c < count {
			below++
		}
	}
	frac := float64(below) / float64(len(sorted)-1)

	switch {
	case frac >= 0.75:
		return model.RiskCritical
	case frac >= 0.5:
		return model.RiskHigh
	case frac >= 0.25:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// impact derives an ordinal label from mean resolution time and the
// severity-weighted average jointly; the higher of the two mappings wins.
func impact(meanHours, severityAvg float64) model.RiskLevel {
	byHours := model.RiskLow
	switch {
	case meanHours >= impactCriticalHours:
		byHours = model.RiskCritical
	case meanHours >= impactHighHours:
		byHours = model.RiskHigh
	case meanHours >= impactMediumHours:
		byHours = model.RiskMedium
	}

	byWeight := model.RiskLow
	switch {
	case severityAvg >= impactCriticalWeight:
		byWeight = model.RiskCritical
	case severityAvg >= impactHighWeight:
		byWeight = model.RiskHigh
	case severityAvg >= impactMediumWeight:
		byWeight = model.RiskMedium
	}

	if levelRank(byWeight) > levelRank(byHours) {
		return byWeight
	}
	return byHours
}

func levelRank(l model.RiskLevel) int {
	switch l {
	case model.RiskCritical:
		return 4
	case model.RiskHigh:
		return 3
	case model.RiskMedium:
		return 2
	default:
		return 1
	}
}
