package classify

import "github.com/riskcraft/riskreg/internal/domain/model"

// TierPolicy assigns a risk level to one score given the full score
// distribution. Policies are injectable so tiering schemes can be swapped
// without touching the aggregation engine.
type TierPolicy func(score float64, all []float64) model.RiskLevel

// Fixed-score cut points for the default tier policy.
const (
	fixedCriticalScore = 50.0
	fixedHighScore     = 30.0
	fixedMediumScore   = 15.0
)

// FixedScoreTiers maps a score to a level with fixed cut points
// (>=50 Critical, >=30 High, >=15 Medium, else Low). It ignores the
// distribution argument.
func FixedScoreTiers(score float64, _ []float64) model.RiskLevel {
	switch {
	case score >= fixedCriticalScore:
		return model.RiskCritical
	case score >= fixedHighScore:
		return model.RiskHigh
	case score >= fixedMediumScore:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// Percentile cut points for the relative tier policy.
const (
	tierCriticalPercentile = 90.0
	tierHighPercentile     = 75.0
	tierMediumPercentile   = 50.0
)

// PercentileTiers maps a score to a level relative to the score
// distribution: at or above the 90th percentile is Critical, the 75th High,
// the 50th Medium, below that Low.
func PercentileTiers(score float64, all []float64) model.RiskLevel {
	switch {
	case score >= Percentile(all, tierCriticalPercentile):
		return model.RiskCritical
	case score >= Percentile(all, tierHighPercentile):
		return model.RiskHigh
	case score >= Percentile(all, tierMediumPercentile):
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
