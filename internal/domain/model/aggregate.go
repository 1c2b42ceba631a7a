package model

// RiskLevel is an ordinal classification label shared by risk level,
// likelihood, and impact.
type RiskLevel string

const (
	RiskCritical RiskLevel = "Critical"
	RiskHigh     RiskLevel = "High"
	RiskMedium   RiskLevel = "Medium"
	RiskLow      RiskLevel = "Low"
)

// ResolutionStats holds the five resolution-time statistics over a group of
// incidents. StdDev is the population standard deviation, zero for a single
// record.
type ResolutionStats struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
	StdDev float64
}

// CategoryAggregate is the derived risk view of a single category. It is a
// pure function of the incidents sharing the category and is recomputed
// wholesale on each run.
type CategoryAggregate struct {
	Category            string
	IncidentCount       int     // >= 1 for every included category
	SeverityWeightedAvg float64 // mean of per-record severity weights
	RecurrenceRate      float64 // in [0,1]
	RecurringCount      int
	Resolution          ResolutionStats
	RiskScore           float64

	// Assigned by the classifier; zero values until then.
	RiskLevel  RiskLevel
	Likelihood RiskLevel
	Impact     RiskLevel
	HighRisk   bool
}

// SeverityCount is one row of the severity distribution.
type SeverityCount struct {
	Severity   Severity
	Count      int
	Percentage float64 // of all records, 0-100
}

// SeverityDistribution summarizes severities across the whole dataset.
type SeverityDistribution struct {
	Total                int
	Counts               []SeverityCount // in display order, most severe first
	GlobalRecurrenceRate float64         // recurring / total, in [0,1]
}

// SeverityResolution keys the resolution-time statistics by severity.
type SeverityResolution struct {
	Severity      Severity
	IncidentCount int
	Resolution    ResolutionStats
}

// RecurringCategory summarizes the recurring incidents of one category.
type RecurringCategory struct {
	Category            string
	RecurringCount      int
	MostCommonSeverity  Severity
	MeanResolutionHours float64
}

// RootCauseCount is one row of the recurring root-cause frequency table.
type RootCauseCount struct {
	RootCause          string
	Count              int
	AffectedCategories []string // unique, in first-seen order
}

// RecurringAnalysis is the output of recurring-issue detection.
type RecurringAnalysis struct {
	ByCategory []RecurringCategory // sorted by count desc, category asc
	RootCauses []RootCauseCount    // sorted by count desc, root cause asc
}
