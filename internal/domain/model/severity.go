// Package model contains domain models passed between pipeline stages.
package model

import (
	"fmt"
	"strings"
)

// Severity is the ordinal severity of an incident. The numeric value doubles
// as the risk weight used for severity-weighted averages (Critical=4 ... Low=1).
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// Severities lists all severities in display order, most severe first.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Weight returns the numeric risk weight of the severity.
func (s Severity) Weight() float64 {
	return float64(s)
}

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "Critical"
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	case SeverityLow:
		return "Low"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ParseSeverity maps a case-insensitive label to a Severity.
func ParseSeverity(label string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "critical":
		return SeverityCritical, nil
	case "high":
		return SeverityHigh, nil
	case "medium":
		return SeverityMedium, nil
	case "low":
		return SeverityLow, nil
	default:
		return 0, fmt.Errorf("%w: unknown severity %q", ErrInvalidRecord, label)
	}
}
