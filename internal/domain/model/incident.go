package model

import "fmt"

// Incident represents a single incident record. Records are created once at
// load time and are read-only afterwards.
type Incident struct {
	ID              string   // unique identifier
	Category        string   // open set of category labels
	Severity        Severity // fixed enum, see severity.go
	RootCause       string   // free text
	ResolutionHours float64  // non-negative; zero means instant resolution
	Recurring       bool
}

// Validate reports whether the record satisfies the load-time invariants.
// Violating records are rejected by the loader, never coerced.
func (i Incident) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("%w: empty incident id", ErrInvalidRecord)
	}
	if i.Category == "" {
		return fmt.Errorf("%w: empty category", ErrInvalidRecord)
	}
	if i.Severity < SeverityLow || i.Severity > SeverityCritical {
		return fmt.Errorf("%w: severity out of range", ErrInvalidRecord)
	}
	if i.ResolutionHours < 0 {
		return fmt.Errorf("%w: negative resolution time", ErrInvalidRecord)
	}
	return nil
}
