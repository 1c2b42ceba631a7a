// Package loader parses tabular incident sources into validated domain
// records, reporting malformed rows as diagnostics instead of failing the
// whole load.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/riskcraft/riskreg/internal/domain/model"
)

// Required header columns. Additional columns are ignored; order is free.
var requiredColumns = []string{
	"incident_id",
	"category",
	"severity",
	"root_cause",
	"resolution_time_hours",
	"recurrence",
}

// Diagnostic records one skipped row. Row is 1-based and counts the header.
type Diagnostic struct {
	Row    int
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("row %d: %s", d.Row, d.Reason)
}

// Dataset is the loader output: the valid records plus the per-row
// diagnostics for everything that was skipped.
type Dataset struct {
	Records     []model.Incident
	Diagnostics []Diagnostic
}

// Load reads the CSV file at path. A missing or unreadable file, or a header
// without the required columns, fails with ErrDataLoad. Individually bad
// rows are skipped with a diagnostic; if no valid rows remain the load fails
// with ErrEmptyDataset.
func Load(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return parse(ctx, f)
}

func parse(ctx context.Context, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row width validated per row

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrDataLoad, err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	row := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
		}

		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			ds.Diagnostics = append(ds.Diagnostics, Diagnostic{Row: row, Reason: err.Error()})
			continue
		}
		if len(fields) < len(header) {
			ds.Diagnostics = append(ds.Diagnostics, Diagnostic{Row: row, Reason: "too few fields"})
			continue
		}

		rec, err := parseRow(fields, cols)
		if err != nil {
			ds.Diagnostics = append(ds.Diagnostics, Diagnostic{Row: row, Reason: err.Error()})
			continue
		}
		ds.Records = append(ds.Records, rec)
	}

	if len(ds.Records) == 0 {
		return nil, fmt.Errorf("%w (%d rows skipped)", ErrEmptyDataset, len(ds.Diagnostics))
	}
	return ds, nil
}

// columnIndex maps required column names to their positions in the header.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s", ErrDataLoad, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(fields []string, cols map[string]int) (model.Incident, error) {
	get := func(name string) string {
		return strings.TrimSpace(fields[cols[name]])
	}

	sev, err := model.ParseSeverity(get("severity"))
	if err != nil {
		return model.Incident{}, err
	}

	hours, err := strconv.ParseFloat(get("resolution_time_hours"), 64)
	if err != nil {
		return model.Incident{}, fmt.Errorf("invalid resolution_time_hours %q", get("resolution_time_hours"))
	}

	recurring, err := parseRecurrence(get("recurrence"))
	if err != nil {
		return model.Incident{}, err
	}

	rec := model.Incident{
		ID:              get("incident_id"),
		Category:        get("category"),
		Severity:        sev,
		RootCause:       get("root_cause"),
		ResolutionHours: hours,
		Recurring:       recurring,
	}
	if err := rec.Validate(); err != nil {
		return model.Incident{}, err
	}
	return rec, nil
}

// parseRecurrence accepts the Yes/No convention of the source data as well
// as common boolean spellings, case-insensitive.
func parseRecurrence(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1", "y":
		return true, nil
	case "no", "false", "0", "n":
		return false, nil
	default:
		return false, fmt.Errorf("invalid recurrence value %q", s)
	}
}
