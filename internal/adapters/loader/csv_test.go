package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskcraft/riskreg/internal/adapters/loader"
	"github.com/riskcraft/riskreg/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "incidents.csv")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

const validHeader = "incident_id,category,severity,root_cause,resolution_time_hours,recurrence\n"

func TestLoad(t *testing.T) {
	ctx := context.Background()

	Convey("Given a well-formed incident CSV", t, func() {
		path := writeCSV(t, validHeader+
			"INC-001,Network,Critical,Configuration drift,10.5,Yes\n"+
			"INC-002,Network,High,Hardware failure,20,No\n"+
			"INC-003,Security,Low,Missing patch,0,no\n")

		ds, err := loader.Load(ctx, path)

		Convey("Then all rows load with no diagnostics", func() {
			So(err, ShouldBeNil)
			So(ds.Records, ShouldHaveLength, 3)
			So(ds.Diagnostics, ShouldBeEmpty)
		})

		Convey("Then fields are parsed into the domain model", func() {
			So(err, ShouldBeNil)
			first := ds.Records[0]
			So(first.ID, ShouldEqual, "INC-001")
			So(first.Category, ShouldEqual, "Network")
			So(first.Severity, ShouldEqual, model.SeverityCritical)
			So(first.RootCause, ShouldEqual, "Configuration drift")
			So(first.ResolutionHours, ShouldEqual, 10.5)
			So(first.Recurring, ShouldBeTrue)

			Convey("And zero resolution time is accepted", func() {
				So(ds.Records[2].ResolutionHours, ShouldEqual, 0)
				So(ds.Records[2].Recurring, ShouldBeFalse)
			})
		})
	})

	Convey("Given a CSV with extra columns and shuffled order", t, func() {
		path := writeCSV(t, "notes,severity,recurrence,incident_id,category,root_cause,resolution_time_hours\n"+
			"ignored,Medium,Yes,INC-010,Ops,Flaky job,4\n")

		Convey("Then required columns are found by name", func() {
			ds, err := loader.Load(ctx, path)
			So(err, ShouldBeNil)
			So(ds.Records, ShouldHaveLength, 1)
			So(ds.Records[0].ID, ShouldEqual, "INC-010")
			So(ds.Records[0].Severity, ShouldEqual, model.SeverityMedium)
		})
	})

	Convey("Given malformed rows among valid ones", t, func() {
		path := writeCSV(t, validHeader+
			"INC-001,Network,Critical,drift,10,Yes\n"+
			"INC-002,Network,Extreme,drift,10,Yes\n"+ // bad severity
			"INC-003,Network,High,drift,ten,Yes\n"+ // non-numeric hours
			"INC-004,Network,High,drift,-5,Yes\n"+ // negative hours
			"INC-005,,High,drift,5,Yes\n"+ // empty category
			"INC-006,Network,High,drift,5,maybe\n"+ // bad recurrence
			"INC-007,Database,Low,locks,2,No\n")

		ds, err := loader.Load(ctx, path)

		Convey("Then bad rows are skipped with diagnostics and good rows survive", func() {
			So(err, ShouldBeNil)
			So(ds.Records, ShouldHaveLength, 2)
			So(ds.Diagnostics, ShouldHaveLength, 5)
		})

		Convey("Then diagnostics carry the 1-based row numbers", func() {
			So(err, ShouldBeNil)
			So(ds.Diagnostics[0].Row, ShouldEqual, 3)
			So(ds.Diagnostics[0].Reason, ShouldContainSubstring, "severity")
			So(ds.Diagnostics[3].Reason, ShouldContainSubstring, "category")
		})
	})

	Convey("Given a CSV whose rows are all malformed", t, func() {
		path := writeCSV(t, validHeader+
			"INC-001,Network,Bogus,drift,10,Yes\n"+
			"INC-002,Network,High,drift,-1,Yes\n")

		Convey("Then the load fails with ErrEmptyDataset", func() {
			_, err := loader.Load(ctx, path)
			So(errors.Is(err, loader.ErrEmptyDataset), ShouldBeTrue)
		})
	})

	Convey("Given a CSV missing required columns", t, func() {
		path := writeCSV(t, "incident_id,category,severity\nINC-001,Network,High\n")

		Convey("Then the load fails with ErrDataLoad naming the columns", func() {
			_, err := loader.Load(ctx, path)
			So(errors.Is(err, loader.ErrDataLoad), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "root_cause")
			So(err.Error(), ShouldContainSubstring, "resolution_time_hours")
		})
	})

	Convey("Given a missing file", t, func() {
		Convey("Then the load fails with ErrDataLoad", func() {
			_, err := loader.Load(ctx, filepath.Join(t.TempDir(), "absent.csv"))
			So(errors.Is(err, loader.ErrDataLoad), ShouldBeTrue)
		})
	})

	Convey("Given an empty file", t, func() {
		path := writeCSV(t, "")

		Convey("Then the load fails with ErrDataLoad", func() {
			_, err := loader.Load(ctx, path)
			So(errors.Is(err, loader.ErrDataLoad), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		path := writeCSV(t, validHeader+"INC-001,Network,High,drift,1,No\n")
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		Convey("Then the load fails with ErrDataLoad", func() {
			_, err := loader.Load(cancelled, path)
			So(errors.Is(err, loader.ErrDataLoad), ShouldBeTrue)
		})
	})
}
