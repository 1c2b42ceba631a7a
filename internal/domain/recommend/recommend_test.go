package recommend_test

import (
	"strings"
	"testing"

	"github.com/riskcraft/riskreg/internal/domain/aggregate"
	"github.com/riskcraft/riskreg/internal/domain/model"
	"github.com/riskcraft/riskreg/internal/domain/recommend"
	. "github.com/smartystreets/goconvey/convey"
)

func buildInput(records []model.Incident, slaHours float64) recommend.Input {
	return recommend.Input{
		Aggregates:        aggregate.Compute(records),
		Recurring:         aggregate.DetectRecurring(records),
		Records:           records,
		SLAThresholdHours: slaHours,
	}
}

func TestBuild(t *testing.T) {
	Convey("Given a dataset with a heavily recurring top category", t, func() {
		records := []model.Incident{
			{ID: "1", Category: "Network", Severity: model.SeverityCritical, RootCause: "Configuration drift", ResolutionHours: 50, Recurring: true},
			{ID: "2", Category: "Network", Severity: model.SeverityCritical, RootCause: "Configuration drift", ResolutionHours: 40, Recurring: true},
			{ID: "3", Category: "Network", Severity: model.SeverityHigh, RootCause: "Hardware failure", ResolutionHours: 30, Recurring: false},
			{ID: "4", Category: "Facilities", Severity: model.SeverityLow, RootCause: "Wear", ResolutionHours: 2, Recurring: false},
		}

		recs := recommend.Build(buildInput(records, 0))

		Convey("Then a root-cause-elimination recommendation names the top category and cause", func() {
			So(recs[0].Title, ShouldContainSubstring, "Network")
			So(recs[0].Detail, ShouldContainSubstring, "Configuration drift")
			So(recs[0].Facts.Category, ShouldEqual, "Network")
			So(recs[0].Facts.RootCause, ShouldEqual, "Configuration drift")
			So(recs[0].Facts.RecurrenceRate, ShouldBeGreaterThan, 0.3)
		})

		Convey("Then the recurring categories trigger a process-redesign recommendation", func() {
			So(containsTitle(recs, "Process Redesign"), ShouldBeTrue)
		})

		Convey("Then critical incidents trigger a response-capability recommendation", func() {
			var found bool
			for _, r := range recs {
				if strings.Contains(r.Title, "Critical Incident Response") {
					found = true
					So(r.Facts.CriticalCount, ShouldEqual, 2)
					So(r.Facts.MeanResolutionHours, ShouldEqual, 45)
				}
			}
			So(found, ShouldBeTrue)
		})

		Convey("Then the slowest category gets a resolution-optimization recommendation", func() {
			var found bool
			for _, r := range recs {
				if strings.Contains(r.Title, "Optimize Resolution Processes") {
					found = true
					So(r.Facts.Category, ShouldEqual, "Network")
				}
			}
			So(found, ShouldBeTrue)
		})

		Convey("Then the monitoring recommendation always closes the list", func() {
			So(recs[len(recs)-1].Title, ShouldContainSubstring, "Continuous Monitoring")
		})

		Convey("Then the result is deterministic", func() {
			So(recommend.Build(buildInput(records, 0)), ShouldResemble, recs)
		})
	})

	Convey("Given an SLA threshold", t, func() {
		records := []model.Incident{
			{ID: "1", Category: "Slow", Severity: model.SeverityLow, RootCause: "x", ResolutionHours: 30, Recurring: false},
			{ID: "2", Category: "Fast", Severity: model.SeverityLow, RootCause: "y", ResolutionHours: 2, Recurring: false},
		}

		Convey("When a category's mean resolution exceeds it", func() {
			recs := recommend.Build(buildInput(records, 24))

			Convey("Then a resourcing recommendation names the worst offender", func() {
				var found bool
				for _, r := range recs {
					if strings.Contains(r.Title, "Increase Resolution Capacity") {
						found = true
						So(r.Facts.Category, ShouldEqual, "Slow")
						So(r.Facts.SLAThresholdHours, ShouldEqual, 24)
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When every category is within the SLA", func() {
			recs := recommend.Build(buildInput(records, 100))

			Convey("Then no resourcing recommendation appears", func() {
				So(containsTitle(recs, "Increase Resolution Capacity"), ShouldBeFalse)
			})
		})

		Convey("When the SLA is zero", func() {
			recs := recommend.Build(buildInput(records, 0))

			Convey("Then the rule is disabled", func() {
				So(containsTitle(recs, "Increase Resolution Capacity"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a quiet dataset with no recurrence and no criticals", t, func() {
		records := []model.Incident{
			{ID: "1", Category: "Ops", Severity: model.SeverityLow, RootCause: "x", ResolutionHours: 1, Recurring: false},
			{ID: "2", Category: "Dev", Severity: model.SeverityMedium, RootCause: "y", ResolutionHours: 2, Recurring: false},
		}

		recs := recommend.Build(buildInput(records, 0))

		Convey("Then only the always-on recommendations fire", func() {
			So(recs, ShouldHaveLength, 2)
			So(recs[0].Title, ShouldContainSubstring, "Optimize Resolution Processes")
			So(recs[1].Title, ShouldContainSubstring, "Continuous Monitoring")
		})
	})

	Convey("Given no aggregates", t, func() {
		Convey("Then no recommendations are produced", func() {
			So(recommend.Build(recommend.Input{}), ShouldBeEmpty)
		})
	})
}

func containsTitle(recs []recommend.Recommendation, fragment string) bool {
	for _, r := range recs {
		if strings.Contains(r.Title, fragment) {
			return true
		}
	}
	return false
}
