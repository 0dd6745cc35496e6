package experiment

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/joeclark-phd/bandits/pkg/bandit"
)

func TestCross(t *testing.T) {
	Convey("While building a factorial design", t, func() {
		strategies := []float64{0.25, 0.5}
		turbulences := []float64{0, 0.04, 0.32}

		treatments := Cross(strategies, turbulences, bandit.Config{Arms: 10, Turns: 500})

		Convey("One treatment per combination is produced", func() {
			So(len(treatments), ShouldEqual, 6)
		})

		Convey("Each treatment carries its own parameter pair", func() {
			So(treatments[0].Config.Strategy, ShouldEqual, 0.25)
			So(treatments[0].Config.Turbulence, ShouldEqual, 0)
			So(treatments[5].Config.Strategy, ShouldEqual, 0.5)
			So(treatments[5].Config.Turbulence, ShouldEqual, 0.32)
		})

		Convey("Names are unique and readable", func() {
			seen := map[string]struct{}{}
			for _, treatment := range treatments {
				So(treatment.Name, ShouldContainSubstring, "strategy=")
				So(treatment.Name, ShouldContainSubstring, "turbulence=")
				_, duplicate := seen[treatment.Name]
				So(duplicate, ShouldBeFalse)
				seen[treatment.Name] = struct{}{}
			}
		})

		Convey("The base configuration is preserved", func() {
			for _, treatment := range treatments {
				So(treatment.Config.Arms, ShouldEqual, 10)
				So(treatment.Config.Turns, ShouldEqual, 500)
			}
		})
	})
}

func TestPrepareSummaryData(t *testing.T) {
	Convey("While preparing the summary table", t, func() {
		results := []TreatmentResult{
			{
				Treatment:    Treatment{Name: "baseline"},
				Replications: 100,
				MeanScore:    35.25, StdDevScore: 4.5,
				MeanKnowledge: 0.9, StdDevKnowledge: 0.01,
				MeanOpinion: 0.2, StdDevOpinion: 0.05,
				MeanProbExplore: 0.1, StdDevProbExplore: 0.02,
			},
		}

		data := prepareSummaryData(results)

		So(len(data), ShouldEqual, 1)
		So(data[0][0], ShouldEqual, "baseline")
		So(data[0][1], ShouldEqual, "100")
		So(data[0][2], ShouldEqual, "35.250")
		So(strings.Count(strings.Join(data[0], ","), ","), ShouldEqual, 9)
	})
}
