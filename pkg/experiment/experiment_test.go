package experiment

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/joeclark-phd/bandits/pkg/bandit"
)

func testConfiguration(t *testing.T) Configuration {
	return Configuration{
		WorkingDirectory: t.TempDir(),
		Replications:     4,
		Parallelism:      2,
		Seed:             12345,
	}
}

func testTreatments() []Treatment {
	return []Treatment{
		{Name: "baseline", Config: bandit.Config{Arms: 5, Turns: 20}},
		{Name: "turbulent", Config: bandit.Config{Arms: 5, Turns: 20, Turbulence: 0.5}},
	}
}

func TestNewExperiment(t *testing.T) {
	Convey("While constructing an experiment", t, func() {
		Convey("A name is required", func() {
			_, err := New("", testConfiguration(t), testTreatments())
			So(err, ShouldNotBeNil)
		})

		Convey("At least one treatment is required", func() {
			_, err := New("test", testConfiguration(t), nil)
			So(err, ShouldNotBeNil)
		})

		Convey("At least one replication is required", func() {
			conf := testConfiguration(t)
			conf.Replications = 0
			_, err := New("test", conf, testTreatments())
			So(err, ShouldNotBeNil)
		})

		Convey("Duplicate treatment names are rejected", func() {
			treatments := []Treatment{
				{Name: "same", Config: bandit.Config{}},
				{Name: "same", Config: bandit.Config{}},
			}
			_, err := New("test", testConfiguration(t), treatments)
			So(err, ShouldNotBeNil)
		})

		Convey("An invalid treatment configuration is rejected up front", func() {
			treatments := []Treatment{{Name: "bad", Config: bandit.Config{Arms: 1}}}
			_, err := New("test", testConfiguration(t), treatments)
			So(err, ShouldNotBeNil)
		})

		Convey("A valid design gets a session with a unique id", func() {
			first, err := New("test", testConfiguration(t), testTreatments())
			So(err, ShouldBeNil)
			second, err := New("test", testConfiguration(t), testTreatments())
			So(err, ShouldBeNil)

			So(first.Session().ID, ShouldNotBeEmpty)
			So(first.Session().ID, ShouldNotEqual, second.Session().ID)
			So(first.Session().Name, ShouldContainSubstring, first.Session().ID)
		})
	})
}

func TestRunExperiment(t *testing.T) {
	Convey("While running an experiment", t, func() {
		conf := testConfiguration(t)

		exp, err := New("test-experiment", conf, testTreatments())
		So(err, ShouldBeNil)

		err = exp.Run(context.Background())
		So(err, ShouldBeNil)

		Convey("Results follow treatment declaration order", func() {
			results := exp.Results()
			So(len(results), ShouldEqual, 2)
			So(results[0].Treatment.Name, ShouldEqual, "baseline")
			So(results[1].Treatment.Name, ShouldEqual, "turbulent")
		})

		Convey("Every treatment aggregates all replications", func() {
			for _, result := range exp.Results() {
				So(result.Replications, ShouldEqual, 4)
				So(len(result.FinalScores), ShouldEqual, 4)
				So(len(result.MeanScoreSeries), ShouldEqual, 20)
				So(result.MeanScore, ShouldBeBetweenOrEqual, -20, 20)
			}
		})

		Convey("The experiment directory holds the master log", func() {
			_, err := os.Stat(filepath.Join(exp.ExperimentDirectory(), "Master.log"))
			So(err, ShouldBeNil)
		})

		Convey("Every treatment gets its CSV files", func() {
			for _, result := range exp.Results() {
				treatmentDir := filepath.Join(exp.ExperimentDirectory(), result.Treatment.Name)

				replications, err := os.ReadFile(filepath.Join(treatmentDir, "replications.csv"))
				So(err, ShouldBeNil)
				// Header plus one line per replication.
				lines := strings.Split(strings.TrimSpace(string(replications)), "\n")
				So(len(lines), ShouldEqual, 5)
				So(lines[0], ShouldEqual, "replication,score,knowledge,opinion,prob_explore")

				series, err := os.ReadFile(filepath.Join(treatmentDir, "series.csv"))
				So(err, ShouldBeNil)
				lines = strings.Split(strings.TrimSpace(string(series)), "\n")
				So(len(lines), ShouldEqual, 21)
			}
		})
	})
}

func TestExperimentReproducibility(t *testing.T) {
	Convey("Two experiments with the same seed should agree exactly", t, func() {
		run := func() []TreatmentResult {
			exp, err := New("test-experiment", testConfiguration(t), testTreatments())
			So(err, ShouldBeNil)
			So(exp.Run(context.Background()), ShouldBeNil)
			return exp.Results()
		}

		first := run()
		second := run()

		for i := range first {
			So(second[i].FinalScores, ShouldResemble, first[i].FinalScores)
			So(second[i].MeanScore, ShouldEqual, first[i].MeanScore)
			So(second[i].MeanKnowledgeSeries, ShouldResemble, first[i].MeanKnowledgeSeries)
		}
	})

	Convey("Different base seeds should diverge", t, func() {
		conf := testConfiguration(t)
		conf.Seed = 54321

		exp, err := New("test-experiment", conf, testTreatments())
		So(err, ShouldBeNil)
		So(exp.Run(context.Background()), ShouldBeNil)

		other, err := New("test-experiment", testConfiguration(t), testTreatments())
		So(err, ShouldBeNil)
		So(other.Run(context.Background()), ShouldBeNil)

		So(exp.Results()[0].FinalScores, ShouldNotResemble, other.Results()[0].FinalScores)
	})
}

func TestRunCancellation(t *testing.T) {
	Convey("A cancelled context should abort the experiment", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		conf := testConfiguration(t)
		conf.Replications = 100

		exp, err := New("test-experiment", conf, testTreatments())
		So(err, ShouldBeNil)

		err = exp.Run(ctx)
		So(err, ShouldNotBeNil)
	})
}

func TestReplicationSeed(t *testing.T) {
	Convey("Replication seeds should be unique per treatment and replication", t, func() {
		seen := map[uint64]struct{}{}
		for treatment := 0; treatment < 10; treatment++ {
			for replication := 0; replication < 100; replication++ {
				seed := replicationSeed(12345, treatment, replication)
				_, duplicate := seen[seed]
				So(duplicate, ShouldBeFalse)
				seen[seed] = struct{}{}
			}
		}
	})
}
