// Package experiment drives multi-armed bandit experiments: a set of
// treatments, each replicated a configurable number of times, with
// results aggregated per treatment, written to CSV files in a dedicated
// experiment directory and optionally recorded in a metadata database.
package experiment

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/joeclark-phd/bandits/pkg/bandit"
	"github.com/joeclark-phd/bandits/pkg/conf"
	"github.com/joeclark-phd/bandits/pkg/metadata"
)

// Experiment is the handle for one experiment: a session, a working
// directory, treatments and their aggregated results.
type Experiment struct {
	name       string
	conf       Configuration
	treatments []Treatment
	session    Session

	startingDirectory   string
	experimentDirectory string
	startTime           time.Time

	results []TreatmentResult
}

// New validates the experimental design and returns an Experiment ready
// to Run. Every treatment configuration is validated up front so a bad
// treatment cannot abort a half-finished grid.
func New(name string, conf Configuration, treatments []Treatment) (*Experiment, error) {
	if name == "" {
		return nil, errors.New("experiment needs a name")
	}
	if len(treatments) == 0 {
		return nil, errors.New("experiment needs at least one treatment")
	}
	if conf.Replications < 1 {
		return nil, errors.Errorf("experiment needs at least 1 replication per treatment, got %d", conf.Replications)
	}

	seen := map[string]struct{}{}
	for _, treatment := range treatments {
		if treatment.Name == "" {
			return nil, errors.New("every treatment needs a name")
		}
		if _, ok := seen[treatment.Name]; ok {
			return nil, errors.Errorf("duplicate treatment name %q", treatment.Name)
		}
		seen[treatment.Name] = struct{}{}

		if _, err := bandit.New(treatment.Config); err != nil {
			return nil, errors.Wrapf(err, "treatment %q", treatment.Name)
		}
	}

	conf.applyDefaults()

	return &Experiment{
		name:       name,
		conf:       conf,
		treatments: treatments,
		session:    newSession(),
	}, nil
}

// Session returns the session identifying this execution.
func (e *Experiment) Session() Session {
	return e.session
}

// ExperimentDirectory returns the directory results are written to.
// It is empty until Run has started.
func (e *Experiment) ExperimentDirectory() string {
	return e.experimentDirectory
}

// Results returns the per-treatment aggregations, in treatment
// declaration order. It is empty until Run has finished.
func (e *Experiment) Results() []TreatmentResult {
	return e.results
}

// Run executes all treatments. Each treatment runs its replications on a
// bounded worker pool; every replication derives its own random generator
// from the base seed, so results are reproducible regardless of
// scheduling. Cancelling the context aborts between replications.
func (e *Experiment) Run(ctx context.Context) error {
	e.startTime = time.Now()

	if err := e.mkExperimentDir(); err != nil {
		return errors.Wrap(err, "cannot create experiment directory")
	}

	logFile, err := e.logInitialize()
	if err != nil {
		return err
	}
	defer e.logClose(logFile)

	logrus.Infof("Starting experiment %q with id %s: %d treatments, %d replications each",
		e.name, e.session.ID, len(e.treatments), e.conf.Replications)

	for index, treatment := range e.treatments {
		logrus.Infof("Running treatment %q (%d of %d)", treatment.Name, index+1, len(e.treatments))

		result, err := e.runTreatment(ctx, index, treatment)
		if err != nil {
			return errors.Wrapf(err, "treatment %q failed", treatment.Name)
		}

		if err := e.writeTreatmentCSVs(result); err != nil {
			return err
		}

		e.results = append(e.results, result)
	}

	e.recordMetadata()

	logrus.Infof("Experiment %q finished, results in %s", e.name, e.experimentDirectory)
	return nil
}

func (e *Experiment) runTreatment(ctx context.Context, index int, treatment Treatment) (TreatmentResult, error) {
	b, err := bandit.New(treatment.Config)
	if err != nil {
		return TreatmentResult{}, err
	}

	collector := newCollector(treatment, b.Config().Turns, e.conf.Replications)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(e.conf.Parallelism)

	for replication := 0; replication < e.conf.Replications; replication++ {
		replication := replication
		group.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rng := rand.New(rand.NewSource(replicationSeed(e.conf.Seed, index, replication)))
			result, err := b.Run(rng)
			if err != nil {
				return errors.Wrapf(err, "replication %d", replication)
			}

			collector.add(replication, result)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return TreatmentResult{}, err
	}

	return collector.finish(), nil
}

// replicationSeed mixes the base seed with the treatment and replication
// indices (splitmix64 finalizer) so every replication gets an independent
// stream that does not depend on scheduling order.
func replicationSeed(base int64, treatment, replication int) uint64 {
	x := uint64(base) ^ uint64(treatment+1)*0x9E3779B97F4A7C15 ^ uint64(replication+1)*0xBF58476D1CE4E5B9
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return x
}

// recordMetadata stores the run's flags, environment, treatments and
// result summaries in the configured metadata database. Recording is best
// effort: a missing or unreachable backend is logged, not fatal, since the
// results already live on disk at this point.
func (e *Experiment) recordMetadata() {
	if conf.DefaultMetadataDB.Value() == "none" {
		logrus.Debug("No metadata database configured, skipping metadata recording")
		return
	}

	m, err := metadata.NewDefault(e.session.ID)
	if err != nil {
		logrus.Warnf("Cannot connect to metadata database: %v", err)
		return
	}

	if err := metadata.RecordRuntimeEnv(m, e.startTime); err != nil {
		logrus.Warnf("Cannot record runtime environment: %v", err)
		return
	}

	treatments := map[string]string{}
	for _, treatment := range e.treatments {
		treatments[treatment.Name] = strconv.Itoa(e.conf.Replications) + " replications"
	}
	if err := m.RecordMap(treatments, metadata.TypeTreatments); err != nil {
		logrus.Warnf("Cannot record treatments: %v", err)
		return
	}

	summary := map[string]string{}
	for _, result := range e.results {
		summary[result.Treatment.Name] = strconv.FormatFloat(result.MeanScore, 'f', 4, 64)
	}
	if err := m.RecordMap(summary, metadata.TypeResults); err != nil {
		logrus.Warnf("Cannot record result summary: %v", err)
	}
}
