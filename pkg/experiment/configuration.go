package experiment

import (
	"runtime"
	"time"

	"github.com/joeclark-phd/bandits/pkg/conf"
)

var (
	replicationsFlag = conf.NewIntFlag("replications", "Number of replications to run per treatment", 100)
	parallelismFlag  = conf.NewIntFlag("parallelism", "Number of replications run concurrently; 0 means one per CPU", 0)
	workDirFlag      = conf.NewStringFlag("work_dir", "Directory where experiment results and logs are written; empty means the current directory", "")
	seedFlag         = conf.NewIntFlag("seed", "Base seed for the random number generators; 0 means time-based", 0)
)

// Configuration is the set of parameters controlling an experiment run,
// as opposed to the bandit parameters which vary per treatment.
type Configuration struct {
	// WorkingDirectory is where the experiment directory is created.
	// Empty means the process working directory.
	WorkingDirectory string
	// Replications is the number of independent runs per treatment.
	Replications int
	// Parallelism bounds the number of replications running concurrently.
	// Zero or negative means one per CPU.
	Parallelism int
	// Seed is the base seed all replication generators derive from.
	// Zero means time-based, which makes the run non-reproducible.
	Seed int64
}

// DefaultConfiguration applies the experiment settings from the command
// line flags and environment variables.
func DefaultConfiguration() Configuration {
	return Configuration{
		WorkingDirectory: workDirFlag.Value(),
		Replications:     replicationsFlag.Value(),
		Parallelism:      parallelismFlag.Value(),
		Seed:             int64(seedFlag.Value()),
	}
}

func (c *Configuration) applyDefaults() {
	if c.Parallelism <= 0 {
		c.Parallelism = runtime.GOMAXPROCS(0)
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
}
