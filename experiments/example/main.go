// This is the sample experiment. Copy this directory, adjust the
// treatments and flags, and run the result with `go run`. See the
// repository README for the full workflow.
package main

import (
	"context"
	"os"

	"github.com/joeclark-phd/bandits/pkg/bandit"
	"github.com/joeclark-phd/bandits/pkg/conf"
	"github.com/joeclark-phd/bandits/pkg/experiment"
	"github.com/joeclark-phd/bandits/pkg/utils/errutil"
)

var (
	armsFlag       = conf.NewIntFlag("arms", "Number of bandit arms", bandit.DefaultArms)
	turnsFlag      = conf.NewIntFlag("turns", "Number of turns per replication", bandit.DefaultTurns)
	strategyFlag   = conf.NewFloatFlag("strategy", "Softmax strategy level (tau = strategy/10)", bandit.DefaultStrategy)
	turbulenceFlag = conf.NewFloatFlag("turbulence", "Per-turn probability of an environment shock", 0)
)

func main() {
	conf.SetAppName("example")
	conf.SetHelp(`Example bandit experiment: one treatment with configurable parameters.
Runs the configured number of replications and prints the aggregated outcomes.`)

	experiment.Configure()

	treatments := []experiment.Treatment{
		{
			Name: "example",
			Config: bandit.Config{
				Arms:       armsFlag.Value(),
				Turns:      turnsFlag.Value(),
				Strategy:   strategyFlag.Value(),
				Turbulence: turbulenceFlag.Value(),
			},
		},
	}

	exp, err := experiment.New(conf.AppName(), experiment.DefaultConfiguration(), treatments)
	errutil.CheckWithContext(err, "Invalid experiment design")

	err = exp.Run(context.Background())
	errutil.CheckWithContext(err, "Experiment failed")

	err = experiment.RenderSummary(os.Stdout, exp.Session().ID, exp.Results())
	errutil.Check(err)
}
