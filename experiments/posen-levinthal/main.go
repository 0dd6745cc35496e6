// Replication of the simulation experiment from Posen & Levinthal (2012),
// "Chasing a Moving Target: Exploitation and Exploration in Dynamic
// Environments", Management Science 58(3). Crosses softmax strategy levels
// with environmental turbulence levels and reports the ending asset stock,
// knowledge, opinion and exploration propensity for each treatment.
package main

import (
	"context"
	"os"
	"strconv"

	"github.com/joeclark-phd/bandits/pkg/bandit"
	"github.com/joeclark-phd/bandits/pkg/conf"
	"github.com/joeclark-phd/bandits/pkg/experiment"
	"github.com/joeclark-phd/bandits/pkg/utils/errutil"
)

var (
	strategiesFlag = conf.NewSliceFlag(
		"strategies",
		"Softmax strategy levels to cross with turbulence (--strategies=0.25,0.5)",
		"0.25", "0.5", "0.75", "1.0")
	turbulencesFlag = conf.NewSliceFlag(
		"turbulences",
		"Turbulence levels to cross with strategies (--turbulences=0,0.08)",
		"0", "0.01", "0.02", "0.04", "0.08", "0.16", "0.32")
	armsFlag  = conf.NewIntFlag("arms", "Number of bandit arms", bandit.DefaultArms)
	turnsFlag = conf.NewIntFlag("turns", "Number of turns per replication", bandit.DefaultTurns)
)

func parseLevels(name string, raw []string) []float64 {
	levels := make([]float64, 0, len(raw))
	for _, item := range raw {
		level, err := strconv.ParseFloat(item, 64)
		errutil.CheckWithContext(err, "Cannot parse "+name+" level "+item)
		levels = append(levels, level)
	}
	return levels
}

func main() {
	conf.SetAppName("posen-levinthal")
	conf.SetHelp(`Replicates the Posen & Levinthal (2012) multi-armed bandit study.
Every combination of strategy level and turbulence level becomes one treatment;
each treatment is replicated the configured number of times and the outcomes are
aggregated, written as CSV files and printed as a table.`)

	experiment.Configure()

	strategies := parseLevels("strategy", strategiesFlag.Value())
	turbulences := parseLevels("turbulence", turbulencesFlag.Value())

	treatments := experiment.Cross(strategies, turbulences, bandit.Config{
		Arms:  armsFlag.Value(),
		Turns: turnsFlag.Value(),
	})

	exp, err := experiment.New(conf.AppName(), experiment.DefaultConfiguration(), treatments)
	errutil.CheckWithContext(err, "Invalid experiment design")

	err = exp.Run(context.Background())
	errutil.CheckWithContext(err, "Experiment failed")

	err = experiment.RenderSummary(os.Stdout, exp.Session().ID, exp.Results())
	errutil.Check(err)
}
