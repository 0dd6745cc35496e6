package experiment

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/joeclark-phd/bandits/pkg/conf"
	"github.com/joeclark-phd/bandits/pkg/metadata"
	"github.com/joeclark-phd/bandits/pkg/utils/errutil"
)

// Exit codes used by experiment binaries.
const (
	// ExUsage indicates an error in the command line arguments.
	ExUsage = 64
	// ExSoftware indicates an internal failure.
	ExSoftware = 70
)

var (
	// Flag names include a dash to exclude them from config dumping.
	dumpConfigFlag             = conf.NewBoolFlag("config-dump", "Dump configuration as environment script.", false)
	dumpConfigExperimentIDFlag = conf.NewStringFlag("config-dump-experiment-id", "Dump configuration based on experiment ID.", "")
)

// Configure handles configuration parsing, generation and restoration
// based on the config-* flags.
// Note: exits if configuration generation was requested.
// This function must reside in the experiment package because it depends
// on metadata access.
func Configure() {
	err := conf.ParseFlags()
	if err != nil {
		logrus.Errorf("Cannot parse flags: %q", err.Error())
		os.Exit(ExUsage)
	}
	logrus.SetLevel(conf.LogLevel())

	if dumpConfigFlag.Value() {
		previousExperimentID := dumpConfigExperimentIDFlag.Value()
		if previousExperimentID != "" {
			m, err := metadata.NewDefault(previousExperimentID)
			errutil.Check(err)
			flags, err := m.GetByKind(metadata.TypeFlags)
			errutil.Check(err)
			fmt.Println(conf.DumpConfigMap(flags))
		} else {
			fmt.Println(conf.DumpConfig())
		}
		os.Exit(0)
	}
}
