package metadata

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/joeclark-phd/bandits/pkg/conf"
)

// RecordRuntimeEnv stores the experiment's runtime environment: the full
// flag configuration, BANDITS_ environment variables, hostname, start time
// and platform details.
func RecordRuntimeEnv(metadata Metadata, experimentStart time.Time) error {
	// Store configuration.
	err := recordFlags(metadata)
	if err != nil {
		return err
	}

	// Store BANDITS_ environment configuration.
	err = recordEnv(metadata, conf.EnvironmentPrefix)
	if err != nil {
		return err
	}

	hostname, err := os.Hostname()
	if err != nil {
		return errors.Wrap(err, "cannot retrieve hostname")
	}
	err = metadata.RecordMap(map[string]string{
		"time": experimentStart.Format(time.RFC822Z),
		"host": hostname,
	}, TypeEmpty)
	if err != nil {
		return err
	}

	return recordPlatformMetrics(metadata)
}

// recordFlags saves the whole flag based configuration in the metadata information.
func recordFlags(metadata Metadata) error {
	flags := conf.GetFlags()
	return metadata.RecordMap(flags, TypeFlags)
}

// recordEnv adds all OS environment variables that start with prefix
// to the metadata information.
func recordEnv(metadata Metadata, prefix string) error {
	envMetadata := map[string]string{}
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, prefix) {
			fields := strings.SplitN(env, "=", 2)
			envMetadata[fields[0]] = fields[1]
		}
	}
	return metadata.RecordMap(envMetadata, TypeEnviron)
}

// recordPlatformMetrics stores platform specific metadata under TypePlatform.
func recordPlatformMetrics(metadata Metadata) error {
	platformMetrics := map[string]string{
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"cpus":       strconv.Itoa(runtime.NumCPU()),
		"go_version": runtime.Version(),
	}
	return metadata.RecordMap(platformMetrics, TypePlatform)
}
