package experiment

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// mkExperimentDir creates the unique directory for experiment logs and results.
func (e *Experiment) mkExperimentDir() error {
	var err error
	e.startingDirectory, err = os.Getwd()
	if err != nil {
		return errors.Wrap(err, "cannot get working directory")
	}

	if len(e.conf.WorkingDirectory) > 0 {
		e.experimentDirectory = filepath.Join(e.conf.WorkingDirectory, e.session.Name)
	} else {
		e.experimentDirectory = filepath.Join(e.startingDirectory, e.session.Name)
	}

	return os.MkdirAll(e.experimentDirectory, 0777)
}

// logInitialize creates the master log file and points logrus at both the
// file and stderr for the duration of the experiment.
func (e *Experiment) logInitialize() (*os.File, error) {
	logFile, err := os.Create(filepath.Join(e.experimentDirectory, "Master.log"))
	if err != nil {
		return nil, errors.Wrap(err, "cannot create master log file")
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.100"})
	logrus.SetOutput(io.MultiWriter(logFile, os.Stderr))
	logrus.Infof("Working directory %q", e.experimentDirectory)

	return logFile, nil
}

func (e *Experiment) logClose(logFile *os.File) {
	logrus.SetOutput(os.Stderr)
	logFile.Close()
}
