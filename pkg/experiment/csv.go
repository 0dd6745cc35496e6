package experiment

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// writeTreatmentCSVs writes the per-replication final values and the
// per-turn mean series of one treatment into its subdirectory of the
// experiment directory.
func (e *Experiment) writeTreatmentCSVs(result TreatmentResult) error {
	treatmentDirectory := filepath.Join(e.experimentDirectory, sanitizeName(result.Treatment.Name))
	if err := os.MkdirAll(treatmentDirectory, 0777); err != nil {
		return errors.Wrapf(err, "cannot create treatment directory for %q", result.Treatment.Name)
	}

	if err := writeReplicationsCSV(filepath.Join(treatmentDirectory, "replications.csv"), result); err != nil {
		return err
	}

	return writeSeriesCSV(filepath.Join(treatmentDirectory, "series.csv"), result)
}

// sanitizeName maps a treatment name to a directory name: path separators
// become underscores.
func sanitizeName(name string) string {
	sanitized := []rune(name)
	for i, r := range sanitized {
		if r == '/' || r == filepath.Separator {
			sanitized[i] = '_'
		}
	}
	return string(sanitized)
}

func writeReplicationsCSV(path string, result TreatmentResult) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"replication", "score", "knowledge", "opinion", "prob_explore"}); err != nil {
		return errors.Wrapf(err, "cannot write header to %s", path)
	}

	for i := 0; i < result.Replications; i++ {
		record := []string{
			strconv.Itoa(i),
			formatFloat(result.FinalScores[i]),
			formatFloat(result.FinalKnowledge[i]),
			formatFloat(result.FinalOpinions[i]),
			formatFloat(result.FinalProbExplores[i]),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "cannot write record to %s", path)
		}
	}

	writer.Flush()
	return errors.Wrapf(writer.Error(), "cannot flush %s", path)
}

func writeSeriesCSV(path string, result TreatmentResult) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"turn", "mean_score", "mean_knowledge", "mean_opinion", "mean_prob_explore"}); err != nil {
		return errors.Wrapf(err, "cannot write header to %s", path)
	}

	for t := range result.MeanScoreSeries {
		record := []string{
			strconv.Itoa(t + 1),
			formatFloat(result.MeanScoreSeries[t]),
			formatFloat(result.MeanKnowledgeSeries[t]),
			formatFloat(result.MeanOpinionSeries[t]),
			formatFloat(result.MeanProbExploreSeries[t]),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "cannot write record to %s", path)
		}
	}

	writer.Flush()
	return errors.Wrapf(writer.Error(), "cannot flush %s", path)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 6, 64)
}
