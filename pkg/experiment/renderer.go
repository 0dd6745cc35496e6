package experiment

import (
	"io"
	"strconv"

	"github.com/joeclark-phd/bandits/pkg/visualization"
)

// RenderSummary draws the per-treatment result table: number of
// replications and the mean and standard deviation of each study measure.
func RenderSummary(w io.Writer, experimentID string, results []TreatmentResult) error {
	headers := []string{"treatment", "replications",
		"score", "sd", "knowledge", "sd", "opinion", "sd", "prob explore", "sd"}

	data := prepareSummaryData(results)

	visualization.PrintExperimentID(w, experimentID)
	return visualization.DrawTable(w, visualization.NewTable(headers, data))
}

func prepareSummaryData(results []TreatmentResult) (data [][]string) {
	for _, result := range results {
		data = append(data, []string{
			result.Treatment.Name,
			strconv.Itoa(result.Replications),
			render(result.MeanScore), render(result.StdDevScore),
			render(result.MeanKnowledge), render(result.StdDevKnowledge),
			render(result.MeanOpinion), render(result.StdDevOpinion),
			render(result.MeanProbExplore), render(result.StdDevProbExplore),
		})
	}
	return data
}

func render(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}
