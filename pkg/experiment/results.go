package experiment

import (
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/joeclark-phd/bandits/pkg/bandit"
)

// TreatmentResult aggregates the outcomes of all replications of one
// treatment: the final value of every replication for each of the four
// study measures, their means and standard deviations, and the per-turn
// mean of each series across replications.
type TreatmentResult struct {
	Treatment    Treatment
	Replications int

	// Final values, indexed by replication.
	FinalScores       []float64
	FinalKnowledge    []float64
	FinalOpinions     []float64
	FinalProbExplores []float64

	MeanScore         float64
	StdDevScore       float64
	MeanKnowledge     float64
	StdDevKnowledge   float64
	MeanOpinion       float64
	StdDevOpinion     float64
	MeanProbExplore   float64
	StdDevProbExplore float64

	// Per-turn means across replications, indexed by turn.
	MeanScoreSeries       []float64
	MeanKnowledgeSeries   []float64
	MeanOpinionSeries     []float64
	MeanProbExploreSeries []float64
}

// collector accumulates replication results for one treatment. It keeps
// running sums of the series instead of every replication's full series,
// so memory does not grow with the replication count.
type collector struct {
	mutex        sync.Mutex
	treatment    Treatment
	turns        int
	replications int

	finalScores       []float64
	finalKnowledge    []float64
	finalOpinions     []float64
	finalProbExplores []float64

	scoreSums       []float64
	knowledgeSums   []float64
	opinionSums     []float64
	probExploreSums []float64
}

func newCollector(treatment Treatment, turns, replications int) *collector {
	return &collector{
		treatment:    treatment,
		turns:        turns,
		replications: replications,

		finalScores:       make([]float64, replications),
		finalKnowledge:    make([]float64, replications),
		finalOpinions:     make([]float64, replications),
		finalProbExplores: make([]float64, replications),

		scoreSums:       make([]float64, turns),
		knowledgeSums:   make([]float64, turns),
		opinionSums:     make([]float64, turns),
		probExploreSums: make([]float64, turns),
	}
}

func (c *collector) add(replication int, result *bandit.Result) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.finalScores[replication] = float64(result.FinalScore())
	c.finalKnowledge[replication] = result.FinalKnowledge()
	c.finalOpinions[replication] = result.FinalOpinion()
	c.finalProbExplores[replication] = result.FinalProbExplore()

	for t := 0; t < c.turns; t++ {
		c.scoreSums[t] += float64(result.Score[t])
		c.knowledgeSums[t] += result.Knowledge[t]
		c.opinionSums[t] += result.Opinion[t]
		c.probExploreSums[t] += result.ProbExplore[t]
	}
}

func (c *collector) finish() TreatmentResult {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	result := TreatmentResult{
		Treatment:    c.treatment,
		Replications: c.replications,

		FinalScores:       c.finalScores,
		FinalKnowledge:    c.finalKnowledge,
		FinalOpinions:     c.finalOpinions,
		FinalProbExplores: c.finalProbExplores,

		MeanScore:       stat.Mean(c.finalScores, nil),
		MeanKnowledge:   stat.Mean(c.finalKnowledge, nil),
		MeanOpinion:     stat.Mean(c.finalOpinions, nil),
		MeanProbExplore: stat.Mean(c.finalProbExplores, nil),

		StdDevScore:       sampleStdDev(c.finalScores),
		StdDevKnowledge:   sampleStdDev(c.finalKnowledge),
		StdDevOpinion:     sampleStdDev(c.finalOpinions),
		StdDevProbExplore: sampleStdDev(c.finalProbExplores),

		MeanScoreSeries:       seriesMean(c.scoreSums, c.replications),
		MeanKnowledgeSeries:   seriesMean(c.knowledgeSums, c.replications),
		MeanOpinionSeries:     seriesMean(c.opinionSums, c.replications),
		MeanProbExploreSeries: seriesMean(c.probExploreSums, c.replications),
	}

	return result
}

// sampleStdDev is stat.StdDev guarded against the single-replication case,
// where the sample standard deviation is undefined.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

func seriesMean(sums []float64, replications int) []float64 {
	means := make([]float64, len(sums))
	for i, sum := range sums {
		means[i] = sum / float64(replications)
	}
	return means
}
