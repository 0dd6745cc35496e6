package bandit

import "time"

// Result holds the per-turn time series captured during one replication.
// Each slice has one element per turn.
type Result struct {
	// Score is the gambler's asset stock after each turn. Every turn
	// moves it by exactly one, up on a win and down on a loss.
	Score []int
	// Knowledge is 1 minus the sum of squared errors between beliefs
	// and true payoffs.
	Knowledge []float64
	// Opinion is the sum of squared deviations of beliefs from their mean.
	Opinion []float64
	// ProbExplore is 1 minus the largest choice probability of the turn.
	ProbExplore []float64

	// Elapsed is how long the replication took.
	Elapsed time.Duration
}

func newResult(turns int) *Result {
	return &Result{
		Score:       make([]int, turns),
		Knowledge:   make([]float64, turns),
		Opinion:     make([]float64, turns),
		ProbExplore: make([]float64, turns),
	}
}

// FinalScore returns the ending asset stock.
func (r *Result) FinalScore() int {
	return r.Score[len(r.Score)-1]
}

// FinalKnowledge returns the knowledge measure after the last turn.
func (r *Result) FinalKnowledge() float64 {
	return r.Knowledge[len(r.Knowledge)-1]
}

// FinalOpinion returns the opinion measure after the last turn.
func (r *Result) FinalOpinion() float64 {
	return r.Opinion[len(r.Opinion)-1]
}

// FinalProbExplore returns the exploration probability of the last turn.
func (r *Result) FinalProbExplore() float64 {
	return r.ProbExplore[len(r.ProbExplore)-1]
}
