package bandit

// SimpleBelief estimates each arm's payoff as the fraction of its trials
// that were wins, with two phantom trials (one of them a win) mixed in.
// Untried arms therefore start at 0.5 and the first real trial is
// averaged in as if it were the third, so a belief never jumps straight
// to 0 or 1.
func SimpleBelief(beliefs []float64, tries, wins []int) []float64 {
	updated := make([]float64, len(beliefs))
	for i := range updated {
		updated[i] = (float64(wins[i]) + 1) / (float64(tries[i]) + 2)
	}
	return updated
}
