package bandit

import "math"

// Softmax is the choice rule from Posen & Levinthal. The probability of
// choosing arm i is exp(belief_i/tau) normalized over all arms, where the
// temperature tau is strategy/10, so the paper's baseline strategy level
// of 0.5 yields tau = 0.05. Lower strategy levels exploit more; higher
// levels explore more. A strategy level of 0 degenerates to Greedy.
func Softmax(beliefs []float64, strategy float64) []float64 {
	tau := strategy / 10
	if tau <= 0 {
		return Greedy(beliefs, strategy)
	}

	// Shift by the maximum belief so the exponentials cannot overflow.
	max := beliefs[0]
	for _, b := range beliefs[1:] {
		if b > max {
			max = b
		}
	}

	probabilities := make([]float64, len(beliefs))
	sum := 0.0
	for i, b := range beliefs {
		probabilities[i] = math.Exp((b - max) / tau)
		sum += probabilities[i]
	}
	for i := range probabilities {
		probabilities[i] /= sum
	}
	return probabilities
}

// Greedy always picks the arm with the highest belief, breaking ties in
// favor of the lowest index.
func Greedy(beliefs []float64, _ float64) []float64 {
	best := 0
	for i, b := range beliefs {
		if b > beliefs[best] {
			best = i
		}
	}
	probabilities := make([]float64, len(beliefs))
	probabilities[best] = 1
	return probabilities
}

// EpsilonGreedy explores uniformly with probability strategy (the
// epsilon) and otherwise exploits the highest belief. It is not part of
// the reference study but is the usual baseline to compare softmax against.
func EpsilonGreedy(beliefs []float64, strategy float64) []float64 {
	epsilon := strategy
	if epsilon < 0 {
		epsilon = 0
	}
	if epsilon > 1 {
		epsilon = 1
	}

	probabilities := Greedy(beliefs, strategy)
	uniform := epsilon / float64(len(beliefs))
	for i := range probabilities {
		probabilities[i] = probabilities[i]*(1-epsilon) + uniform
	}
	return probabilities
}
