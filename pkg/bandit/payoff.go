package bandit

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// BetaPayoff returns a PayoffFunc drawing payoff probabilities from a
// Beta(alpha, beta) distribution. The study uses Beta(2,2), a normal-like
// distribution bounded between 0 and 1 with mean 0.50 and standard
// deviation 0.22.
func BetaPayoff(alpha, beta float64) PayoffFunc {
	return func(rng *rand.Rand) float64 {
		return distuv.Beta{Alpha: alpha, Beta: beta, Src: rng}.Rand()
	}
}

// UniformPayoff draws payoff probabilities uniformly from [0,1). Useful
// as a flatter alternative environment to Beta(2,2).
func UniformPayoff(rng *rand.Rand) float64 {
	return rng.Float64()
}
