package bandit

import "golang.org/x/exp/rand"

// RandomShock is the turbulence model from Posen & Levinthal. With
// probability turbulence a shock hits the environment in a given turn;
// when it does, each arm independently has its payoff re-drawn from the
// payoff distribution with probability 0.5.
func RandomShock(payoffs []float64, draw PayoffFunc, turbulence float64, rng *rand.Rand) {
	if turbulence <= 0 {
		return
	}
	if rng.Float64() >= turbulence {
		return
	}
	for i := range payoffs {
		if rng.Float64() < 0.5 {
			payoffs[i] = draw(rng)
		}
	}
}

// NoTurbulence leaves the payoff vector untouched, giving a stationary
// environment regardless of the turbulence parameter.
func NoTurbulence(payoffs []float64, draw PayoffFunc, turbulence float64, rng *rand.Rand) {
}
