// Package bandit implements a single run of the multi-armed bandit
// simulation described by Posen & Levinthal in their 2012 Management
// Science paper, with every moving part (payoff distribution, turbulence,
// choice strategy, belief updating) pluggable for further research.
package bandit

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

const (
	// DefaultArms is the number of slot machine arms in the reference study.
	DefaultArms = 10
	// DefaultTurns is the number of time periods in the reference study.
	DefaultTurns = 500
	// DefaultStrategy is the baseline softmax strategy level (tau = 0.05).
	DefaultStrategy = 0.5
)

// PayoffFunc draws the payoff probability for a single arm.
type PayoffFunc func(rng *rand.Rand) float64

// TurbulenceFunc reshapes the payoff vector in place once per turn.
// The draw function is used to re-draw payoffs and the turbulence
// parameter carries whatever configuration the function needs.
type TurbulenceFunc func(payoffs []float64, draw PayoffFunc, turbulence float64, rng *rand.Rand)

// StrategyFunc maps the gambler's beliefs to a choice probability
// distribution over the arms. The strategy parameter carries whatever
// configuration the function needs; for Softmax it sets the temperature.
type StrategyFunc func(beliefs []float64, strategy float64) []float64

// BeliefFunc returns updated beliefs from the trial history.
type BeliefFunc func(beliefs []float64, tries, wins []int) []float64

// Config holds the parameters of one bandit run. The zero value of any
// field falls back to the Posen & Levinthal defaults.
type Config struct {
	Arms  int
	Turns int

	// Turbulence is the per-turn probability of an environment shock.
	Turbulence float64
	// Strategy is the exploration level passed to StrategyFunc.
	Strategy float64

	PayoffFunc     PayoffFunc
	TurbulenceFunc TurbulenceFunc
	StrategyFunc   StrategyFunc
	BeliefFunc     BeliefFunc
}

// DefaultConfig returns the configuration of the baseline treatment in
// Posen & Levinthal: ten arms, 500 turns, Beta(2,2) payoffs, no
// turbulence, softmax choice with strategy level 0.5.
func DefaultConfig() Config {
	return Config{
		Arms:           DefaultArms,
		Turns:          DefaultTurns,
		Turbulence:     0,
		Strategy:       DefaultStrategy,
		PayoffFunc:     BetaPayoff(2, 2),
		TurbulenceFunc: RandomShock,
		StrategyFunc:   Softmax,
		BeliefFunc:     SimpleBelief,
	}
}

func (c *Config) applyDefaults() {
	if c.Arms == 0 {
		c.Arms = DefaultArms
	}
	if c.Turns == 0 {
		c.Turns = DefaultTurns
	}
	if c.Strategy == 0 {
		c.Strategy = DefaultStrategy
	}
	if c.PayoffFunc == nil {
		c.PayoffFunc = BetaPayoff(2, 2)
	}
	if c.TurbulenceFunc == nil {
		c.TurbulenceFunc = RandomShock
	}
	if c.StrategyFunc == nil {
		c.StrategyFunc = Softmax
	}
	if c.BeliefFunc == nil {
		c.BeliefFunc = SimpleBelief
	}
}

func (c Config) validate() error {
	if c.Arms < 2 {
		return errors.Errorf("bandit needs at least 2 arms, got %d", c.Arms)
	}
	if c.Turns < 1 {
		return errors.Errorf("bandit needs at least 1 turn, got %d", c.Turns)
	}
	if c.Turbulence < 0 || c.Turbulence > 1 {
		return errors.Errorf("turbulence must be a probability, got %f", c.Turbulence)
	}
	return nil
}

// Bandit is a configured but not yet executed run.
type Bandit struct {
	config Config
}

// New validates the configuration and returns a runnable Bandit.
// Zero-value fields of config are replaced with defaults before validation.
func New(config Config) (*Bandit, error) {
	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid bandit configuration")
	}
	return &Bandit{config: config}, nil
}

// Config returns the effective configuration, with defaults applied.
func (b *Bandit) Config() Config {
	return b.config
}

// Run executes all turns of one replication and returns the collected
// time series. All randomness is drawn from rng, so a run is
// deterministic for a given seed.
func (b *Bandit) Run(rng *rand.Rand) (*Result, error) {
	if rng == nil {
		return nil, errors.New("bandit run requires a random source")
	}

	c := b.config
	start := time.Now()

	payoffs := make([]float64, c.Arms)
	for i := range payoffs {
		payoffs[i] = c.PayoffFunc(rng)
	}

	// The gambler starts out indifferent: each arm is believed to pay
	// off half the time, as if it had been tried twice with one win.
	beliefs := make([]float64, c.Arms)
	for i := range beliefs {
		beliefs[i] = 0.5
	}
	tries := make([]int, c.Arms)
	wins := make([]int, c.Arms)

	result := newResult(c.Turns)
	assetStock := 0

	for t := 0; t < c.Turns; t++ {
		c.TurbulenceFunc(payoffs, c.PayoffFunc, c.Turbulence, rng)

		choiceProbabilities := c.StrategyFunc(beliefs, c.Strategy)
		choice := sample(choiceProbabilities, rng)

		tries[choice]++
		if rng.Float64() < payoffs[choice] {
			wins[choice]++
			assetStock++
		} else {
			assetStock--
		}

		beliefs = c.BeliefFunc(beliefs, tries, wins)

		result.Score[t] = assetStock
		result.Knowledge[t] = knowledge(beliefs, payoffs)
		result.Opinion[t] = opinion(beliefs)
		result.ProbExplore[t] = probExplore(choiceProbabilities)
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

// sample draws an index from a probability distribution by inverting the
// cumulative distribution at a uniform variate.
func sample(probabilities []float64, rng *rand.Rand) int {
	x := rng.Float64()
	cumulative := 0.0
	for i, p := range probabilities {
		cumulative += p
		if x < cumulative {
			return i
		}
	}
	// The probabilities may sum to slightly less than 1 due to float
	// rounding; land on the last arm.
	return len(probabilities) - 1
}

// knowledge measures how close beliefs are to the true payoffs:
// 1 - sum of squared errors.
func knowledge(beliefs, payoffs []float64) float64 {
	sum := 0.0
	for i := range beliefs {
		d := beliefs[i] - payoffs[i]
		sum += d * d
	}
	return 1 - sum
}

// opinion measures how differentiated the gambler's beliefs are: the sum
// of squared deviations from the mean belief.
func opinion(beliefs []float64) float64 {
	mean := 0.0
	for _, b := range beliefs {
		mean += b
	}
	mean /= float64(len(beliefs))

	sum := 0.0
	for _, b := range beliefs {
		d := b - mean
		sum += d * d
	}
	return sum
}

// probExplore is the probability that the gambler does not pick the arm
// it currently favors most.
func probExplore(choiceProbabilities []float64) float64 {
	max := 0.0
	for _, p := range choiceProbabilities {
		if p > max {
			max = p
		}
	}
	return 1 - max
}
