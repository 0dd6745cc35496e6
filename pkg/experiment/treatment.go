package experiment

import (
	"fmt"

	"github.com/joeclark-phd/bandits/pkg/bandit"
)

// Treatment is a named configuration of experimental parameters. An
// experiment runs the same number of replications for every treatment.
type Treatment struct {
	Name   string
	Config bandit.Config
}

// Cross builds the full factorial design of strategy levels and
// turbulence levels on top of a base configuration, one treatment per
// combination. This is the design of the reference study, which crosses
// exploration strategies with environmental turbulence.
func Cross(strategies, turbulences []float64, base bandit.Config) []Treatment {
	treatments := []Treatment{}
	for _, strategy := range strategies {
		for _, turbulence := range turbulences {
			config := base
			config.Strategy = strategy
			config.Turbulence = turbulence
			treatments = append(treatments, Treatment{
				Name:   fmt.Sprintf("strategy=%.2f,turbulence=%.2f", strategy, turbulence),
				Config: config,
			})
		}
	}
	return treatments
}
