// Package metrics holds population statistics collected by the simulator.
package metrics

import "github.com/san-kum/lifesim/internal/sim"

// Standard returns a fresh set of every population metric.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewPeak(),
		NewMeanPopulation(),
		NewFinalDensity(),
		NewActivity(),
	}
}
