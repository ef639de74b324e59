package analysis

import (
	"context"
	"math/rand"

	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/sim"
	"github.com/san-kum/lifesim/internal/zoo"
)

// SweepPoint is the outcome of every soup run at one initial density.
type SweepPoint struct {
	Density      float64
	FinalDensity float64 // mean over runs
	Populations  []int   // distinct final populations
}

type SweepConfig struct {
	Width, Height int
	MinDensity    float64
	MaxDensity    float64
	Steps         int
	Runs          int
	Generations   int
	Toroidal      bool
	Seed          int64
}

// DensitySweep runs cfg.Runs soups at each of cfg.Steps evenly spaced
// densities. Runs at one density go through a sim.Ensemble.
func DensitySweep(ctx context.Context, cfg SweepConfig) ([]SweepPoint, error) {
	steps := cfg.Steps
	if steps <= 1 {
		steps = 2
	}
	step := (cfg.MaxDensity - cfg.MinDensity) / float64(steps-1)

	points := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		density := cfg.MinDensity + float64(i)*step
		base := cfg.Seed + int64(i*cfg.Runs)

		e := sim.NewEnsemble(cfg.Runs, func(run int) *grid.Grid {
			return zoo.Soup(cfg.Width, cfg.Height, density, rand.New(rand.NewSource(base+int64(run))))
		})
		results, err := e.Run(ctx, sim.Config{Generations: cfg.Generations, Toroidal: cfg.Toroidal})
		if err != nil {
			return points, err
		}

		p := SweepPoint{Density: density}
		seen := make(map[int]bool)
		for _, r := range results {
			p.FinalDensity += r.Final.Density()
			pop := r.Final.AliveCells()
			if !seen[pop] {
				seen[pop] = true
				p.Populations = append(p.Populations, pop)
			}
		}
		if len(results) > 0 {
			p.FinalDensity /= float64(len(results))
		}
		points = append(points, p)
	}
	return points, nil
}
