package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/world"
)

// Ensemble runs one independent Simulator per seed grid concurrently. Each
// run gets fresh metrics from the registered factories.
type Ensemble struct {
	seed    func(run int) *grid.Grid
	numRuns int
	metrics []func() Metric
}

func NewEnsemble(numRuns int, seed func(run int) *grid.Grid) *Ensemble {
	return &Ensemble{seed: seed, numRuns: numRuns}
}

func (e *Ensemble) AddMetric(factory func() Metric) { e.metrics = append(e.metrics, factory) }

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	if e.numRuns < 0 {
		return nil, fmt.Errorf("%w: run count must be non-negative, got %d", ErrInvalidConfig, e.numRuns)
	}
	if e.seed == nil {
		return nil, fmt.Errorf("%w: nil seed function", ErrInvalidConfig)
	}

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s := New(world.FromGrid(e.seed(idx)))
			for _, factory := range e.metrics {
				s.AddMetric(factory())
			}

			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
