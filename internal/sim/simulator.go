package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/lifesim/internal/world"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

type Simulator struct {
	world     *world.World
	metrics   []Metric
	observers []Observer
}

func New(w *world.World) *Simulator {
	return &Simulator{
		world:     w,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) World() *world.World { return s.world }

// Run advances the world cfg.Generations times. Cycle detection compares
// 64-bit state hashes and records the first repeat only. On cancellation
// the partial result is returned along with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Populations: make([]int, 0, cfg.Generations+1),
		Metrics:     make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	seen := map[uint64]int{s.world.State().Hash(): 0}
	s.observe(0, result)

	for i := 1; i <= cfg.Generations; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		s.world.Step(cfg.Toroidal)
		result.Generations = i
		s.observe(i, result)

		if result.Cycle != nil {
			continue
		}
		h := s.world.State().Hash()
		if start, ok := seen[h]; ok {
			result.Cycle = &Cycle{Start: start, Period: i - start}
			if cfg.StopOnCycle {
				break
			}
			continue
		}
		seen[h] = i
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) observe(gen int, result *Result) {
	state := s.world.State()
	result.Populations = append(result.Populations, state.AliveCells())
	for _, m := range s.metrics {
		m.Observe(gen, state)
	}
	for _, obs := range s.observers {
		obs.OnGeneration(gen, state)
	}
}

func (s *Simulator) finish(result *Result) {
	result.Final = s.world.State().Clone()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if s.world == nil {
		return fmt.Errorf("%w: nil world", ErrInvalidConfig)
	}
	if cfg.Generations < 0 {
		return fmt.Errorf("%w: generations must be non-negative, got %d", ErrInvalidConfig, cfg.Generations)
	}
	return nil
}
