package sim

import "github.com/san-kum/lifesim/internal/grid"

// Metric accumulates a scalar over the generations of a run.
type Metric interface {
	Name() string
	Observe(gen int, state *grid.Grid)
	Value() float64
	Reset()
}

// Observer is notified once per generation, starting with generation 0.
// The state is owned by the World and is only valid during the call.
type Observer interface {
	OnGeneration(gen int, state *grid.Grid)
}

type ObserverFunc func(gen int, state *grid.Grid)

func (f ObserverFunc) OnGeneration(gen int, state *grid.Grid) { f(gen, state) }

type Config struct {
	Generations int
	Toroidal    bool
	StopOnCycle bool
}

// Cycle records the first repeated state: generation Start+Period equals
// generation Start. Period 1 is a still life.
type Cycle struct {
	Start  int
	Period int
}

type Result struct {
	// Populations[g] is the alive count at generation g.
	Populations []int
	Generations int
	Metrics     map[string]float64
	Final       *grid.Grid
	Cycle       *Cycle
}
