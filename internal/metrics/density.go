package metrics

import "github.com/san-kum/lifesim/internal/grid"

// FinalDensity reports the alive fraction of the last observed generation.
type FinalDensity struct {
	name    string
	density float64
}

func NewFinalDensity() *FinalDensity {
	return &FinalDensity{name: "final_density"}
}

func (f *FinalDensity) Name() string {
	return f.name
}

func (f *FinalDensity) Observe(gen int, state *grid.Grid) {
	f.density = state.Density()
}

func (f *FinalDensity) Value() float64 {
	return f.density
}

func (f *FinalDensity) Reset() {
	f.density = 0
}
