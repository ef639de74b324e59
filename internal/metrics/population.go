package metrics

import "github.com/san-kum/lifesim/internal/grid"

// Peak is the largest alive count seen.
type Peak struct {
	name string
	peak int
}

func NewPeak() *Peak {
	return &Peak{name: "peak_population"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(gen int, state *grid.Grid) {
	p.peak = max(p.peak, state.AliveCells())
}

func (p *Peak) Value() float64 { return float64(p.peak) }

func (p *Peak) Reset() { p.peak = 0 }

type MeanPopulation struct {
	name    string
	total   int
	samples int
}

func NewMeanPopulation() *MeanPopulation {
	return &MeanPopulation{name: "mean_population"}
}

func (m *MeanPopulation) Name() string { return m.name }

func (m *MeanPopulation) Observe(gen int, state *grid.Grid) {
	m.total += state.AliveCells()
	m.samples++
}

func (m *MeanPopulation) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total) / float64(m.samples)
}

func (m *MeanPopulation) Reset() {
	m.total = 0
	m.samples = 0
}
