package metrics

import "github.com/san-kum/lifesim/internal/grid"

// Activity is the mean fraction of cells that changed state between
// consecutive generations. A still life scores 0.
type Activity struct {
	name    string
	prev    *grid.Grid
	changed float64
	samples int
}

func NewActivity() *Activity {
	return &Activity{name: "activity"}
}

func (a *Activity) Name() string {
	return a.name
}

func (a *Activity) Observe(gen int, state *grid.Grid) {
	if a.prev != nil && a.prev.TotalCells() == state.TotalCells() && state.TotalCells() > 0 {
		diff := 0
		for y := 0; y < state.Height(); y++ {
			for x := 0; x < state.Width(); x++ {
				if a.prev.IsAlive(x, y) != state.IsAlive(x, y) {
					diff++
				}
			}
		}
		a.changed += float64(diff) / float64(state.TotalCells())
		a.samples++
	}
	a.prev = state.Clone()
}

func (a *Activity) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.changed / float64(a.samples)
}

func (a *Activity) Reset() {
	a.prev = nil
	a.changed = 0
	a.samples = 0
}
