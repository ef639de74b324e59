package analysis

import (
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/world"
)

// DamageSpread flips the cell at (x, y) in a copy of g and advances both
// copies side by side. The returned slice holds the number of differing
// cells at each generation, starting with 1 at generation 0.
func DamageSpread(g *grid.Grid, x, y, generations int, toroidal bool) ([]int, error) {
	perturbed := g.Clone()
	c, err := perturbed.Get(x, y)
	if err != nil {
		return nil, err
	}
	flip := grid.Alive
	if c == grid.Alive {
		flip = grid.Dead
	}
	if err := perturbed.Set(x, y, flip); err != nil {
		return nil, err
	}

	a := world.FromGrid(g)
	b := world.FromGrid(perturbed)

	if generations < 0 {
		generations = 0
	}
	out := make([]int, 0, generations+1)
	out = append(out, hamming(a.State(), b.State()))
	for i := 0; i < generations; i++ {
		a.Step(toroidal)
		b.Step(toroidal)
		out = append(out, hamming(a.State(), b.State()))
	}
	return out, nil
}

func hamming(a, b *grid.Grid) int {
	n := 0
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.IsAlive(x, y) != b.IsAlive(x, y) {
				n++
			}
		}
	}
	return n
}
