package world_test

import (
	"errors"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/world"
)

type point struct{ x, y int }

func withAlive(width, height int, alive ...point) *grid.Grid {
	g := grid.New(width, height)
	for _, p := range alive {
		Expect(g.Set(p.x, p.y, grid.Alive)).To(Succeed())
	}
	return g
}

func shifted(dx, dy int, pts ...point) []point {
	out := make([]point, len(pts))
	for i, p := range pts {
		out[i] = point{p.x + dx, p.y + dy}
	}
	return out
}

// nextGeneration is a direct, allocation-heavy reading of B3/S23 used as a
// reference for the double-buffered engine.
func nextGeneration(g *grid.Grid, toroidal bool) *grid.Grid {
	w, h := g.Width(), g.Height()
	out := grid.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if toroidal {
						nx, ny = (nx+w)%w, (ny+h)%h
					}
					if g.IsAlive(nx, ny) {
						n++
					}
				}
			}
			if n == 3 || (n == 2 && g.IsAlive(x, y)) {
				_ = out.Set(x, y, grid.Alive)
			}
		}
	}
	return out
}

var glider = []point{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}

var _ = Describe("World", func() {
	Describe("construction", func() {
		It("starts dead from dimensions", func() {
			w := world.New(6, 4)
			Expect(w.Width()).To(Equal(6))
			Expect(w.Height()).To(Equal(4))
			Expect(w.TotalCells()).To(Equal(24))
			Expect(w.AliveCells()).To(Equal(0))
			Expect(w.DeadCells()).To(Equal(24))
			Expect(w.Generation()).To(Equal(0))
		})

		It("supports square and empty worlds", func() {
			Expect(world.Square(5).TotalCells()).To(Equal(25))
			Expect(world.New(0, 0).TotalCells()).To(Equal(0))
		})

		It("copies the initial grid", func() {
			initial := withAlive(3, 3, glider...)
			w := world.FromGrid(initial)
			Expect(w.State().Equal(initial)).To(BeTrue())

			Expect(initial.Set(0, 0, grid.Alive)).To(Succeed())
			Expect(w.State().IsAlive(0, 0)).To(BeFalse())
		})
	})

	Describe("CountNeighbours", func() {
		var w *world.World

		BeforeEach(func() {
			w = world.FromGrid(withAlive(4, 4, point{0, 0}, point{3, 0}, point{0, 3}, point{1, 1}))
		})

		It("ignores cells beyond the edge on a bounded plane", func() {
			Expect(w.CountNeighbours(0, 0, false)).To(Equal(1))
			Expect(w.CountNeighbours(1, 0, false)).To(Equal(2))
			Expect(w.CountNeighbours(3, 3, false)).To(Equal(0))
		})

		It("wraps around on a torus", func() {
			Expect(w.CountNeighbours(0, 0, true)).To(Equal(3))
			Expect(w.CountNeighbours(3, 3, true)).To(Equal(3))
		})

		It("never counts the cell itself", func() {
			Expect(w.CountNeighbours(1, 1, false)).To(Equal(1))
		})

		It("stays within [0,8]", func() {
			full := world.FromGrid(withAlive(3, 3,
				point{0, 0}, point{1, 0}, point{2, 0},
				point{0, 1}, point{1, 1}, point{2, 1},
				point{0, 2}, point{1, 2}, point{2, 2}))
			Expect(full.CountNeighbours(1, 1, false)).To(Equal(8))
			Expect(full.CountNeighbours(1, 1, true)).To(Equal(8))
		})

		It("returns zero on an empty world", func() {
			Expect(world.New(0, 0).CountNeighbours(0, 0, true)).To(Equal(0))
		})
	})

	Describe("Step", func() {
		It("kills an isolated corner cell without wrapping", func() {
			w := world.FromGrid(withAlive(8, 8, point{0, 0}))
			w.Step(false)
			Expect(w.AliveCells()).To(Equal(0))
			Expect(w.Width()).To(Equal(8))
			Expect(w.Height()).To(Equal(8))
		})

		It("oscillates a blinker", func() {
			horizontal := withAlive(3, 3, point{0, 1}, point{1, 1}, point{2, 1})
			vertical := withAlive(3, 3, point{1, 0}, point{1, 1}, point{1, 2})

			w := world.FromGrid(horizontal)
			w.Step(false)
			Expect(w.State().Equal(vertical)).To(BeTrue())
			w.Step(false)
			Expect(w.State().Equal(horizontal)).To(BeTrue())
			Expect(w.Generation()).To(Equal(2))
		})

		It("moves a glider to its next phase on a torus", func() {
			w := world.FromGrid(withAlive(8, 8, shifted(2, 2, glider...)...))
			w.Step(true)

			next := []point{{0, 1}, {2, 1}, {1, 2}, {2, 2}, {1, 3}}
			Expect(w.State().Equal(withAlive(8, 8, shifted(2, 2, next...)...))).To(BeTrue())
		})

		It("translates a glider one cell diagonally every four generations", func() {
			w := world.FromGrid(withAlive(8, 8, glider...))
			w.Advance(4, true)
			Expect(w.State().Equal(withAlive(8, 8, shifted(1, 1, glider...)...))).To(BeTrue())

			w.Advance(28, true)
			Expect(w.State().Equal(withAlive(8, 8, glider...))).To(BeTrue())
		})

		It("applies the rule to the whole 3x3 torus at once", func() {
			// On a 3x3 torus every other cell is a neighbour, so each glider
			// cell sees four neighbours and each empty cell sees five.
			w := world.FromGrid(withAlive(3, 3, glider...))
			w.Step(true)
			Expect(w.AliveCells()).To(Equal(0))
		})

		It("reads neighbours from the previous generation only", func() {
			rng := rand.New(rand.NewSource(7))
			for _, toroidal := range []bool{false, true} {
				g := grid.New(17, 11)
				g.Fill(func(x, y int) grid.Cell {
					if rng.Float64() < 0.4 {
						return grid.Alive
					}
					return grid.Dead
				})

				w := world.FromGrid(g)
				want := g
				for i := 0; i < 6; i++ {
					want = nextGeneration(want, toroidal)
					w.Step(toroidal)
					Expect(w.State().Equal(want)).To(BeTrue(), "generation %d toroidal=%v", i+1, toroidal)
				}
			}
		})

		It("keeps a block still", func() {
			block := withAlive(4, 4, point{1, 1}, point{2, 1}, point{1, 2}, point{2, 2})
			w := world.FromGrid(block)
			w.Advance(5, false)
			Expect(w.State().Equal(block)).To(BeTrue())
		})
	})

	Describe("Advance", func() {
		It("does nothing for non-positive counts", func() {
			initial := withAlive(5, 5, shifted(1, 1, glider...)...)
			w := world.FromGrid(initial)
			w.Advance(0, true)
			w.Advance(-3, true)
			Expect(w.State().Equal(initial)).To(BeTrue())
			Expect(w.Generation()).To(Equal(0))
		})

		It("matches repeated Step calls", func() {
			initial := withAlive(10, 10, shifted(3, 3, glider...)...)
			a := world.FromGrid(initial)
			b := world.FromGrid(initial)

			a.Advance(9, false)
			for i := 0; i < 9; i++ {
				b.Step(false)
			}
			Expect(a.State().Equal(b.State())).To(BeTrue())
		})
	})

	Describe("Resize", func() {
		It("resizes both buffers and keeps the retained region", func() {
			w := world.FromGrid(withAlive(4, 4, point{0, 1}, point{1, 1}, point{2, 1}))
			Expect(w.Resize(3, 3)).To(Succeed())
			Expect(w.Width()).To(Equal(3))
			Expect(w.AliveCells()).To(Equal(3))

			w.Step(false)
			Expect(w.State().Equal(withAlive(3, 3, point{1, 0}, point{1, 1}, point{1, 2}))).To(BeTrue())
			Expect(w.Width()).To(Equal(3))
			Expect(w.Height()).To(Equal(3))
		})

		It("grows with a square size", func() {
			w := world.Square(2)
			Expect(w.ResizeSquare(6)).To(Succeed())
			w.Step(true)
			Expect(w.TotalCells()).To(Equal(36))
		})

		It("rejects negative sizes", func() {
			w := world.Square(3)
			err := w.Resize(-1, 2)
			Expect(errors.Is(err, grid.ErrInvalidArgument)).To(BeTrue())
			Expect(w.Width()).To(Equal(3))
		})
	})
})
