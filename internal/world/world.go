// Package world implements the Game of Life transition rule (B3/S23) over a
// double-buffered grid.
package world

import "github.com/san-kum/lifesim/internal/grid"

// World holds the current generation and a same-sized scratch buffer. Step
// writes the next generation into the scratch buffer and swaps the two.
type World struct {
	current    *grid.Grid
	next       *grid.Grid
	generation int
}

// New returns a Dead-filled world. It panics on negative dimensions.
func New(width, height int) *World {
	return &World{
		current: grid.New(width, height),
		next:    grid.New(width, height),
	}
}

func Square(n int) *World { return New(n, n) }

// FromGrid returns a world whose current generation is a copy of initial.
func FromGrid(initial *grid.Grid) *World {
	return &World{
		current: initial.Clone(),
		next:    grid.New(initial.Width(), initial.Height()),
	}
}

func (w *World) Width() int      { return w.current.Width() }
func (w *World) Height() int     { return w.current.Height() }
func (w *World) TotalCells() int { return w.current.TotalCells() }
func (w *World) AliveCells() int { return w.current.AliveCells() }
func (w *World) DeadCells() int  { return w.current.DeadCells() }

// Generation is the number of steps taken since construction.
func (w *World) Generation() int { return w.generation }

// State returns the current generation. The grid is owned by the world and
// is only valid until the next Step or Resize; Clone it to keep it.
func (w *World) State() *grid.Grid { return w.current }

func (w *World) ResizeSquare(n int) error { return w.Resize(n, n) }

// Resize resizes both buffers with grid.Grid.Resize semantics.
func (w *World) Resize(width, height int) error {
	if err := w.current.Resize(width, height); err != nil {
		return err
	}
	return w.next.Resize(width, height)
}

// CountNeighbours counts the alive cells among the eight surrounding (x, y).
// With toroidal set, coordinates wrap at the edges; otherwise cells beyond
// the edge count as dead.
func (w *World) CountNeighbours(x, y int, toroidal bool) int {
	width, height := w.current.Width(), w.current.Height()
	if width == 0 || height == 0 {
		return 0
	}
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if toroidal {
				nx = wrap(nx, width)
				ny = wrap(ny, height)
			}
			if w.current.IsAlive(nx, ny) {
				n++
			}
		}
	}
	return n
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Step advances one generation.
func (w *World) Step(toroidal bool) {
	w.next.Fill(func(x, y int) grid.Cell {
		return rule(w.current.IsAlive(x, y), w.CountNeighbours(x, y, toroidal))
	})
	w.current, w.next = w.next, w.current
	w.generation++
}

// Advance calls Step steps times. Non-positive counts do nothing.
func (w *World) Advance(steps int, toroidal bool) {
	for i := 0; i < steps; i++ {
		w.Step(toroidal)
	}
}

func rule(alive bool, neighbours int) grid.Cell {
	if neighbours == 3 || (alive && neighbours == 2) {
		return grid.Alive
	}
	return grid.Dead
}
