package grid

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

type Cell uint8

const (
	Dead Cell = iota
	Alive
)

func (c Cell) String() string {
	switch c {
	case Dead:
		return "dead"
	case Alive:
		return "alive"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// Valid reports whether c is one of the two legal cell states.
func (c Cell) Valid() bool { return c == Dead || c == Alive }

// Grid is a width x height buffer of cells stored row-major
// (index = y*width + x).
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// New returns a Dead-filled grid. It panics on negative dimensions, as make
// does for a negative length.
func New(width, height int) *Grid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("grid: negative dimensions %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Square returns a Dead-filled n x n grid.
func Square(n int) *Grid { return New(n, n) }

// Empty returns a 0x0 grid.
func Empty() *Grid { return New(0, 0) }

func (g *Grid) Width() int      { return g.width }
func (g *Grid) Height() int     { return g.height }
func (g *Grid) TotalCells() int { return len(g.cells) }

func (g *Grid) AliveCells() int {
	n := 0
	for _, c := range g.cells {
		if c == Alive {
			n++
		}
	}
	return n
}

func (g *Grid) DeadCells() int {
	n := 0
	for _, c := range g.cells {
		if c == Dead {
			n++
		}
	}
	return n
}

// Density is the fraction of alive cells, 0 for an empty grid.
func (g *Grid) Density() float64 {
	if len(g.cells) == 0 {
		return 0
	}
	return float64(g.AliveCells()) / float64(len(g.cells))
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int { return y*g.width + x }

func (g *Grid) Get(x, y int) (Cell, error) {
	if !g.inBounds(x, y) {
		return Dead, &BoundsError{Op: "get", X: x, Y: y, Width: g.width, Height: g.height}
	}
	return g.cells[g.index(x, y)], nil
}

func (g *Grid) Set(x, y int, value Cell) error {
	if !g.inBounds(x, y) {
		return &BoundsError{Op: "set", X: x, Y: y, Width: g.width, Height: g.height}
	}
	g.cells[g.index(x, y)] = value
	return nil
}

// IsAlive reports whether (x, y) holds an Alive cell. Coordinates outside
// the grid read as Dead.
func (g *Grid) IsAlive(x, y int) bool {
	return g.inBounds(x, y) && g.cells[g.index(x, y)] == Alive
}

// Fill overwrites every cell, in row-major order, with fn(x, y).
func (g *Grid) Fill(fn func(x, y int) Cell) {
	i := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.cells[i] = fn(x, y)
			i++
		}
	}
}

// Clear sets every cell Dead.
func (g *Grid) Clear() {
	clear(g.cells)
}

func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same dimensions and content.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i, c := range g.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// Hash returns a 64-bit FNV-1a digest of the dimensions and cells. Equal
// grids hash equally.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[0:8], uint64(g.width))
	binary.LittleEndian.PutUint64(dims[8:16], uint64(g.height))
	h.Write(dims[:])

	buf := make([]byte, len(g.cells))
	for i, c := range g.cells {
		buf[i] = byte(c)
	}
	h.Write(buf)
	return h.Sum64()
}

func (g *Grid) ResizeSquare(n int) error { return g.Resize(n, n) }

// Resize changes the grid to newWidth x newHeight. Cells inside both the old
// and new bounds keep their value; every other cell is Dead.
func (g *Grid) Resize(newWidth, newHeight int) error {
	if newWidth < 0 || newHeight < 0 {
		return invalidArg("resize", "negative size %dx%d", newWidth, newHeight)
	}
	if newWidth == g.width && newHeight == g.height {
		return nil
	}

	cells := make([]Cell, newWidth*newHeight)
	xMax := min(g.width, newWidth)
	yMax := min(g.height, newHeight)
	for y := 0; y < yMax; y++ {
		copy(cells[y*newWidth:y*newWidth+xMax], g.cells[y*g.width:y*g.width+xMax])
	}

	g.cells = cells
	g.width = newWidth
	g.height = newHeight
	return nil
}

// Crop returns a copy of the half-open window [x0,x1) x [y0,y1).
func (g *Grid) Crop(x0, y0, x1, y1 int) (*Grid, error) {
	if x0 < 0 || y0 < 0 || x1 < 0 || y1 < 0 {
		return nil, invalidArg("crop", "negative coordinate in (%d,%d)-(%d,%d)", x0, y0, x1, y1)
	}
	if x0 > g.width || x1 > g.width || y0 > g.height || y1 > g.height {
		return nil, invalidArg("crop", "window (%d,%d)-(%d,%d) exceeds %dx%d grid", x0, y0, x1, y1, g.width, g.height)
	}
	if x1 < x0 || y1 < y0 {
		return nil, invalidArg("crop", "reversed window (%d,%d)-(%d,%d)", x0, y0, x1, y1)
	}

	out := New(x1-x0, y1-y0)
	for y := y0; y < y1; y++ {
		copy(out.cells[(y-y0)*out.width:(y-y0+1)*out.width], g.cells[g.index(x0, y):g.index(x1, y)])
	}
	return out, nil
}

// Merge overlays other onto g with its top-left corner at (x0, y0). With
// aliveOnly set, only Alive source cells are written, so no Alive cell in g
// is ever turned Dead.
func (g *Grid) Merge(other *Grid, x0, y0 int, aliveOnly bool) error {
	if other.TotalCells() > g.TotalCells() {
		return fmt.Errorf("merge: %w: %dx%d source is larger than %dx%d destination",
			ErrOutOfBounds, other.width, other.height, g.width, g.height)
	}
	if x0+other.width > g.width || y0+other.height > g.height {
		return fmt.Errorf("merge: %w: %dx%d source at (%d,%d) exceeds %dx%d destination",
			ErrOutOfBounds, other.width, other.height, x0, y0, g.width, g.height)
	}
	if x0 < 0 || y0 < 0 {
		return &BoundsError{Op: "merge", X: x0, Y: y0, Width: g.width, Height: g.height}
	}

	for y := 0; y < other.height; y++ {
		for x := 0; x < other.width; x++ {
			c := other.cells[other.index(x, y)]
			if aliveOnly && c != Alive {
				continue
			}
			g.cells[g.index(x+x0, y+y0)] = c
		}
	}
	return nil
}

// Rotate returns a copy turned clockwise by rotation quarter turns. Any
// integer is accepted; only rotation mod 4 turns are performed.
func (g *Grid) Rotate(rotation int) *Grid {
	turns := rotation % 4
	if turns < 0 {
		turns += 4
	}

	out := g.Clone()
	for i := 0; i < turns; i++ {
		out = out.quarterTurn()
	}
	return out
}

// quarterTurn maps (x, y) to (newWidth-1-y, x) in a height x width grid.
func (g *Grid) quarterTurn() *Grid {
	out := New(g.height, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			out.cells[out.index(out.width-1-y, x)] = g.cells[g.index(x, y)]
		}
	}
	return out
}

func (g *Grid) String() string { return Render(g) }
