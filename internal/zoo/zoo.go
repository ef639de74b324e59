// Package zoo holds small named patterns and a random soup generator.
package zoo

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/lifesim/internal/grid"
)

type point struct{ x, y int }

func build(width, height int, alive ...point) *grid.Grid {
	g := grid.New(width, height)
	for _, p := range alive {
		if err := g.Set(p.x, p.y, grid.Alive); err != nil {
			panic(fmt.Sprintf("zoo: pattern cell %v outside %dx%d", p, width, height))
		}
	}
	return g
}

// Glider returns the 3x3 glider, travelling down and to the right:
//
//	 #
//	  #
//	###
func Glider() *grid.Grid {
	return build(3, 3,
		point{1, 0},
		point{2, 1},
		point{0, 2}, point{1, 2}, point{2, 2},
	)
}

// RPentomino returns the 3x3 R-pentomino:
//
//	 ##
//	##
//	 #
func RPentomino() *grid.Grid {
	return build(3, 3,
		point{1, 0}, point{2, 0},
		point{0, 1}, point{1, 1},
		point{1, 2},
	)
}

// LightweightSpaceship returns the 5x4 lightweight spaceship:
//
//	 #  #
//	#
//	#   #
//	####
func LightweightSpaceship() *grid.Grid {
	return build(5, 4,
		point{1, 0}, point{4, 0},
		point{0, 1},
		point{0, 2}, point{4, 2},
		point{0, 3}, point{1, 3}, point{2, 3}, point{3, 3},
	)
}

// Blinker returns a period-2 oscillator in its horizontal phase.
func Blinker() *grid.Grid {
	return build(3, 3, point{0, 1}, point{1, 1}, point{2, 1})
}

// Block returns a still life with one dead cell of margin on every side.
func Block() *grid.Grid {
	return build(4, 4, point{1, 1}, point{2, 1}, point{1, 2}, point{2, 2})
}

// Soup returns a width x height grid where each cell is Alive with
// probability density.
func Soup(width, height int, density float64, rng *rand.Rand) *grid.Grid {
	g := grid.New(width, height)
	g.Fill(func(x, y int) grid.Cell {
		if rng.Float64() < density {
			return grid.Alive
		}
		return grid.Dead
	})
	return g
}

var patterns = map[string]func() *grid.Grid{
	"glider":     Glider,
	"rpentomino": RPentomino,
	"lwss":       LightweightSpaceship,
	"blinker":    Blinker,
	"block":      Block,
}

// Lookup returns a fresh copy of the named pattern.
func Lookup(name string) (*grid.Grid, error) {
	fn, ok := patterns[name]
	if !ok {
		return nil, fmt.Errorf("unknown pattern: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

// Names lists the registered pattern names in sorted order.
func Names() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
