// Package grid provides the dense cell buffer that every other lifesim
// package is built on.
//
// The package defines:
//
//   - [Cell]: the two-valued cell state, [Dead] or [Alive]
//   - [Grid]: a fixed-size, row-major buffer of cells with geometric
//     operations (resize, crop, merge, rotate)
//   - [Render]: the bordered text form used for display
//
// # Example
//
//	g := grid.New(8, 8)
//	_ = g.Set(1, 0, grid.Alive)
//	r := g.Rotate(1)
//	fmt.Print(grid.Render(r))
//
// # Ownership
//
// A Grid owns its buffer. Crop, Rotate and Clone return independent grids;
// nothing in this package aliases one Grid's cells into another.
package grid
