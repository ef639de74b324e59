// Package codec reads and writes grids in the two lifesim file formats:
// the ascii .gol format and the packed binary .bgol format.
package codec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/san-kum/lifesim/internal/grid"
)

const (
	ExtASCII  = ".gol"
	ExtBinary = ".bgol"
)

// maxCells bounds the grid a header may declare, so a corrupt header fails
// as a format error instead of an allocation failure.
const maxCells = 1 << 30

func checkSize(width, height int) error {
	if width != 0 && height > maxCells/width {
		return formatErr(-1, "size %dx%d exceeds %d cells", width, height, maxCells)
	}
	return nil
}

// Load reads a grid file, choosing the format from the extension.
func Load(path string) (*grid.Grid, error) {
	switch ext(path) {
	case ExtASCII:
		return LoadASCII(path)
	case ExtBinary:
		return LoadBinary(path)
	default:
		return nil, unknownExt(path)
	}
}

// Save writes a grid file, choosing the format from the extension.
func Save(path string, g *grid.Grid) error {
	switch ext(path) {
	case ExtASCII:
		return SaveASCII(path, g)
	case ExtBinary:
		return SaveBinary(path, g)
	default:
		return unknownExt(path)
	}
}

// IsGridFile reports whether path has a grid file extension.
func IsGridFile(path string) bool {
	e := ext(path)
	return e == ExtASCII || e == ExtBinary
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func unknownExt(path string) error {
	return &FormatError{
		Path: path,
		Row:  -1,
		Msg:  fmt.Sprintf("unknown extension %q (want %s or %s)", filepath.Ext(path), ExtASCII, ExtBinary),
	}
}
