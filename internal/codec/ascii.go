package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/lifesim/internal/grid"
)

const (
	aliveChar = '#'
	deadChar  = ' '
)

// LoadASCII reads a .gol file: a "W H" header line followed by H rows of
// exactly W characters, '#' for Alive and ' ' for Dead, each ending in '\n'.
func LoadASCII(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErr("open", path, err)
	}
	defer f.Close()

	g, err := DecodeASCII(f)
	if err != nil {
		return nil, withPath(path, err)
	}
	return g, nil
}

// SaveASCII writes g as a .gol file. Grids with a zero dimension have no
// ascii form and are rejected before the file is created.
func SaveASCII(path string, g *grid.Grid) error {
	if err := checkASCIISize(g); err != nil {
		return withPath(path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return ioErr("create", path, err)
	}
	if err := EncodeASCII(f, g); err != nil {
		f.Close()
		return ioErr("write", path, err)
	}
	if err := f.Close(); err != nil {
		return ioErr("close", path, err)
	}
	return nil
}

func DecodeASCII(r io.Reader) (*grid.Grid, error) {
	br := bufio.NewReader(r)

	header, err := br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, formatErr(-1, "unexpected end of file in header")
		}
		return nil, err
	}
	width, height, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	g := grid.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b, err := br.ReadByte()
			if err != nil {
				return nil, rowReadErr(y, err)
			}
			switch b {
			case aliveChar:
				if err := g.Set(x, y, grid.Alive); err != nil {
					return nil, err
				}
			case deadChar:
			case '\n':
				return nil, formatErr(y, "row has %d characters, want %d", x, width)
			default:
				return nil, formatErr(y, "illegal character %q at column %d", b, x)
			}
		}

		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, formatErr(y, "missing newline at end of row")
			}
			return nil, err
		}
		if b != '\n' {
			return nil, formatErr(y, "expected newline after %d characters, found %q", width, b)
		}
	}

	return g, nil
}

func parseHeader(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, formatErr(-1, "header %q: want \"<width> <height>\"", strings.TrimSpace(line))
	}
	width, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, formatErr(-1, "header width %q is not an integer", fields[0])
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, formatErr(-1, "header height %q is not an integer", fields[1])
	}
	if width <= 0 || height <= 0 {
		return 0, 0, formatErr(-1, "non-positive size %dx%d", width, height)
	}
	if err := checkSize(width, height); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

func rowReadErr(row int, err error) error {
	if errors.Is(err, io.EOF) {
		return formatErr(row, "unexpected end of file")
	}
	return err
}

func checkASCIISize(g *grid.Grid) *FormatError {
	if g.Width() <= 0 || g.Height() <= 0 {
		return formatErr(-1, "cannot encode %dx%d grid: ascii needs a positive size", g.Width(), g.Height())
	}
	return nil
}

func EncodeASCII(w io.Writer, g *grid.Grid) error {
	if err := checkASCIISize(g); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", g.Width(), g.Height())

	row := make([]byte, g.Width()+1)
	row[g.Width()] = '\n'
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.IsAlive(x, y) {
				row[x] = aliveChar
			} else {
				row[x] = deadChar
			}
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
