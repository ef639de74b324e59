package codec

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/san-kum/lifesim/internal/grid"
)

const headerSize = 8

// LoadBinary reads a .bgol file: little-endian int32 width and height, then
// ceil(width*height/8) bytes with one bit per cell in row-major order, least
// significant bit first, 1 for Alive.
func LoadBinary(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErr("open", path, err)
	}
	defer f.Close()

	g, err := DecodeBinary(f)
	if err != nil {
		return nil, withPath(path, err)
	}
	return g, nil
}

func SaveBinary(path string, g *grid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return ioErr("create", path, err)
	}
	if err := EncodeBinary(f, g); err != nil {
		f.Close()
		return ioErr("write", path, err)
	}
	if err := f.Close(); err != nil {
		return ioErr("close", path, err)
	}
	return nil
}

// packedSize is the number of payload bytes holding width*height bits.
func packedSize(width, height int) int {
	return (width*height + 7) / 8
}

func DecodeBinary(r io.Reader) (*grid.Grid, error) {
	br := bufio.NewReader(r)

	var header [headerSize]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, formatErr(-1, "unexpected end of file")
		}
		return nil, err
	}
	width := int(int32(binary.LittleEndian.Uint32(header[0:4])))
	height := int(int32(binary.LittleEndian.Uint32(header[4:8])))
	if width < 0 || height < 0 {
		return nil, formatErr(-1, "negative size %dx%d", width, height)
	}
	if err := checkSize(width, height); err != nil {
		return nil, err
	}

	payload := make([]byte, packedSize(width, height))
	if _, err := io.ReadFull(br, payload); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, formatErr(-1, "unexpected end of file")
		}
		return nil, err
	}

	g := grid.New(width, height)
	g.Fill(func(x, y int) grid.Cell {
		bit := y*width + x
		if payload[bit/8]>>(bit%8)&1 == 1 {
			return grid.Alive
		}
		return grid.Dead
	})
	return g, nil
}

func EncodeBinary(w io.Writer, g *grid.Grid) error {
	width, height := g.Width(), g.Height()

	buf := make([]byte, headerSize+packedSize(width, height))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(int32(width)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(height)))

	payload := buf[headerSize:]
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if g.IsAlive(x, y) {
				bit := y*width + x
				payload[bit/8] |= 1 << (bit % 8)
			}
		}
	}

	_, err := w.Write(buf)
	return err
}
