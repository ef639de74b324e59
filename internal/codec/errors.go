package codec

import (
	"errors"
	"fmt"
)

// Domain errors for grid file operations.
var (
	// ErrIO indicates a grid file could not be opened, read or written.
	ErrIO = errors.New("codec: i/o failure")

	// ErrFormat indicates malformed grid file content.
	ErrFormat = errors.New("codec: malformed grid file")
)

// FormatError wraps ErrFormat with the location of the problem. Row is -1
// when the problem is not tied to a row (header, payload length).
type FormatError struct {
	Path string
	Row  int
	Msg  string
}

func (e *FormatError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "<stream>"
	}
	if e.Row >= 0 {
		return fmt.Sprintf("%s: row %d: %s", loc, e.Row, e.Msg)
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

func formatErr(row int, format string, args ...any) *FormatError {
	return &FormatError{Row: row, Msg: fmt.Sprintf(format, args...)}
}

// withPath fills in the path of a FormatError returned by a decoder and wraps
// any other failure as ErrIO.
func withPath(path string, err error) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Path = path
		return fe
	}
	return ioErr("read", path, err)
}

func ioErr(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}
