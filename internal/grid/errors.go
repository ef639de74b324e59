package grid

import (
	"errors"
	"fmt"
)

// Domain errors for grid operations.
var (
	// ErrOutOfBounds indicates a coordinate or placement outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")

	// ErrInvalidArgument indicates a negative size or reversed bounds.
	ErrInvalidArgument = errors.New("grid: invalid argument")
)

// BoundsError wraps ErrOutOfBounds with the offending coordinate.
type BoundsError struct {
	Op     string
	X, Y   int
	Width  int
	Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: (%d,%d) outside %dx%d grid", e.Op, e.X, e.Y, e.Width, e.Height)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

func invalidArg(op, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, ErrInvalidArgument, fmt.Sprintf(format, args...))
}
