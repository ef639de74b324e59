// Package viz renders a running world in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one world, stepped on a timer
//   - [Menu]: preset and pattern picker that opens a [Model]
//   - [Canvas]: Braille canvas drawing one dot per cell
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Step once while paused
//	R     - Reset to the initial grid
//	T     - Toggle toroidal wrap
//	C     - Cycle color themes
//	+/-   - Double/halve speed
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// G starts capturing one frame per generation; pressing it again (or
// quitting) writes the animation to the configured GIF path.
package viz
