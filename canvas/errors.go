package canvas

import (
	"errors"

	"github.com/lixenwraith/termvas/terminal"
)

var (
	// ErrInvalidCoordinate is returned for a column or row below 1
	ErrInvalidCoordinate = errors.New("invalid screen coordinate: value cannot be less than 1")

	// ErrOutOfBounds is returned for a position beyond the grid
	ErrOutOfBounds = errors.New("coordinate outside grid")

	// ErrInvalidGlyph is returned for runes that do not occupy exactly one column
	ErrInvalidGlyph = errors.New("glyph must be a single-column printable character")

	// ErrUnknownColor is returned for values outside the color enumeration
	ErrUnknownColor = terminal.ErrUnknownColor
)

// ErrClosed is returned by operations on a closed canvas
var ErrClosed = errors.New("canvas closed")
