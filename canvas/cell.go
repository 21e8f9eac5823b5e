package canvas

import (
	"github.com/lixenwraith/termvas/terminal"
)

// Cell is the atomic unit of screen state
type Cell struct {
	Glyph rune
	Fg    terminal.Color
	Bg    terminal.Color

	// WasOverlay marks that the overlay glyph was the last thing drawn here
	// Only meaningful in the committed grid
	WasOverlay bool
}

// DefaultCell is the blank cell every grid starts with
var DefaultCell = Cell{
	Glyph: ' ',
	Fg:    terminal.ColorDefault,
	Bg:    terminal.ColorDefault,
}
