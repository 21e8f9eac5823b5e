package canvas

import (
	"log/slog"

	"github.com/lixenwraith/termvas/pointer"
	"github.com/lixenwraith/termvas/terminal"
)

// Presenter is the terminal mode held while the canvas owns the screen
// *terminal.Presentation is the standard implementation
type Presenter interface {
	Acquire() error
	Release() error
}

// Option configures a Canvas at construction
type Option func(*Canvas)

// WithOverlay enables pointer overlay compositing fed by src
// Without it the canvas never subscribes to pointer events
func WithOverlay(src pointer.Source) Option {
	return func(c *Canvas) {
		c.overlaySrc = src
	}
}

// WithOverlayStyle sets the overlay glyph and colors (default: white space on white)
func WithOverlayStyle(glyph rune, fg, bg terminal.Color) Option {
	return func(c *Canvas) {
		c.overlayCell = Cell{Glyph: glyph, Fg: fg, Bg: bg}
	}
}

// WithLogger routes debug logging; the default discards
func WithLogger(l *slog.Logger) Option {
	return func(c *Canvas) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPresentation replaces the default cursor-hiding presentation mode
func WithPresentation(p Presenter) Option {
	return func(c *Canvas) {
		if p != nil {
			c.presentation = p
		}
	}
}
