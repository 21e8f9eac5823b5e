package terminal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ErrUnknownColor is returned for values outside the color enumeration
var ErrUnknownColor = errors.New("unknown color")

// Color is one of the eight ANSI base colors or the terminal default
// The zero value ColorKeep is not drawable, write APIs read it as "leave unchanged"
type Color uint8

const (
	ColorKeep Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorDefault
)

// colorTable holds name, foreground and background SGR code per color
// Foreground and background code spaces are disjoint (3x vs 4x)
var colorTable = [...]struct {
	name string
	fg   int
	bg   int
}{
	ColorKeep:    {"keep", 0, 0},
	ColorBlack:   {"black", 30, 40},
	ColorRed:     {"red", 31, 41},
	ColorGreen:   {"green", 32, 42},
	ColorYellow:  {"yellow", 33, 43},
	ColorBlue:    {"blue", 34, 44},
	ColorMagenta: {"magenta", 35, 45},
	ColorCyan:    {"cyan", 36, 46},
	ColorWhite:   {"white", 37, 47},
	ColorDefault: {"default", 39, 49},
}

// Valid reports whether c is a drawable color (excludes ColorKeep)
func (c Color) Valid() bool {
	return c > ColorKeep && c <= ColorDefault
}

// FgCode returns the foreground SGR parameter
func (c Color) FgCode() (int, bool) {
	if !c.Valid() {
		return 0, false
	}
	return colorTable[c].fg, true
}

// BgCode returns the background SGR parameter
func (c Color) BgCode() (int, bool) {
	if !c.Valid() {
		return 0, false
	}
	return colorTable[c].bg, true
}

// String returns the color name
func (c Color) String() string {
	if c > ColorDefault {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorTable[c].name
}

// Validate returns ErrUnknownColor unless c is drawable or, with allowKeep, ColorKeep
func (c Color) Validate(allowKeep bool) error {
	if c.Valid() || (allowKeep && c == ColorKeep) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownColor, c)
}

// ParseColor resolves a color name
// Enumeration names match first; other names go through tcell's color table and fold
// onto the base palette (maroon → red, navy → blue, silver → white)
func ParseColor(name string) (Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for c := ColorBlack; c <= ColorDefault; c++ {
		if colorTable[c].name == n {
			return c, nil
		}
	}
	if n == "" {
		return ColorKeep, fmt.Errorf("%w: empty name", ErrUnknownColor)
	}
	tc := tcell.GetColor(n)
	if tc == tcell.ColorDefault {
		return ColorKeep, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	c, err := ColorFromTcell(tc)
	if err != nil {
		return ColorKeep, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return c, nil
}

// ColorFromTcell maps a tcell color to the enumeration
// Palette entries 0-15 fold onto the eight base colors; RGB colors are rejected
func ColorFromTcell(tc tcell.Color) (Color, error) {
	if tc == tcell.ColorDefault {
		return ColorDefault, nil
	}
	for i := 0; i < 16; i++ {
		if tc == tcell.PaletteColor(i) {
			return ColorBlack + Color(i%8), nil
		}
	}
	return ColorKeep, fmt.Errorf("%w: tcell color %v", ErrUnknownColor, tc)
}

// Tcell returns the tcell palette color for c
func (c Color) Tcell() tcell.Color {
	if c >= ColorBlack && c <= ColorWhite {
		return tcell.PaletteColor(int(c - ColorBlack))
	}
	return tcell.ColorDefault
}
