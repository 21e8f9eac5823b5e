package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csi        = []byte("\x1b[")
	csiSGR0    = []byte("\x1b[0m")
	csiClear   = []byte("\x1b[2J")
	csiCursorP = []byte("\x1b[") // followed by row;colH

	// Cursor visibility
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Mouse reporting: any-motion tracking with SGR extended coordinates
	csiMouseMotionOn  = []byte("\x1b[?1003h")
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseSGROn     = []byte("\x1b[?1006h")
	csiMouseSGROff    = []byte("\x1b[?1006l")
)

// Exported sequences for callers that compose their own streams
const (
	SeqClear      = "\x1b[2J"
	SeqReset      = "\x1b[0m"
	SeqCursorHide = "\x1b[?25l"
	SeqCursorShow = "\x1b[?25h"
)

// writeInt writes a non-negative integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// WriteCursorPos writes a cursor position sequence for the 0-indexed cell (col, row)
// Terminal addressing is 1-indexed: CSI row+1 ; col+1 H
func WriteCursorPos(w *bufio.Writer, col, row int) {
	w.Write(csiCursorP)
	writeInt(w, row+1)
	w.WriteByte(';')
	writeInt(w, col+1)
	w.WriteByte('H')
}

// WriteFg writes the foreground SGR sequence for c
// Callers validate c beforehand; an invalid color writes nothing
func WriteFg(w *bufio.Writer, c Color) {
	code, ok := c.FgCode()
	if !ok {
		return
	}
	w.Write(csi)
	writeInt(w, code)
	w.WriteByte('m')
}

// WriteBg writes the background SGR sequence for c
func WriteBg(w *bufio.Writer, c Color) {
	code, ok := c.BgCode()
	if !ok {
		return
	}
	w.Write(csi)
	writeInt(w, code)
	w.WriteByte('m')
}

// WriteReset writes the reset-all-attributes sequence
func WriteReset(w *bufio.Writer) {
	w.Write(csiSGR0)
}

// WriteGlyph writes a single glyph, ASCII fast path
func WriteGlyph(w *bufio.Writer, r rune) {
	if r < 0x80 {
		w.WriteByte(byte(r))
		return
	}
	w.WriteRune(r)
}
