package terminal

import (
	"io"
	"os"
)

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery when the normal release path cannot run
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseSGROff)
	w.Write(csiCursorShow)
	w.Write(csiSGR0)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	// Best-effort; errors ignored in crash context
	resetTerminalMode()
}

// ttyPath is the controlling terminal device
var ttyPath = "/dev/tty"

// ResetControllingTerminal runs EmergencyReset on the controlling terminal, which
// stays reachable when stdout is redirected; falls back to stdout without one
func ResetControllingTerminal() {
	if tty, err := os.OpenFile(ttyPath, os.O_WRONLY, 0); err == nil {
		defer tty.Close()
		EmergencyReset(tty)
		return
	}
	EmergencyReset(os.Stdout)
}
