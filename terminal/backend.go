package terminal

import (
	"errors"
	"io"
)

// ErrNoSize is returned when a backend cannot report usable dimensions
var ErrNoSize = errors.New("terminal size unavailable")

// Backend abstracts the raw terminal: a byte sink, a size oracle and an input source
type Backend interface {
	// Lifecycle
	Init() error
	Fini()

	// Size returns the terminal dimensions in cells
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed, or an error occurs
	// A nil slice with nil error means stop or end of input
	Read(stopCh <-chan struct{}) ([]byte, error)
}

// backendWriter adapts Backend.Write to io.Writer for buffered output
type backendWriter struct {
	b Backend
}

// NewWriter returns an io.Writer that forwards to the backend
func NewWriter(b Backend) io.Writer {
	return &backendWriter{b: b}
}

func (w *backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ClearScreen erases the display
func ClearScreen(b Backend) error {
	return b.Write(csiClear)
}

// EnableMouseMotion turns on any-motion mouse reporting with SGR coordinates
func EnableMouseMotion(b Backend) error {
	if err := b.Write(csiMouseSGROn); err != nil {
		return err
	}
	return b.Write(csiMouseMotionOn)
}

// DisableMouseMotion reverses EnableMouseMotion
func DisableMouseMotion(b Backend) error {
	if err := b.Write(csiMouseMotionOff); err != nil {
		return err
	}
	return b.Write(csiMouseSGROff)
}
