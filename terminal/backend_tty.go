//go:build unix

package terminal

import (
	"fmt"
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ttyBackend drives the controlling terminal through tcell's Tty primitive
// Works when stdin/stdout are redirected
type ttyBackend struct {
	tty tcell.Tty

	readOnce sync.Once
	chunks   chan []byte
	errs     chan error
}

// NewTTYBackend opens /dev/tty
func NewTTYBackend() (Backend, error) {
	tty, err := tcell.NewDevTty()
	if err != nil {
		return nil, fmt.Errorf("open tty: %w", err)
	}
	return newTTYBackend(tty), nil
}

func newTTYBackend(tty tcell.Tty) *ttyBackend {
	return &ttyBackend{
		tty:    tty,
		chunks: make(chan []byte, 16),
		errs:   make(chan error, 1),
	}
}

// Init puts the tty in raw mode
func (b *ttyBackend) Init() error {
	return b.tty.Start()
}

func (b *ttyBackend) Fini() {
	b.tty.Stop()
	b.tty.Close()
}

func (b *ttyBackend) Size() (int, int) {
	ws, err := b.tty.WindowSize()
	if err != nil || ws.Width <= 0 || ws.Height <= 0 {
		return 80, 24
	}
	return ws.Width, ws.Height
}

func (b *ttyBackend) Write(p []byte) error {
	_, err := b.tty.Write(p)
	return err
}

// Read returns the next chunk from the tty
// A single pump goroutine owns the blocking tty read; callers select on it
func (b *ttyBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	b.readOnce.Do(func() { go b.pump() })

	select {
	case <-stopCh:
		return nil, nil
	case p, ok := <-b.chunks:
		if !ok {
			// pump queues its error before closing chunks
			select {
			case err := <-b.errs:
				return nil, err
			default:
				return nil, nil
			}
		}
		return p, nil
	case err := <-b.errs:
		return nil, err
	}
}

func (b *ttyBackend) pump() {
	defer close(b.chunks)
	buf := make([]byte, 256)
	for {
		n, err := b.tty.Read(buf)
		if n > 0 {
			p := make([]byte, n)
			copy(p, buf[:n])
			b.chunks <- p
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			select {
			case b.errs <- err:
			default:
			}
			return
		}
	}
}
