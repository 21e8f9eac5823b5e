package pointer

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"

	"github.com/lixenwraith/termvas/terminal"
)

// maxPending bounds buffered bytes of an incomplete report
const maxPending = 64

var sgrPrefix = []byte("\x1b[<")

// Reader is a Source fed by SGR mouse reports read from a backend
// Besides mouse reports it only recognizes 'q' and Ctrl-C, which close Quit
type Reader struct {
	subscribers

	backend terminal.Backend
	logger  *slog.Logger

	pending []byte

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{} // Recreated by each Start
	doneCh   chan struct{}
	quitCh   chan struct{}
	quitOnce sync.Once

	// Crash path hooks
	crashOut io.Writer
	exit     func(code int)
}

// NewReader creates a reader over b; logger may be nil
func NewReader(b terminal.Backend, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reader{
		backend:  b,
		logger:   logger,
		quitCh:   make(chan struct{}),
		crashOut: os.Stderr,
		exit:     os.Exit,
	}
}

// Start enables mouse motion reporting and launches the poll goroutine
// A stopped reader may be started again; Quit stays closed once closed
func (r *Reader) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil
	}
	if err := terminal.EnableMouseMotion(r.backend); err != nil {
		return fmt.Errorf("enable mouse: %w", err)
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	r.pending = nil
	go r.pollLoop(r.stopCh, r.doneCh)
	return nil
}

// Stop ends polling and disables mouse reporting
func (r *Reader) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	stopCh, doneCh := r.stopCh, r.doneCh
	r.mu.Unlock()

	close(stopCh)
	<-doneCh
	return terminal.DisableMouseMotion(r.backend)
}

// Quit is closed when the user asks to quit or input ends
func (r *Reader) Quit() <-chan struct{} {
	return r.quitCh
}

func (r *Reader) quit() {
	r.quitOnce.Do(func() { close(r.quitCh) })
}

// pollLoop reads input until stop signal
func (r *Reader) pollLoop(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	defer func() {
		if rec := recover(); rec != nil {
			// Reset through the backend: stdout may not be the terminal
			terminal.EmergencyReset(terminal.NewWriter(r.backend))
			fmt.Fprintf(r.crashOut, "\r\n\x1b[31mPOINTER READER CRASHED: %v\x1b[0m\r\n", rec)
			fmt.Fprintf(r.crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())
			r.exit(1)
		}
	}()

	for {
		data, err := r.backend.Read(stopCh)
		if err != nil {
			r.logger.Error("pointer read failed", "error", err)
			r.quit()
			return
		}
		if data == nil {
			select {
			case <-stopCh:
			default:
				// End of input
				r.quit()
			}
			return
		}
		r.consume(data)
	}
}

// consume decodes data appended to any incomplete report from the previous read
func (r *Reader) consume(data []byte) {
	buf := append(r.pending, data...)
	r.pending = nil

	i := 0
	for i < len(buf) {
		b := buf[i]
		switch {
		case b == 0x03 || b == 'q':
			r.quit()
			i++
		case b == 0x1b:
			rest := buf[i:]
			if len(rest) < len(sgrPrefix) {
				if bytes.HasPrefix(sgrPrefix, rest) {
					r.keep(rest)
					return
				}
				i++
				continue
			}
			if !bytes.HasPrefix(rest, sgrPrefix) {
				i++
				continue
			}
			n, rep, ok := parseSGRMouse(rest)
			if n == 0 {
				r.keep(rest)
				return
			}
			if ok {
				r.publish(rep.X, rep.Y)
			}
			i += n
		default:
			i++
		}
	}
}

// keep stores an incomplete report, dropping it when it grows past maxPending
func (r *Reader) keep(rest []byte) {
	if len(rest) > maxPending {
		r.logger.Debug("dropping oversized mouse sequence", "bytes", len(rest))
		return
	}
	r.pending = append([]byte(nil), rest...)
}
