//go:build unix

package terminal

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/gdamore/tcell/v2"
)

func TestFileBackendOnPty(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100}); err != nil {
		t.Fatalf("Setsize failed: %v", err)
	}

	b := newFileBackend(tty, tty)
	if w, h := b.Size(); w != 100 || h != 30 {
		t.Errorf("Expected 100x30, got %dx%d", w, h)
	}

	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer b.Fini()

	if err := b.Write([]byte("hi")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	buf := make([]byte, 2)
	if _, err := io.ReadFull(ptmx, buf); err != nil {
		t.Fatalf("Read from pty master failed: %v", err)
	}
	if string(buf) != "hi" {
		t.Errorf("Expected %q on master, got %q", "hi", buf)
	}

	if _, err := ptmx.Write([]byte("q")); err != nil {
		t.Fatal(err)
	}
	got, err := b.Read(make(chan struct{}))
	if err != nil || string(got) != "q" {
		t.Errorf("Expected %q from Read, got %q (%v)", "q", got, err)
	}
}

func TestFileBackendReadStops(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	b := newFileBackend(tty, tty)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		if p, err := b.Read(stop); p != nil || err != nil {
			t.Errorf("Expected nil read on stop, got %q (%v)", p, err)
		}
	}()
	close(stop)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Read did not observe stop")
	}
}

func TestFileBackendSizeFallback(t *testing.T) {
	r, w, err := pipeFiles()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	b := newFileBackend(r, w)
	if width, height := b.Size(); width != 80 || height != 24 {
		t.Errorf("Expected 80x24 fallback, got %dx%d", width, height)
	}
	if err := b.Init(); err == nil {
		t.Error("Expected Init to reject a non-terminal")
	}
}

// fakeTty is an in-memory tcell.Tty
type fakeTty struct {
	mu      sync.Mutex
	started bool
	stopped bool
	closed  bool
	size    tcell.WindowSize
	sizeErr error
	written []byte
	reads   chan []byte
	readErr error // Returned once reads is closed; nil means io.EOF
}

func (f *fakeTty) Start() error {
	f.mu.Lock()
	f.started = true
	f.mu.Unlock()
	return nil
}

func (f *fakeTty) Stop() error {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
	return nil
}

func (f *fakeTty) Drain() error          { return nil }
func (f *fakeTty) NotifyResize(cb func()) {}

func (f *fakeTty) WindowSize() (tcell.WindowSize, error) {
	return f.size, f.sizeErr
}

func (f *fakeTty) Read(p []byte) (int, error) {
	data, ok := <-f.reads
	if !ok {
		if f.readErr != nil {
			return 0, f.readErr
		}
		return 0, io.EOF
	}
	return copy(p, data), nil
}

func (f *fakeTty) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, p...)
	return len(p), nil
}

func (f *fakeTty) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func TestTTYBackend(t *testing.T) {
	ft := &fakeTty{
		size:  tcell.WindowSize{Width: 120, Height: 40},
		reads: make(chan []byte, 2),
	}
	b := newTTYBackend(ft)

	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	if w, h := b.Size(); w != 120 || h != 40 {
		t.Errorf("Expected 120x40, got %dx%d", w, h)
	}
	if err := b.Write([]byte(SeqClear)); err != nil {
		t.Fatal(err)
	}
	if string(ft.written) != SeqClear {
		t.Errorf("Expected clear written, got %q", ft.written)
	}

	ft.reads <- []byte("\x1b[<35;3;4M")
	p, err := b.Read(make(chan struct{}))
	if err != nil || string(p) != "\x1b[<35;3;4M" {
		t.Errorf("Expected mouse report, got %q (%v)", p, err)
	}

	close(ft.reads)
	p, err = b.Read(make(chan struct{}))
	if p != nil || err != nil {
		t.Errorf("Expected end of input, got %q (%v)", p, err)
	}

	b.Fini()
	if !ft.started || !ft.stopped || !ft.closed {
		t.Errorf("Expected start/stop/close, got %v/%v/%v", ft.started, ft.stopped, ft.closed)
	}
}

func TestTTYBackendReadError(t *testing.T) {
	failure := errors.New("tty gone")
	for i := 0; i < 50; i++ {
		ft := &fakeTty{reads: make(chan []byte), readErr: failure}
		close(ft.reads)
		b := newTTYBackend(ft)

		p, err := b.Read(make(chan struct{}))
		if p != nil || !errors.Is(err, failure) {
			t.Fatalf("Expected read error on attempt %d, got %q (%v)", i, p, err)
		}
	}
}

func TestTTYBackendSizeFallback(t *testing.T) {
	b := newTTYBackend(&fakeTty{sizeErr: errors.New("no winsize")})
	if w, h := b.Size(); w != 80 || h != 24 {
		t.Errorf("Expected 80x24 fallback, got %dx%d", w, h)
	}
}
