package terminal

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// Presentation is the cursor-hidden terminal mode held while a renderer owns the screen
// Acquire hides the cursor and watches termination signals; the cursor is restored by
// Release or, on SIGINT/SIGTERM/SIGHUP, by the watcher before the signal is handled
type Presentation struct {
	backend Backend

	// OnSignal runs after the cursor is restored on a watched signal
	// Nil re-raises the signal with its default disposition
	OnSignal func(os.Signal)

	// Signals are the watched signals; nil disables watching
	Signals []os.Signal

	mu       sync.Mutex
	acquired bool
	sigCh    chan os.Signal
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// DefaultSignals are the termination signals watched by NewPresentation
var DefaultSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP}

// NewPresentation creates a presentation mode on b watching DefaultSignals
func NewPresentation(b Backend) *Presentation {
	return &Presentation{
		backend: b,
		Signals: DefaultSignals,
	}
}

// Acquire hides the cursor and starts the signal watcher
// Calls after the first successful one are no-ops
func (p *Presentation) Acquire() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.acquired {
		return nil
	}
	if err := p.backend.Write(csiCursorHide); err != nil {
		return err
	}
	p.acquired = true

	if len(p.Signals) > 0 {
		p.sigCh = make(chan os.Signal, 1)
		p.stopCh = make(chan struct{})
		p.doneCh = make(chan struct{})
		signal.Notify(p.sigCh, p.Signals...)
		go p.watch(p.sigCh, p.stopCh, p.doneCh)
	}
	return nil
}

// Acquired reports whether the mode is currently held
func (p *Presentation) Acquired() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquired
}

// Release restores the cursor and stops the watcher
// Safe to call multiple times and without a prior Acquire
func (p *Presentation) Release() error {
	p.mu.Lock()
	if !p.acquired {
		p.mu.Unlock()
		return nil
	}
	p.acquired = false
	stopCh, doneCh, sigCh := p.stopCh, p.doneCh, p.sigCh
	p.stopCh, p.doneCh, p.sigCh = nil, nil, nil
	err := p.backend.Write(csiCursorShow)
	p.mu.Unlock()

	if sigCh != nil {
		signal.Stop(sigCh)
		close(stopCh)
		<-doneCh
	}
	return err
}

// watch waits for a termination signal or stop
func (p *Presentation) watch(sigCh <-chan os.Signal, stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	select {
	case <-stopCh:
	case sig := <-sigCh:
		p.handleSignal(sig)
	}
}

// handleSignal restores the cursor then hands the signal on
func (p *Presentation) handleSignal(sig os.Signal) {
	p.mu.Lock()
	wasAcquired := p.acquired
	p.acquired = false
	if p.sigCh != nil {
		signal.Stop(p.sigCh)
	}
	p.stopCh, p.doneCh, p.sigCh = nil, nil, nil
	if wasAcquired {
		p.backend.Write(csiCursorShow)
	}
	p.mu.Unlock()

	if p.OnSignal != nil {
		p.OnSignal(sig)
		return
	}
	raise(sig)
}

// raise re-delivers sig to this process with the default handler
func raise(sig os.Signal) {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return
	}
	signal.Reset(s)
	unix.Kill(unix.Getpid(), s)
}
