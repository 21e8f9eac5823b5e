package terminal

import (
	"bytes"
	"sync"
)

// MemoryBackend is an in-memory backend with fixed dimensions
// Written bytes are recorded; input is scripted through Feed
type MemoryBackend struct {
	mu       sync.Mutex
	width    int
	height   int
	out      bytes.Buffer
	writes   int
	writeErr error
	input    chan []byte
	inited   bool
	finished bool
}

// NewMemoryBackend creates a backend reporting the given size
func NewMemoryBackend(width, height int) *MemoryBackend {
	return &MemoryBackend{
		width:  width,
		height: height,
		input:  make(chan []byte, 64),
	}
}

func (b *MemoryBackend) Init() error {
	b.mu.Lock()
	b.inited = true
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Fini() {
	b.mu.Lock()
	b.finished = true
	b.mu.Unlock()
}

func (b *MemoryBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *MemoryBackend) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.writeErr != nil {
		return b.writeErr
	}
	b.writes++
	b.out.Write(p)
	return nil
}

func (b *MemoryBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case <-stopCh:
		return nil, nil
	case p, ok := <-b.input:
		if !ok {
			return nil, nil
		}
		return p, nil
	}
}

// Feed queues input returned by Read
func (b *MemoryBackend) Feed(p []byte) {
	b.input <- p
}

// CloseInput ends the input stream
func (b *MemoryBackend) CloseInput() {
	close(b.input)
}

// FailWrites makes subsequent writes return err (nil restores normal writes)
func (b *MemoryBackend) FailWrites(err error) {
	b.mu.Lock()
	b.writeErr = err
	b.mu.Unlock()
}

// Output returns everything written so far
func (b *MemoryBackend) Output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.String()
}

// Take returns and clears the recorded output
func (b *MemoryBackend) Take() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.out.String()
	b.out.Reset()
	return s
}

// Writes returns the number of successful Write calls
func (b *MemoryBackend) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// Finished reports whether Fini was called
func (b *MemoryBackend) Finished() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.finished
}
