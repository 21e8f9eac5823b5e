// Package pointer delivers externally reported pointer positions to the renderer.
//
// Positions are 1-indexed screen coordinates, as terminals report them.
package pointer

import "sync"

// Source publishes pointer positions to subscribers
type Source interface {
	// Subscribe registers fn for every subsequent position update
	Subscribe(fn func(x, y int))
}

// subscribers is the fan-out shared by sources
type subscribers struct {
	mu  sync.RWMutex
	fns []func(x, y int)
}

func (s *subscribers) Subscribe(fn func(x, y int)) {
	s.mu.Lock()
	s.fns = append(s.fns, fn)
	s.mu.Unlock()
}

func (s *subscribers) publish(x, y int) {
	s.mu.RLock()
	fns := s.fns
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(x, y)
	}
}

// Feed is a Source driven by explicit Move calls
type Feed struct {
	subscribers
}

// NewFeed creates an empty feed
func NewFeed() *Feed {
	return &Feed{}
}

// Move publishes a 1-indexed position
func (f *Feed) Move(x, y int) {
	f.publish(x, y)
}
