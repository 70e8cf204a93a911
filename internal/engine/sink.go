package engine

import (
	"sync"

	"github.com/ivlev/flexdash-demo/internal/renderer"
)

// Sink receives every frame a host renders. Publish runs with the host
// lock held and must not call back into the host.
type Sink interface {
	Publish(frame renderer.Frame)
}

type discard struct{}

func (discard) Publish(renderer.Frame) {}

// Latest keeps the most recent frame
type Latest struct {
	mu    sync.RWMutex
	frame renderer.Frame
	count uint64
}

func (l *Latest) Publish(frame renderer.Frame) {
	l.mu.Lock()
	l.frame = frame
	l.count++
	l.mu.Unlock()
}

// Frame returns the latest frame and how many frames were published.
func (l *Latest) Frame() (renderer.Frame, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.frame, l.count
}

// Fanout publishes to several sinks in order
type Fanout []Sink

func (f Fanout) Publish(frame renderer.Frame) {
	for _, s := range f {
		s.Publish(frame)
	}
}
