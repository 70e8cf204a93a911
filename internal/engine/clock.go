package engine

import (
	"sync"
	"time"
)

// Freq is a tick rate in ticks per second
type Freq float64

// Hz is one tick per second
const Hz Freq = 1

// DefaultFreq drives presentations at display refresh rate
const DefaultFreq = 60 * Hz

// Period returns the time between two consecutive ticks
func (f Freq) Period() time.Duration {
	if f <= 0 {
		panic("frequency must be positive")
	}
	return time.Duration(float64(time.Second) / float64(f))
}

// Clock creates tickers. Tests swap the wall clock for a ManualClock.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers ticks until stopped
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realClock struct{}

// RealClock returns a Clock backed by time.Ticker.
func RealClock() Clock { return realClock{} }

func (realClock) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// ManualClock fires its tickers only when advanced
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManualClock creates a clock frozen at the Unix epoch.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(0, 0)}
}

func (c *ManualClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTicker{
		clock:  c,
		period: d,
		next:   c.now.Add(d),
		ch:     make(chan time.Time),
		done:   make(chan struct{}),
	}
	c.tickers = append(c.tickers, t)
	return t
}

// Tickers returns the number of live tickers.
func (c *ManualClock) Tickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

// Advance moves the clock forward and delivers every tick that falls due.
// Each delivery blocks until the ticker's owner receives it or stops the ticker.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	tickers := append([]*manualTicker(nil), c.tickers...)
	c.mu.Unlock()

	for _, t := range tickers {
		for {
			c.mu.Lock()
			due := !t.next.After(now)
			at := t.next
			if due {
				t.next = t.next.Add(t.period)
			}
			c.mu.Unlock()
			if !due {
				break
			}
			select {
			case t.ch <- at:
			case <-t.done:
			}
		}
	}
}

type manualTicker struct {
	clock  *ManualClock
	period time.Duration
	next   time.Time
	ch     chan time.Time
	done   chan struct{}
	once   sync.Once
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.once.Do(func() {
		close(t.done)
		c := t.clock
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, other := range c.tickers {
			if other == t {
				c.tickers = append(c.tickers[:i], c.tickers[i+1:]...)
				break
			}
		}
	})
}
