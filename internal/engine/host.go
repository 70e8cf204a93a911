// Package engine drives presentations: it owns presentation time, resolves
// it against a schedule and publishes rendered frames.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/xid"
	"pkt.systems/pslog"

	"github.com/ivlev/flexdash-demo/internal/director"
	"github.com/ivlev/flexdash-demo/internal/effects"
	"github.com/ivlev/flexdash-demo/internal/renderer"
)

var (
	// ErrNotRunning is returned by Run when the host has not been started.
	ErrNotRunning = errors.New("presentation not running")
	// ErrInvalidOption is returned by NewHost for unusable options.
	ErrInvalidOption = errors.New("invalid host option")
)

// Host plays one schedule. It is the single owner of its presentation time:
// Start, Stop, Advance and the Run loop all serialise on one lock, and every
// tick carries the generation it was scheduled under so that ticks from a
// stopped or restarted run are dropped.
type Host struct {
	name     string
	resolver *director.Resolver
	registry *renderer.Registry
	sink     Sink
	clock    Clock
	freq     Freq
	loop     bool
	onLoop   func(name string, loop int64)
	logger   pslog.Logger

	mu      sync.Mutex
	running bool
	paused  bool
	gen     uint64
	elapsed time.Duration
	pos     director.Position
	frame   renderer.Frame
	runID   xid.ID
	cancel  context.CancelFunc
	warned  map[int]bool // Scenes whose lead-in fallback was logged this run
}

// Option configures a Host
type Option func(*Host)

// WithSink sets where rendered frames go.
func WithSink(s Sink) Option { return func(h *Host) { h.sink = s } }

// WithClock replaces the wall clock driving Run.
func WithClock(c Clock) Option { return func(h *Host) { h.clock = c } }

// WithFreq sets the Run tick rate.
func WithFreq(f Freq) Option { return func(h *Host) { h.freq = f } }

// WithLoop controls wrap-around. A non-looping host stops after one pass.
func WithLoop(loop bool) Option { return func(h *Host) { h.loop = loop } }

// WithOnLoop registers a callback fired each time playback wraps around.
func WithOnLoop(fn func(name string, loop int64)) Option {
	return func(h *Host) { h.onLoop = fn }
}

// WithLogger sets the host logger.
func WithLogger(l pslog.Logger) Option { return func(h *Host) { h.logger = l } }

// NewHost validates the schedule, its transitions and renderer coverage.
// Any problem is a configuration error and no host is created.
func NewHost(name string, s *director.Schedule, reg *renderer.Registry, opts ...Option) (*Host, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: nil renderer registry", ErrInvalidOption)
	}
	resolver, err := director.NewResolver(s)
	if err != nil {
		return nil, err
	}
	if err := effects.Validate(s); err != nil {
		return nil, err
	}
	if err := reg.Validate(s); err != nil {
		return nil, err
	}

	h := &Host{
		name:     name,
		resolver: resolver,
		registry: reg,
		sink:     discard{},
		clock:    RealClock(),
		freq:     DefaultFreq,
		loop:     true,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.freq <= 0 {
		return nil, fmt.Errorf("%w: tick rate must be positive, got %v", ErrInvalidOption, float64(h.freq))
	}
	if h.clock == nil {
		return nil, fmt.Errorf("%w: nil clock", ErrInvalidOption)
	}
	if h.sink == nil {
		h.sink = discard{}
	}
	if h.logger == nil {
		h.logger = pslog.Ctx(context.Background())
	}
	h.logger = h.logger.With("presentation", name)
	h.pos = resolver.Resolve(0)
	return h, nil
}

// Start begins playback at presentation time zero. Starting a running host
// restarts it.
func (h *Host) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reset()
	h.running = true
	h.runID = xid.New()
	h.render()
	h.logger.Debug("presentation started", "run", h.runID.String(), "total_ms", h.resolver.Total().Milliseconds())
}

// Stop halts playback, cancels the Run loop and rewinds to zero.
func (h *Host) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		h.logger.Debug("presentation stopped", "run", h.runID.String(), "elapsed_ms", h.elapsed.Milliseconds())
	}
	h.reset()
}

// reset cancels pending ticks and rewinds. Caller holds the lock.
func (h *Host) reset() {
	h.gen++
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.running = false
	h.paused = false
	h.warned = nil
	h.elapsed = 0
	h.pos = h.resolver.Resolve(0)
}

// Pause freezes presentation time while keeping the host running.
func (h *Host) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		h.paused = true
	}
}

// Resume continues a paused presentation.
func (h *Host) Resume() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paused = false
}

// Advance moves presentation time forward by delta and renders the new
// moment. It reports false, rendering nothing, while stopped or paused.
func (h *Host) Advance(delta time.Duration) (renderer.Frame, bool) {
	h.mu.Lock()
	frame, ok, loop := h.advance(h.gen, delta)
	h.mu.Unlock()
	h.notify(loop)
	return frame, ok
}

// advance runs one tick of generation gen. Caller holds the lock. A non-zero
// loop count is returned when playback wrapped around.
func (h *Host) advance(gen uint64, delta time.Duration) (renderer.Frame, bool, int64) {
	if gen != h.gen || !h.running || h.paused {
		return h.frame, false, 0
	}
	if delta < 0 {
		delta = 0
	}

	prevLoop := h.pos.Loop
	h.elapsed += delta

	total := h.resolver.Total()
	if !h.loop && h.elapsed >= total {
		h.elapsed = total - time.Millisecond
		h.render()
		h.logger.Debug("presentation finished", "run", h.runID.String())
		frame := h.frame
		h.gen++
		h.running = false
		return frame, true, 0
	}

	h.render()
	if h.pos.Loop > prevLoop {
		h.logger.Debug("presentation looped", "loop", h.pos.Loop)
		return h.frame, true, h.pos.Loop
	}
	return h.frame, true, 0
}

// render resolves the current time and publishes its frame. Caller holds the lock.
func (h *Host) render() {
	pos := h.resolver.Resolve(h.elapsed)
	if pos.Fallback && !h.warned[pos.SceneIndex] {
		if h.warned == nil {
			h.warned = make(map[int]bool)
		}
		h.warned[pos.SceneIndex] = true
		h.logger.Warn("scene time precedes first action, using first action",
			"scene", pos.SceneID, "scene_time_ms", pos.SceneTime.Milliseconds(), "action", pos.Action.ID)
	}
	h.pos = pos
	h.frame = h.frameOf(pos, h.elapsed)
	h.sink.Publish(h.frame)
}

func (h *Host) frameOf(pos director.Position, elapsed time.Duration) renderer.Frame {
	scene := h.resolver.Schedule().Scenes[pos.SceneIndex]
	frame := h.registry.Render(renderer.InputAt(pos))
	frame.Presentation = h.name
	frame.Loop = pos.Loop
	frame.Transition = effects.Apply(scene.Transition, pos.SceneTime)
	frame.Elapsed = elapsed
	return frame
}

// FrameAt renders presentation time t without touching playback state.
// It is safe for concurrent use.
func (h *Host) FrameAt(t time.Duration) renderer.Frame {
	return h.frameOf(h.resolver.Resolve(t), t)
}

// Total returns the length of one pass over the schedule.
func (h *Host) Total() time.Duration { return h.resolver.Total() }

func (h *Host) notify(loop int64) {
	if loop > 0 && h.onLoop != nil {
		h.onLoop(h.name, loop)
	}
}

// Run drives the host from its clock until ctx is done or the host is
// stopped or restarted. Only one Run loop is active per host; starting a
// new one cancels the previous.
func (h *Host) Run(ctx context.Context) error {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return ErrNotRunning
	}
	if h.cancel != nil {
		h.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	gen := h.gen
	h.mu.Unlock()
	defer cancel()

	period := h.freq.Period()
	ticker := h.clock.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
			h.mu.Lock()
			if gen != h.gen {
				h.mu.Unlock()
				return nil
			}
			_, _, loop := h.advance(gen, period)
			h.mu.Unlock()
			h.notify(loop)
		}
	}
}

// Name returns the presentation name.
func (h *Host) Name() string { return h.name }

// Schedule returns the schedule being played.
func (h *Host) Schedule() *director.Schedule { return h.resolver.Schedule() }

// Running reports whether the host is started.
func (h *Host) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// Paused reports whether ticks are currently ignored.
func (h *Host) Paused() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.paused
}

// Elapsed returns the current presentation time.
func (h *Host) Elapsed() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.elapsed
}

// Position returns where the current time resolves to.
func (h *Host) Position() director.Position {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pos
}

// Frame returns the last rendered frame.
func (h *Host) Frame() renderer.Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frame
}

// RunID identifies the current run. It changes on every Start.
func (h *Host) RunID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.runID.IsNil() {
		return ""
	}
	return h.runID.String()
}
