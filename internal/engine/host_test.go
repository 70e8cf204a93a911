package engine

//go:generate mockgen -destination mock_sink_test.go -package $GOPACKAGE -write_package_comment=false github.com/ivlev/flexdash-demo/internal/engine Sink

import (
	"bytes"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"pkt.systems/pslog"

	"github.com/ivlev/flexdash-demo/internal/director"
	"github.com/ivlev/flexdash-demo/internal/effects"
	"github.com/ivlev/flexdash-demo/internal/renderer"
)

const ms = time.Millisecond

// twoScenes is A (0-10000ms) with actions at 0/2000/4000 and B (10000-15000ms)
func twoScenes() *director.Schedule {
	return &director.Schedule{
		Version: "1.0",
		Scenes: []director.Scene{
			{ID: "A", DurationMS: 10000, Transition: director.Transition{In: "fade", DurationMS: 500}, Actions: []director.Action{
				{ID: "a1", OffsetMS: 0}, {ID: "a2", OffsetMS: 2000}, {ID: "a3", OffsetMS: 4000},
			}},
			{ID: "B", DurationMS: 5000, Actions: []director.Action{{ID: "b1", OffsetMS: 0}}},
		},
	}
}

func echoRegistry(ids ...string) *renderer.Registry {
	reg := renderer.NewRegistry()
	for _, id := range ids {
		reg.Register(id, renderer.RenderFunc(func(in renderer.Input) renderer.Frame {
			return renderer.Frame{Headline: in.SceneID + "/" + in.Action}
		}))
	}
	return reg
}

// countingSink records published frames
type countingSink struct {
	mu     sync.Mutex
	frames []renderer.Frame
}

func (c *countingSink) Publish(f renderer.Frame) {
	c.mu.Lock()
	c.frames = append(c.frames, f)
	c.mu.Unlock()
}

func (c *countingSink) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func newHost(t *testing.T, opts ...Option) *Host {
	t.Helper()
	h, err := NewHost("test", twoScenes(), echoRegistry("A", "B"), opts...)
	require.NoError(t, err)
	return h
}

func TestNewHostConfigurationErrors(t *testing.T) {
	_, err := NewHost("test", twoScenes(), echoRegistry("A"))
	require.ErrorIs(t, err, renderer.ErrMissingRenderer)

	bad := twoScenes()
	bad.Scenes[0].Actions[1].OffsetMS = 0
	_, err = NewHost("test", bad, echoRegistry("A", "B"))
	require.ErrorIs(t, err, director.ErrInvalidSchedule)

	spin := twoScenes()
	spin.Scenes[1].Transition.In = "spin"
	_, err = NewHost("test", spin, echoRegistry("A", "B"))
	require.ErrorIs(t, err, effects.ErrUnknownTransition)

	_, err = NewHost("test", twoScenes(), nil)
	require.ErrorIs(t, err, ErrInvalidOption)

	_, err = NewHost("test", twoScenes(), echoRegistry("A", "B"), WithFreq(0))
	require.ErrorIs(t, err, ErrInvalidOption)

	_, err = NewHost("test", twoScenes(), echoRegistry("A", "B"), WithFreq(-30))
	require.ErrorIs(t, err, ErrInvalidOption)

	_, err = NewHost("test", twoScenes(), echoRegistry("A", "B"), WithClock(nil))
	require.ErrorIs(t, err, ErrInvalidOption)
}

func TestAdvanceWhileStopped(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockSink(ctrl)
	sink.EXPECT().Publish(gomock.Any()).Times(0)

	h := newHost(t, WithSink(sink))
	_, ok := h.Advance(time.Second)
	require.False(t, ok)
	require.Zero(t, h.Elapsed())
	require.False(t, h.Running())
}

func TestStartPublishesFirstFrame(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockSink(ctrl)
	sink.EXPECT().Publish(gomock.Any()).Do(func(f renderer.Frame) {
		require.Equal(t, "test", f.Presentation)
		require.Equal(t, "A", f.SceneID)
		require.Equal(t, "a1", f.ActionID)
		require.Equal(t, "A/a1", f.Headline)
		require.InDelta(t, 0, f.Transition.Opacity, 1e-9)
	}).Times(1)

	h := newHost(t, WithSink(sink))
	h.Start()
	require.True(t, h.Running())
	require.NotEmpty(t, h.RunID())
}

func TestAdvanceResolves(t *testing.T) {
	h := newHost(t)
	h.Start()

	tests := []struct {
		delta  time.Duration
		scene  string
		action string
		rel    time.Duration
	}{
		{3000 * ms, "A", "a2", 3000 * ms},
		{7000 * ms, "B", "b1", 0},
		{2000 * ms, "B", "b1", 2000 * ms},
		{7000 * ms, "A", "a3", 4000 * ms},
	}
	for _, tt := range tests {
		frame, ok := h.Advance(tt.delta)
		require.True(t, ok)
		require.Equal(t, tt.scene, frame.SceneID)
		require.Equal(t, tt.action, frame.ActionID)
		require.Equal(t, tt.rel.Milliseconds(), frame.SceneTimeMS)
	}
	require.Equal(t, int64(1), h.Position().Loop)
	require.Equal(t, 19000*ms, h.Elapsed())
}

func TestRestartBeginsAtZero(t *testing.T) {
	h := newHost(t)
	h.Start()
	first := h.RunID()
	h.Advance(12500 * ms)
	require.Equal(t, "B", h.Position().SceneID)

	h.Stop()
	require.False(t, h.Running())
	require.Zero(t, h.Elapsed())

	h.Start()
	pos := h.Position()
	require.Equal(t, "A", pos.SceneID)
	require.Zero(t, pos.SceneTime)
	require.Equal(t, "a1", pos.Action.ID)
	require.NotEqual(t, first, h.RunID())
}

func TestLoopNotification(t *testing.T) {
	var loops []int64
	h := newHost(t, WithOnLoop(func(name string, loop int64) {
		require.Equal(t, "test", name)
		loops = append(loops, loop)
	}))
	h.Start()

	for i := 0; i < 8; i++ {
		h.Advance(4000 * ms)
	}
	require.Equal(t, []int64{1, 2}, loops)
}

func TestNonLoopingHostStopsAfterOnePass(t *testing.T) {
	h := newHost(t, WithLoop(false))
	h.Start()

	frame, ok := h.Advance(20 * time.Second)
	require.True(t, ok)
	require.Equal(t, "B", frame.SceneID)
	require.Equal(t, int64(0), frame.Loop)
	require.False(t, h.Running())

	_, ok = h.Advance(time.Second)
	require.False(t, ok)
}

func TestPauseIgnoresTicks(t *testing.T) {
	h := newHost(t)
	h.Start()
	h.Advance(1000 * ms)
	h.Pause()
	require.True(t, h.Paused())

	_, ok := h.Advance(5000 * ms)
	require.False(t, ok)
	require.Equal(t, 1000*ms, h.Elapsed())

	h.Resume()
	_, ok = h.Advance(500 * ms)
	require.True(t, ok)
	require.Equal(t, 1500*ms, h.Elapsed())
}

func TestRunAdvancesOnClockTicks(t *testing.T) {
	clock := NewManualClock()
	sink := &countingSink{}
	h := newHost(t, WithClock(clock), WithFreq(10*Hz), WithSink(sink))
	h.Start()

	done := make(chan error, 1)
	go func() { done <- h.Run(t.Context()) }()
	require.Eventually(t, func() bool { return clock.Tickers() == 1 }, time.Second, time.Millisecond)

	clock.Advance(2500 * ms)
	require.Eventually(t, func() bool { return h.Elapsed() == 2500*ms }, time.Second, time.Millisecond)
	require.Equal(t, "a2", h.Position().Action.ID)

	h.Stop()
	require.NoError(t, <-done)
}

func TestStopCancelsPendingTicks(t *testing.T) {
	clock := NewManualClock()
	sink := &countingSink{}
	h := newHost(t, WithClock(clock), WithFreq(20*Hz), WithSink(sink))
	h.Start()

	done := make(chan error, 1)
	go func() { done <- h.Run(t.Context()) }()
	require.Eventually(t, func() bool { return clock.Tickers() == 1 }, time.Second, time.Millisecond)

	clock.Advance(1000 * ms)
	h.Stop()
	require.NoError(t, <-done)
	published := sink.Len()

	for i := 0; i < 100; i++ {
		clock.Advance(50 * ms)
	}
	require.Equal(t, published, sink.Len(), "frames rendered after stop")
	require.Zero(t, h.Elapsed())
	require.Zero(t, clock.Tickers())
}

func TestRunRequiresStart(t *testing.T) {
	h := newHost(t, WithClock(NewManualClock()))
	require.True(t, errors.Is(h.Run(t.Context()), ErrNotRunning))
}

// fallbackWarnings counts structured warnings about scene B's lead-in
func fallbackWarnings(buf *bytes.Buffer) int {
	n := 0
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		payload := map[string]any{}
		if json.Unmarshal(line, &payload) != nil {
			continue
		}
		if payload["scene"] == "B" && payload["action"] == "b1" {
			n++
		}
	}
	return n
}

func TestFallbackIsLoggedOncePerRun(t *testing.T) {
	var buf bytes.Buffer
	logger := pslog.NewWithOptions(&buf, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		VerboseFields: true,
		MinLevel:      pslog.InfoLevel,
	})

	s := twoScenes()
	s.Scenes[1].Actions[0].OffsetMS = 1000
	h, err := NewHost("late", s, echoRegistry("A", "B"), WithLogger(logger))
	require.NoError(t, err)
	h.Start()

	frame, ok := h.Advance(10500 * ms)
	require.True(t, ok)
	require.Equal(t, "b1", frame.ActionID)

	// Two full passes at 60Hz cross the lead-in of B twice
	tick := DefaultFreq.Period()
	for i := 0; i < 2*15*60; i++ {
		h.Advance(tick)
	}
	require.Equal(t, 1, fallbackWarnings(&buf), buf.String())

	h.Start()
	h.Advance(10500 * ms)
	require.Equal(t, 2, fallbackWarnings(&buf), buf.String())
}

func TestFreqPeriod(t *testing.T) {
	require.Equal(t, 100*ms, (10 * Hz).Period())
	require.Equal(t, 16666666*time.Nanosecond, DefaultFreq.Period())
	require.Panics(t, func() { Freq(0).Period() })
}

func TestFrameAtIsPure(t *testing.T) {
	h := newHost(t)
	f := h.FrameAt(12 * time.Second)
	require.Equal(t, "B", f.SceneID)
	require.Equal(t, int64(2000), f.SceneTimeMS)
	require.False(t, h.Running())
	require.Zero(t, h.Elapsed())
	require.Equal(t, 15*time.Second, h.Total())
}
