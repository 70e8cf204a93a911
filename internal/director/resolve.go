package director

import (
	"sort"
	"time"
)

// Position is the resolved location of a presentation time within a schedule
type Position struct {
	SceneID     string
	SceneIndex  int
	SceneTime   time.Duration // Time since scene start
	Phase       Phase
	Action      Action
	ActionIndex int
	Loop        int64 // Completed passes over the schedule
	Fallback    bool  // Scene time precedes the first action
}

// Resolver maps presentation time onto a validated schedule.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	schedule *Schedule
	starts   []time.Duration
	offsets  [][]time.Duration
	total    time.Duration
}

// NewResolver validates the schedule and indexes scene and action offsets.
func NewResolver(s *Schedule) (*Resolver, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	r := &Resolver{
		schedule: s,
		starts:   s.Starts(),
		offsets:  make([][]time.Duration, len(s.Scenes)),
		total:    s.Total(),
	}
	for i, sc := range s.Scenes {
		offs := make([]time.Duration, len(sc.Actions))
		for j, a := range sc.Actions {
			offs[j] = a.Offset()
		}
		r.offsets[i] = offs
	}
	return r, nil
}

// Schedule returns the schedule the resolver was built from.
func (r *Resolver) Schedule() *Schedule {
	return r.schedule
}

// Total returns the length of one pass.
func (r *Resolver) Total() time.Duration {
	return r.total
}

// Resolve returns the scene and action active at t. Times past the end of
// the schedule wrap around, negative times resolve as zero.
func (r *Resolver) Resolve(t time.Duration) Position {
	if t < 0 {
		t = 0
	}
	loop := int64(t / r.total)
	t %= r.total

	// Last scene whose start is <= t; boundaries belong to the later scene
	si := sort.Search(len(r.starts), func(i int) bool { return r.starts[i] > t }) - 1
	if si < 0 {
		si = 0
	}
	scene := r.schedule.Scenes[si]
	rel := t - r.starts[si]

	offs := r.offsets[si]
	ai := sort.Search(len(offs), func(i int) bool { return offs[i] > rel }) - 1
	fallback := false
	if ai < 0 {
		ai = 0
		fallback = true
	}
	action := scene.Actions[ai]

	return Position{
		SceneID:     scene.ID,
		SceneIndex:  si,
		SceneTime:   rel,
		Phase:       PhaseOf(action),
		Action:      action,
		ActionIndex: ai,
		Loop:        loop,
		Fallback:    fallback,
	}
}
