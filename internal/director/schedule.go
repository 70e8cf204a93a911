package director

import "time"

// Schedule is an ordered list of scenes played back to back.
type Schedule struct {
	Version string  `yaml:"version"`
	Name    string  `yaml:"name,omitempty"`
	Scenes  []Scene `yaml:"scenes"`
}

// Scene is a time-bounded segment of the presentation
type Scene struct {
	ID         string     `yaml:"id"`
	StartMS    *int64     `yaml:"start_ms,omitempty"` // Optional, must match the previous scene end
	DurationMS int64      `yaml:"duration_ms"`
	Transition Transition `yaml:"transition"`
	Actions    []Action   `yaml:"actions"`
}

// Transition describes how a scene enters the stage
type Transition struct {
	In         string `yaml:"in"`
	DurationMS int64  `yaml:"duration_ms"`
}

// Action is a named sub-step of a scene, active until the next action starts
type Action struct {
	ID       string `yaml:"id"`
	OffsetMS int64  `yaml:"offset_ms"`       // Offset from scene start
	Phase    Phase  `yaml:"phase,omitempty"` // Derived from ID when empty
}

// Duration returns the scene length.
func (s Scene) Duration() time.Duration {
	return time.Duration(s.DurationMS) * time.Millisecond
}

// Duration returns the transition length.
func (t Transition) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// Offset returns the action offset from the scene start.
func (a Action) Offset() time.Duration {
	return time.Duration(a.OffsetMS) * time.Millisecond
}

// Total returns the length of one full pass over the schedule.
func (s *Schedule) Total() time.Duration {
	var total time.Duration
	for _, sc := range s.Scenes {
		total += sc.Duration()
	}
	return total
}

// Starts returns the start offset of every scene.
func (s *Schedule) Starts() []time.Duration {
	starts := make([]time.Duration, len(s.Scenes))
	var at time.Duration
	for i, sc := range s.Scenes {
		starts[i] = at
		at += sc.Duration()
	}
	return starts
}

// SceneIDs lists scene ids in playback order.
func (s *Schedule) SceneIDs() []string {
	ids := make([]string, 0, len(s.Scenes))
	for _, sc := range s.Scenes {
		ids = append(ids, sc.ID)
	}
	return ids
}

// Scene looks a scene up by id.
func (s *Schedule) Scene(id string) (Scene, bool) {
	for _, sc := range s.Scenes {
		if sc.ID == id {
			return sc, true
		}
	}
	return Scene{}, false
}

// Action looks an action up by id within the scene.
func (s Scene) Action(id string) (Action, bool) {
	for _, a := range s.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}
