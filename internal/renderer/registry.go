package renderer

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ivlev/flexdash-demo/internal/director"
)

// ErrMissingRenderer is returned when a schedule references a scene with no renderer.
var ErrMissingRenderer = errors.New("missing scene renderer")

// Input is everything a scene renderer may depend on
type Input struct {
	SceneID   string
	SceneTime time.Duration
	Phase     director.Phase
	Action    string
}

// Renderer maps a scene-relative moment to a visual description.
// Implementations must be pure: equal inputs give equal frames.
type Renderer interface {
	Render(in Input) Frame
}

// RenderFunc adapts a plain function to Renderer
type RenderFunc func(in Input) Frame

func (f RenderFunc) Render(in Input) Frame { return f(in) }

// Registry maps scene ids to renderers
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register binds a renderer to a scene id. Registering an id twice is an error.
func (r *Registry) Register(sceneID string, renderer Renderer) error {
	if sceneID == "" {
		return fmt.Errorf("empty scene id")
	}
	if renderer == nil {
		return fmt.Errorf("scene %s: nil renderer", sceneID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[sceneID]; exists {
		return fmt.Errorf("scene %s: renderer already registered", sceneID)
	}
	r.renderers[sceneID] = renderer
	return nil
}

// Lookup returns the renderer bound to sceneID.
func (r *Registry) Lookup(sceneID string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[sceneID]
	return renderer, ok
}

// SceneIDs lists registered scene ids in sorted order.
func (r *Registry) SceneIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.renderers))
	for id := range r.renderers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks that every scene of the schedule has a renderer.
func (r *Registry) Validate(s *director.Schedule) error {
	var missing []string
	for _, id := range s.SceneIDs() {
		if _, ok := r.Lookup(id); !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingRenderer, missing)
	}
	return nil
}

// Render dispatches to the scene's renderer. Unknown scenes yield a bare
// frame; Validate at startup keeps that from happening.
func (r *Registry) Render(in Input) Frame {
	renderer, ok := r.Lookup(in.SceneID)
	var frame Frame
	if ok {
		frame = renderer.Render(in)
	}
	frame.SceneID = in.SceneID
	frame.SceneTimeMS = in.SceneTime.Milliseconds()
	frame.Phase = string(in.Phase)
	frame.ActionID = in.Action
	return frame
}

// InputAt builds renderer input from a resolved position.
func InputAt(pos director.Position) Input {
	return Input{
		SceneID:   pos.SceneID,
		SceneTime: pos.SceneTime,
		Phase:     pos.Phase,
		Action:    pos.Action.ID,
	}
}
