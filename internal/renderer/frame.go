package renderer

import "time"

// Element states
const (
	StateHidden    = "hidden"
	StateVisible   = "visible"
	StatePending   = "pending"
	StateActive    = "active"
	StateChecking  = "checking"
	StateCompleted = "completed"
	StatePass      = "pass"
	StateFail      = "fail"
	StateHighlight = "highlight"
	StateUpdating  = "updating"
	StateFixed     = "fixed"
	StateDimmed    = "dimmed"
)

// Frame is the full visual description of one presentation moment.
// Renderers fill the scene fields; the host stamps timing fields.
type Frame struct {
	Presentation string        `json:"presentation"`
	SceneID      string        `json:"scene"`
	SceneTimeMS  int64         `json:"scene_time_ms"`
	Phase        string        `json:"phase"`
	ActionID     string        `json:"action"`
	Loop         int64         `json:"loop"`
	Screen       string        `json:"screen,omitempty"`
	URL          string        `json:"url,omitempty"`
	Headline     string        `json:"headline,omitempty"`
	Prompt       Prompt        `json:"prompt"`
	Progress     float64       `json:"progress"`
	Elements     []Element     `json:"elements,omitempty"`
	Options      []Option      `json:"options,omitempty"`
	Link         string        `json:"link,omitempty"`
	Transition   Transition    `json:"transition"`
	Elapsed      time.Duration `json:"-"`
}

// Prompt is the chat input line
type Prompt struct {
	Text   string `json:"text,omitempty"`
	Typed  string `json:"typed,omitempty"`
	Cursor bool   `json:"cursor"`
}

// Element is a labelled item on screen: a form field, a check, a guidance step
type Element struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	State  string `json:"state"`
	Detail string `json:"detail,omitempty"`
}

// Option is an answer mode offered to the user
type Option struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Selected    bool   `json:"selected"`
}

// Transition describes how far a scene's entry transition has progressed
type Transition struct {
	Kind     string  `json:"kind"`
	Progress float64 `json:"progress"`
	Opacity  float64 `json:"opacity"`
	OffsetY  float64 `json:"offset_y"`
	Scale    float64 `json:"scale"`
}

// Element returns the element with id, if any.
func (f Frame) Element(id string) (Element, bool) {
	for _, e := range f.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

// VisibleElements counts elements that are not hidden.
func (f Frame) VisibleElements() int {
	n := 0
	for _, e := range f.Elements {
		if e.State != StateHidden {
			n++
		}
	}
	return n
}
