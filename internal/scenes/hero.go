package scenes

import (
	"time"

	"github.com/ivlev/flexdash-demo/internal/director"
	"github.com/ivlev/flexdash-demo/internal/renderer"
)

// Hero renders one canned question of the interactive hero mockup. Action
// offsets are read from the scene the Director generated for the question.
type Hero struct {
	Question        director.Question
	TypingInterval  time.Duration
	NavigationDelay time.Duration // Source screen stays up this long on navigation steps
	CursorHalf      time.Duration

	buildStart time.Duration
	buildEnd   time.Duration
	reveals    []time.Duration
}

// NewHero binds a question to the scene d generated for it.
func NewHero(d *director.Director, q director.Question, scene director.Scene) *Hero {
	h := &Hero{
		Question:        q,
		TypingInterval:  d.TypingInterval,
		NavigationDelay: 800 * ms,
		CursorHalf:      530 * ms,
	}
	if a, ok := scene.Action(director.ActionGenerating); ok {
		h.buildStart = a.Offset()
	}
	for i := range q.Steps {
		a, _ := scene.Action(director.RevealStepID(i + 1))
		h.reveals = append(h.reveals, a.Offset())
	}
	if len(h.reveals) > 0 {
		h.buildEnd = h.reveals[0]
	}
	return h
}

func (h *Hero) Render(in renderer.Input) renderer.Frame {
	q := h.Question
	t := in.SceneTime
	frame := renderer.Frame{Screen: q.Steps[0].Screen}

	switch in.Phase {
	case director.PhaseIdle:
		frame.Screen = ScreenDashboard
	case director.PhaseTyping:
		frame.Prompt = renderer.Prompt{
			Text:   q.Text,
			Typed:  renderer.TypedPrefix(q.Text, t, h.TypingInterval),
			Cursor: renderer.CursorVisible(t, h.CursorHalf),
		}
	default:
		frame.Prompt = renderer.Prompt{Text: q.Text, Typed: q.Text}
	}

	switch in.Phase {
	case director.PhaseOptions:
		frame.Options = answerModes(false)
	case director.PhaseSelecting:
		frame.Options = answerModes(true)
	case director.PhaseAnalyzing:
		frame.Headline = "Analyzing your account..."
	case director.PhaseBuilding:
		frame.Headline = "Building guidance"
		frame.Progress = renderer.Progress(t, h.buildStart, h.buildEnd)
	case director.PhaseShowingSteps, director.PhaseExecuting, director.PhaseSuccess:
		frame.Progress = 1
	}

	visible := h.visibleSteps(in)
	frame.Elements = h.stepElements(in.Phase, visible)
	if visible > 0 {
		h.showStep(&frame, in, visible-1)
	}
	frame.URL = ScreenURL(frame.Screen)
	return frame
}

func (h *Hero) visibleSteps(in renderer.Input) int {
	switch in.Phase {
	case director.PhaseExecuting, director.PhaseSuccess:
		return len(h.Question.Steps)
	case director.PhaseShowingSteps:
		for i := len(h.Question.Steps); i > 0; i-- {
			if in.Action == director.RevealStepID(i) {
				return i
			}
		}
	}
	return 0
}

func (h *Hero) stepElements(phase director.Phase, visible int) []renderer.Element {
	steps := h.Question.Steps
	elements := make([]renderer.Element, len(steps))
	for i, step := range steps {
		state := renderer.StateHidden
		switch {
		case i >= visible:
		case phase == director.PhaseSuccess:
			state = renderer.StateCompleted
		case i < visible-1:
			state = renderer.StateCompleted
		default:
			state = renderer.StateActive
		}
		elements[i] = renderer.Element{ID: elementID("step", i), Label: step.Label, State: state}
	}
	return elements
}

// showStep switches the screen to the current step and highlights its
// element. Navigation steps highlight the target card on the source screen
// first, then land on the target.
func (h *Hero) showStep(frame *renderer.Frame, in renderer.Input, i int) {
	step := h.Question.Steps[i]
	if !step.Navigation {
		frame.Screen = step.Screen
		if step.Highlight != "" && in.Phase != director.PhaseSuccess {
			frame.Elements = append(frame.Elements, renderer.Element{ID: step.Highlight, Label: step.Label, State: renderer.StateHighlight})
		}
		return
	}

	if in.Phase == director.PhaseShowingSteps && in.SceneTime-h.reveals[i] < h.NavigationDelay {
		frame.Screen = step.Screen
		frame.Elements = append(frame.Elements, renderer.Element{ID: "card-" + step.Target, Label: step.Label, State: renderer.StateHighlight})
		return
	}
	frame.Screen = step.Target
}
