// Package scenes holds the concrete renderers of the product demo video
// and the interactive hero mockup.
package scenes

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ivlev/flexdash-demo/internal/director"
	"github.com/ivlev/flexdash-demo/internal/renderer"
)

const ms = time.Millisecond

// Shared timeline of the scripted demo scenes
const (
	typingStart   = 1000 * ms
	typingEnd     = 3000 * ms
	buildStart    = 5500 * ms
	buildEnd      = 7000 * ms
	cursorHalf    = 500 * ms
	appHost       = "billing.yourapp.com"
	brand         = "Flexdash"
	modeGuided    = "Show me how"
	modeGuidedTip = "Interactive step-by-step guidance"
	modeText      = "Just tell me"
	modeTextTip   = "Text answer only"
)

func appURL(path string) string {
	return appHost + "/" + path
}

// commandBar renders the typed question, the answer options and the
// analysing/building headline shared by the video scenes.
func commandBar(frame *renderer.Frame, question string, in renderer.Input) {
	t := in.SceneTime
	typed := ""
	switch {
	case in.Action == director.ActionUserQuestion:
		n := int(float64(utf8.RuneCountInString(question)) * renderer.Progress(t, typingStart, typingEnd))
		typed = renderer.PrefixRunes(question, n)
	case t > typingEnd:
		typed = question
	}

	frame.Prompt = renderer.Prompt{
		Text:   question,
		Typed:  typed,
		Cursor: renderer.CursorVisible(t, cursorHalf),
	}

	switch in.Action {
	case director.ActionShowOptions:
		frame.Options = answerModes(false)
	case director.ActionSelecting:
		frame.Options = answerModes(true)
	case director.ActionAnalyzing:
		frame.Headline = "Analyzing your account..."
	case director.ActionGenerating:
		frame.Headline = "Building guidance"
	}

	switch {
	case in.Action == director.ActionGenerating:
		frame.Progress = renderer.Progress(t, buildStart, buildEnd)
	case t >= buildEnd:
		frame.Progress = 1
	}
}

func answerModes(selected bool) []renderer.Option {
	return []renderer.Option{
		{Label: modeGuided, Description: modeGuidedTip, Selected: selected},
		{Label: modeText, Description: modeTextTip},
	}
}

// executingStep returns the 0-based step of an "execute-step-N" action, or -1.
func executingStep(action string) int {
	s, ok := strings.CutPrefix(action, "execute-step-")
	if !ok {
		return -1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return -1
	}
	return n - 1
}

// stepStates lays out guidance steps: the executing one is active, earlier
// ones completed, later ones visible. Unrevealed steps stay hidden.
func stepStates(prefixID string, labels []string, revealed, current int, success bool) []renderer.Element {
	elements := make([]renderer.Element, len(labels))
	for i, label := range labels {
		state := renderer.StateHidden
		switch {
		case success:
			state = renderer.StateCompleted
		case i >= revealed:
		case current < 0:
			state = renderer.StateVisible
		case i < current:
			state = renderer.StateCompleted
		case i == current:
			state = renderer.StateActive
		default:
			state = renderer.StateVisible
		}
		elements[i] = renderer.Element{ID: elementID(prefixID, i), Label: label, State: state}
	}
	return elements
}

func elementID(prefix string, i int) string {
	return prefix + "-" + strconv.Itoa(i+1)
}
