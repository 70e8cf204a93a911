package scenes

import (
	"fmt"
	"strings"

	"github.com/ivlev/flexdash-demo/internal/director"
	"github.com/ivlev/flexdash-demo/internal/renderer"
)

const (
	taxQuestion = "How do I set up tax rules?"
	taxReveal   = 7500 * ms
	taxStagger  = 600 * ms
)

var taxSteps = []string{"Go to Tax Settings", "Click Add Tax Rule", "Select jurisdiction & rate"}

// taxFields are filled in one per executed step
var taxFields = []renderer.Element{
	{ID: "field-location", Label: "Tax Settings", Detail: "Settings / Tax"},
	{ID: "field-rule", Label: "Tax Rule", Detail: "New rule"},
	{ID: "field-rate", Label: "Jurisdiction & Rate", Detail: "California, US / 7.25%"},
}

// TaxSetup guides the user through adding a tax rule
func TaxSetup(in renderer.Input) renderer.Frame {
	frame := renderer.Frame{
		Screen: "tax",
		URL:    appURL("settings/tax"),
	}
	commandBar(&frame, taxQuestion, in)

	success := in.Phase == director.PhaseSuccess
	current := -1
	if in.Phase == director.PhaseExecuting {
		current = executingStep(in.Action)
	}

	revealed := 0
	switch {
	case in.Phase == director.PhaseExecuting || success:
		revealed = len(taxSteps)
	case strings.HasPrefix(in.Action, "reveal-step-") || in.Action == "show-diagnosis":
		revealed = renderer.Revealed(in.SceneTime, taxReveal, taxStagger, len(taxSteps))
	}
	frame.Elements = stepStates("step", taxSteps, revealed, current, success)

	done := 0
	for i, f := range taxFields {
		f.State = renderer.StatePending
		switch {
		case success || (current >= 0 && i < current):
			f.State = renderer.StateCompleted
			done++
		case i == current:
			f.State = renderer.StateHighlight
		}
		frame.Elements = append(frame.Elements, f)
	}

	frame.Elements = append(frame.Elements, renderer.Element{
		ID:     "setup-progress",
		Label:  "Setup",
		State:  renderer.StateVisible,
		Detail: fmt.Sprintf("%d%%", done*100/len(taxFields)),
	})
	return frame
}
