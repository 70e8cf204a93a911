package scenes

import (
	"strings"

	"github.com/ivlev/flexdash-demo/internal/director"
	"github.com/ivlev/flexdash-demo/internal/renderer"
)

const (
	preflightQuestion = "How do I connect Stripe?"
	fixReveal         = 10500 * ms
	fixStagger        = 700 * ms
)

var fixSteps = []string{"Copy webhook URL", "Add to Stripe dashboard"}

// check is one preflight check and the scene times at which it runs and settles
type check struct {
	id, label      string
	runAt, settled int64 // ms
	failsFirst     bool
}

var preflightChecks = []check{
	{id: "api-key", label: "API Key Valid", runAt: 7000, settled: 8000},
	{id: "oauth", label: "OAuth Scopes", runAt: 8000, settled: 9000},
	{id: "webhook", label: "Webhook URL", runAt: 9000, settled: 10000, failsFirst: true},
}

// webhookPass is when the recheck of the webhook succeeds
const webhookPass = 17000

// IntegrationPreflight runs connection checks, finds a missing webhook
// and guides the fix
func IntegrationPreflight(in renderer.Input) renderer.Frame {
	frame := renderer.Frame{
		Screen: "integrations",
		URL:    appURL("integrations"),
	}
	commandBar(&frame, preflightQuestion, in)

	t := in.SceneTime.Milliseconds()
	success := in.Phase == director.PhaseSuccess

	for _, c := range preflightChecks {
		frame.Elements = append(frame.Elements, renderer.Element{
			ID:    "check-" + c.id,
			Label: c.label,
			State: checkState(c, t, in.Action, success),
		})
	}

	showingFix := in.Action == "show-fix-guidance" ||
		strings.HasPrefix(in.Action, "reveal-fix-step-") ||
		strings.HasPrefix(in.Action, "execute-step-") ||
		in.Action == "recheck-webhook" || success

	revealed := 0
	if showingFix {
		revealed = renderer.Revealed(in.SceneTime, fixReveal, fixStagger, len(fixSteps))
	}
	current := executingStep(in.Action)
	for i, label := range fixSteps {
		state := renderer.StateHidden
		switch {
		case i >= revealed:
		case success:
			state = renderer.StateCompleted
		case i == current:
			state = renderer.StateActive
		case (i == 0 && t >= 14500) || (i == 1 && t >= 17000):
			state = renderer.StateCompleted
		default:
			state = renderer.StatePending
		}
		frame.Elements = append(frame.Elements, renderer.Element{ID: elementID("fix", i), Label: label, State: state})
	}
	return frame
}

func checkState(c check, t int64, action string, success bool) string {
	if success {
		return renderer.StatePass
	}
	if action == "check-"+c.id || (c.failsFirst && action == "recheck-"+c.id) {
		return renderer.StateChecking
	}
	switch {
	case c.failsFirst && t >= webhookPass:
		return renderer.StatePass
	case t >= c.settled && c.failsFirst:
		return renderer.StateFail
	case t >= c.settled:
		return renderer.StatePass
	case t >= c.runAt:
		return renderer.StateChecking
	}
	return renderer.StatePending
}
