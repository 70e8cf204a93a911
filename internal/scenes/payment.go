package scenes

import (
	"strings"

	"github.com/ivlev/flexdash-demo/internal/director"
	"github.com/ivlev/flexdash-demo/internal/renderer"
)

const (
	paymentQuestion = "Why did my payment fail?"
	paymentReveal   = 7500 * ms
	paymentStagger  = 600 * ms
)

var paymentSteps = []string{"Check card status", "Update card details", "Retry payment"}

// PaymentFailure walks through fixing an expired card
func PaymentFailure(in renderer.Input) renderer.Frame {
	frame := renderer.Frame{
		Screen: "payment-methods",
		URL:    appURL("payment-methods"),
	}
	commandBar(&frame, paymentQuestion, in)

	success := in.Phase == director.PhaseSuccess
	current := -1
	if in.Phase == director.PhaseExecuting {
		current = executingStep(in.Action)
	}

	revealed := 0
	if strings.HasPrefix(in.Action, "reveal-step-") || in.Action == "show-diagnosis" ||
		in.Phase == director.PhaseExecuting || success {
		revealed = renderer.Revealed(in.SceneTime, paymentReveal, paymentStagger, len(paymentSteps))
	}
	frame.Elements = stepStates("step", paymentSteps, revealed, current, success)

	fixed := success || current == 2
	card := renderer.Element{ID: "card", Label: "•••• •••• •••• 4242", State: renderer.StateFail, Detail: "Expired 12/2023"}
	switch {
	case fixed:
		card.State = renderer.StateFixed
	case current == 1:
		card.State = renderer.StateUpdating
	case current == 0:
		card.State = renderer.StateHighlight
	}
	if fixed || current >= 1 {
		card.Detail = "Expires 12/2027"
	}

	alert := renderer.Element{ID: "alert", Label: "Payment Failed", State: renderer.StateVisible,
		Detail: "Your last payment of $299.00 could not be processed"}
	if fixed {
		alert.State = renderer.StateHidden
	}
	if success {
		alert = renderer.Element{ID: "alert", Label: "Payment Successful!", State: renderer.StatePass,
			Detail: "$299.00 charged to card ending in 4242"}
	}

	button := renderer.Element{ID: "button", Label: "Update Card", State: renderer.StateVisible}
	switch {
	case success:
		button.Label, button.State = "Payment Complete", renderer.StatePass
	case current == 2:
		button.Label, button.State = "Processing...", renderer.StateActive
	case current == 1:
		button.Label, button.State = "Save & Retry", renderer.StateActive
	}

	frame.Elements = append(frame.Elements, alert, card, button)
	return frame
}
