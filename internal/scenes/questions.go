package scenes

import "github.com/ivlev/flexdash-demo/internal/director"

// Screens of the hero mockup app
const (
	ScreenDashboard    = "dashboard"
	ScreenTax          = "tax"
	ScreenExports      = "exports"
	ScreenIntegrations = "integrations"
	ScreenPayments     = "payments"
)

var screenURLs = map[string]string{
	ScreenDashboard:    appURL("dashboard"),
	ScreenTax:          appURL("settings/tax"),
	ScreenExports:      appURL("exports"),
	ScreenIntegrations: appURL("integrations"),
	ScreenPayments:     appURL("payment-methods"),
}

// ScreenURL returns the address bar text of a screen.
func ScreenURL(screen string) string {
	return screenURLs[screen]
}

// HeroQuestions returns the canned questions cycled by the hero mockup
func HeroQuestions() []director.Question {
	return []director.Question{
		{
			ID:   "tax",
			Text: "How do I set up tax rules?",
			Steps: []director.Step{
				{Label: "Go to Tax Settings", Screen: ScreenDashboard, Navigation: true, Target: ScreenTax},
				{Label: "Click Add Tax Rule", Screen: ScreenTax, Highlight: "addTax"},
				{Label: "Select jurisdiction & rate", Screen: ScreenTax, Highlight: "taxForm"},
			},
		},
		{
			ID:   "exports",
			Text: "Why is my export disabled?",
			Steps: []director.Step{
				{Label: "Checking permissions", Screen: ScreenExports, Highlight: "exportBtn"},
				{Label: "Missing Billing Admin role", Screen: ScreenExports, Highlight: "rbacWarning"},
			},
		},
		{
			ID:   "stripe",
			Text: "How do I connect Stripe?",
			Steps: []director.Step{
				{Label: "Open Integrations", Screen: ScreenDashboard, Navigation: true, Target: ScreenIntegrations},
				{Label: "Find Stripe panel", Screen: ScreenIntegrations, Highlight: "stripe"},
				{Label: "Enter API key & verify", Screen: ScreenIntegrations, Highlight: "apiKey"},
			},
		},
		{
			ID:   "payment",
			Text: "Why did my payment fail?",
			Steps: []director.Step{
				{Label: "Go to Payment Methods", Screen: ScreenDashboard, Navigation: true, Target: ScreenPayments},
				{Label: "Check card status", Screen: ScreenPayments, Highlight: "failedCard"},
				{Label: "Update card details", Screen: ScreenPayments, Highlight: "updateBtn"},
			},
		},
	}
}
