package scenes

import (
	"github.com/ivlev/flexdash-demo/internal/renderer"
)

const logoDim = 2200 * ms

// Outro renders the call to action, dimming the logo near the end
type Outro struct {
	BookingURL string
}

func (o Outro) Render(in renderer.Input) renderer.Frame {
	logo := renderer.StateVisible
	if in.SceneTime >= logoDim {
		logo = renderer.StateDimmed
	}
	return renderer.Frame{
		Headline: "Ready to transform your billing workflow?",
		Link:     o.BookingURL,
		Elements: []renderer.Element{
			{ID: "cta", Label: "Book Demo", State: renderer.StateVisible, Detail: "No credit card required"},
			{ID: "logo", Label: brand, State: logo},
		},
	}
}
