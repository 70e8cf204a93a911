package scenes

import "github.com/ivlev/flexdash-demo/internal/renderer"

// Intro shows the logo
func Intro(in renderer.Input) renderer.Frame {
	state := renderer.StateHidden
	if in.SceneTime >= 0 {
		state = renderer.StateVisible
	}
	return renderer.Frame{
		Headline: brand,
		Elements: []renderer.Element{{ID: "logo", Label: brand, State: state}},
	}
}
