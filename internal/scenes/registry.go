package scenes

import (
	"fmt"

	"github.com/ivlev/flexdash-demo/internal/director"
	"github.com/ivlev/flexdash-demo/internal/renderer"
)

// Scene ids of the product demo video
const (
	SceneIntro                = "intro"
	SceneTaxSetup             = "tax-setup"
	ScenePaymentFailure       = "payment-failure"
	SceneIntegrationPreflight = "integration-preflight"
	SceneOutro                = "outro"
)

// VideoRegistry maps the demo video scenes to their renderers
func VideoRegistry(bookingURL string) *renderer.Registry {
	reg := renderer.NewRegistry()
	for id, r := range map[string]renderer.Renderer{
		SceneIntro:                renderer.RenderFunc(Intro),
		SceneTaxSetup:             renderer.RenderFunc(TaxSetup),
		ScenePaymentFailure:       renderer.RenderFunc(PaymentFailure),
		SceneIntegrationPreflight: renderer.RenderFunc(IntegrationPreflight),
		SceneOutro:                Outro{BookingURL: bookingURL},
	} {
		if err := reg.Register(id, r); err != nil {
			panic(err)
		}
	}
	return reg
}

// HeroRegistry maps every question's scene in a schedule generated by d to
// its renderer. Typing pace is taken from d so frames match the timeline.
func HeroRegistry(d *director.Director, s *director.Schedule, questions []director.Question) (*renderer.Registry, error) {
	reg := renderer.NewRegistry()
	for _, q := range questions {
		if len(q.Steps) == 0 {
			return nil, fmt.Errorf("question %q has no steps", q.ID)
		}
		scene, ok := s.Scene(director.HeroSceneID(q))
		if !ok {
			return nil, fmt.Errorf("%w: no scene for question %q", renderer.ErrMissingRenderer, q.ID)
		}
		if err := reg.Register(scene.ID, NewHero(d, q, scene)); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// HeroSetup builds the hero mockup schedule and registry from canned questions.
func HeroSetup(questions []director.Question) (*director.Schedule, *renderer.Registry, error) {
	d := director.NewDirector()
	s, err := d.GenerateSchedule(questions)
	if err != nil {
		return nil, nil, err
	}
	reg, err := HeroRegistry(d, s, questions)
	if err != nil {
		return nil, nil, err
	}
	return s, reg, nil
}
