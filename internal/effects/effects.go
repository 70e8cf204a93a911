package effects

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ivlev/flexdash-demo/internal/director"
	"github.com/ivlev/flexdash-demo/internal/renderer"
)

// ErrUnknownTransition is returned for a transition kind with no effect
var ErrUnknownTransition = errors.New("unknown transition")

// Transition kinds
const (
	KindNone    = "none"
	KindFade    = "fade"
	KindSlideUp = "slide-up"
	KindScale   = "scale"
)

// Effect turns eased transition progress into a visual state
type Effect interface {
	At(progress float64) renderer.Transition
}

type noneEffect struct{}

func (noneEffect) At(float64) renderer.Transition {
	return renderer.Transition{Kind: KindNone, Progress: 1, Opacity: 1, Scale: 1}
}

type fadeEffect struct{}

func (fadeEffect) At(p float64) renderer.Transition {
	return renderer.Transition{Kind: KindFade, Progress: p, Opacity: p, Scale: 1}
}

// slideUpEffect moves the scene up from Distance pixels below while fading in
type slideUpEffect struct {
	Distance float64
}

func (e slideUpEffect) At(p float64) renderer.Transition {
	return renderer.Transition{
		Kind:     KindSlideUp,
		Progress: p,
		Opacity:  p,
		OffsetY:  renderer.Lerp(e.Distance, 0, p),
		Scale:    1,
	}
}

// scaleEffect grows the scene from From to full size while fading in
type scaleEffect struct {
	From float64
}

func (e scaleEffect) At(p float64) renderer.Transition {
	return renderer.Transition{
		Kind:     KindScale,
		Progress: p,
		Opacity:  p,
		Scale:    renderer.Lerp(e.From, 1, p),
	}
}

// Lookup returns the effect for a transition kind. An empty kind means none.
func Lookup(kind string) (Effect, error) {
	switch strings.ToLower(kind) {
	case "", KindNone:
		return noneEffect{}, nil
	case KindFade:
		return fadeEffect{}, nil
	case KindSlideUp:
		return slideUpEffect{Distance: 40}, nil
	case KindScale:
		return scaleEffect{From: 0.95}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransition, kind)
	}
}

// Apply computes the entry transition state of a scene at sceneTime.
// Unknown kinds render as no transition.
func Apply(tr director.Transition, sceneTime time.Duration) renderer.Transition {
	effect, err := Lookup(tr.In)
	if err != nil {
		effect = noneEffect{}
	}
	if tr.DurationMS <= 0 {
		return effect.At(1)
	}
	p := renderer.EaseInOutCubic(renderer.Progress(sceneTime, 0, tr.Duration()))
	return effect.At(p)
}

// Validate checks that every scene uses a known transition.
func Validate(s *director.Schedule) error {
	var errs []error
	for _, sc := range s.Scenes {
		if _, err := Lookup(sc.Transition.In); err != nil {
			errs = append(errs, fmt.Errorf("scene %s: %w", sc.ID, err))
		}
	}
	return errors.Join(errs...)
}
