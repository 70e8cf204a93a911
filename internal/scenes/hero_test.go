package scenes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ivlev/flexdash-demo/internal/director"
	"github.com/ivlev/flexdash-demo/internal/renderer"
)

func TestHeroSetup(t *testing.T) {
	s, reg, err := HeroSetup(HeroQuestions())
	require.NoError(t, err)
	require.Len(t, s.Scenes, 4)
	require.NoError(t, reg.Validate(s))
}

func TestHeroTypingProgress(t *testing.T) {
	q := director.Question{
		ID:    "rule",
		Text:  "How do I add a tax rule?",
		Steps: []director.Step{{Label: "Open tax settings", Screen: ScreenTax}},
	}
	s, reg, err := HeroSetup([]director.Question{q})
	require.NoError(t, err)

	f := frameAt(t, s, reg, 960*time.Millisecond)
	require.Equal(t, string(director.PhaseTyping), f.Phase)
	require.Equal(t, "How do I add", f.Prompt.Typed)
	require.Len(t, []rune(f.Prompt.Typed), 12)

	f = frameAt(t, s, reg, 1920*time.Millisecond)
	require.Equal(t, q.Text, f.Prompt.Typed)
}

func TestHeroCursorBlink(t *testing.T) {
	s, reg, err := HeroSetup(HeroQuestions())
	require.NoError(t, err)
	require.True(t, frameAt(t, s, reg, 100*ms).Prompt.Cursor)
	require.False(t, frameAt(t, s, reg, 600*ms).Prompt.Cursor)
	require.True(t, frameAt(t, s, reg, 1100*ms).Prompt.Cursor)
}

func TestHeroNavigationStep(t *testing.T) {
	questions := HeroQuestions()
	s, reg, err := HeroSetup(questions)
	require.NoError(t, err)

	scene, ok := s.Scene(director.HeroSceneID(questions[0]))
	require.True(t, ok)
	reveal, ok := scene.Action(director.RevealStepID(1))
	require.True(t, ok)

	f := frameAt(t, s, reg, reveal.Offset()+100*ms)
	require.Equal(t, ScreenDashboard, f.Screen)
	require.Equal(t, "billing.yourapp.com/dashboard", f.URL)
	require.Equal(t, renderer.StateHighlight, state(t, f, "card-tax"))
	require.Equal(t, renderer.StateActive, state(t, f, "step-1"))
	require.Equal(t, renderer.StateHidden, state(t, f, "step-2"))

	f = frameAt(t, s, reg, reveal.Offset()+900*ms)
	require.Equal(t, ScreenTax, f.Screen)
	require.Equal(t, "billing.yourapp.com/settings/tax", f.URL)

	second, _ := scene.Action(director.RevealStepID(2))
	require.Equal(t, reveal.Offset()+1500*ms, second.Offset())
	f = frameAt(t, s, reg, second.Offset())
	require.Equal(t, renderer.StateCompleted, state(t, f, "step-1"))
	require.Equal(t, renderer.StateActive, state(t, f, "step-2"))
	require.Equal(t, renderer.StateHighlight, state(t, f, "addTax"))
}

func TestHeroPhases(t *testing.T) {
	questions := HeroQuestions()
	s, reg, err := HeroSetup(questions)
	require.NoError(t, err)
	scene := s.Scenes[1]
	q := questions[1]

	at := func(id string) time.Duration {
		a, ok := scene.Action(id)
		require.True(t, ok, id)
		return s.Starts()[1] + a.Offset()
	}

	f := frameAt(t, s, reg, at(director.ActionShowOptions))
	require.Equal(t, q.Text, f.Prompt.Typed)
	require.Len(t, f.Options, 2)

	f = frameAt(t, s, reg, at(director.ActionGenerating)+500*ms)
	require.Equal(t, string(director.PhaseBuilding), f.Phase)
	require.InDelta(t, 0.5, f.Progress, 1e-9)

	f = frameAt(t, s, reg, at(director.ActionExecute))
	require.Equal(t, renderer.StateCompleted, state(t, f, "step-1"))
	require.Equal(t, renderer.StateActive, state(t, f, "step-2"))
	require.Equal(t, ScreenExports, f.Screen)

	f = frameAt(t, s, reg, at(director.ActionSuccess))
	require.Equal(t, renderer.StateCompleted, state(t, f, "step-2"))

	f = frameAt(t, s, reg, at(director.ActionReset))
	require.Equal(t, string(director.PhaseIdle), f.Phase)
	require.Equal(t, ScreenDashboard, f.Screen)
	require.Empty(t, f.Prompt.Typed)
	require.Zero(t, f.VisibleElements())
}

func TestHeroRegistryMissingScene(t *testing.T) {
	s, err := director.NewDirector().GenerateSchedule(HeroQuestions()[:1])
	require.NoError(t, err)
	_, err = HeroRegistry(director.NewDirector(), s, HeroQuestions())
	require.ErrorIs(t, err, renderer.ErrMissingRenderer)
}

func TestHeroTypingFollowsDirectorPace(t *testing.T) {
	q := director.Question{
		ID:    "rule",
		Text:  "How do I add a tax rule?",
		Steps: []director.Step{{Label: "Open tax settings", Screen: ScreenTax}},
	}
	d := director.NewDirector()
	d.TypingInterval = 40 * ms
	s, err := d.GenerateSchedule([]director.Question{q})
	require.NoError(t, err)
	reg, err := HeroRegistry(d, s, []director.Question{q})
	require.NoError(t, err)

	f := frameAt(t, s, reg, 480*ms)
	require.Equal(t, string(director.PhaseTyping), f.Phase)
	require.Equal(t, "How do I add", f.Prompt.Typed)

	f = frameAt(t, s, reg, 950*ms)
	require.Equal(t, "How do I add a tax rule", f.Prompt.Typed)

	f = frameAt(t, s, reg, 1000*ms)
	require.Equal(t, string(director.PhaseTyping), f.Phase)
	require.Equal(t, q.Text, f.Prompt.Typed)
}
