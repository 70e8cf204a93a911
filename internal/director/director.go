package director

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Question is a canned question played by the hero mockup
type Question struct {
	ID    string
	Text  string
	Steps []Step
}

// Step is one generated guidance step
type Step struct {
	Label      string
	Screen     string
	Highlight  string // Element highlighted on Screen
	Navigation bool   // Step moves from Screen to Target
	Target     string
}

// Action ids emitted for hero scenes
const (
	ActionUserQuestion = "user-question"
	ActionShowOptions  = "show-options"
	ActionSelecting    = "selecting"
	ActionAnalyzing    = "analyzing"
	ActionGenerating   = "generating-guidance"
	ActionExecute      = "execute-guidance"
	ActionSuccess      = "success"
	ActionReset        = "reset"
)

// RevealStepID returns the action id revealing the n-th step (1-based).
func RevealStepID(n int) string {
	return fmt.Sprintf("reveal-step-%d", n)
}

// HeroSceneID returns the scene id used for a question.
func HeroSceneID(q Question) string {
	return "hero-" + q.ID
}

// Director turns canned questions into a schedule of timed phases
type Director struct {
	TypingInterval  time.Duration // Per typed character
	OptionsDelay    time.Duration // After the last character
	SelectDelay     time.Duration
	AnalyzeDelay    time.Duration
	BuildDelay      time.Duration
	StepsDelay      time.Duration
	StepDwell       time.Duration
	NavigationDwell time.Duration
	ExecuteDelay    time.Duration
	SuccessDelay    time.Duration
	ResetDelay      time.Duration
	RestartDelay    time.Duration // Idle time before the next question
	Transition      Transition
}

// NewDirector creates a new Director with the hero mockup pacing
func NewDirector() *Director {
	return &Director{
		TypingInterval:  80 * time.Millisecond,
		OptionsDelay:    500 * time.Millisecond,
		SelectDelay:     3000 * time.Millisecond,
		AnalyzeDelay:    1000 * time.Millisecond,
		BuildDelay:      2500 * time.Millisecond,
		StepsDelay:      1000 * time.Millisecond,
		StepDwell:       800 * time.Millisecond,
		NavigationDwell: 1500 * time.Millisecond,
		ExecuteDelay:    1000 * time.Millisecond,
		SuccessDelay:    3000 * time.Millisecond,
		ResetDelay:      2500 * time.Millisecond,
		RestartDelay:    800 * time.Millisecond,
		Transition:      Transition{In: "fade", DurationMS: 300},
	}
}

// GenerateSchedule creates one scene per question, in order
func (d *Director) GenerateSchedule(questions []Question) (*Schedule, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions")
	}

	scenes := make([]Scene, 0, len(questions))
	for _, q := range questions {
		if len(q.Steps) == 0 {
			return nil, fmt.Errorf("question %q has no steps", q.ID)
		}
		scenes = append(scenes, d.generateScene(q))
	}

	schedule := &Schedule{
		Version: "1.0",
		Name:    "hero",
		Scenes:  scenes,
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	return schedule, nil
}

// generateScene lays the phases of one question out on a timeline
func (d *Director) generateScene(q Question) Scene {
	var actions []Action
	at := time.Duration(0)
	add := func(id string) {
		actions = append(actions, Action{ID: id, OffsetMS: at.Milliseconds()})
	}

	add(ActionUserQuestion)
	at += d.TypingDuration(q.Text) + d.OptionsDelay
	add(ActionShowOptions)
	at += d.SelectDelay
	add(ActionSelecting)
	at += d.AnalyzeDelay
	add(ActionAnalyzing)
	at += d.BuildDelay
	add(ActionGenerating)
	at += d.StepsDelay

	for i, step := range q.Steps {
		add(RevealStepID(i + 1))
		if i < len(q.Steps)-1 {
			at += d.dwell(step)
		}
	}

	at += d.ExecuteDelay
	add(ActionExecute)
	at += d.SuccessDelay
	add(ActionSuccess)
	at += d.ResetDelay
	add(ActionReset)
	at += d.RestartDelay

	return Scene{
		ID:         HeroSceneID(q),
		DurationMS: at.Milliseconds(),
		Transition: d.Transition,
		Actions:    actions,
	}
}

// TypingDuration returns how long the question takes to type out
func (d *Director) TypingDuration(text string) time.Duration {
	return time.Duration(utf8.RuneCountInString(text)) * d.TypingInterval
}

// dwell determines how long a step stays current before the next one appears
func (d *Director) dwell(step Step) time.Duration {
	if step.Navigation {
		return d.NavigationDwell
	}
	return d.StepDwell
}
