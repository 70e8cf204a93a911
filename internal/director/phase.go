package director

import "strings"

// Phase is the coarse visual sub-state of a scene
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseTyping       Phase = "typing"
	PhaseOptions      Phase = "options"
	PhaseSelecting    Phase = "selecting"
	PhaseAnalyzing    Phase = "analyzing"
	PhaseBuilding     Phase = "building"
	PhaseShowingSteps Phase = "showing-steps"
	PhaseExecuting    Phase = "executing"
	PhaseSuccess      Phase = "success"
)

var exactPhases = map[string]Phase{
	"user-question":       PhaseTyping,
	"show-options":        PhaseOptions,
	"selecting":           PhaseSelecting,
	"analyzing":           PhaseAnalyzing,
	"generating-guidance": PhaseBuilding,
	"success":             PhaseSuccess,
}

var prefixPhases = []struct {
	prefix string
	phase  Phase
}{
	{"execute-", PhaseExecuting},
	{"recheck-", PhaseExecuting},
	{"reveal-", PhaseShowingSteps},
	{"show-", PhaseShowingSteps},
	{"check-", PhaseShowingSteps},
}

// PhaseOf returns the explicit phase of the action or derives it from the id.
func PhaseOf(a Action) Phase {
	if a.Phase != "" {
		return a.Phase
	}
	if p, ok := exactPhases[a.ID]; ok {
		return p
	}
	for _, pp := range prefixPhases {
		if strings.HasPrefix(a.ID, pp.prefix) {
			return pp.phase
		}
	}
	return PhaseIdle
}

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseIdle, PhaseTyping, PhaseOptions, PhaseSelecting, PhaseAnalyzing,
		PhaseBuilding, PhaseShowingSteps, PhaseExecuting, PhaseSuccess:
		return true
	}
	return false
}
