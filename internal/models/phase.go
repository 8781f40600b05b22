package models

import "strings"

// Phase is the workflow stage a brand project is in.
type Phase string

const (
	PhaseDiscovery  Phase = "discovery"
	PhaseStrategy   Phase = "strategy"
	PhaseConcepts   Phase = "concepts"
	PhaseRefinement Phase = "refinement"
	// PhaseToolkit is part of the stored value space, but no conversation
	// turn moves a project into it. It can only be set explicitly.
	PhaseToolkit   Phase = "toolkit"
	PhaseCompleted Phase = "completed"
)

// Phases lists every phase in workflow order.
var Phases = []Phase{
	PhaseDiscovery,
	PhaseStrategy,
	PhaseConcepts,
	PhaseRefinement,
	PhaseToolkit,
	PhaseCompleted,
}

// ParsePhase resolves a phase name, ignoring case and surrounding space.
func ParsePhase(s string) (Phase, bool) {
	candidate := Phase(strings.ToLower(strings.TrimSpace(s)))
	for _, p := range Phases {
		if p == candidate {
			return p, true
		}
	}
	return "", false
}
