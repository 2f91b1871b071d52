// Package arcadia defines the typed data model shared by the extraction
// pipeline: phases, phase elements, traceability, gaps, quality metrics
// and requirements. Elements reference each other by id, never by
// object graph; all values are immutable once produced by an extractor
// or generator.
package arcadia

import "fmt"

// Phase identifies one of the ARCADIA methodology phases.
type Phase string

const (
	PhaseOperational      Phase = "operational"
	PhaseSystem           Phase = "system"
	PhaseLogical          Phase = "logical"
	PhasePhysical         Phase = "physical"
	PhaseBuildingStrategy Phase = "building_strategy"
)

// AnalysisPhases lists the phases covered by the extraction pipeline,
// in methodology order. Building Strategy is out of pipeline scope.
var AnalysisPhases = []Phase{PhaseOperational, PhaseSystem, PhaseLogical, PhasePhysical}

// phaseOrder gives each analysis phase its position in the ARCADIA order.
var phaseOrder = map[Phase]int{
	PhaseOperational: 0,
	PhaseSystem:      1,
	PhaseLogical:     2,
	PhasePhysical:    3,
}

// phaseCodes are the official Thales phase codes used in element ids.
var phaseCodes = map[Phase]string{
	PhaseOperational:      "OA",
	PhaseSystem:           "SA",
	PhaseLogical:          "LA",
	PhasePhysical:         "PA",
	PhaseBuildingStrategy: "BS",
}

// ParsePhase maps a raw phase name to a Phase.
func ParsePhase(s string) (Phase, error) {
	switch Phase(s) {
	case PhaseOperational, PhaseSystem, PhaseLogical, PhasePhysical, PhaseBuildingStrategy:
		return Phase(s), nil
	}
	return "", fmt.Errorf("unknown ARCADIA phase: %q", s)
}

// Code returns the phase code (OA, SA, LA, PA, BS).
func (p Phase) Code() string {
	return phaseCodes[p]
}

// Order returns the phase position in the ARCADIA ordering, or -1 for
// phases outside the analysis pipeline.
func (p Phase) Order() int {
	if o, ok := phaseOrder[p]; ok {
		return o
	}
	return -1
}

// Precedes reports whether p comes before or equals other in the
// ARCADIA order. Phases outside the pipeline never precede anything.
func (p Phase) Precedes(other Phase) bool {
	po, oo := p.Order(), other.Order()
	if po < 0 || oo < 0 {
		return false
	}
	return po <= oo
}

// Name returns the official phase name.
func (p Phase) Name() string {
	switch p {
	case PhaseOperational:
		return "Operational Analysis"
	case PhaseSystem:
		return "System Need Analysis"
	case PhaseLogical:
		return "Logical Architecture Design"
	case PhasePhysical:
		return "Physical Architecture Design"
	case PhaseBuildingStrategy:
		return "Building Strategy Definition"
	}
	return string(p)
}
