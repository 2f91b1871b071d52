package arcadia

import "fmt"

// IDGenerator hands out sequential phase-prefixed element identifiers
// of the form <CODE>-<KIND>-<NNN>, e.g. OA-ACTOR-001, LA-COMP-003.
// Counters are per (phase, kind); a generator belongs to a single run
// and is not safe for concurrent use.
type IDGenerator struct {
	counters map[string]int
}

// NewIDGenerator creates an empty generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{counters: make(map[string]int)}
}

// Next returns the next id for the given phase and element kind.
func (g *IDGenerator) Next(phase Phase, kind string) string {
	key := phase.Code() + "-" + kind
	g.counters[key]++
	return fmt.Sprintf("%s-%s-%03d", phase.Code(), kind, g.counters[key])
}

// Element kinds used across the extractors.
const (
	KindActor      = "ACTOR"
	KindEntity     = "ENTITY"
	KindCapability = "CAPABILITY"
	KindScenario   = "SCENARIO"
	KindProcess    = "PROCESS"
	KindFunction   = "FUNCTION"
	KindChain      = "CHAIN"
	KindComponent  = "COMP"
	KindInterface  = "INTF"
	KindConstraint = "CONSTRAINT"
	KindTrace      = "TRACE"
	KindGap        = "GAP"
	KindCheck      = "CONSIST"
	KindQuality    = "QUALITY"
)
