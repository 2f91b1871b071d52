package arcadia

import (
	"testing"
)

func TestPhaseOrdering(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Phase
		precedes bool
	}{
		{"OperationalBeforeSystem", PhaseOperational, PhaseSystem, true},
		{"OperationalBeforePhysical", PhaseOperational, PhasePhysical, true},
		{"SamePhase", PhaseLogical, PhaseLogical, true},
		{"PhysicalNotBeforeLogical", PhasePhysical, PhaseLogical, false},
		{"BuildingStrategyOutside", PhaseBuildingStrategy, PhasePhysical, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Precedes(tt.b); got != tt.precedes {
				t.Errorf("Precedes(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.precedes)
			}
		})
	}
}

func TestPhaseCodes(t *testing.T) {
	want := map[Phase]string{
		PhaseOperational: "OA",
		PhaseSystem:      "SA",
		PhaseLogical:     "LA",
		PhasePhysical:    "PA",
	}
	for phase, code := range want {
		if got := phase.Code(); got != code {
			t.Errorf("Code(%s) = %s, want %s", phase, got, code)
		}
	}
}

func TestParsePhase(t *testing.T) {
	if _, err := ParsePhase("operational"); err != nil {
		t.Errorf("ParsePhase(operational) failed: %v", err)
	}
	if _, err := ParsePhase("imaginary"); err == nil {
		t.Error("ParsePhase(imaginary) should fail")
	}
}

func TestIDGenerator(t *testing.T) {
	gen := NewIDGenerator()

	first := gen.Next(PhaseOperational, KindActor)
	if first != "OA-ACTOR-001" {
		t.Errorf("first id = %s, want OA-ACTOR-001", first)
	}
	second := gen.Next(PhaseOperational, KindActor)
	if second != "OA-ACTOR-002" {
		t.Errorf("second id = %s, want OA-ACTOR-002", second)
	}

	// Counters are per (phase, kind).
	if got := gen.Next(PhaseLogical, KindComponent); got != "LA-COMP-001" {
		t.Errorf("logical component id = %s, want LA-COMP-001", got)
	}
	if got := gen.Next(PhaseOperational, KindCapability); got != "OA-CAPABILITY-001" {
		t.Errorf("capability id = %s, want OA-CAPABILITY-001", got)
	}
}

func TestRequirementIDPattern(t *testing.T) {
	valid := []string{"FR-OPE-001", "NFR-PERF-002", "STK-SYS-010", "NFR-SEC-123"}
	for _, id := range valid {
		if !RequirementIDPattern.MatchString(id) {
			t.Errorf("id %s should match", id)
		}
	}

	invalid := []string{"FR-OPERATIONAL-001", "XX-OPE-001", "FR-OPE-1", "fr-ope-001", "FR-O-001"}
	for _, id := range invalid {
		if RequirementIDPattern.MatchString(id) {
			t.Errorf("id %s should not match", id)
		}
	}
}

func TestParseEnumDefaults(t *testing.T) {
	if got := ParseActorType("weird"); got != ActorExternal {
		t.Errorf("ParseActorType default = %s, want external", got)
	}
	if got := ParseComponentType(""); got != ComponentSubsystem {
		t.Errorf("ParseComponentType default = %s, want subsystem", got)
	}
	if got := ParsePhysicalComponentType("firmware"); got != PhysicalSoftware {
		t.Errorf("ParsePhysicalComponentType default = %s, want software", got)
	}
	if got := ParseFunctionType("unknown"); got != FunctionPrimary {
		t.Errorf("ParseFunctionType default = %s, want primary", got)
	}
	if got := ParseExchangeType("signal"); got != ExchangeData {
		t.Errorf("ParseExchangeType default = %s, want data", got)
	}

	if got := ParseActorType("interface"); got != ActorInterface {
		t.Errorf("ParseActorType(interface) = %s", got)
	}
}

func TestNFRCategoryPrefixes(t *testing.T) {
	tests := map[NFRCategory]string{
		NFRPerformance:     "PERF",
		NFRSecurity:        "SEC",
		NFRUsability:       "USE",
		NFRReliability:     "REL",
		NFRScalability:     "SCAL",
		NFRMaintainability: "MAIN",
	}
	for category, prefix := range tests {
		if got := category.Prefix(); got != prefix {
			t.Errorf("Prefix(%s) = %s, want %s", category, got, prefix)
		}
		if len(prefix) > 4 {
			t.Errorf("prefix %s exceeds 4 characters", prefix)
		}
	}
}

func TestPhaseRequirementsAll(t *testing.T) {
	group := PhaseRequirements{
		Functional:    []Requirement{{ID: "FR-OPE-001"}},
		NonFunctional: []Requirement{{ID: "NFR-PERF-001"}, {ID: "NFR-SEC-002"}},
		Stakeholder:   []Requirement{{ID: "STK-OPE-001"}},
	}
	if got := len(group.All()); got != 4 {
		t.Errorf("All() returned %d requirements, want 4", got)
	}
}
