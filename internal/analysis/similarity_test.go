package analysis

import (
	"testing"
)

func TestNameSimilarityReflexive(t *testing.T) {
	names := []string{"Mission Commander", "Data Processing", "x", "Operations Center"}
	for _, name := range names {
		if got := NameSimilarity(name, name); got != 1.0 {
			t.Errorf("sim(%q, %q) = %v, want 1.0", name, name, got)
		}
	}
}

func TestNameSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Mission Commander", "Mission Control Commander"},
		{"Data Processor", "Data Processing System"},
		{"monitor status", "observe status"},
		{"alpha", "omega"},
	}
	for _, pair := range pairs {
		ab := NameSimilarity(pair[0], pair[1])
		ba := NameSimilarity(pair[1], pair[0])
		if ab != ba {
			t.Errorf("sim(%q,%q)=%v but sim(%q,%q)=%v", pair[0], pair[1], ab, pair[1], pair[0], ba)
		}
	}
}

func TestNameSimilarityContainment(t *testing.T) {
	// One name strictly containing the other scores in 0.7-0.9.
	got := NameSimilarity("Mission Commander", "Commander")
	if got < 0.7 || got > 0.9 {
		t.Errorf("containment similarity = %v, want in [0.7, 0.9]", got)
	}
}

func TestNameSimilarityWordOverlap(t *testing.T) {
	// Shared words without containment use boosted Jaccard.
	got := NameSimilarity("Data Manager", "Data Controller")
	if got <= 0 {
		t.Errorf("word overlap similarity = %v, want > 0", got)
	}
	if got > 1 {
		t.Errorf("similarity exceeds 1: %v", got)
	}
}

func TestNameSimilaritySynonyms(t *testing.T) {
	// monitor/observe are in the same synonym cluster.
	got := NameSimilarity("Monitor", "Observe")
	if got < 0.8 {
		t.Errorf("synonym similarity = %v, want >= 0.8 for same-cluster pair", got)
	}
}

func TestNameSimilarityEmptyInputs(t *testing.T) {
	if got := NameSimilarity("", "anything"); got != 0 {
		t.Errorf("empty name similarity = %v, want 0", got)
	}
	if got := NameSimilarity("anything", ""); got != 0 {
		t.Errorf("empty name similarity = %v, want 0", got)
	}
}

func TestNameSimilarityThresholdCase(t *testing.T) {
	// Mission Commander variants must clear the 0.6 actor threshold.
	got := NameSimilarity("Mission Commander", "Mission Commander Interface")
	if got < 0.6 {
		t.Errorf("similarity = %v, want >= 0.6", got)
	}
}

func TestDescriptionSimilarity(t *testing.T) {
	a := "Capability to monitor system status and performance in real-time"
	b := "Real-time monitoring of system performance and status information"
	got := DescriptionSimilarity(a, b)
	if got <= 0.2 {
		t.Errorf("closely related descriptions scored %v", got)
	}

	if got := DescriptionSimilarity("", "anything"); got != 0 {
		t.Errorf("empty description similarity = %v", got)
	}
}

func TestContextualSimilarityRequiresSameKind(t *testing.T) {
	actor := Element{Kind: "actor", Name: "Operator", Responsibilities: []string{"monitor"}}
	capability := Element{Kind: "capability", Name: "Operator", Responsibilities: []string{"monitor"}}

	if got := contextualSimilarity(actor, capability); got != 0 {
		t.Errorf("cross-kind contextual similarity = %v, want 0", got)
	}

	other := Element{Kind: "actor", Name: "Op", Responsibilities: []string{"monitor"}}
	if got := contextualSimilarity(actor, other); got != 1.0 {
		t.Errorf("identical responsibilities similarity = %v, want 1.0", got)
	}
}

func TestRelationshipSimilarity(t *testing.T) {
	a := Element{Parent: "Data Processing"}
	b := Element{Parent: "Data Processing System"}
	if got := relationshipSimilarity(a, b); got != 0.8 {
		t.Errorf("similar parents = %v, want 0.8", got)
	}

	c := Element{SubElements: []string{"s1", "s2", "s3"}}
	d := Element{SubElements: []string{"s1", "s4"}}
	got := relationshipSimilarity(c, d)
	if got <= 0 || got > 0.7 {
		t.Errorf("sub-element overlap = %v, want in (0, 0.7]", got)
	}
}

func TestFunctionalSimilarityMissionAlignment(t *testing.T) {
	capability := Element{
		Kind:             "capability",
		MissionStatement: "Monitor operational status of deployed field equipment continuously",
	}
	component := Element{
		Kind:        "component",
		Description: "Component that performs continuous monitoring of equipment operational status",
	}
	if got := functionalSimilarity(capability, component); got <= 0 {
		t.Errorf("mission alignment = %v, want > 0", got)
	}
}

func TestSimilarityModes(t *testing.T) {
	a := Element{Kind: "actor", Name: "Mission Commander", Description: "Commands the mission"}
	b := Element{Kind: "actor", Name: "Mission Commander", Description: "Commands the mission"}

	for _, mode := range []Mode{ModeNameOnly, ModeComprehensive, ModeContextual} {
		got := Similarity(a, b, mode)
		if got <= 0 || got > 1 {
			t.Errorf("mode %s: similarity = %v, want in (0, 1]", mode, got)
		}
	}
}
