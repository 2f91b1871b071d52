package knowledge

import (
	"strings"
	"testing"

	"arise/internal/arcadia"
	"arise/internal/document"
)

func TestEnrichAppendsKnowledgeChunks(t *testing.T) {
	e := NewEnricher()

	base := []document.Chunk{{Content: "proposal text", Ordinal: 0}}
	enriched := e.Enrich(arcadia.PhaseOperational, base, []string{"functional", "non_functional"})

	if len(enriched) <= len(base) {
		t.Fatal("enrichment added no chunks")
	}

	types := map[string]bool{}
	for _, chunk := range enriched[len(base):] {
		enrichmentType, ok := chunk.Metadata["enrichment_type"].(string)
		if !ok {
			t.Errorf("enriched chunk missing enrichment_type metadata: %+v", chunk.Metadata)
			continue
		}
		types[enrichmentType] = true
	}

	for _, want := range []string{"capabilities_catalog", "actors_dictionary", "traceability_matrix", "phase_templates"} {
		if !types[want] {
			t.Errorf("missing enrichment block %q", want)
		}
	}
}

func TestEnrichSkipsCapabilitiesWithoutFunctionalType(t *testing.T) {
	e := NewEnricher()

	enriched := e.Enrich(arcadia.PhaseOperational, nil, []string{"non_functional"})
	for _, chunk := range enriched {
		if chunk.Metadata["enrichment_type"] == "capabilities_catalog" {
			t.Error("capabilities catalog should only be added for functional requests")
		}
	}
}

func TestEnrichDoesNotMutateInput(t *testing.T) {
	e := NewEnricher()
	base := []document.Chunk{{Content: "original", Ordinal: 0}}

	_ = e.Enrich(arcadia.PhaseSystem, base, []string{"functional"})

	if len(base) != 1 || base[0].Content != "original" {
		t.Error("input chunk slice was mutated")
	}
}

func TestPhaseScopedCatalog(t *testing.T) {
	e := NewEnricher()

	operational := e.Capabilities(arcadia.PhaseOperational)
	if len(operational) != 2 {
		t.Errorf("operational capabilities = %d, want 2 (OC-001, OC-002)", len(operational))
	}

	physical := e.Actors(arcadia.PhasePhysical)
	names := map[string]bool{}
	for _, actor := range physical {
		names[actor.Name] = true
	}
	if !names["Field Operator"] || !names["External System"] {
		t.Errorf("physical actors = %v", names)
	}
	if names["Mission Commander"] {
		t.Error("Mission Commander is not involved in the physical phase")
	}
}

func TestCapabilitiesBlockContent(t *testing.T) {
	e := NewEnricher()
	chunk, ok := e.capabilitiesChunk(arcadia.PhaseOperational)
	if !ok {
		t.Fatal("expected capabilities chunk")
	}
	if !strings.Contains(chunk.Content, "Mission Planning (OC-001)") {
		t.Errorf("capabilities block missing catalogue entry:\n%s", chunk.Content)
	}
	if !strings.Contains(chunk.Content, "Criticality: HIGH") {
		t.Error("capabilities block missing criticality")
	}
}

func TestValidateTraceability(t *testing.T) {
	e := NewEnricher()

	// Mentions a catalogue capability and an actor: score =
	// 1*0.4 + 1*0.3 + 0.3 = 1.0.
	strong := arcadia.Requirement{
		Description: "The Mission Commander shall use mission planning to coordinate all operational activities",
	}
	result := e.ValidateTraceability(strong, arcadia.PhaseOperational)
	if !result.IsValid {
		t.Errorf("strong requirement invalid: %+v", result)
	}
	if result.Score != 1.0 {
		t.Errorf("strong score = %v, want 1.0", result.Score)
	}

	// No mentions: base 0.3, below the 0.5 validity threshold.
	weak := arcadia.Requirement{
		Description: "The widget shall frobnicate the doodad quickly",
	}
	result = e.ValidateTraceability(weak, arcadia.PhaseOperational)
	if result.IsValid {
		t.Error("weak requirement should be invalid")
	}
	if result.Score < 0.29 || result.Score > 0.31 {
		t.Errorf("weak score = %v, want 0.3", result.Score)
	}
	if len(result.Suggestions) != 2 {
		t.Errorf("expected capability and actor suggestions, got %v", result.Suggestions)
	}
	if len(result.Issues) == 0 {
		t.Error("expected low-traceability issue")
	}
}

func TestPhaseTemplates(t *testing.T) {
	e := NewEnricher()

	for _, phase := range arcadia.AnalysisPhases {
		template, ok := e.PhaseTemplate(phase)
		if !ok {
			t.Errorf("missing template for %s", phase)
			continue
		}
		if len(template.RequirementPatterns) == 0 || len(template.VerificationMethods) == 0 || len(template.KeyAspects) == 0 {
			t.Errorf("incomplete template for %s", phase)
		}
	}
}
