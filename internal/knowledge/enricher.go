// Package knowledge maintains the fixed-at-startup ARCADIA knowledge
// base (capability catalogue, actor dictionary, traceability matrix
// template, per-phase requirement templates) and injects it into
// retrieval context. The knowledge base is constructed once and
// read-only thereafter.
package knowledge

import (
	"fmt"
	"strings"

	"arise/internal/arcadia"
	"arise/internal/document"
	"arise/internal/logging"
)

// Enricher exposes the ARCADIA knowledge base as a read-only handle.
type Enricher struct {
	capabilities   map[string]CatalogCapability
	actors         map[string]CatalogActor
	templateLinks  []TemplateLink
	phaseTemplates map[arcadia.Phase]PhaseTemplate
}

// NewEnricher builds the knowledge base from its literal specification.
func NewEnricher() *Enricher {
	e := &Enricher{
		capabilities:   defaultCapabilities(),
		actors:         defaultActors(),
		templateLinks:  defaultTemplateLinks(),
		phaseTemplates: defaultPhaseTemplates(),
	}
	logging.Knowledge("ARCADIA knowledge base loaded: %d capabilities, %d actors, %d template links",
		len(e.capabilities), len(e.actors), len(e.templateLinks))
	return e
}

// Capabilities returns the catalogue capabilities relevant to a phase.
func (e *Enricher) Capabilities(phase arcadia.Phase) []CatalogCapability {
	var out []CatalogCapability
	for _, id := range []string{"OC-001", "OC-002", "OC-003", "OC-004", "OC-005"} {
		cap, ok := e.capabilities[id]
		if ok && cap.Phase == phase {
			out = append(out, cap)
		}
	}
	return out
}

// Actors returns the dictionary actors involved in a phase.
func (e *Enricher) Actors(phase arcadia.Phase) []CatalogActor {
	var out []CatalogActor
	for _, id := range []string{"ACT-001", "ACT-002", "ACT-003", "ACT-004", "ACT-005"} {
		actor, ok := e.actors[id]
		if !ok {
			continue
		}
		for _, p := range actor.PhaseInvolvement {
			if p == phase {
				out = append(out, actor)
				break
			}
		}
	}
	return out
}

// PhaseTemplate returns the requirement template for a phase.
func (e *Enricher) PhaseTemplate(phase arcadia.Phase) (PhaseTemplate, bool) {
	t, ok := e.phaseTemplates[phase]
	return t, ok
}

// Enrich appends synthesised knowledge chunks (capabilities block,
// actors block, traceability block, templates block) to the context.
// Each carries enrichment_type metadata so downstream components can
// count enrichment effectiveness.
func (e *Enricher) Enrich(phase arcadia.Phase, chunks []document.Chunk, requirementTypes []string) []document.Chunk {
	timer := logging.StartTimer(logging.CategoryKnowledge, "Enricher.Enrich")
	defer timer.Stop()

	enriched := make([]document.Chunk, len(chunks))
	copy(enriched, chunks)

	wantFunctional := false
	for _, t := range requirementTypes {
		if t == "functional" {
			wantFunctional = true
		}
	}

	if wantFunctional {
		if chunk, ok := e.capabilitiesChunk(phase); ok {
			enriched = append(enriched, chunk)
		}
	}
	if chunk, ok := e.actorsChunk(phase); ok {
		enriched = append(enriched, chunk)
	}
	if chunk, ok := e.traceabilityChunk(phase); ok {
		enriched = append(enriched, chunk)
	}
	if chunk, ok := e.templatesChunk(phase); ok {
		enriched = append(enriched, chunk)
	}

	logging.Knowledge("Enriched context with %d ARCADIA knowledge chunks for %s phase",
		len(enriched)-len(chunks), phase)
	return enriched
}

func (e *Enricher) capabilitiesChunk(phase arcadia.Phase) (document.Chunk, bool) {
	capabilities := e.Capabilities(phase)
	if len(capabilities) == 0 {
		return document.Chunk{}, false
	}

	var sb strings.Builder
	sb.WriteString("OPERATIONAL CAPABILITIES CATALOG:\n\n")
	for _, cap := range capabilities {
		fmt.Fprintf(&sb, "• %s (%s):\n", cap.Name, cap.ID)
		fmt.Fprintf(&sb, "  Description: %s\n", cap.Description)
		fmt.Fprintf(&sb, "  Criticality: %s\n", cap.Criticality)
		fmt.Fprintf(&sb, "  Actors: %s\n", strings.Join(cap.Actors, ", "))
		fmt.Fprintf(&sb, "  Key Functions: %s\n", strings.Join(cap.Functions, ", "))
		fmt.Fprintf(&sb, "  Requirements Impact: %s\n\n", strings.Join(cap.RequirementsImpact, ", "))
	}

	return document.Chunk{
		Content: sb.String(),
		Source:  "arcadia_capabilities",
		Phase:   phase,
		Metadata: map[string]interface{}{
			"phase":            string(phase),
			"capability_count": len(capabilities),
			"enrichment_type":  "capabilities_catalog",
		},
	}, true
}

func (e *Enricher) actorsChunk(phase arcadia.Phase) (document.Chunk, bool) {
	actors := e.Actors(phase)
	if len(actors) == 0 {
		return document.Chunk{}, false
	}

	var sb strings.Builder
	sb.WriteString("ARCADIA ACTORS DICTIONARY:\n\n")
	for _, actor := range actors {
		fmt.Fprintf(&sb, "• %s (%s) - %s:\n", actor.Name, actor.ID, actor.Type)
		fmt.Fprintf(&sb, "  Description: %s\n", actor.Description)
		fmt.Fprintf(&sb, "  Responsibilities: %s\n", strings.Join(actor.Responsibilities, ", "))
		fmt.Fprintf(&sb, "  Key Interactions: %s\n", strings.Join(actor.Interactions, ", "))
		fmt.Fprintf(&sb, "  Capabilities: %s\n\n", strings.Join(actor.Capabilities, ", "))
	}

	return document.Chunk{
		Content: sb.String(),
		Source:  "arcadia_actors",
		Phase:   phase,
		Metadata: map[string]interface{}{
			"phase":           string(phase),
			"actor_count":     len(actors),
			"enrichment_type": "actors_dictionary",
		},
	}, true
}

func (e *Enricher) traceabilityChunk(phase arcadia.Phase) (document.Chunk, bool) {
	var relevant []TemplateLink
	for _, link := range e.templateLinks {
		if link.Phase == string(phase) || strings.Contains(link.Phase, string(phase)) {
			relevant = append(relevant, link)
		}
	}
	if len(relevant) == 0 {
		return document.Chunk{}, false
	}

	var sb strings.Builder
	sb.WriteString("ARCADIA TRACEABILITY MATRIX:\n\n")
	sb.WriteString("Phase-relevant traceability relationships:\n")
	for _, link := range relevant {
		fmt.Fprintf(&sb, "• %s '%s' %s %s '%s' (confidence: %.2f)\n",
			link.SourceType, link.SourceID, link.Relationship, link.TargetType, link.TargetID, link.Confidence)
	}
	sb.WriteString("\nTraceability Guidelines:\n")
	sb.WriteString("- Requirements should trace to operational capabilities\n")
	sb.WriteString("- System functions should implement operational capabilities\n")
	sb.WriteString("- Components should be allocated to realize functions\n")
	sb.WriteString("- Actors should be responsible for relevant capabilities\n")

	return document.Chunk{
		Content: sb.String(),
		Source:  "arcadia_traceability",
		Phase:   phase,
		Metadata: map[string]interface{}{
			"phase":           string(phase),
			"link_count":      len(relevant),
			"enrichment_type": "traceability_matrix",
		},
	}, true
}

func (e *Enricher) templatesChunk(phase arcadia.Phase) (document.Chunk, bool) {
	template, ok := e.phaseTemplates[phase]
	if !ok {
		return document.Chunk{}, false
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ARCADIA %s PHASE TEMPLATES:\n\n", strings.ToUpper(string(phase)))

	sb.WriteString("Requirement Patterns:\n")
	for _, pattern := range template.RequirementPatterns {
		fmt.Fprintf(&sb, "• %s\n", pattern)
	}
	sb.WriteString("\nPhase-Specific Verification Methods:\n")
	for _, method := range template.VerificationMethods {
		fmt.Fprintf(&sb, "• %s\n", method)
	}
	sb.WriteString("\nKey Aspects to Address:\n")
	for _, aspect := range template.KeyAspects {
		fmt.Fprintf(&sb, "• %s\n", aspect)
	}
	sb.WriteString("\n")

	return document.Chunk{
		Content: sb.String(),
		Source:  "arcadia_templates",
		Phase:   phase,
		Metadata: map[string]interface{}{
			"phase":           string(phase),
			"enrichment_type": "phase_templates",
		},
	}, true
}

// TraceabilityResult is the outcome of per-requirement traceability
// validation.
type TraceabilityResult struct {
	IsValid     bool
	Score       float64
	Issues      []string
	Suggestions []string
}

// ValidateTraceability scores a requirement against the knowledge base:
// capability mentions × 0.4 + actor mentions × 0.3 + 0.3, capped at 1.
// Scores below 0.5 are invalid.
func (e *Enricher) ValidateTraceability(req arcadia.Requirement, phase arcadia.Phase) TraceabilityResult {
	result := TraceabilityResult{IsValid: true}

	reqText := strings.ToLower(req.Description)

	capabilityMentions := 0
	for id := range e.capabilities {
		if strings.Contains(reqText, strings.ReplaceAll(strings.ToLower(id), "-", " ")) {
			capabilityMentions++
		}
	}
	for _, cap := range e.capabilities {
		if strings.Contains(reqText, strings.ToLower(cap.Name)) {
			capabilityMentions++
		}
	}

	actorMentions := 0
	for _, actor := range e.actors {
		if strings.Contains(reqText, strings.ToLower(actor.Name)) {
			actorMentions++
		}
	}

	score := float64(capabilityMentions)*0.4 + float64(actorMentions)*0.3 + 0.3
	if score > 1.0 {
		score = 1.0
	}
	result.Score = score

	if capabilityMentions == 0 {
		result.Suggestions = append(result.Suggestions,
			"Consider linking requirement to relevant operational capabilities")
	}
	if actorMentions == 0 {
		result.Suggestions = append(result.Suggestions,
			"Consider specifying responsible actors for this requirement")
	}
	if score < 0.5 {
		result.IsValid = false
		result.Issues = append(result.Issues,
			fmt.Sprintf("Low traceability score (%.2f). Requirement may lack ARCADIA context.", score))
	}

	return result
}
