package document

import (
	"testing"

	"arise/internal/arcadia"
)

const sampleProposal = `
Objective 1: Provide real-time monitoring of field equipment for operators.
Objective 2: Design the logical component architecture for data exchange.

The stakeholders: SOC analysts and mission planners.
WP1: Requirements elicitation and stakeholder analysis
WP2: Architecture design and component breakdown

The system shall process 1000 sensor readings within 100 milliseconds.
The platform must provide secure access for all operators.
Performance monitoring is required for the AI model inference service.
`

func TestAnalyzeProposal(t *testing.T) {
	p := NewProcessor(0, 0)
	analysis := p.AnalyzeProposal(sampleProposal)

	if len(analysis.Objectives) == 0 {
		t.Error("expected objectives")
	}
	if len(analysis.Stakeholders) == 0 {
		t.Error("expected stakeholders")
	}
	if len(analysis.WorkPackages) != 2 {
		t.Errorf("expected 2 work packages, got %d", len(analysis.WorkPackages))
	}
	if len(analysis.RequirementIndicators) == 0 {
		t.Error("expected requirement indicators")
	}
}

func TestWorkPackagePhaseMapping(t *testing.T) {
	p := NewProcessor(0, 0)
	analysis := p.AnalyzeProposal(sampleProposal)

	byID := map[string]WorkPackage{}
	for _, wp := range analysis.WorkPackages {
		byID[wp.ID] = wp
	}

	if wp, ok := byID["WP1"]; !ok || wp.Phase != arcadia.PhaseOperational {
		t.Errorf("WP1 phase = %v, want operational", byID["WP1"].Phase)
	}
	if wp, ok := byID["WP2"]; !ok || wp.Phase != arcadia.PhaseLogical {
		t.Errorf("WP2 phase = %v, want logical", byID["WP2"].Phase)
	}
	if byID["WP1"].RequirementsPotential != "high" {
		t.Errorf("WP1 requirements potential = %s, want high", byID["WP1"].RequirementsPotential)
	}
}

func TestRequirementIndicatorClassification(t *testing.T) {
	p := NewProcessor(0, 0)
	analysis := p.AnalyzeProposal(sampleProposal)

	var functional, must int
	for _, indicator := range analysis.RequirementIndicators {
		if indicator.Type == "functional" {
			functional++
		}
		if indicator.Priority == "MUST" {
			must++
		}
	}
	if functional == 0 {
		t.Error("expected at least one functional indicator from shall/must statements")
	}
	if must == 0 {
		t.Error("expected at least one MUST priority from must statements")
	}
}

func TestPhaseRelevanceScores(t *testing.T) {
	p := NewProcessor(0, 0)
	analysis := p.AnalyzeProposal(sampleProposal)

	operational := analysis.PhaseRelevance[arcadia.PhaseOperational]
	if operational.RelevanceScore == 0 {
		t.Error("operational relevance should be non-zero (stakeholder, mission keywords)")
	}
	if len(operational.FoundKeywords) == 0 {
		t.Error("expected found keywords for operational phase")
	}
}

func TestStakeholderTypes(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"SOC analysts monitoring threats", "technical_user"},
		{"project managers and directors", "management"},
		{"development engineers team", "technical_team"},
		{"general public participants", "general_user"},
	}
	for _, tt := range tests {
		if got := classifyStakeholderType(tt.description); got != tt.want {
			t.Errorf("classifyStakeholderType(%q) = %s, want %s", tt.description, got, tt.want)
		}
	}
}
