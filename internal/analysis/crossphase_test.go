package analysis

import (
	"testing"

	"arise/internal/arcadia"
)

func sampleOutput() *arcadia.StructuredOutput {
	return &arcadia.StructuredOutput{
		Operational: &arcadia.OperationalOutput{
			Actors: []arcadia.OperationalActor{
				{ID: "OA-ACTOR-001", Name: "Mission Commander", Description: "Commands operational missions"},
				{ID: "OA-ACTOR-002", Name: "Operations Center", Description: "Coordinates operational activities"},
			},
			Capabilities: []arcadia.OperationalCapability{
				{
					ID: "OA-CAPABILITY-001", Name: "Real-time Monitoring",
					Description:      "Monitor system status continuously",
					MissionStatement: "Provide continuous monitoring of operational equipment status",
					InvolvedActors:   []string{"OA-ACTOR-001", "OA-ACTOR-002", "OA-ACTOR-003"},
				},
				{
					ID: "OA-CAPABILITY-002", Name: "Security Management",
					Description:    "Manage access and protection",
					InvolvedActors: []string{"OA-ACTOR-001"},
				},
			},
			Scenarios: []arcadia.OperationalScenario{
				{ID: "OA-SCENARIO-001", Name: "Status Monitoring", ScenarioType: "use_case"},
			},
		},
		System: &arcadia.SystemOutput{
			Actors: []arcadia.SystemActor{
				{ID: "SA-ACTOR-001", Name: "Mission Commander", Description: "Commands operational missions", ActorType: arcadia.ActorExternal},
			},
			Functions: []arcadia.SystemFunction{
				{
					ID: "SA-FUNCTION-001", Name: "Monitor Status",
					Description:     "Monitors equipment status",
					FunctionType:    arcadia.FunctionPrimary,
					AllocatedActors: []string{"SA-ACTOR-001", "SA-ACTOR-002"},
				},
			},
			Capabilities: []arcadia.SystemCapability{
				{ID: "SA-CAPABILITY-001", Name: "Real-time Monitoring", Description: "Monitor system status continuously"},
			},
		},
		Logical: &arcadia.LogicalOutput{
			Components: []arcadia.LogicalComponent{
				{ID: "LA-COMP-001", Name: "Monitoring Service", Description: "Monitor system status continuously", ComponentType: arcadia.ComponentService},
			},
			Functions: []arcadia.LogicalFunction{
				{ID: "LA-FUNCTION-001", Name: "Monitor Status", Description: "Monitors equipment status", InputInterfaces: []string{"sensor_data"}, OutputInterfaces: []string{"alerts"}},
			},
			Interfaces: []arcadia.LogicalInterface{
				{ID: "LA-INTF-001", Name: "Sensor Data Feed", InterfaceType: arcadia.InterfaceData},
			},
		},
		Physical: &arcadia.PhysicalOutput{
			Components: []arcadia.PhysicalComponent{
				{
					ID: "PA-COMP-001", Name: "Monitoring Service",
					Description:   "Service performing continuous monitoring of operational equipment status",
					ComponentType: arcadia.PhysicalSoftware,
					Interfaces:    []arcadia.InterfaceSpec{{Name: "Sensor Data Feed", Type: "network"}},
				},
			},
			Functions: []arcadia.PhysicalFunction{
				{ID: "PA-FUNCTION-001", Name: "Monitor Status", Description: "Monitors equipment status"},
			},
		},
	}
}

// elementIDs collects every element id present in the phase outputs.
func elementIDs(output *arcadia.StructuredOutput) map[string]bool {
	ids := map[string]bool{}
	if output.Operational != nil {
		for _, a := range output.Operational.Actors {
			ids[a.ID] = true
		}
		for _, c := range output.Operational.Capabilities {
			ids[c.ID] = true
		}
	}
	if output.System != nil {
		for _, a := range output.System.Actors {
			ids[a.ID] = true
		}
		for _, f := range output.System.Functions {
			ids[f.ID] = true
		}
		for _, c := range output.System.Capabilities {
			ids[c.ID] = true
		}
	}
	if output.Logical != nil {
		for _, c := range output.Logical.Components {
			ids[c.ID] = true
		}
		for _, f := range output.Logical.Functions {
			ids[f.ID] = true
		}
		for _, i := range output.Logical.Interfaces {
			ids[i.ID] = true
		}
	}
	if output.Physical != nil {
		for _, c := range output.Physical.Components {
			ids[c.ID] = true
			for _, intf := range c.Interfaces {
				ids[c.ID+":"+intf.Name] = true
			}
		}
		for _, f := range output.Physical.Functions {
			ids[f.ID] = true
		}
	}
	return ids
}

func TestTraceabilityLinksWellFormed(t *testing.T) {
	output := sampleOutput()
	cross := NewAnalyzer().Analyze(output)

	if len(cross.TraceabilityLinks) == 0 {
		t.Fatal("expected traceability links")
	}

	ids := elementIDs(output)
	for _, link := range cross.TraceabilityLinks {
		if !ids[link.SourceElement] {
			t.Errorf("link %s has unknown source %s", link.ID, link.SourceElement)
		}
		if !ids[link.TargetElement] {
			t.Errorf("link %s has unknown target %s", link.ID, link.TargetElement)
		}
		if !link.SourcePhase.Precedes(link.TargetPhase) {
			t.Errorf("link %s violates phase ordering: %s -> %s", link.ID, link.SourcePhase, link.TargetPhase)
		}
		if link.ConfidenceScore < 0 || link.ConfidenceScore > 1 {
			t.Errorf("link %s confidence out of range: %v", link.ID, link.ConfidenceScore)
		}
	}
}

func TestActorLinkGenerated(t *testing.T) {
	cross := NewAnalyzer().Analyze(sampleOutput())

	found := false
	for _, link := range cross.TraceabilityLinks {
		if link.SourceElement == "OA-ACTOR-001" && link.TargetElement == "SA-ACTOR-001" {
			found = true
			if link.RelationshipType != arcadia.RelationImplements {
				t.Errorf("actor link relationship = %s", link.RelationshipType)
			}
			if link.ConfidenceScore < 0.6 {
				t.Errorf("actor link below threshold: %v", link.ConfidenceScore)
			}
		}
	}
	if !found {
		t.Error("expected Mission Commander operational->system actor link")
	}
}

func TestEndToEndLinksRequireValidation(t *testing.T) {
	cross := NewAnalyzer().Analyze(sampleOutput())

	for _, link := range cross.TraceabilityLinks {
		if link.RelationshipType == arcadia.RelationEnables {
			if link.SourcePhase != arcadia.PhaseOperational || link.TargetPhase != arcadia.PhasePhysical {
				t.Errorf("enables link between %s and %s", link.SourcePhase, link.TargetPhase)
			}
			if link.ValidationStatus != arcadia.StatusRequiresValidation {
				t.Errorf("enables link status = %s, want requires_validation", link.ValidationStatus)
			}
		}
	}
}

func TestGapAnalysisThemes(t *testing.T) {
	cross := NewAnalyzer().Analyze(sampleOutput())

	// Monitoring and security are present in capability names;
	// data_processing and user_interface are missing.
	missing := map[string]bool{}
	for _, gap := range cross.GapAnalysis {
		if gap.GapType == arcadia.GapMissing {
			missing[gap.Description] = true
			if gap.Severity != arcadia.SeverityMedium {
				t.Errorf("missing-capability gap severity = %s", gap.Severity)
			}
		}
	}

	if !missing["Missing data_processing capability in operational analysis"] {
		t.Error("expected data_processing gap")
	}
	if !missing["Missing user_interface capability in operational analysis"] {
		t.Error("expected user_interface gap")
	}
	if missing["Missing monitoring capability in operational analysis"] {
		t.Error("monitoring is covered; no gap expected")
	}
}

func TestActorCountMismatchGap(t *testing.T) {
	output := sampleOutput()
	// Inflate operational actors to trigger the inconsistency gap.
	for i := 0; i < 8; i++ {
		output.Operational.Actors = append(output.Operational.Actors, arcadia.OperationalActor{
			ID:   arcadia.FormatRequirementID("FR", "PAD", i), // unique filler ids
			Name: "Filler",
		})
	}

	cross := NewAnalyzer().Analyze(output)

	found := false
	for _, gap := range cross.GapAnalysis {
		if gap.GapType == arcadia.GapInconsistent && gap.Severity == arcadia.SeverityMajor {
			found = true
		}
	}
	if !found {
		t.Error("expected inconsistent actor-count gap")
	}
}

func TestConsistencyChecks(t *testing.T) {
	cross := NewAnalyzer().Analyze(sampleOutput())

	if len(cross.ConsistencyChecks) != 2 {
		t.Fatalf("expected 2 consistency checks, got %d", len(cross.ConsistencyChecks))
	}

	coherence := cross.ConsistencyChecks[0]
	if coherence.CheckType != "model_coherence" {
		t.Errorf("first check type = %s", coherence.CheckType)
	}
	// 1 system capability < 0.5 * 2 operational capabilities is false
	// (1 >= 1), so the check passes.
	if coherence.Status != arcadia.CheckPassed {
		t.Errorf("coherence status = %s", coherence.Status)
	}

	interfaceCheck := cross.ConsistencyChecks[1]
	if interfaceCheck.CheckType != "interface_compatibility" || interfaceCheck.Status != arcadia.CheckPassed {
		t.Errorf("interface check = %+v", interfaceCheck)
	}
}

func TestQualityMetrics(t *testing.T) {
	cross := NewAnalyzer().Analyze(sampleOutput())

	if len(cross.QualityMetrics) != 2 {
		t.Fatalf("expected 2 quality metrics, got %d", len(cross.QualityMetrics))
	}

	operational := cross.QualityMetrics[0]
	// (2*0.3 + 2*0.4 + 1*0.3) / 5 = 0.34
	if operational.Score < 0.33 || operational.Score > 0.35 {
		t.Errorf("operational completeness = %v, want ~0.34", operational.Score)
	}
	if operational.MaxScore != 1.0 {
		t.Errorf("max score = %v", operational.MaxScore)
	}

	system := cross.QualityMetrics[1]
	// (1*0.2 + 1*0.5 + 1*0.3) / 8 = 0.125
	if system.Score < 0.12 || system.Score > 0.13 {
		t.Errorf("system architecture = %v, want ~0.125", system.Score)
	}
}

func TestCoverageMatrix(t *testing.T) {
	cross := NewAnalyzer().Analyze(sampleOutput())

	coverage, ok := cross.CoverageMatrix["operational_to_system"]
	if !ok {
		t.Fatal("expected operational_to_system coverage")
	}
	// Mission Commander is covered, Operations Center is not: 1/2.
	if coverage.ActorCoverage != 0.5 {
		t.Errorf("actor coverage = %v, want 0.5", coverage.ActorCoverage)
	}
	// Real-time Monitoring exact match, Security Management uncovered.
	if coverage.CapabilityCoverage != 0.5 {
		t.Errorf("capability coverage = %v, want 0.5", coverage.CapabilityCoverage)
	}
}

func TestImpactAnalysis(t *testing.T) {
	cross := NewAnalyzer().Analyze(sampleOutput())

	high := cross.ImpactAnalysis["high_impact_operational_capabilities"]
	if len(high) != 1 || high[0] != "OA-CAPABILITY-001" {
		t.Errorf("high-impact capabilities = %v", high)
	}

	critical := cross.ImpactAnalysis["critical_system_functions"]
	if len(critical) != 1 || critical[0] != "SA-FUNCTION-001" {
		t.Errorf("critical functions = %v", critical)
	}
}

func TestAnalyzeSinglePhaseOutput(t *testing.T) {
	output := &arcadia.StructuredOutput{
		Operational: sampleOutput().Operational,
	}
	cross := NewAnalyzer().Analyze(output)

	for _, link := range cross.TraceabilityLinks {
		t.Errorf("unexpected link with single phase: %+v", link)
	}
	if len(cross.QualityMetrics) != 1 {
		t.Errorf("expected only the operational metric, got %d", len(cross.QualityMetrics))
	}
}
