package extract

import (
	"context"
	"testing"

	"arise/internal/arcadia"
	"arise/internal/llm"
)

func scriptedPhysicalClient() *llm.ScriptedClient {
	return llm.NewScriptedClient(`{}`).
		Respond("PHYSICAL COMPONENT EXTRACTION", `{"components": [
			{"name": "Edge Gateway", "description": "Field gateway appliance", "component_type": "hardware",
			 "technology_platform": "ARM Linux",
			 "implementing_logical_components": ["monitoring service"],
			 "interfaces": [{"name": "LTE Uplink", "type": "network", "description": "backhaul"}],
			 "deployment_configuration": "one per site",
			 "resource_requirements": ["PoE power"]},
			{"name": "Analytics Runtime", "description": "Stream analytics", "component_type": "container"}
		]}`).
		Respond("IMPLEMENTATION CONSTRAINT EXTRACTION", `{"constraints": [
			{"name": "Outdoor Rating", "description": "Must survive outdoor deployment",
			 "constraint_type": "environmental", "affected_components": ["Edge Gateway"],
			 "specifications": ["IP67"], "validation_criteria": ["environmental chamber test"]},
			{"name": "Unknown Kind", "description": "Typed loosely", "constraint_type": "mystery"}
		]}`).
		Respond("PHYSICAL FUNCTION EXTRACTION", `{"functions": [
			{"name": "Aggregate Telemetry", "description": "Aggregates sensor streams",
			 "parent_logical_function": "Track Status", "allocated_components": ["edge gateway"]}
		]}`).
		Respond("PHYSICAL SCENARIO EXTRACTION", `{"scenarios": [
			{"name": "Site Failover", "description": "Gateway failover", "scenario_type": "failure",
			 "involved_components": ["Edge Gateway"],
			 "interaction_sequence": [{"step": 1, "from": "Edge Gateway", "to": "Analytics Runtime", "interaction": "redirect traffic"}]}
		]}`)
}

func TestPhysicalExtraction(t *testing.T) {
	logical := &arcadia.LogicalOutput{
		Components: []arcadia.LogicalComponent{
			{ID: "LA-COMP-001", Name: "Monitoring Service", Description: "Monitors"},
		},
		Functions: []arcadia.LogicalFunction{
			{ID: "LA-FUNCTION-001", Name: "Track Status", Description: "Tracks"},
		},
	}

	extractor := NewPhysicalExtractor(scriptedPhysicalClient(), "test-model")
	output := extractor.Extract(context.Background(), testChunks(), "proposal", nil, nil, logical, nil)

	if len(output.Components) != 2 {
		t.Fatalf("components = %d", len(output.Components))
	}
	gateway := output.Components[0]
	if gateway.ComponentType != arcadia.PhysicalHardware {
		t.Errorf("component type = %s", gateway.ComponentType)
	}
	if gateway.TechnologyPlatform != "ARM Linux" {
		t.Errorf("platform = %s", gateway.TechnologyPlatform)
	}
	// The implementing logical component resolves by name.
	if len(gateway.ImplementedComponents) != 1 || gateway.ImplementedComponents[0] != "LA-COMP-001" {
		t.Errorf("implemented components = %v", gateway.ImplementedComponents)
	}
	// Unknown physical component types default to software.
	if output.Components[1].ComponentType != arcadia.PhysicalSoftware {
		t.Errorf("default component type = %s", output.Components[1].ComponentType)
	}

	if len(output.Constraints) != 2 {
		t.Fatalf("constraints = %d", len(output.Constraints))
	}
	if output.Constraints[0].ConstraintType != arcadia.ConstraintEnvironmental {
		t.Errorf("constraint type = %s", output.Constraints[0].ConstraintType)
	}
	// Unknown constraint types default to technology.
	if output.Constraints[1].ConstraintType != arcadia.ConstraintTechnology {
		t.Errorf("default constraint type = %s", output.Constraints[1].ConstraintType)
	}
	if len(output.Constraints[0].AffectedComponents) != 1 || output.Constraints[0].AffectedComponents[0] != "PA-COMP-001" {
		t.Errorf("affected components = %v", output.Constraints[0].AffectedComponents)
	}

	if len(output.Functions) != 1 {
		t.Fatalf("functions = %d", len(output.Functions))
	}
	if output.Functions[0].ParentLogicalFunction != "LA-FUNCTION-001" {
		t.Errorf("parent logical function = %s", output.Functions[0].ParentLogicalFunction)
	}

	if len(output.Scenarios) != 1 {
		t.Fatalf("scenarios = %d", len(output.Scenarios))
	}
	if output.Scenarios[0].InvolvedComponents[0] != "PA-COMP-001" {
		t.Errorf("scenario components = %v", output.Scenarios[0].InvolvedComponents)
	}
}
