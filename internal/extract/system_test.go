package extract

import (
	"context"
	"strings"
	"testing"

	"arise/internal/arcadia"
	"arise/internal/llm"
)

func scriptedSystemClient() *llm.ScriptedClient {
	return llm.NewScriptedClient(`{}`).
		Respond("SYSTEM ACTOR EXTRACTION", `{"actors": [
			{"name": "Mission Commander", "description": "Commands missions", "actor_type": "external",
			 "interfaces": [{"name": "Command Console", "type": "control", "description": "commands"}]},
			{"name": "Telemetry Gateway", "description": "Receives telemetry", "actor_type": "weird_type"}
		]}`).
		Respond("SYSTEM FUNCTION EXTRACTION", `{"functions": [
			{"name": "Monitor Status", "description": "Monitors equipment", "function_type": "primary",
			 "allocated_actors": ["mission commander"],
			 "functional_exchanges": [{"from": "Monitor Status", "to": "Generate Alerts", "exchange_type": "data"}]},
			{"name": "Generate Alerts", "description": "Raises alerts", "function_type": "support"}
		]}`).
		Respond("SYSTEM CAPABILITY EXTRACTION", `{"capabilities": [
			{"name": "Real-time Monitoring", "description": "Continuous monitoring",
			 "implementing_functions": ["Monitor Status", "Generate Alerts"]}
		]}`).
		Respond("SYSTEM BOUNDARY EXTRACTION", `{"scope_definition": "Monitoring platform and sensors",
			"included_elements": ["sensors"], "excluded_elements": ["legacy radar"],
			"external_dependencies": ["GPS"], "environmental_factors": ["weather"]}`).
		Respond("FUNCTIONAL CHAIN EXTRACTION", `{"chains": [
			{"name": "Alert Chain", "description": "Detection to alert",
			 "function_sequence": [
				{"step": 1, "function": "Monitor Status", "inputs": ["sensor data"], "outputs": ["status"]},
				{"step": 2, "function": "Generate Alerts", "inputs": ["status"], "outputs": ["alert"]},
				{"step": 3, "function": "Unknown Function"}
			 ]}
		]}`)
}

func TestSystemExtraction(t *testing.T) {
	extractor := NewSystemExtractor(scriptedSystemClient(), "test-model")

	output := extractor.Extract(context.Background(), testChunks(), "proposal", nil, nil)

	if len(output.Actors) != 2 {
		t.Fatalf("actors = %d", len(output.Actors))
	}
	if output.Actors[0].ActorType != arcadia.ActorExternal {
		t.Errorf("actor type = %s", output.Actors[0].ActorType)
	}
	// Unknown actor types default to external.
	if output.Actors[1].ActorType != arcadia.ActorExternal {
		t.Errorf("unknown actor type mapped to %s", output.Actors[1].ActorType)
	}
	if len(output.Actors[0].Interfaces) != 1 || output.Actors[0].Interfaces[0].Name != "Command Console" {
		t.Errorf("interfaces = %+v", output.Actors[0].Interfaces)
	}
}

func TestSystemFunctionAllocation(t *testing.T) {
	extractor := NewSystemExtractor(scriptedSystemClient(), "test-model")

	output := extractor.Extract(context.Background(), testChunks(), "proposal", nil, nil)

	if len(output.Functions) != 2 {
		t.Fatalf("functions = %d", len(output.Functions))
	}

	monitor := output.Functions[0]
	if monitor.FunctionType != arcadia.FunctionPrimary {
		t.Errorf("function type = %s", monitor.FunctionType)
	}
	// Name-resolved allocation to the system actor id.
	if len(monitor.AllocatedActors) != 1 || monitor.AllocatedActors[0] != "SA-ACTOR-001" {
		t.Errorf("allocated actors = %v", monitor.AllocatedActors)
	}
	if len(monitor.FunctionalExchanges) != 1 || monitor.FunctionalExchanges[0].ExchangeType != arcadia.ExchangeData {
		t.Errorf("exchanges = %+v", monitor.FunctionalExchanges)
	}
}

func TestSystemCapabilityFunctionMapping(t *testing.T) {
	extractor := NewSystemExtractor(scriptedSystemClient(), "test-model")

	output := extractor.Extract(context.Background(), testChunks(), "proposal", nil, nil)

	if len(output.Capabilities) != 1 {
		t.Fatalf("capabilities = %d", len(output.Capabilities))
	}
	capability := output.Capabilities[0]
	if len(capability.ImplementingFunctions) != 2 {
		t.Errorf("implementing functions = %v", capability.ImplementingFunctions)
	}
}

func TestSystemBoundary(t *testing.T) {
	extractor := NewSystemExtractor(scriptedSystemClient(), "test-model")

	output := extractor.Extract(context.Background(), testChunks(), "proposal", nil, nil)

	if output.Boundary == nil {
		t.Fatal("expected boundary")
	}
	if output.Boundary.ScopeDefinition != "Monitoring platform and sensors" {
		t.Errorf("scope = %s", output.Boundary.ScopeDefinition)
	}
	if len(output.Boundary.ExcludedElements) != 1 {
		t.Errorf("excluded = %v", output.Boundary.ExcludedElements)
	}
}

func TestFunctionalChainStepsReferenceDeclaredFunctions(t *testing.T) {
	extractor := NewSystemExtractor(scriptedSystemClient(), "test-model")

	output := extractor.Extract(context.Background(), testChunks(), "proposal", nil, nil)

	if len(output.Chains) != 1 {
		t.Fatalf("chains = %d", len(output.Chains))
	}

	chain := output.Chains[0]
	// The unknown-function step is dropped; surviving steps reference
	// declared function ids.
	if len(chain.FunctionSequence) != 2 {
		t.Fatalf("chain steps = %d, want 2", len(chain.FunctionSequence))
	}

	declared := map[string]bool{}
	for _, fn := range output.Functions {
		declared[fn.ID] = true
	}
	for _, step := range chain.FunctionSequence {
		if !declared[step.FunctionID] {
			t.Errorf("step references undeclared function %s", step.FunctionID)
		}
	}
}

func TestSystemExtractionWithOperationalContext(t *testing.T) {
	operational := &arcadia.OperationalOutput{
		Actors: []arcadia.OperationalActor{
			{ID: "OA-ACTOR-001", Name: "Mission Commander", Description: "Commands missions"},
		},
		Capabilities: []arcadia.OperationalCapability{
			{ID: "OA-CAPABILITY-001", Name: "Real-time Monitoring", Description: "Monitoring"},
		},
	}

	client := scriptedSystemClient()
	extractor := NewSystemExtractor(client, "test-model")
	output := extractor.Extract(context.Background(), testChunks(), "proposal", operational, nil)

	// Capability extraction still yields one capability when operational
	// context is supplied.
	if len(output.Capabilities) != 1 {
		t.Fatal("expected one capability")
	}

	// The actor prompt carried the operational actor references.
	foundPrior := false
	for _, call := range client.Calls() {
		if strings.Contains(call.Prompt, "Mission Commander: Commands missions") {
			foundPrior = true
		}
	}
	if !foundPrior {
		t.Error("prior-phase actor references missing from prompts")
	}
}
