package extract

import (
	"context"
	"testing"

	"arise/internal/arcadia"
	"arise/internal/document"
	"arise/internal/llm"
)

const actorsResponse = `{
  "actors": [
    {
      "name": "Mission Commander",
      "description": "Commands operational missions",
      "role_definition": "Mission oversight",
      "responsibilities": ["Define objectives", "Approve plans"],
      "capabilities": ["Mission Planning"]
    },
    {
      "name": "Operations Center",
      "description": "Coordinates operational activities",
      "role_definition": "Coordination hub",
      "responsibilities": ["Coordinate activities"],
      "capabilities": ["Real-time Monitoring"]
    }
  ]
}`

const capabilitiesResponse = `{
  "capabilities": [
    {
      "name": "Real-time Monitoring",
      "description": "Continuous status monitoring",
      "mission_statement": "Maintain operational awareness",
      "involved_actors": ["Mission Commander", "operations center", "Nobody Known"],
      "performance_constraints": ["5 second latency"]
    }
  ]
}`

func testChunks() []document.Chunk {
	return []document.Chunk{
		{Content: "The Mission Commander oversees operations from the Operations Center.", Ordinal: 0},
		{Content: "Real-time monitoring keeps equipment status visible.", Ordinal: 1},
	}
}

func scriptedOperationalClient() *llm.ScriptedClient {
	return llm.NewScriptedClient(`{}`).
		Respond("OPERATIONAL ACTOR EXTRACTION", actorsResponse).
		Respond("OPERATIONAL CAPABILITY EXTRACTION", capabilitiesResponse).
		Respond("OPERATIONAL ENTITY EXTRACTION", `{"entities": []}`).
		Respond("OPERATIONAL SCENARIO EXTRACTION", `{"scenarios": [{"name": "Status Monitoring", "type": "use_case", "description": "Operator watches status", "activity_sequence": [{"step": 1, "activity": "Open dashboard", "actor": "Operator"}]}]}`).
		Respond("OPERATIONAL PROCESS EXTRACTION", `{"processes": []}`)
}

func TestOperationalExtraction(t *testing.T) {
	extractor := NewOperationalExtractor(scriptedOperationalClient(), "test-model")

	output := extractor.Extract(context.Background(), testChunks(), "proposal text", nil)

	if len(output.Actors) != 2 {
		t.Fatalf("extracted %d actors, want 2", len(output.Actors))
	}
	if output.Actors[0].Name != "Mission Commander" || output.Actors[1].Name != "Operations Center" {
		t.Errorf("actor names = %s, %s", output.Actors[0].Name, output.Actors[1].Name)
	}
	if output.Actors[0].ID != "OA-ACTOR-001" {
		t.Errorf("first actor id = %s", output.Actors[0].ID)
	}
	if len(output.Actors[0].SourceReferences) == 0 {
		t.Error("actors must carry chunk references")
	}
}

func TestOperationalCapabilityActorResolution(t *testing.T) {
	extractor := NewOperationalExtractor(scriptedOperationalClient(), "test-model")

	output := extractor.Extract(context.Background(), testChunks(), "proposal text", nil)

	if len(output.Capabilities) != 1 {
		t.Fatalf("extracted %d capabilities", len(output.Capabilities))
	}

	capability := output.Capabilities[0]
	// Known actor names are resolved case-insensitively to ids;
	// unknown names are dropped.
	if len(capability.InvolvedActors) != 2 {
		t.Fatalf("involved actors = %v, want 2 resolved ids", capability.InvolvedActors)
	}
	if capability.InvolvedActors[0] != "OA-ACTOR-001" || capability.InvolvedActors[1] != "OA-ACTOR-002" {
		t.Errorf("resolved actors = %v", capability.InvolvedActors)
	}
}

func TestOperationalScenarios(t *testing.T) {
	extractor := NewOperationalExtractor(scriptedOperationalClient(), "test-model")

	output := extractor.Extract(context.Background(), testChunks(), "proposal", nil)

	if len(output.Scenarios) != 1 {
		t.Fatalf("scenarios = %d", len(output.Scenarios))
	}
	scenario := output.Scenarios[0]
	if scenario.ScenarioType != "use_case" {
		t.Errorf("scenario type = %s", scenario.ScenarioType)
	}
	if len(scenario.ActivitySequence) != 1 || scenario.ActivitySequence[0].Step != 1 {
		t.Errorf("activity sequence = %+v", scenario.ActivitySequence)
	}
}

func TestOperationalMetadata(t *testing.T) {
	extractor := NewOperationalExtractor(scriptedOperationalClient(), "test-model")

	output := extractor.Extract(context.Background(), testChunks(), "proposal", []string{"doc.pdf"})

	if output.Metadata.SourceDocuments[0] != "doc.pdf" {
		t.Errorf("source documents = %v", output.Metadata.SourceDocuments)
	}
	if output.Metadata.SubExtractions["actors"] != arcadia.SubExtractionOK {
		t.Errorf("actors status = %s", output.Metadata.SubExtractions["actors"])
	}
	if output.Metadata.SubExtractions["processes"] != arcadia.SubExtractionEmpty {
		t.Errorf("processes status = %s", output.Metadata.SubExtractions["processes"])
	}

	confidence := output.Metadata.ConfidenceScores["actors_confidence"]
	if confidence <= 0 || confidence > 1 {
		t.Errorf("actors confidence = %v", confidence)
	}
}

func TestOperationalMalformedResponses(t *testing.T) {
	// Every call returns non-JSON prose: all sub-extractions empty,
	// extractor never aborts.
	client := llm.NewScriptedClient("I am unable to answer in JSON today.")
	extractor := NewOperationalExtractor(client, "test-model")

	output := extractor.Extract(context.Background(), testChunks(), "proposal", nil)

	if len(output.Actors) != 0 || len(output.Capabilities) != 0 {
		t.Error("malformed responses must yield empty lists")
	}
	if output.Metadata.SubExtractions["actors"] != arcadia.SubExtractionMalformed {
		t.Errorf("actors status = %s, want malformed_output", output.Metadata.SubExtractions["actors"])
	}
}

func TestOperationalSkipsElementsWithoutName(t *testing.T) {
	client := llm.NewScriptedClient(`{}`).
		Respond("OPERATIONAL ACTOR EXTRACTION", `{"actors": [{"description": "nameless"}, {"name": "Named Actor", "description": "ok"}]}`)
	extractor := NewOperationalExtractor(client, "test-model")

	output := extractor.Extract(context.Background(), testChunks(), "proposal", nil)

	if len(output.Actors) != 1 || output.Actors[0].Name != "Named Actor" {
		t.Errorf("actors = %+v", output.Actors)
	}
}
