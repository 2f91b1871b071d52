package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"arise/internal/arcadia"
	"arise/internal/document"
	"arise/internal/llm"
	"arise/internal/logging"
)

// OperationalExtractor extracts the ARCADIA Operational Analysis phase:
// actors, entities, capabilities, scenarios and processes.
type OperationalExtractor struct {
	base
}

// NewOperationalExtractor creates an operational analysis extractor.
func NewOperationalExtractor(client llm.Client, model string) *OperationalExtractor {
	return &OperationalExtractor{base: base{client: client, model: model}}
}

// Extract runs the operational sub-extractions in order: actors,
// entities, capabilities (receives actors), scenarios (receives
// actors), processes. The process prompt carries only the chunk
// context; the extracted actors are not passed to it.
func (e *OperationalExtractor) Extract(ctx context.Context, chunks []document.Chunk, proposalText string, sourceDocs []string) *arcadia.OperationalOutput {
	timer := logging.StartTimer(logging.CategoryExtraction, "OperationalExtractor.Extract")
	defer timer.StopWithInfo()

	start := time.Now()
	metadata := newMetadata(sourceDocs, start)
	ids := arcadia.NewIDGenerator()
	contextText := prepareContext(chunks)
	refs := chunkReferences(chunks)

	logging.Extraction("Starting operational analysis extraction (%d chunks)", len(chunks))

	actors := e.extractActors(ctx, contextText, proposalText, refs, ids, &metadata)
	entities := e.extractEntities(ctx, contextText, ids, &metadata)
	capabilities := e.extractCapabilities(ctx, contextText, actors, refs, ids, &metadata)
	scenarios := e.extractScenarios(ctx, contextText, actors, ids, &metadata)
	processes := e.extractProcesses(ctx, contextText, ids, &metadata)

	metadata.ConfidenceScores["actors_confidence"] = extractionConfidence(len(actors), len(contextText))
	metadata.ConfidenceScores["capabilities_confidence"] = extractionConfidence(len(capabilities), len(contextText))
	metadata.ConfidenceScores["scenarios_confidence"] = extractionConfidence(len(scenarios), len(contextText))
	metadata.ConfidenceScores["processes_confidence"] = extractionConfidence(len(processes), len(contextText))
	metadata.ProcessingStats["actors_extracted"] = len(actors)
	metadata.ProcessingStats["entities_extracted"] = len(entities)
	metadata.ProcessingStats["capabilities_extracted"] = len(capabilities)
	metadata.ProcessingStats["scenarios_extracted"] = len(scenarios)
	metadata.ProcessingStats["processes_extracted"] = len(processes)
	metadata.ProcessingStats["processing_time_seconds"] = time.Since(start).Seconds()

	logging.Extraction("Operational analysis completed: %d actors, %d capabilities, %d scenarios, %d processes",
		len(actors), len(capabilities), len(scenarios), len(processes))

	return &arcadia.OperationalOutput{
		Actors:       actors,
		Entities:     entities,
		Capabilities: capabilities,
		Scenarios:    scenarios,
		Processes:    processes,
		Metadata:     metadata,
	}
}

func (e *OperationalExtractor) extractActors(ctx context.Context, contextText, proposalText string, refs []string, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.OperationalActor {
	prompt := fmt.Sprintf(`OPERATIONAL ACTOR EXTRACTION - ARCADIA Methodology

Extract operational actors and stakeholders from this technical documentation.

CONTEXT: %s

PROPOSAL: %s

TASK: Identify all operational actors, stakeholders, users, and organizational entities.

OUTPUT FORMAT (JSON):
{
  "actors": [
    {
      "name": "Actor Name",
      "description": "Actor description",
      "role_definition": "Primary role",
      "responsibilities": ["responsibility 1", "responsibility 2"],
      "capabilities": ["capability 1", "capability 2"]
    }
  ]
}

Focus on operational-level actors who interact with the system.`, contextText, truncate(proposalText, maxProposalChars))

	elements, status := e.generate(ctx, prompt, "actors")
	meta.SubExtractions["actors"] = status

	var actors []arcadia.OperationalActor
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}
		actors = append(actors, arcadia.OperationalActor{
			ID:               ids.Next(arcadia.PhaseOperational, arcadia.KindActor),
			Name:             name,
			Description:      strField(element, "description"),
			RoleDefinition:   strField(element, "role_definition"),
			Responsibilities: strListField(element, "responsibilities"),
			Capabilities:     strListField(element, "capabilities"),
			SourceReferences: refs,
		})
	}
	logging.ExtractionDebug("Extracted %d operational actors", len(actors))
	return actors
}

func (e *OperationalExtractor) extractEntities(ctx context.Context, contextText string, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.OperationalEntity {
	prompt := fmt.Sprintf(`OPERATIONAL ENTITY EXTRACTION - ARCADIA Methodology

Extract operational entities and their hierarchical structures.

CONTEXT: %s

TASK: Identify systems, organizations, resources, and operational entities that support mission objectives.

OUTPUT FORMAT (JSON):
{
  "entities": [
    {
      "name": "Entity Name",
      "description": "Detailed description",
      "type": "system|organization|resource|other",
      "sub_entities": ["sub-entity names"]
    }
  ]
}

Focus on operational-level entities.`, contextText)

	elements, status := e.generate(ctx, prompt, "entities")
	meta.SubExtractions["entities"] = status

	var entities []arcadia.OperationalEntity
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}
		entityType := strField(element, "type")
		switch entityType {
		case "system", "organization", "resource", "other":
		default:
			entityType = "system"
		}
		entities = append(entities, arcadia.OperationalEntity{
			ID:          ids.Next(arcadia.PhaseOperational, arcadia.KindEntity),
			Name:        name,
			Description: strField(element, "description"),
			EntityType:  entityType,
			SubEntities: strListField(element, "sub_entities"),
		})
	}
	return entities
}

func (e *OperationalExtractor) extractCapabilities(ctx context.Context, contextText string, actors []arcadia.OperationalActor, refs []string, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.OperationalCapability {
	actorNames := make([]string, 0, len(actors))
	actorPairs := make([][2]string, 0, len(actors))
	for i, actor := range actors {
		if i < 5 {
			actorNames = append(actorNames, actor.Name)
		}
		actorPairs = append(actorPairs, [2]string{actor.Name, actor.ID})
	}
	actorIndex := nameIndex(actorPairs...)

	prompt := fmt.Sprintf(`OPERATIONAL CAPABILITY EXTRACTION - ARCADIA Methodology

Extract operational capabilities from this documentation.

CONTEXT: %s

KNOWN ACTORS: %s

TASK: Extract operational capabilities, mission objectives, and capability-actor relationships.

OUTPUT FORMAT (JSON):
{
  "capabilities": [
    {
      "name": "Capability Name",
      "description": "Capability description",
      "mission_statement": "Mission objective this supports",
      "involved_actors": ["actor names"],
      "performance_constraints": ["constraint 1", "constraint 2"]
    }
  ]
}

Focus on high-level operational capabilities.`, contextText, strings.Join(actorNames, ", "))

	elements, status := e.generate(ctx, prompt, "capabilities")
	meta.SubExtractions["capabilities"] = status

	var capabilities []arcadia.OperationalCapability
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}
		capabilities = append(capabilities, arcadia.OperationalCapability{
			ID:                     ids.Next(arcadia.PhaseOperational, arcadia.KindCapability),
			Name:                   name,
			Description:            strField(element, "description"),
			MissionStatement:       strField(element, "mission_statement"),
			InvolvedActors:         resolveActorNames(strListField(element, "involved_actors"), actorIndex),
			PerformanceConstraints: strListField(element, "performance_constraints"),
			SourceReferences:       refs,
		})
	}
	logging.ExtractionDebug("Extracted %d operational capabilities", len(capabilities))
	return capabilities
}

func (e *OperationalExtractor) extractScenarios(ctx context.Context, contextText string, actors []arcadia.OperationalActor, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.OperationalScenario {
	actorNames := make([]string, 0, 5)
	for i, actor := range actors {
		if i >= 5 {
			break
		}
		actorNames = append(actorNames, actor.Name)
	}

	prompt := fmt.Sprintf(`OPERATIONAL SCENARIO EXTRACTION - ARCADIA Methodology

Extract operational scenarios, use cases, and workflows.

CONTEXT: %s

KNOWN ACTORS: %s

TASK: Identify operational use cases, extract activity sequences, and map actor involvement.

OUTPUT FORMAT (JSON):
{
  "scenarios": [
    {
      "name": "Scenario Name",
      "description": "Detailed scenario description",
      "type": "use_case|mission_scenario|workflow",
      "involved_actors": ["actor names"],
      "activity_sequence": [
        {"step": 1, "activity": "activity description", "actor": "responsible actor"}
      ],
      "environmental_conditions": ["condition 1"],
      "performance_constraints": ["constraint 1"]
    }
  ]
}

Focus on end-to-end operational scenarios.`, contextText, strings.Join(actorNames, ", "))

	elements, status := e.generate(ctx, prompt, "scenarios")
	meta.SubExtractions["scenarios"] = status

	var scenarios []arcadia.OperationalScenario
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}
		scenarioType := strField(element, "type")
		switch scenarioType {
		case "use_case", "mission_scenario", "workflow":
		default:
			scenarioType = "use_case"
		}

		var sequence []arcadia.ScenarioStep
		for i, stepObj := range objListField(element, "activity_sequence") {
			activity := strField(stepObj, "activity")
			if activity == "" {
				continue
			}
			sequence = append(sequence, arcadia.ScenarioStep{
				Step:     intField(stepObj, "step", i+1),
				Activity: activity,
				Actor:    strField(stepObj, "actor"),
			})
		}

		scenarios = append(scenarios, arcadia.OperationalScenario{
			ID:                      ids.Next(arcadia.PhaseOperational, arcadia.KindScenario),
			Name:                    name,
			Description:             strField(element, "description"),
			ScenarioType:            scenarioType,
			InvolvedActors:          strListField(element, "involved_actors"),
			ActivitySequence:        sequence,
			EnvironmentalConditions: strListField(element, "environmental_conditions"),
			PerformanceConstraints:  strListField(element, "performance_constraints"),
		})
	}
	return scenarios
}

func (e *OperationalExtractor) extractProcesses(ctx context.Context, contextText string, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.OperationalProcess {
	prompt := fmt.Sprintf(`OPERATIONAL PROCESS EXTRACTION - ARCADIA Methodology

Extract operational processes and activity chains.

CONTEXT: %s

TASK: Identify operational processes, extract activity chains, and define process triggers.

OUTPUT FORMAT (JSON):
{
  "processes": [
    {
      "name": "Process Name",
      "description": "Detailed process description",
      "activity_chain": [
        {"activity": "activity name", "description": "what happens", "triggers": ["trigger conditions"]}
      ]
    }
  ]
}

Focus on operational processes that support capabilities.`, contextText)

	elements, status := e.generate(ctx, prompt, "processes")
	meta.SubExtractions["processes"] = status

	var processes []arcadia.OperationalProcess
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}

		var chain []arcadia.ProcessActivity
		for _, activityObj := range objListField(element, "activity_chain") {
			activity := strField(activityObj, "activity")
			if activity == "" {
				continue
			}
			chain = append(chain, arcadia.ProcessActivity{
				Activity:    activity,
				Description: strField(activityObj, "description"),
				Triggers:    strListField(activityObj, "triggers"),
			})
		}

		processes = append(processes, arcadia.OperationalProcess{
			ID:            ids.Next(arcadia.PhaseOperational, arcadia.KindProcess),
			Name:          name,
			Description:   strField(element, "description"),
			ActivityChain: chain,
		})
	}
	return processes
}
