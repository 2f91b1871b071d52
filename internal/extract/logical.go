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

// LogicalExtractor extracts the ARCADIA Logical Architecture phase:
// components, functions, interfaces and scenarios.
type LogicalExtractor struct {
	base
}

// NewLogicalExtractor creates a logical architecture extractor.
func NewLogicalExtractor(client llm.Client, model string) *LogicalExtractor {
	return &LogicalExtractor{base: base{client: client, model: model}}
}

// Extract runs the logical sub-extractions in order: components,
// functions (receives components), interfaces (receives components),
// scenarios (receives components and functions).
func (e *LogicalExtractor) Extract(ctx context.Context, chunks []document.Chunk, proposalText string, operational *arcadia.OperationalOutput, system *arcadia.SystemOutput, sourceDocs []string) *arcadia.LogicalOutput {
	timer := logging.StartTimer(logging.CategoryExtraction, "LogicalExtractor.Extract")
	defer timer.StopWithInfo()

	start := time.Now()
	metadata := newMetadata(sourceDocs, start)
	ids := arcadia.NewIDGenerator()
	contextText := prepareContext(chunks)

	priorContext := e.priorPhaseContext(operational, system)

	logging.Extraction("Starting logical architecture extraction (%d chunks)", len(chunks))

	components := e.extractComponents(ctx, contextText, priorContext, ids, &metadata)
	functions := e.extractFunctions(ctx, contextText, components, system, ids, &metadata)
	interfaces := e.extractInterfaces(ctx, contextText, components, ids, &metadata)
	scenarios := e.extractScenarios(ctx, contextText, components, functions, ids, &metadata)

	metadata.ConfidenceScores["components_confidence"] = extractionConfidence(len(components), len(contextText))
	metadata.ConfidenceScores["functions_confidence"] = extractionConfidence(len(functions), len(contextText))
	metadata.ConfidenceScores["interfaces_confidence"] = extractionConfidence(len(interfaces), len(contextText))
	metadata.ConfidenceScores["scenarios_confidence"] = extractionConfidence(len(scenarios), len(contextText))
	metadata.ProcessingStats["components_extracted"] = len(components)
	metadata.ProcessingStats["functions_extracted"] = len(functions)
	metadata.ProcessingStats["interfaces_extracted"] = len(interfaces)
	metadata.ProcessingStats["scenarios_extracted"] = len(scenarios)
	metadata.ProcessingStats["processing_time_seconds"] = time.Since(start).Seconds()

	logging.Extraction("Logical architecture completed: %d components, %d functions, %d interfaces, %d scenarios",
		len(components), len(functions), len(interfaces), len(scenarios))

	return &arcadia.LogicalOutput{
		Components: components,
		Functions:  functions,
		Interfaces: interfaces,
		Scenarios:  scenarios,
		Metadata:   metadata,
	}
}

// priorPhaseContext summarises operational actors/capabilities and
// system functions/capabilities for the prompts.
func (e *LogicalExtractor) priorPhaseContext(operational *arcadia.OperationalOutput, system *arcadia.SystemOutput) string {
	var parts []string
	if operational != nil {
		actorPairs := make([][2]string, 0, len(operational.Actors))
		for _, actor := range operational.Actors {
			actorPairs = append(actorPairs, [2]string{actor.Name, actor.Description})
		}
		if s := summarizeNames(maxPriorReferences, actorPairs...); s != "" {
			parts = append(parts, "Operational actors: "+s)
		}
		capPairs := make([][2]string, 0, len(operational.Capabilities))
		for _, cap := range operational.Capabilities {
			capPairs = append(capPairs, [2]string{cap.Name, cap.Description})
		}
		if s := summarizeNames(maxPriorReferences, capPairs...); s != "" {
			parts = append(parts, "Operational capabilities: "+s)
		}
	}
	if system != nil {
		fnPairs := make([][2]string, 0, len(system.Functions))
		for _, fn := range system.Functions {
			fnPairs = append(fnPairs, [2]string{fn.Name, fn.Description})
		}
		if s := summarizeNames(maxPriorReferences, fnPairs...); s != "" {
			parts = append(parts, "System functions: "+s)
		}
		capPairs := make([][2]string, 0, len(system.Capabilities))
		for _, cap := range system.Capabilities {
			capPairs = append(capPairs, [2]string{cap.Name, cap.Description})
		}
		if s := summarizeNames(maxPriorReferences, capPairs...); s != "" {
			parts = append(parts, "System capabilities: "+s)
		}
	}
	return strings.Join(parts, "\n")
}

func (e *LogicalExtractor) extractComponents(ctx context.Context, contextText, priorContext string, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.LogicalComponent {
	prompt := fmt.Sprintf(`LOGICAL COMPONENT EXTRACTION - ARCADIA Methodology

Extract logical components from this documentation.

CONTEXT: %s

PRIOR PHASE ELEMENTS:
%s

TASK: Build the coarse-grained component breakdown of the solution.

OUTPUT FORMAT (JSON):
{
  "components": [
    {
      "name": "Component Name",
      "description": "Component description",
      "component_type": "subsystem|module|service",
      "responsibilities": ["responsibility 1"],
      "parent_component": "parent component name if any",
      "sub_components": ["sub-component names"],
      "allocated_functions": ["function names"]
    }
  ]
}

Focus on components that structure the development breakdown.`, contextText, priorContext)

	elements, status := e.generate(ctx, prompt, "components")
	meta.SubExtractions["logical_components"] = status

	var components []arcadia.LogicalComponent
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}
		components = append(components, arcadia.LogicalComponent{
			ID:                 ids.Next(arcadia.PhaseLogical, arcadia.KindComponent),
			Name:               name,
			Description:        strField(element, "description"),
			ComponentType:      arcadia.ParseComponentType(strField(element, "component_type")),
			Responsibilities:   strListField(element, "responsibilities"),
			ParentComponent:    strField(element, "parent_component"),
			SubComponents:      strListField(element, "sub_components"),
			AllocatedFunctions: strListField(element, "allocated_functions"),
		})
	}
	logging.ExtractionDebug("Extracted %d logical components", len(components))
	return components
}

func (e *LogicalExtractor) extractFunctions(ctx context.Context, contextText string, components []arcadia.LogicalComponent, system *arcadia.SystemOutput, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.LogicalFunction {
	componentNames := make([]string, 0, 5)
	componentPairs := make([][2]string, 0, len(components))
	for i, comp := range components {
		if i < 5 {
			componentNames = append(componentNames, comp.Name)
		}
		componentPairs = append(componentPairs, [2]string{comp.Name, comp.ID})
	}
	componentIndex := nameIndex(componentPairs...)

	systemFnIndex := map[string]string{}
	if system != nil {
		for _, fn := range system.Functions {
			systemFnIndex[strings.ToLower(fn.Name)] = fn.ID
		}
	}

	prompt := fmt.Sprintf(`LOGICAL FUNCTION EXTRACTION - ARCADIA Methodology

Extract logical functions from this documentation.

CONTEXT: %s

KNOWN LOGICAL COMPONENTS: %s

TASK: Extract logical functions, their decomposition, interface specs and component allocations.

OUTPUT FORMAT (JSON):
{
  "functions": [
    {
      "name": "Function Name",
      "description": "Function description",
      "parent_system_function": "system function name if refined from one",
      "sub_functions": ["sub-function names"],
      "input_interfaces": ["input spec"],
      "output_interfaces": ["output spec"],
      "behavioral_specs": ["behavioral specification"],
      "allocated_components": ["component names"]
    }
  ]
}

Focus on functions allocated to logical components.`, contextText, strings.Join(componentNames, ", "))

	elements, status := e.generate(ctx, prompt, "functions")
	meta.SubExtractions["logical_functions"] = status

	var functions []arcadia.LogicalFunction
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}
		parent := ""
		if id, ok := systemFnIndex[strings.ToLower(strField(element, "parent_system_function"))]; ok {
			parent = id
		}
		functions = append(functions, arcadia.LogicalFunction{
			ID:                   ids.Next(arcadia.PhaseLogical, arcadia.KindFunction),
			Name:                 name,
			Description:          strField(element, "description"),
			ParentSystemFunction: parent,
			SubFunctions:         strListField(element, "sub_functions"),
			InputInterfaces:      strListField(element, "input_interfaces"),
			OutputInterfaces:     strListField(element, "output_interfaces"),
			BehavioralSpecs:      strListField(element, "behavioral_specs"),
			AllocatedComponents:  resolveActorNames(strListField(element, "allocated_components"), componentIndex),
		})
	}
	return functions
}

func (e *LogicalExtractor) extractInterfaces(ctx context.Context, contextText string, components []arcadia.LogicalComponent, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.LogicalInterface {
	componentNames := make([]string, 0, 5)
	componentPairs := make([][2]string, 0, len(components))
	for i, comp := range components {
		if i < 5 {
			componentNames = append(componentNames, comp.Name)
		}
		componentPairs = append(componentPairs, [2]string{comp.Name, comp.ID})
	}
	componentIndex := nameIndex(componentPairs...)

	prompt := fmt.Sprintf(`LOGICAL INTERFACE EXTRACTION - ARCADIA Methodology

Extract logical interfaces from this documentation.

CONTEXT: %s

KNOWN LOGICAL COMPONENTS: %s

TASK: Extract interfaces between logical components with data and protocol specifications.

OUTPUT FORMAT (JSON):
{
  "interfaces": [
    {
      "name": "Interface Name",
      "description": "Interface description",
      "interface_type": "data|control|user|external|service|api",
      "provider_component": "providing component name",
      "consumer_components": ["consuming component names"],
      "data_specifications": ["data spec"],
      "protocol_specifications": ["protocol spec"],
      "quality_attributes": ["quality attribute"]
    }
  ]
}

Focus on interfaces that connect components.`, contextText, strings.Join(componentNames, ", "))

	elements, status := e.generate(ctx, prompt, "interfaces")
	meta.SubExtractions["logical_interfaces"] = status

	var interfaces []arcadia.LogicalInterface
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}
		provider := ""
		if id, ok := componentIndex[strings.ToLower(strField(element, "provider_component"))]; ok {
			provider = id
		}
		interfaces = append(interfaces, arcadia.LogicalInterface{
			ID:                 ids.Next(arcadia.PhaseLogical, arcadia.KindInterface),
			Name:               name,
			Description:        strField(element, "description"),
			InterfaceType:      arcadia.ParseInterfaceType(strField(element, "interface_type")),
			ProviderComponent:  provider,
			ConsumerComponents: resolveActorNames(strListField(element, "consumer_components"), componentIndex),
			DataSpecifications: strListField(element, "data_specifications"),
			ProtocolSpecs:      strListField(element, "protocol_specifications"),
			QualityAttributes:  strListField(element, "quality_attributes"),
		})
	}
	return interfaces
}

func (e *LogicalExtractor) extractScenarios(ctx context.Context, contextText string, components []arcadia.LogicalComponent, functions []arcadia.LogicalFunction, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.LogicalScenario {
	componentNames := make([]string, 0, 5)
	componentIndex := map[string]string{}
	for i, comp := range components {
		if i < 5 {
			componentNames = append(componentNames, comp.Name)
		}
		componentIndex[strings.ToLower(comp.Name)] = comp.ID
	}
	functionNames := make([]string, 0, 5)
	functionIndex := map[string]string{}
	for i, fn := range functions {
		if i < 5 {
			functionNames = append(functionNames, fn.Name)
		}
		functionIndex[strings.ToLower(fn.Name)] = fn.ID
	}

	prompt := fmt.Sprintf(`LOGICAL SCENARIO EXTRACTION - ARCADIA Methodology

Extract logical scenarios from this documentation.

CONTEXT: %s

KNOWN COMPONENTS: %s

KNOWN FUNCTIONS: %s

TASK: Extract component interaction scenarios with ordered sequences and data flows.

OUTPUT FORMAT (JSON):
{
  "scenarios": [
    {
      "name": "Scenario Name",
      "description": "Scenario description",
      "scenario_type": "interaction|data_flow|error_handling",
      "involved_components": ["component names"],
      "involved_functions": ["function names"],
      "interaction_sequence": [
        {"step": 1, "from": "source component", "to": "target component", "interaction": "what happens"}
      ],
      "data_flows": ["data flow description"],
      "performance_characteristics": ["characteristic"]
    }
  ]
}

Focus on scenarios realising operational scenarios at logical level.`,
		contextText, strings.Join(componentNames, ", "), strings.Join(functionNames, ", "))

	elements, status := e.generate(ctx, prompt, "scenarios")
	meta.SubExtractions["logical_scenarios"] = status

	var scenarios []arcadia.LogicalScenario
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}

		var sequence []arcadia.InteractionStep
		for i, stepObj := range objListField(element, "interaction_sequence") {
			interaction := strField(stepObj, "interaction")
			if interaction == "" {
				continue
			}
			sequence = append(sequence, arcadia.InteractionStep{
				Step:        intField(stepObj, "step", i+1),
				From:        strField(stepObj, "from"),
				To:          strField(stepObj, "to"),
				Interaction: interaction,
			})
		}

		scenarios = append(scenarios, arcadia.LogicalScenario{
			ID:                         ids.Next(arcadia.PhaseLogical, arcadia.KindScenario),
			Name:                       name,
			Description:                strField(element, "description"),
			ScenarioType:               strField(element, "scenario_type"),
			InvolvedComponents:         resolveActorNames(strListField(element, "involved_components"), componentIndex),
			InvolvedFunctions:          resolveActorNames(strListField(element, "involved_functions"), functionIndex),
			InteractionSequence:        sequence,
			DataFlows:                  strListField(element, "data_flows"),
			PerformanceCharacteristics: strListField(element, "performance_characteristics"),
		})
	}
	return scenarios
}
