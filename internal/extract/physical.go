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

// PhysicalExtractor extracts the ARCADIA Physical Architecture phase:
// components, implementation constraints, functions and scenarios.
type PhysicalExtractor struct {
	base
}

// NewPhysicalExtractor creates a physical architecture extractor.
func NewPhysicalExtractor(client llm.Client, model string) *PhysicalExtractor {
	return &PhysicalExtractor{base: base{client: client, model: model}}
}

// Extract runs the physical sub-extractions in order: components,
// implementation constraints (receives components), functions
// (receives components), scenarios (receives components).
func (e *PhysicalExtractor) Extract(ctx context.Context, chunks []document.Chunk, proposalText string, operational *arcadia.OperationalOutput, system *arcadia.SystemOutput, logical *arcadia.LogicalOutput, sourceDocs []string) *arcadia.PhysicalOutput {
	timer := logging.StartTimer(logging.CategoryExtraction, "PhysicalExtractor.Extract")
	defer timer.StopWithInfo()

	start := time.Now()
	metadata := newMetadata(sourceDocs, start)
	ids := arcadia.NewIDGenerator()
	contextText := prepareContext(chunks)

	priorContext := e.priorPhaseContext(operational, system, logical)

	logging.Extraction("Starting physical architecture extraction (%d chunks)", len(chunks))

	components := e.extractComponents(ctx, contextText, priorContext, logical, ids, &metadata)
	constraints := e.extractConstraints(ctx, contextText, components, ids, &metadata)
	functions := e.extractFunctions(ctx, contextText, components, logical, ids, &metadata)
	scenarios := e.extractScenarios(ctx, contextText, components, ids, &metadata)

	metadata.ConfidenceScores["components_confidence"] = extractionConfidence(len(components), len(contextText))
	metadata.ConfidenceScores["constraints_confidence"] = extractionConfidence(len(constraints), len(contextText))
	metadata.ConfidenceScores["functions_confidence"] = extractionConfidence(len(functions), len(contextText))
	metadata.ConfidenceScores["scenarios_confidence"] = extractionConfidence(len(scenarios), len(contextText))
	metadata.ProcessingStats["components_extracted"] = len(components)
	metadata.ProcessingStats["constraints_extracted"] = len(constraints)
	metadata.ProcessingStats["functions_extracted"] = len(functions)
	metadata.ProcessingStats["scenarios_extracted"] = len(scenarios)
	metadata.ProcessingStats["processing_time_seconds"] = time.Since(start).Seconds()

	logging.Extraction("Physical architecture completed: %d components, %d constraints, %d functions, %d scenarios",
		len(components), len(constraints), len(functions), len(scenarios))

	return &arcadia.PhysicalOutput{
		Components:  components,
		Constraints: constraints,
		Functions:   functions,
		Scenarios:   scenarios,
		Metadata:    metadata,
	}
}

// priorPhaseContext summarises operational capabilities, system
// functions and logical components/functions for the prompts.
func (e *PhysicalExtractor) priorPhaseContext(operational *arcadia.OperationalOutput, system *arcadia.SystemOutput, logical *arcadia.LogicalOutput) string {
	var parts []string
	if operational != nil {
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
	}
	if logical != nil {
		compPairs := make([][2]string, 0, len(logical.Components))
		for _, comp := range logical.Components {
			compPairs = append(compPairs, [2]string{comp.Name, comp.Description})
		}
		if s := summarizeNames(maxPriorReferences, compPairs...); s != "" {
			parts = append(parts, "Logical components: "+s)
		}
		fnPairs := make([][2]string, 0, len(logical.Functions))
		for _, fn := range logical.Functions {
			fnPairs = append(fnPairs, [2]string{fn.Name, fn.Description})
		}
		if s := summarizeNames(maxPriorReferences, fnPairs...); s != "" {
			parts = append(parts, "Logical functions: "+s)
		}
	}
	return strings.Join(parts, "\n")
}

func (e *PhysicalExtractor) extractComponents(ctx context.Context, contextText, priorContext string, logical *arcadia.LogicalOutput, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.PhysicalComponent {
	logicalIndex := map[string]string{}
	if logical != nil {
		for _, comp := range logical.Components {
			logicalIndex[strings.ToLower(comp.Name)] = comp.ID
		}
	}

	prompt := fmt.Sprintf(`PHYSICAL COMPONENT EXTRACTION - ARCADIA Methodology

Extract physical components from this documentation.

CONTEXT: %s

PRIOR PHASE ELEMENTS:
%s

TASK: Extract implementation-level components with technology platforms and deployment configuration.

OUTPUT FORMAT (JSON):
{
  "components": [
    {
      "name": "Component Name",
      "description": "Component description",
      "component_type": "hardware|software|hybrid",
      "technology_platform": "platform or stack",
      "implementing_logical_components": ["logical component names"],
      "interfaces": [
        {"name": "interface name", "type": "physical|network|api", "description": "what it connects"}
      ],
      "deployment_configuration": "where and how it is deployed",
      "resource_requirements": ["requirement 1"]
    }
  ]
}

Focus on components that realise the logical architecture.`, contextText, priorContext)

	elements, status := e.generate(ctx, prompt, "components")
	meta.SubExtractions["physical_components"] = status

	var components []arcadia.PhysicalComponent
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}

		var interfaces []arcadia.InterfaceSpec
		for _, intfObj := range objListField(element, "interfaces") {
			intfName := strField(intfObj, "name")
			if intfName == "" {
				continue
			}
			interfaces = append(interfaces, arcadia.InterfaceSpec{
				Name:        intfName,
				Type:        strField(intfObj, "type"),
				Description: strField(intfObj, "description"),
			})
		}

		components = append(components, arcadia.PhysicalComponent{
			ID:                    ids.Next(arcadia.PhasePhysical, arcadia.KindComponent),
			Name:                  name,
			Description:           strField(element, "description"),
			ComponentType:         arcadia.ParsePhysicalComponentType(strField(element, "component_type")),
			TechnologyPlatform:    strField(element, "technology_platform"),
			ImplementedComponents: resolveActorNames(strListField(element, "implementing_logical_components"), logicalIndex),
			Interfaces:            interfaces,
			DeploymentConfig:      strField(element, "deployment_configuration"),
			ResourceRequirements:  strListField(element, "resource_requirements"),
		})
	}
	logging.ExtractionDebug("Extracted %d physical components", len(components))
	return components
}

func (e *PhysicalExtractor) extractConstraints(ctx context.Context, contextText string, components []arcadia.PhysicalComponent, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.ImplementationConstraint {
	componentNames := make([]string, 0, 5)
	componentPairs := make([][2]string, 0, len(components))
	for i, comp := range components {
		if i < 5 {
			componentNames = append(componentNames, comp.Name)
		}
		componentPairs = append(componentPairs, [2]string{comp.Name, comp.ID})
	}
	componentIndex := nameIndex(componentPairs...)

	prompt := fmt.Sprintf(`IMPLEMENTATION CONSTRAINT EXTRACTION - ARCADIA Methodology

Extract implementation constraints from this documentation.

CONTEXT: %s

KNOWN PHYSICAL COMPONENTS: %s

TASK: Extract constraints limiting the physical design: technology, performance, environmental, safety, security, regulatory.

OUTPUT FORMAT (JSON):
{
  "constraints": [
    {
      "name": "Constraint Name",
      "description": "Constraint description",
      "constraint_type": "technology|performance|environmental|safety|security|regulatory",
      "affected_components": ["component names"],
      "specifications": ["specification"],
      "validation_criteria": ["criterion"]
    }
  ]
}

Focus on constraints that shape implementation choices.`, contextText, strings.Join(componentNames, ", "))

	elements, status := e.generate(ctx, prompt, "constraints")
	meta.SubExtractions["implementation_constraints"] = status

	var constraints []arcadia.ImplementationConstraint
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}
		constraints = append(constraints, arcadia.ImplementationConstraint{
			ID:                 ids.Next(arcadia.PhasePhysical, arcadia.KindConstraint),
			Name:               name,
			Description:        strField(element, "description"),
			ConstraintType:     arcadia.ParseConstraintType(strField(element, "constraint_type")),
			AffectedComponents: resolveActorNames(strListField(element, "affected_components"), componentIndex),
			Specifications:     strListField(element, "specifications"),
			ValidationCriteria: strListField(element, "validation_criteria"),
		})
	}
	return constraints
}

func (e *PhysicalExtractor) extractFunctions(ctx context.Context, contextText string, components []arcadia.PhysicalComponent, logical *arcadia.LogicalOutput, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.PhysicalFunction {
	componentNames := make([]string, 0, 5)
	componentPairs := make([][2]string, 0, len(components))
	for i, comp := range components {
		if i < 5 {
			componentNames = append(componentNames, comp.Name)
		}
		componentPairs = append(componentPairs, [2]string{comp.Name, comp.ID})
	}
	componentIndex := nameIndex(componentPairs...)

	logicalFnIndex := map[string]string{}
	if logical != nil {
		for _, fn := range logical.Functions {
			logicalFnIndex[strings.ToLower(fn.Name)] = fn.ID
		}
	}

	prompt := fmt.Sprintf(`PHYSICAL FUNCTION EXTRACTION - ARCADIA Methodology

Extract physical functions from this documentation.

CONTEXT: %s

KNOWN PHYSICAL COMPONENTS: %s

TASK: Extract functions realised on physical components with their technology specifics.

OUTPUT FORMAT (JSON):
{
  "functions": [
    {
      "name": "Function Name",
      "description": "Function description",
      "parent_logical_function": "logical function name if refined from one",
      "technology_specifics": ["technology detail"],
      "allocated_components": ["component names"]
    }
  ]
}

Focus on functions carried by the physical architecture.`, contextText, strings.Join(componentNames, ", "))

	elements, status := e.generate(ctx, prompt, "functions")
	meta.SubExtractions["physical_functions"] = status

	var functions []arcadia.PhysicalFunction
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}
		parent := ""
		if id, ok := logicalFnIndex[strings.ToLower(strField(element, "parent_logical_function"))]; ok {
			parent = id
		}
		functions = append(functions, arcadia.PhysicalFunction{
			ID:                    ids.Next(arcadia.PhasePhysical, arcadia.KindFunction),
			Name:                  name,
			Description:           strField(element, "description"),
			ParentLogicalFunction: parent,
			TechnologySpecifics:   strListField(element, "technology_specifics"),
			AllocatedComponents:   resolveActorNames(strListField(element, "allocated_components"), componentIndex),
		})
	}
	return functions
}

func (e *PhysicalExtractor) extractScenarios(ctx context.Context, contextText string, components []arcadia.PhysicalComponent, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.PhysicalScenario {
	componentNames := make([]string, 0, 5)
	componentPairs := make([][2]string, 0, len(components))
	for i, comp := range components {
		if i < 5 {
			componentNames = append(componentNames, comp.Name)
		}
		componentPairs = append(componentPairs, [2]string{comp.Name, comp.ID})
	}
	componentIndex := nameIndex(componentPairs...)

	prompt := fmt.Sprintf(`PHYSICAL SCENARIO EXTRACTION - ARCADIA Methodology

Extract physical scenarios from this documentation.

CONTEXT: %s

KNOWN PHYSICAL COMPONENTS: %s

TASK: Extract deployment-level interaction scenarios with technology context.

OUTPUT FORMAT (JSON):
{
  "scenarios": [
    {
      "name": "Scenario Name",
      "description": "Scenario description",
      "scenario_type": "deployment|operation|failure",
      "involved_components": ["component names"],
      "interaction_sequence": [
        {"step": 1, "from": "source component", "to": "target component", "interaction": "what happens"}
      ],
      "technology_context": ["technology detail"]
    }
  ]
}

Focus on scenarios exercising the physical architecture.`, contextText, strings.Join(componentNames, ", "))

	elements, status := e.generate(ctx, prompt, "scenarios")
	meta.SubExtractions["physical_scenarios"] = status

	var scenarios []arcadia.PhysicalScenario
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

		scenarios = append(scenarios, arcadia.PhysicalScenario{
			ID:                  ids.Next(arcadia.PhasePhysical, arcadia.KindScenario),
			Name:                name,
			Description:         strField(element, "description"),
			ScenarioType:        strField(element, "scenario_type"),
			InvolvedComponents:  resolveActorNames(strListField(element, "involved_components"), componentIndex),
			InteractionSequence: sequence,
			TechnologyContext:   strListField(element, "technology_context"),
		})
	}
	return scenarios
}
