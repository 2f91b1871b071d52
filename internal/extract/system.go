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

// SystemExtractor extracts the ARCADIA System Need Analysis phase:
// system actors, functions, capabilities, boundary and functional
// chains.
type SystemExtractor struct {
	base
}

// NewSystemExtractor creates a system analysis extractor.
func NewSystemExtractor(client llm.Client, model string) *SystemExtractor {
	return &SystemExtractor{base: base{client: client, model: model}}
}

// Extract runs the system sub-extractions in order: actors, functions
// (receives actors), capabilities (receives functions), boundary,
// functional chains (receives functions).
func (e *SystemExtractor) Extract(ctx context.Context, chunks []document.Chunk, proposalText string, operational *arcadia.OperationalOutput, sourceDocs []string) *arcadia.SystemOutput {
	timer := logging.StartTimer(logging.CategoryExtraction, "SystemExtractor.Extract")
	defer timer.StopWithInfo()

	start := time.Now()
	metadata := newMetadata(sourceDocs, start)
	ids := arcadia.NewIDGenerator()
	contextText := prepareContext(chunks)
	refs := chunkReferences(chunks)

	priorContext := ""
	if operational != nil {
		pairs := make([][2]string, 0, len(operational.Actors))
		for _, actor := range operational.Actors {
			pairs = append(pairs, [2]string{actor.Name, actor.Description})
		}
		priorContext = summarizeNames(maxPriorReferences, pairs...)
	}

	logging.Extraction("Starting system analysis extraction (%d chunks)", len(chunks))

	actors := e.extractActors(ctx, contextText, priorContext, refs, ids, &metadata)
	functions := e.extractFunctions(ctx, contextText, actors, ids, &metadata)
	capabilities := e.extractCapabilities(ctx, contextText, functions, operational, ids, &metadata)
	boundary := e.extractBoundary(ctx, contextText, truncate(proposalText, maxProposalChars), &metadata)
	chains := e.extractFunctionalChains(ctx, contextText, functions, ids, &metadata)

	metadata.ConfidenceScores["actors_confidence"] = extractionConfidence(len(actors), len(contextText))
	metadata.ConfidenceScores["functions_confidence"] = extractionConfidence(len(functions), len(contextText))
	metadata.ConfidenceScores["capabilities_confidence"] = extractionConfidence(len(capabilities), len(contextText))
	metadata.ConfidenceScores["chains_confidence"] = extractionConfidence(len(chains), len(contextText))
	metadata.ProcessingStats["actors_extracted"] = len(actors)
	metadata.ProcessingStats["functions_extracted"] = len(functions)
	metadata.ProcessingStats["capabilities_extracted"] = len(capabilities)
	metadata.ProcessingStats["chains_extracted"] = len(chains)
	metadata.ProcessingStats["processing_time_seconds"] = time.Since(start).Seconds()

	logging.Extraction("System analysis completed: %d actors, %d functions, %d capabilities, %d chains",
		len(actors), len(functions), len(capabilities), len(chains))

	return &arcadia.SystemOutput{
		Boundary:     boundary,
		Actors:       actors,
		Functions:    functions,
		Capabilities: capabilities,
		Chains:       chains,
		Metadata:     metadata,
	}
}

func (e *SystemExtractor) extractActors(ctx context.Context, contextText, priorContext string, refs []string, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.SystemActor {
	prompt := fmt.Sprintf(`SYSTEM ACTOR EXTRACTION - ARCADIA Methodology

Extract system-level actors from this technical documentation.

CONTEXT: %s

OPERATIONAL ACTORS: %s

TASK: Identify external systems, internal subsystems, and interface actors at system level.

OUTPUT FORMAT (JSON):
{
  "actors": [
    {
      "name": "Actor Name",
      "description": "Actor description",
      "actor_type": "external|internal|interface",
      "interfaces": [
        {"name": "interface name", "type": "data|control|service", "description": "what it exchanges"}
      ],
      "dependencies": ["dependency names"]
    }
  ]
}

Focus on actors that interact with the system boundary.`, contextText, priorContext)

	elements, status := e.generate(ctx, prompt, "actors")
	meta.SubExtractions["system_actors"] = status

	var actors []arcadia.SystemActor
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

		actors = append(actors, arcadia.SystemActor{
			ID:               ids.Next(arcadia.PhaseSystem, arcadia.KindActor),
			Name:             name,
			Description:      strField(element, "description"),
			ActorType:        arcadia.ParseActorType(strField(element, "actor_type")),
			Interfaces:       interfaces,
			Dependencies:     strListField(element, "dependencies"),
			SourceReferences: refs,
		})
	}
	logging.ExtractionDebug("Extracted %d system actors", len(actors))
	return actors
}

func (e *SystemExtractor) extractFunctions(ctx context.Context, contextText string, actors []arcadia.SystemActor, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.SystemFunction {
	actorNames := make([]string, 0, len(actors))
	actorPairs := make([][2]string, 0, len(actors))
	for i, actor := range actors {
		if i < 5 {
			actorNames = append(actorNames, actor.Name)
		}
		actorPairs = append(actorPairs, [2]string{actor.Name, actor.ID})
	}
	actorIndex := nameIndex(actorPairs...)

	prompt := fmt.Sprintf(`SYSTEM FUNCTION EXTRACTION - ARCADIA Methodology

Extract system functions from this documentation.

CONTEXT: %s

KNOWN SYSTEM ACTORS: %s

TASK: Extract system functions, their decomposition, actor allocations and functional exchanges.

OUTPUT FORMAT (JSON):
{
  "functions": [
    {
      "name": "Function Name",
      "description": "Function description",
      "function_type": "primary|secondary|support",
      "parent_function": "parent function name if any",
      "sub_functions": ["sub-function names"],
      "allocated_actors": ["actor names"],
      "functional_exchanges": [
        {"from": "source function", "to": "target function", "exchange_type": "data|energy|material", "description": "what flows"}
      ],
      "performance_requirements": ["requirement 1"]
    }
  ]
}

Focus on functions directly driven by operational need.`, contextText, strings.Join(actorNames, ", "))

	elements, status := e.generate(ctx, prompt, "functions")
	meta.SubExtractions["system_functions"] = status

	var functions []arcadia.SystemFunction
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}

		var exchanges []arcadia.FunctionalExchange
		for _, exObj := range objListField(element, "functional_exchanges") {
			from, to := strField(exObj, "from"), strField(exObj, "to")
			if from == "" || to == "" {
				continue
			}
			exchanges = append(exchanges, arcadia.FunctionalExchange{
				From:         from,
				To:           to,
				ExchangeType: arcadia.ParseExchangeType(strField(exObj, "exchange_type")),
				Description:  strField(exObj, "description"),
			})
		}

		functions = append(functions, arcadia.SystemFunction{
			ID:                      ids.Next(arcadia.PhaseSystem, arcadia.KindFunction),
			Name:                    name,
			Description:             strField(element, "description"),
			FunctionType:            arcadia.ParseFunctionType(strField(element, "function_type")),
			ParentFunction:          strField(element, "parent_function"),
			SubFunctions:            strListField(element, "sub_functions"),
			AllocatedActors:         resolveActorNames(strListField(element, "allocated_actors"), actorIndex),
			FunctionalExchanges:     exchanges,
			PerformanceRequirements: strListField(element, "performance_requirements"),
		})
	}
	logging.ExtractionDebug("Extracted %d system functions", len(functions))
	return functions
}

func (e *SystemExtractor) extractCapabilities(ctx context.Context, contextText string, functions []arcadia.SystemFunction, operational *arcadia.OperationalOutput, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.SystemCapability {
	functionNames := make([]string, 0, 5)
	functionPairs := make([][2]string, 0, len(functions))
	for i, fn := range functions {
		if i < 5 {
			functionNames = append(functionNames, fn.Name)
		}
		functionPairs = append(functionPairs, [2]string{fn.Name, fn.ID})
	}
	functionIndex := nameIndex(functionPairs...)

	opCapPairs := make([][2]string, 0)
	opCapIndex := map[string]string{}
	if operational != nil {
		for _, cap := range operational.Capabilities {
			opCapPairs = append(opCapPairs, [2]string{cap.Name, cap.Description})
			opCapIndex[strings.ToLower(cap.Name)] = cap.ID
		}
	}

	prompt := fmt.Sprintf(`SYSTEM CAPABILITY EXTRACTION - ARCADIA Methodology

Extract system capabilities from this documentation.

CONTEXT: %s

KNOWN SYSTEM FUNCTIONS: %s

OPERATIONAL CAPABILITIES: %s

TASK: Extract system capabilities, the operational capabilities they realize, and the functions implementing them.

OUTPUT FORMAT (JSON):
{
  "capabilities": [
    {
      "name": "Capability Name",
      "description": "Capability description",
      "realized_operational_capabilities": ["operational capability names"],
      "implementing_functions": ["function names"],
      "performance_requirements": ["requirement 1"]
    }
  ]
}

Focus on the system contribution to operational capabilities.`,
		contextText, strings.Join(functionNames, ", "), summarizeNames(maxPriorReferences, opCapPairs...))

	elements, status := e.generate(ctx, prompt, "capabilities")
	meta.SubExtractions["system_capabilities"] = status

	var capabilities []arcadia.SystemCapability
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}
		capabilities = append(capabilities, arcadia.SystemCapability{
			ID:                      ids.Next(arcadia.PhaseSystem, arcadia.KindCapability),
			Name:                    name,
			Description:             strField(element, "description"),
			RealizedCapabilities:    resolveActorNames(strListField(element, "realized_operational_capabilities"), opCapIndex),
			ImplementingFunctions:   resolveActorNames(strListField(element, "implementing_functions"), functionIndex),
			PerformanceRequirements: strListField(element, "performance_requirements"),
		})
	}
	return capabilities
}

func (e *SystemExtractor) extractBoundary(ctx context.Context, contextText, proposalText string, meta *arcadia.ExtractionMetadata) *arcadia.SystemBoundary {
	prompt := fmt.Sprintf(`SYSTEM BOUNDARY EXTRACTION - ARCADIA Methodology

Define the system boundary from this documentation.

CONTEXT: %s

PROPOSAL: %s

TASK: Define the system scope, included and excluded elements, external dependencies and environmental factors.

OUTPUT FORMAT (JSON):
{
  "scope_definition": "What the system encompasses",
  "included_elements": ["element 1"],
  "excluded_elements": ["element 1"],
  "external_dependencies": ["dependency 1"],
  "environmental_factors": ["factor 1"]
}

Respond with a single JSON object.`, contextText, proposalText)

	obj, status := e.generateObject(ctx, prompt)
	meta.SubExtractions["system_boundary"] = status
	if obj == nil {
		return nil
	}

	scope := strField(obj, "scope_definition")
	if scope == "" {
		return nil
	}
	return &arcadia.SystemBoundary{
		ScopeDefinition:      scope,
		IncludedElements:     strListField(obj, "included_elements"),
		ExcludedElements:     strListField(obj, "excluded_elements"),
		ExternalDependencies: strListField(obj, "external_dependencies"),
		EnvironmentalFactors: strListField(obj, "environmental_factors"),
	}
}

func (e *SystemExtractor) extractFunctionalChains(ctx context.Context, contextText string, functions []arcadia.SystemFunction, ids *arcadia.IDGenerator, meta *arcadia.ExtractionMetadata) []arcadia.FunctionalChain {
	functionNames := make([]string, 0, 5)
	functionPairs := make([][2]string, 0, len(functions))
	for i, fn := range functions {
		if i < 5 {
			functionNames = append(functionNames, fn.Name)
		}
		functionPairs = append(functionPairs, [2]string{fn.Name, fn.ID})
	}
	functionIndex := nameIndex(functionPairs...)

	prompt := fmt.Sprintf(`FUNCTIONAL CHAIN EXTRACTION - ARCADIA Methodology

Extract functional chains from this documentation.

CONTEXT: %s

KNOWN SYSTEM FUNCTIONS: %s

TASK: Extract end-to-end sequences of system functions realising operational scenarios.

OUTPUT FORMAT (JSON):
{
  "chains": [
    {
      "name": "Chain Name",
      "description": "Chain description",
      "scenario_context": "scenario this chain supports",
      "function_sequence": [
        {"step": 1, "function": "function name", "inputs": ["input 1"], "outputs": ["output 1"]}
      ],
      "alternative_paths": ["alternative description"],
      "validation_criteria": ["criterion 1"]
    }
  ]
}

Each step must reference a known system function by name.`, contextText, strings.Join(functionNames, ", "))

	elements, status := e.generate(ctx, prompt, "chains")
	meta.SubExtractions["functional_chains"] = status

	var chains []arcadia.FunctionalChain
	for _, element := range elements {
		name := strField(element, "name")
		if name == "" {
			continue
		}

		// Steps reference function ids declared in this analysis;
		// unresolvable steps are dropped.
		var sequence []arcadia.ChainStep
		for i, stepObj := range objListField(element, "function_sequence") {
			fnName := strings.ToLower(strField(stepObj, "function"))
			fnID, ok := functionIndex[fnName]
			if !ok {
				continue
			}
			sequence = append(sequence, arcadia.ChainStep{
				Step:       intField(stepObj, "step", i+1),
				FunctionID: fnID,
				Inputs:     strListField(stepObj, "inputs"),
				Outputs:    strListField(stepObj, "outputs"),
			})
		}
		if len(sequence) == 0 {
			continue
		}

		chains = append(chains, arcadia.FunctionalChain{
			ID:                 ids.Next(arcadia.PhaseSystem, arcadia.KindChain),
			Name:               name,
			Description:        strField(element, "description"),
			ScenarioContext:    strField(element, "scenario_context"),
			FunctionSequence:   sequence,
			AlternativePaths:   strListField(element, "alternative_paths"),
			ValidationCriteria: strListField(element, "validation_criteria"),
		})
	}
	return chains
}
