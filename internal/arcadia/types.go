package arcadia

import "time"

// =============================================================================
// OPERATIONAL ANALYSIS ELEMENTS
// =============================================================================

// OperationalActor is a stakeholder, user or organisational entity
// participating in operational interactions.
type OperationalActor struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	RoleDefinition   string   `json:"role_definition"`
	Responsibilities []string `json:"responsibilities"`
	Capabilities     []string `json:"capabilities"`
	SourceReferences []string `json:"source_references"`
}

// OperationalEntity is an organisational or geographical node in the
// operational context.
type OperationalEntity struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	EntityType  string   `json:"entity_type"` // system|organization|resource|other
	SubEntities []string `json:"sub_entities,omitempty"`
}

// OperationalCapability is a named operational ability linked to
// mission objectives.
type OperationalCapability struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Description            string   `json:"description"`
	MissionStatement       string   `json:"mission_statement"`
	InvolvedActors         []string `json:"involved_actors"` // actor ids
	PerformanceConstraints []string `json:"performance_constraints"`
	SourceReferences       []string `json:"source_references,omitempty"`
}

// ScenarioStep is one step in an activity sequence.
type ScenarioStep struct {
	Step     int    `json:"step"`
	Activity string `json:"activity"`
	Actor    string `json:"actor,omitempty"`
}

// OperationalScenario is an orchestration of operational activities for
// a given situation.
type OperationalScenario struct {
	ID                      string         `json:"id"`
	Name                    string         `json:"name"`
	Description             string         `json:"description"`
	ScenarioType            string         `json:"scenario_type"` // use_case|mission_scenario|workflow
	InvolvedActors          []string       `json:"involved_actors,omitempty"`
	ActivitySequence        []ScenarioStep `json:"activity_sequence,omitempty"`
	EnvironmentalConditions []string       `json:"environmental_conditions,omitempty"`
	PerformanceConstraints  []string       `json:"performance_constraints,omitempty"`
}

// ProcessActivity is one activity in an operational process chain.
type ProcessActivity struct {
	Activity    string   `json:"activity"`
	Description string   `json:"description,omitempty"`
	Triggers    []string `json:"triggers,omitempty"`
}

// OperationalProcess is a sequence of operational activities.
type OperationalProcess struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	ActivityChain []ProcessActivity `json:"activity_chain,omitempty"`
}

// OperationalOutput aggregates the operational analysis phase result.
type OperationalOutput struct {
	Actors       []OperationalActor      `json:"actors"`
	Entities     []OperationalEntity     `json:"entities"`
	Capabilities []OperationalCapability `json:"capabilities"`
	Scenarios    []OperationalScenario   `json:"scenarios"`
	Processes    []OperationalProcess    `json:"processes"`
	Metadata     ExtractionMetadata      `json:"extraction_metadata"`
}

// =============================================================================
// SYSTEM ANALYSIS ELEMENTS
// =============================================================================

// ActorType classifies a system actor.
type ActorType string

const (
	ActorExternal  ActorType = "external"
	ActorInternal  ActorType = "internal"
	ActorInterface ActorType = "interface"
)

// ParseActorType maps a raw LLM string to an ActorType; unknown values
// default to external.
func ParseActorType(s string) ActorType {
	switch ActorType(s) {
	case ActorExternal, ActorInternal, ActorInterface:
		return ActorType(s)
	}
	return ActorExternal
}

// InterfaceSpec describes an actor interface.
type InterfaceSpec struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// SystemActor is an actor at system level.
type SystemActor struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	ActorType        ActorType       `json:"actor_type"`
	Interfaces       []InterfaceSpec `json:"interfaces,omitempty"`
	Dependencies     []string        `json:"dependencies,omitempty"`
	SourceReferences []string        `json:"source_references,omitempty"`
}

// FunctionType classifies a system function.
type FunctionType string

const (
	FunctionPrimary   FunctionType = "primary"
	FunctionSecondary FunctionType = "secondary"
	FunctionSupport   FunctionType = "support"
)

// ParseFunctionType maps a raw LLM string to a FunctionType; unknown
// values default to primary.
func ParseFunctionType(s string) FunctionType {
	switch FunctionType(s) {
	case FunctionPrimary, FunctionSecondary, FunctionSupport:
		return FunctionType(s)
	}
	return FunctionPrimary
}

// ExchangeType classifies a functional exchange.
type ExchangeType string

const (
	ExchangeData     ExchangeType = "data"
	ExchangeEnergy   ExchangeType = "energy"
	ExchangeMaterial ExchangeType = "material"
)

// ParseExchangeType maps a raw LLM string to an ExchangeType; unknown
// values default to data.
func ParseExchangeType(s string) ExchangeType {
	switch ExchangeType(s) {
	case ExchangeData, ExchangeEnergy, ExchangeMaterial:
		return ExchangeType(s)
	}
	return ExchangeData
}

// FunctionalExchange is a flow between two functions.
type FunctionalExchange struct {
	From         string       `json:"from"`
	To           string       `json:"to"`
	ExchangeType ExchangeType `json:"exchange_type"`
	Description  string       `json:"description,omitempty"`
}

// SystemFunction is a function directly driven by operational need.
type SystemFunction struct {
	ID                      string               `json:"id"`
	Name                    string               `json:"name"`
	Description             string               `json:"description"`
	FunctionType            FunctionType         `json:"function_type"`
	ParentFunction          string               `json:"parent_function,omitempty"`
	SubFunctions            []string             `json:"sub_functions,omitempty"`
	AllocatedActors         []string             `json:"allocated_actors,omitempty"` // system actor ids
	FunctionalExchanges     []FunctionalExchange `json:"functional_exchanges,omitempty"`
	PerformanceRequirements []string             `json:"performance_requirements,omitempty"`
}

// SystemCapability is the system contribution to operational capabilities.
type SystemCapability struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	Description             string   `json:"description"`
	RealizedCapabilities    []string `json:"realized_operational_capabilities,omitempty"`
	ImplementingFunctions   []string `json:"implementing_functions,omitempty"`
	PerformanceRequirements []string `json:"performance_requirements,omitempty"`
}

// SystemBoundary delimits the system scope.
type SystemBoundary struct {
	ScopeDefinition      string   `json:"scope_definition"`
	IncludedElements     []string `json:"included_elements,omitempty"`
	ExcludedElements     []string `json:"excluded_elements,omitempty"`
	ExternalDependencies []string `json:"external_dependencies,omitempty"`
	EnvironmentalFactors []string `json:"environmental_factors,omitempty"`
}

// ChainStep is one ordered step in a functional chain. Each step
// references a function id declared in the same analysis.
type ChainStep struct {
	Step       int      `json:"step"`
	FunctionID string   `json:"function_id"`
	Inputs     []string `json:"inputs,omitempty"`
	Outputs    []string `json:"outputs,omitempty"`
}

// FunctionalChain is an ordered sequence of functions realising an
// end-to-end scenario.
type FunctionalChain struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	ScenarioContext    string      `json:"scenario_context,omitempty"`
	FunctionSequence   []ChainStep `json:"function_sequence"`
	AlternativePaths   []string    `json:"alternative_paths,omitempty"`
	ValidationCriteria []string    `json:"validation_criteria,omitempty"`
}

// SystemOutput aggregates the system analysis phase result.
type SystemOutput struct {
	Boundary     *SystemBoundary    `json:"boundary,omitempty"`
	Actors       []SystemActor      `json:"actors"`
	Functions    []SystemFunction   `json:"functions"`
	Capabilities []SystemCapability `json:"capabilities"`
	Chains       []FunctionalChain  `json:"functional_chains"`
	Metadata     ExtractionMetadata `json:"extraction_metadata"`
}

// =============================================================================
// LOGICAL ARCHITECTURE ELEMENTS
// =============================================================================

// ComponentType classifies a logical component.
type ComponentType string

const (
	ComponentSubsystem ComponentType = "subsystem"
	ComponentModule    ComponentType = "module"
	ComponentService   ComponentType = "service"
)

// ParseComponentType maps a raw LLM string to a ComponentType; unknown
// values default to subsystem.
func ParseComponentType(s string) ComponentType {
	switch ComponentType(s) {
	case ComponentSubsystem, ComponentModule, ComponentService:
		return ComponentType(s)
	}
	return ComponentSubsystem
}

// LogicalComponent is a coarse-grained breakdown element of the
// solution.
type LogicalComponent struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	ComponentType      ComponentType `json:"component_type"`
	Responsibilities   []string      `json:"responsibilities,omitempty"`
	ParentComponent    string        `json:"parent_component,omitempty"`
	SubComponents      []string      `json:"sub_components,omitempty"`
	Interfaces         []string      `json:"interfaces,omitempty"` // interface ids
	AllocatedFunctions []string      `json:"allocated_functions,omitempty"`
}

// LogicalFunction is a function allocated to logical components.
type LogicalFunction struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	ParentSystemFunction string  `json:"parent_system_function,omitempty"`
	SubFunctions        []string `json:"sub_functions,omitempty"`
	InputInterfaces     []string `json:"input_interfaces,omitempty"`
	OutputInterfaces    []string `json:"output_interfaces,omitempty"`
	BehavioralSpecs     []string `json:"behavioral_specs,omitempty"`
	AllocatedComponents []string `json:"allocated_components,omitempty"`
}

// InterfaceType classifies a logical interface.
type InterfaceType string

const (
	InterfaceData     InterfaceType = "data"
	InterfaceControl  InterfaceType = "control"
	InterfaceUser     InterfaceType = "user"
	InterfaceExternal InterfaceType = "external"
	InterfaceService  InterfaceType = "service"
	InterfaceAPI      InterfaceType = "api"
)

// ParseInterfaceType maps a raw LLM string to an InterfaceType; unknown
// values default to data.
func ParseInterfaceType(s string) InterfaceType {
	switch InterfaceType(s) {
	case InterfaceData, InterfaceControl, InterfaceUser, InterfaceExternal, InterfaceService, InterfaceAPI:
		return InterfaceType(s)
	}
	return InterfaceData
}

// LogicalInterface connects logical components.
type LogicalInterface struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	InterfaceType       InterfaceType `json:"interface_type"`
	ProviderComponent   string        `json:"provider_component,omitempty"`
	ConsumerComponents  []string      `json:"consumer_components,omitempty"`
	DataSpecifications  []string      `json:"data_specifications,omitempty"`
	ProtocolSpecs       []string      `json:"protocol_specifications,omitempty"`
	QualityAttributes   []string      `json:"quality_attributes,omitempty"`
	SupportedInterfaces []string      `json:"supported_system_interfaces,omitempty"`
}

// InteractionStep is an ordered step in a scenario interaction sequence.
type InteractionStep struct {
	Step        int    `json:"step"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Interaction string `json:"interaction"`
}

// LogicalScenario describes component/function interactions realising
// operational scenarios.
type LogicalScenario struct {
	ID                      string            `json:"id"`
	Name                    string            `json:"name"`
	Description             string            `json:"description"`
	ScenarioType            string            `json:"scenario_type"`
	InvolvedComponents      []string          `json:"involved_components,omitempty"`
	InvolvedFunctions       []string          `json:"involved_functions,omitempty"`
	InteractionSequence     []InteractionStep `json:"interaction_sequence,omitempty"`
	DataFlows               []string          `json:"data_flows,omitempty"`
	PerformanceCharacteristics []string       `json:"performance_characteristics,omitempty"`
	RealizedScenarios       []string          `json:"realized_operational_scenarios,omitempty"`
}

// LogicalOutput aggregates the logical architecture phase result.
type LogicalOutput struct {
	Components []LogicalComponent `json:"components"`
	Functions  []LogicalFunction  `json:"functions"`
	Interfaces []LogicalInterface `json:"interfaces"`
	Scenarios  []LogicalScenario  `json:"scenarios"`
	Metadata   ExtractionMetadata `json:"extraction_metadata"`
}

// =============================================================================
// PHYSICAL ARCHITECTURE ELEMENTS
// =============================================================================

// PhysicalComponentType classifies a physical component.
type PhysicalComponentType string

const (
	PhysicalHardware PhysicalComponentType = "hardware"
	PhysicalSoftware PhysicalComponentType = "software"
	PhysicalHybrid   PhysicalComponentType = "hybrid"
)

// ParsePhysicalComponentType maps a raw LLM string; unknown values
// default to software.
func ParsePhysicalComponentType(s string) PhysicalComponentType {
	switch PhysicalComponentType(s) {
	case PhysicalHardware, PhysicalSoftware, PhysicalHybrid:
		return PhysicalComponentType(s)
	}
	return PhysicalSoftware
}

// PhysicalComponent is an implementation-level component.
type PhysicalComponent struct {
	ID                    string                `json:"id"`
	Name                  string                `json:"name"`
	Description           string                `json:"description"`
	ComponentType         PhysicalComponentType `json:"component_type"`
	TechnologyPlatform    string                `json:"technology_platform,omitempty"`
	ImplementedComponents []string              `json:"implementing_logical_components,omitempty"`
	Interfaces            []InterfaceSpec       `json:"interfaces,omitempty"`
	DeploymentConfig      string                `json:"deployment_configuration,omitempty"`
	ResourceRequirements  []string              `json:"resource_requirements,omitempty"`
}

// ConstraintType classifies an implementation constraint.
type ConstraintType string

const (
	ConstraintTechnology    ConstraintType = "technology"
	ConstraintPerformance   ConstraintType = "performance"
	ConstraintEnvironmental ConstraintType = "environmental"
	ConstraintSafety        ConstraintType = "safety"
	ConstraintSecurity      ConstraintType = "security"
	ConstraintRegulatory    ConstraintType = "regulatory"
)

// ParseConstraintType maps a raw LLM string; unknown values default to
// technology.
func ParseConstraintType(s string) ConstraintType {
	switch ConstraintType(s) {
	case ConstraintTechnology, ConstraintPerformance, ConstraintEnvironmental,
		ConstraintSafety, ConstraintSecurity, ConstraintRegulatory:
		return ConstraintType(s)
	}
	return ConstraintTechnology
}

// ImplementationConstraint restricts physical design choices.
type ImplementationConstraint struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	ConstraintType     ConstraintType `json:"constraint_type"`
	AffectedComponents []string       `json:"affected_components,omitempty"`
	Specifications     []string       `json:"specifications,omitempty"`
	ValidationCriteria []string       `json:"validation_criteria,omitempty"`
}

// PhysicalFunction is the physical realisation of a logical function.
type PhysicalFunction struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	ParentLogicalFunction string `json:"parent_logical_function,omitempty"`
	TechnologySpecifics []string `json:"technology_specifics,omitempty"`
	AllocatedComponents []string `json:"allocated_components,omitempty"`
}

// PhysicalScenario describes deployment-level interaction sequences.
type PhysicalScenario struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Description         string            `json:"description"`
	ScenarioType        string            `json:"scenario_type"`
	InvolvedComponents  []string          `json:"involved_components,omitempty"`
	InteractionSequence []InteractionStep `json:"interaction_sequence,omitempty"`
	TechnologyContext   []string          `json:"technology_context,omitempty"`
	RealizedScenarios   []string          `json:"realized_logical_scenarios,omitempty"`
}

// PhysicalOutput aggregates the physical architecture phase result.
type PhysicalOutput struct {
	Components  []PhysicalComponent        `json:"components"`
	Constraints []ImplementationConstraint `json:"constraints"`
	Functions   []PhysicalFunction         `json:"functions"`
	Scenarios   []PhysicalScenario         `json:"scenarios"`
	Metadata    ExtractionMetadata         `json:"extraction_metadata"`
}

// =============================================================================
// CROSS-PHASE ELEMENTS
// =============================================================================

// RelationshipType classifies a traceability link.
type RelationshipType string

const (
	RelationRealizes           RelationshipType = "realizes"
	RelationImplements         RelationshipType = "implements"
	RelationDecomposesTo       RelationshipType = "decomposes_to"
	RelationAllocatedTo        RelationshipType = "allocated_to"
	RelationImplementedBy      RelationshipType = "implemented_by"
	RelationRealizedBy         RelationshipType = "realized_by"
	RelationImplementedThrough RelationshipType = "implemented_through"
	RelationEnables            RelationshipType = "enables"
)

// ValidationStatus tracks verification of a traceability link.
type ValidationStatus string

const (
	StatusUnverified         ValidationStatus = "unverified"
	StatusRequiresValidation ValidationStatus = "requires_validation"
	StatusVerified           ValidationStatus = "verified"
)

// TraceabilityLink is a typed, directed relationship between elements
// in different phases.
type TraceabilityLink struct {
	ID               string           `json:"id"`
	SourceElement    string           `json:"source_element"`
	TargetElement    string           `json:"target_element"`
	SourcePhase      Phase            `json:"source_phase"`
	TargetPhase      Phase            `json:"target_phase"`
	RelationshipType RelationshipType `json:"relationship_type"`
	ConfidenceScore  float64          `json:"confidence_score"`
	ValidationStatus ValidationStatus `json:"validation_status"`
}

// GapType classifies a gap analysis item.
type GapType string

const (
	GapMissing      GapType = "missing"
	GapInconsistent GapType = "inconsistent"
	GapRedundant    GapType = "redundant"
)

// GapSeverity grades a gap.
type GapSeverity string

const (
	SeverityMinor    GapSeverity = "minor"
	SeverityMedium   GapSeverity = "medium"
	SeverityMajor    GapSeverity = "major"
	SeverityCritical GapSeverity = "critical"
)

// GapAnalysisItem is an identified absence, inconsistency or redundancy.
type GapAnalysisItem struct {
	ID              string      `json:"id"`
	GapType         GapType     `json:"gap_type"`
	Phase           Phase       `json:"phase"`
	Description     string      `json:"description"`
	Severity        GapSeverity `json:"severity"`
	Recommendations []string    `json:"recommendations,omitempty"`
}

// CheckStatus is the outcome of a consistency check.
type CheckStatus string

const (
	CheckPassed  CheckStatus = "passed"
	CheckWarning CheckStatus = "warning"
	CheckFailed  CheckStatus = "failed"
)

// ConsistencyCheck records an architecture consistency verification.
type ConsistencyCheck struct {
	ID             string      `json:"id"`
	CheckType      string      `json:"check_type"`
	PhasesInvolved []Phase     `json:"phases_involved"`
	Status         CheckStatus `json:"status"`
	Description    string      `json:"description"`
	IssuesFound    []string    `json:"issues_found,omitempty"`
	Recommendations []string   `json:"recommendations,omitempty"`
}

// QualityMetric scores one aspect of the analysis.
type QualityMetric struct {
	ID                string                 `json:"id"`
	MetricName        string                 `json:"metric_name"`
	MetricType        string                 `json:"metric_type"`
	Phase             Phase                  `json:"phase"`
	Score             float64                `json:"score"`
	MaxScore          float64                `json:"max_score"`
	Criteria          []string               `json:"criteria,omitempty"`
	AssessmentDetails map[string]interface{} `json:"assessment_details,omitempty"`
}

// PhaseCoverage captures coverage between an ordered phase pair.
type PhaseCoverage struct {
	ActorCoverage      float64 `json:"actor_coverage"`
	CapabilityCoverage float64 `json:"capability_coverage"`
}

// CrossPhaseOutput aggregates the cross-phase analysis result.
type CrossPhaseOutput struct {
	TraceabilityLinks []TraceabilityLink       `json:"traceability_links"`
	GapAnalysis       []GapAnalysisItem        `json:"gap_analysis"`
	ConsistencyChecks []ConsistencyCheck       `json:"consistency_checks"`
	QualityMetrics    []QualityMetric          `json:"quality_metrics"`
	CoverageMatrix    map[string]PhaseCoverage `json:"coverage_matrix"`
	ImpactAnalysis    map[string][]string      `json:"impact_analysis"`
	Metadata          ExtractionMetadata       `json:"extraction_metadata"`
}

// =============================================================================
// EXTRACTION METADATA
// =============================================================================

// SubExtractionStatus records the outcome of one LLM sub-extraction so
// downstream components can detect partial failure rather than infer it
// from result size.
type SubExtractionStatus string

const (
	SubExtractionOK        SubExtractionStatus = "ok"
	SubExtractionEmpty     SubExtractionStatus = "empty"
	SubExtractionTransport SubExtractionStatus = "transport_error"
	SubExtractionMalformed SubExtractionStatus = "malformed_output"
	SubExtractionSkipped   SubExtractionStatus = "skipped"
)

// ExtractionMetadata carries provenance and confidence for a phase output.
type ExtractionMetadata struct {
	SourceDocuments   []string                       `json:"source_documents"`
	StartTime         time.Time                      `json:"start_time"`
	ConfidenceScores  map[string]float64             `json:"confidence_scores,omitempty"`
	ProcessingStats   map[string]interface{}         `json:"processing_statistics,omitempty"`
	SubExtractions    map[string]SubExtractionStatus `json:"sub_extraction_status,omitempty"`
}

// StructuredOutput is the composite ARCADIA analysis result. Phase
// outputs are produced in order and never mutated after creation;
// absent phases are nil.
type StructuredOutput struct {
	Operational *OperationalOutput     `json:"operational_analysis,omitempty"`
	System      *SystemOutput          `json:"system_analysis,omitempty"`
	Logical     *LogicalOutput         `json:"logical_architecture,omitempty"`
	Physical    *PhysicalOutput        `json:"physical_architecture,omitempty"`
	CrossPhase  *CrossPhaseOutput      `json:"cross_phase_analysis,omitempty"`
	Metadata    map[string]interface{} `json:"generation_metadata"`
}
