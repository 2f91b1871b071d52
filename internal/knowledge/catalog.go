package knowledge

import "arise/internal/arcadia"

// CatalogCapability is a pre-authored operational capability in the
// ARCADIA knowledge base.
type CatalogCapability struct {
	ID                 string
	Name               string
	Description        string
	Phase              arcadia.Phase
	Actors             []string
	Scenarios          []string
	Functions          []string
	RequirementsImpact []string
	Criticality        string // HIGH, MEDIUM, LOW
}

// CatalogActor is a pre-authored actor in the ARCADIA knowledge base.
type CatalogActor struct {
	ID               string
	Name             string
	Type             string // HUMAN, SYSTEM, EXTERNAL
	Description      string
	Responsibilities []string
	Interactions     []string
	Capabilities     []string
	PhaseInvolvement []arcadia.Phase
}

// TemplateLink is an abstract source-type to target-type traceability
// relation with a canonical confidence. Template links are schema
// hints rendered into prompt context; they are never emitted as live
// traceability links.
type TemplateLink struct {
	SourceID     string
	SourceType   string
	TargetID     string
	TargetType   string
	Relationship string
	Phase        string
	Confidence   float64
}

// PhaseTemplate collects per-phase requirement patterns, verification
// methods and key aspects.
type PhaseTemplate struct {
	RequirementPatterns []string
	VerificationMethods []string
	KeyAspects          []string
}

// defaultCapabilities is the operational capability catalogue.
func defaultCapabilities() map[string]CatalogCapability {
	return map[string]CatalogCapability{
		"OC-001": {
			ID:                 "OC-001",
			Name:               "Mission Planning",
			Description:        "Capability to plan and coordinate operational missions",
			Phase:              arcadia.PhaseOperational,
			Actors:             []string{"Mission Commander", "Operations Center", "Planning System"},
			Scenarios:          []string{"Mission Preparation", "Resource Allocation", "Timeline Planning"},
			Functions:          []string{"Plan Mission", "Allocate Resources", "Schedule Activities"},
			RequirementsImpact: []string{"Planning accuracy", "Resource optimization", "Timeline compliance"},
			Criticality:        "HIGH",
		},
		"OC-002": {
			ID:                 "OC-002",
			Name:               "Real-time Monitoring",
			Description:        "Capability to monitor system status and performance in real-time",
			Phase:              arcadia.PhaseOperational,
			Actors:             []string{"Operator", "Monitoring System", "Alert Manager"},
			Scenarios:          []string{"Status Monitoring", "Anomaly Detection", "Performance Tracking"},
			Functions:          []string{"Monitor Status", "Detect Anomalies", "Generate Alerts"},
			RequirementsImpact: []string{"Response time", "Detection accuracy", "Alert reliability"},
			Criticality:        "HIGH",
		},
		"OC-003": {
			ID:                 "OC-003",
			Name:               "Data Processing",
			Description:        "Capability to process and analyze operational data",
			Phase:              arcadia.PhaseSystem,
			Actors:             []string{"Data Processor", "Analytics Engine", "Data Manager"},
			Scenarios:          []string{"Data Ingestion", "Real-time Analysis", "Report Generation"},
			Functions:          []string{"Ingest Data", "Process Information", "Generate Reports"},
			RequirementsImpact: []string{"Processing speed", "Data accuracy", "Storage capacity"},
			Criticality:        "MEDIUM",
		},
		"OC-004": {
			ID:                 "OC-004",
			Name:               "Communication Management",
			Description:        "Capability to manage communications between system components",
			Phase:              arcadia.PhaseLogical,
			Actors:             []string{"Communication Manager", "Network Controller", "Protocol Handler"},
			Scenarios:          []string{"Message Routing", "Protocol Management", "Network Optimization"},
			Functions:          []string{"Route Messages", "Manage Protocols", "Optimize Network"},
			RequirementsImpact: []string{"Communication reliability", "Latency", "Bandwidth utilization"},
			Criticality:        "HIGH",
		},
		"OC-005": {
			ID:                 "OC-005",
			Name:               "Resource Management",
			Description:        "Capability to manage and allocate system resources",
			Phase:              arcadia.PhasePhysical,
			Actors:             []string{"Resource Manager", "Allocation Engine", "Performance Monitor"},
			Scenarios:          []string{"Resource Allocation", "Load Balancing", "Capacity Planning"},
			Functions:          []string{"Allocate Resources", "Balance Load", "Plan Capacity"},
			RequirementsImpact: []string{"Resource efficiency", "System performance", "Scalability"},
			Criticality:        "MEDIUM",
		},
	}
}

// defaultActors is the actor dictionary.
func defaultActors() map[string]CatalogActor {
	return map[string]CatalogActor{
		"ACT-001": {
			ID:          "ACT-001",
			Name:        "Mission Commander",
			Type:        "HUMAN",
			Description: "Human operator responsible for mission planning and execution oversight",
			Responsibilities: []string{
				"Define mission objectives",
				"Approve operational plans",
				"Monitor mission execution",
				"Make critical decisions",
			},
			Interactions: []string{"Operations Center", "Planning System", "Field Operators"},
			Capabilities: []string{"Mission Planning", "Decision Making", "Risk Assessment"},
			PhaseInvolvement: []arcadia.Phase{
				arcadia.PhaseOperational, arcadia.PhaseSystem,
			},
		},
		"ACT-002": {
			ID:          "ACT-002",
			Name:        "Operations Center",
			Type:        "SYSTEM",
			Description: "Central system for coordinating and monitoring operations",
			Responsibilities: []string{
				"Coordinate operational activities",
				"Monitor system status",
				"Manage communications",
				"Generate operational reports",
			},
			Interactions: []string{"Mission Commander", "Field Systems", "Monitoring Systems"},
			Capabilities: []string{"Real-time Monitoring", "Communication Management", "Data Processing"},
			PhaseInvolvement: []arcadia.Phase{
				arcadia.PhaseOperational, arcadia.PhaseSystem, arcadia.PhaseLogical,
			},
		},
		"ACT-003": {
			ID:          "ACT-003",
			Name:        "Field Operator",
			Type:        "HUMAN",
			Description: "Human operator working in the field environment",
			Responsibilities: []string{
				"Execute field operations",
				"Report status updates",
				"Handle local incidents",
				"Maintain equipment",
			},
			Interactions: []string{"Operations Center", "Field Equipment", "Local Systems"},
			Capabilities: []string{"Equipment Operation", "Status Reporting", "Incident Response"},
			PhaseInvolvement: []arcadia.Phase{
				arcadia.PhaseOperational, arcadia.PhasePhysical,
			},
		},
		"ACT-004": {
			ID:          "ACT-004",
			Name:        "Data Processing System",
			Type:        "SYSTEM",
			Description: "Automated system for processing and analyzing operational data",
			Responsibilities: []string{
				"Process incoming data",
				"Perform data analysis",
				"Generate insights",
				"Store processed information",
			},
			Interactions: []string{"Data Sources", "Analytics Engine", "Storage Systems"},
			Capabilities: []string{"Data Processing", "Analytics", "Information Management"},
			PhaseInvolvement: []arcadia.Phase{
				arcadia.PhaseSystem, arcadia.PhaseLogical, arcadia.PhasePhysical,
			},
		},
		"ACT-005": {
			ID:          "ACT-005",
			Name:        "External System",
			Type:        "EXTERNAL",
			Description: "External system that interfaces with the main system",
			Responsibilities: []string{
				"Provide external data",
				"Accept system outputs",
				"Maintain interface protocols",
				"Ensure data quality",
			},
			Interactions: []string{"Interface Manager", "Data Exchange System", "Protocol Handler"},
			Capabilities: []string{"Data Exchange", "Protocol Compliance", "Interface Management"},
			PhaseInvolvement: []arcadia.Phase{
				arcadia.PhaseLogical, arcadia.PhasePhysical,
			},
		},
	}
}

// defaultTemplateLinks is the traceability matrix template.
func defaultTemplateLinks() []TemplateLink {
	return []TemplateLink{
		{
			SourceID: "OC-001", SourceType: "OPERATIONAL_CAPABILITY",
			TargetID: "SF-001", TargetType: "SYSTEM_FUNCTION",
			Relationship: "IMPLEMENTS", Phase: "operational_to_system", Confidence: 0.95,
		},
		{
			SourceID: "SF-001", SourceType: "SYSTEM_FUNCTION",
			TargetID: "LC-001", TargetType: "LOGICAL_COMPONENT",
			Relationship: "ALLOCATED_TO", Phase: "system_to_logical", Confidence: 0.90,
		},
		{
			SourceID: "LC-001", SourceType: "LOGICAL_COMPONENT",
			TargetID: "PC-001", TargetType: "PHYSICAL_COMPONENT",
			Relationship: "REALIZED_BY", Phase: "logical_to_physical", Confidence: 0.85,
		},
		{
			SourceID: "ACT-001", SourceType: "ACTOR",
			TargetID: "OC-001", TargetType: "OPERATIONAL_CAPABILITY",
			Relationship: "RESPONSIBLE_FOR", Phase: "operational", Confidence: 1.0,
		},
		{
			SourceID: "OC-002", SourceType: "OPERATIONAL_CAPABILITY",
			TargetID: "NFR-001", TargetType: "NON_FUNCTIONAL_REQUIREMENT",
			Relationship: "CONSTRAINS", Phase: "operational", Confidence: 0.88,
		},
	}
}

// defaultPhaseTemplates are the per-phase requirement templates.
func defaultPhaseTemplates() map[arcadia.Phase]PhaseTemplate {
	return map[arcadia.Phase]PhaseTemplate{
		arcadia.PhaseOperational: {
			RequirementPatterns: []string{
				"The {actor} shall be able to {capability} in order to {purpose}",
				"During {scenario}, the system shall {action} within {constraint}",
				"The operational capability {capability} requires {resource} to achieve {outcome}",
			},
			VerificationMethods: []string{
				"Stakeholder review and approval",
				"Operational scenario walkthrough",
				"Mission effectiveness assessment",
				"Capability demonstration",
			},
			KeyAspects: []string{
				"Mission objectives",
				"Operational scenarios",
				"Stakeholder needs",
				"Capability requirements",
				"Performance expectations",
			},
		},
		arcadia.PhaseSystem: {
			RequirementPatterns: []string{
				"The system shall {function} to support {operational_capability}",
				"When {condition}, the system shall {response} within {timeframe}",
				"The system function {function} shall interface with {external_system}",
			},
			VerificationMethods: []string{
				"System functional testing",
				"Interface verification",
				"Performance testing",
				"Trade-off analysis validation",
			},
			KeyAspects: []string{
				"System functions",
				"Functional chains",
				"System interfaces",
				"Performance requirements",
				"System boundaries",
			},
		},
		arcadia.PhaseLogical: {
			RequirementPatterns: []string{
				"The {component} shall implement {function} with {quality_attributes}",
				"Component {component} shall communicate with {other_component} via {interface}",
				"The logical architecture shall support {system_function} through {component_allocation}",
			},
			VerificationMethods: []string{
				"Component allocation verification",
				"Interface consistency check",
				"Architecture review",
				"Design pattern validation",
			},
			KeyAspects: []string{
				"Component allocation",
				"Logical interfaces",
				"Data flows",
				"Component interactions",
				"Architecture patterns",
			},
		},
		arcadia.PhasePhysical: {
			RequirementPatterns: []string{
				"The {physical_component} shall realize {logical_component} using {technology}",
				"Physical component {component} shall operate in {environment} with {constraints}",
				"The implementation shall meet {performance_criteria} under {operational_conditions}",
			},
			VerificationMethods: []string{
				"Physical implementation testing",
				"Environmental testing",
				"Performance benchmarking",
				"Integration testing",
			},
			KeyAspects: []string{
				"Physical components",
				"Technology choices",
				"Environmental constraints",
				"Implementation details",
				"Deployment scenarios",
			},
		},
	}
}
