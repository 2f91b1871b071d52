package arcadia

import (
	"fmt"
	"regexp"
)

// RequirementType classifies a requirement.
type RequirementType string

const (
	RequirementFunctional    RequirementType = "Functional"
	RequirementNonFunctional RequirementType = "Non-Functional"
	RequirementStakeholder   RequirementType = "Stakeholder"
)

// Priority is a MoSCoW priority level.
type Priority string

const (
	PriorityMust   Priority = "MUST"
	PriorityShould Priority = "SHOULD"
	PriorityCould  Priority = "COULD"
	PriorityWont   Priority = "WONT"
)

// PriorityWeight returns the MoSCoW weight used for ordering.
func PriorityWeight(p Priority) int {
	switch p {
	case PriorityMust:
		return 3
	case PriorityShould:
		return 2
	case PriorityCould:
		return 1
	}
	return 0
}

// ValidPriority reports whether p is a known MoSCoW value.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityMust, PriorityShould, PriorityCould, PriorityWont:
		return true
	}
	return false
}

// NFRCategory classifies a non-functional requirement.
type NFRCategory string

const (
	NFRPerformance     NFRCategory = "performance"
	NFRSecurity        NFRCategory = "security"
	NFRUsability       NFRCategory = "usability"
	NFRReliability     NFRCategory = "reliability"
	NFRScalability     NFRCategory = "scalability"
	NFRMaintainability NFRCategory = "maintainability"
)

// NFRCategories lists all NFR categories in canonical order.
var NFRCategories = []NFRCategory{
	NFRPerformance, NFRSecurity, NFRUsability,
	NFRReliability, NFRScalability, NFRMaintainability,
}

// CoreNFRCategories are always retained by category selection.
var CoreNFRCategories = map[NFRCategory]bool{
	NFRPerformance: true,
	NFRSecurity:    true,
	NFRReliability: true,
}

// Prefix returns the 4-character-max id prefix for the category
// (PERF, SEC, USE, REL, SCAL, MAIN).
func (c NFRCategory) Prefix() string {
	switch c {
	case NFRPerformance:
		return "PERF"
	case NFRSecurity:
		return "SEC"
	case NFRUsability:
		return "USE"
	case NFRReliability:
		return "REL"
	case NFRScalability:
		return "SCAL"
	case NFRMaintainability:
		return "MAIN"
	}
	return "NFR"
}

// RequirementIDPattern matches well-formed requirement identifiers.
var RequirementIDPattern = regexp.MustCompile(`^(FR|NFR|STK)-[A-Z]{2,4}-\d{3}$`)

// Requirement is a "shall" statement with priority, verification method
// and traceability links.
type Requirement struct {
	ID                 string          `json:"id"`
	Type               RequirementType `json:"type"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Priority           Priority        `json:"priority"`
	PriorityConfidence float64         `json:"priority_confidence"`
	PriorityRebalanced bool            `json:"priority_rebalanced,omitempty"`
	Phase              Phase           `json:"phase"`
	VerificationMethod string          `json:"verification_method"`
	Dependencies       []string        `json:"dependencies,omitempty"`
	Rationale          string          `json:"rationale,omitempty"`

	// Traceability
	CapabilityLinks  []string `json:"operational_capability_links,omitempty"`
	ScenarioLinks    []string `json:"operational_scenario_links,omitempty"`
	StakeholderLinks []string `json:"stakeholder_traceability,omitempty"`

	// NFR-specific fields; present iff Type == Non-Functional.
	Category          NFRCategory `json:"category,omitempty"`
	Metric            string      `json:"metric,omitempty"`
	TargetValue       string      `json:"target_value,omitempty"`
	MeasurementMethod string      `json:"measurement_method,omitempty"`
}

// Stakeholder is a regex-mined stakeholder record from the traditional
// requirements path.
type Stakeholder struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Phase       Phase  `json:"phase"`
}

// PhaseRequirements groups generated requirements by kind for one phase.
type PhaseRequirements struct {
	Functional    []Requirement `json:"functional,omitempty"`
	NonFunctional []Requirement `json:"non_functional,omitempty"`
	Stakeholder   []Requirement `json:"stakeholder,omitempty"`
}

// All returns every requirement in the group.
func (p PhaseRequirements) All() []Requirement {
	out := make([]Requirement, 0, len(p.Functional)+len(p.NonFunctional)+len(p.Stakeholder))
	out = append(out, p.Functional...)
	out = append(out, p.NonFunctional...)
	out = append(out, p.Stakeholder...)
	return out
}

// RequirementsDocument is the traditional requirements structure:
// per-phase requirement groups plus stakeholders and statistics.
type RequirementsDocument struct {
	Requirements map[Phase]PhaseRequirements `json:"requirements"`
	Stakeholders map[string]Stakeholder      `json:"stakeholders"`
	Statistics   map[string]interface{}      `json:"statistics"`
}

// AllRequirements flattens the document to a single slice.
func (d RequirementsDocument) AllRequirements() []Requirement {
	var out []Requirement
	for _, phase := range AnalysisPhases {
		if group, ok := d.Requirements[phase]; ok {
			out = append(out, group.All()...)
		}
	}
	return out
}

// FormatRequirementID renders an id like FR-OPE-001 or NFR-PERF-002.
func FormatRequirementID(prefix, scope string, n int) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, scope, n)
}
