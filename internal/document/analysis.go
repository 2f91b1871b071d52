package document

import (
	"fmt"
	"strings"

	"arise/internal/arcadia"
	"arise/internal/logging"
)

// ProposalAnalysis is advisory metadata mined from a proposal with
// fixed regex families. It is not part of the ARCADIA output.
type ProposalAnalysis struct {
	Objectives            []Objective            `json:"objectives"`
	Stakeholders          []arcadia.Stakeholder  `json:"stakeholders"`
	WorkPackages          []WorkPackage          `json:"work_packages"`
	TechnicalComponents   []TechnicalComponent   `json:"technical_components"`
	RequirementIndicators []RequirementIndicator `json:"requirements_indicators"`
	PhaseRelevance        map[arcadia.Phase]PhaseRelevance `json:"arcadia_mapping"`
}

// Objective is a mined project objective.
type Objective struct {
	ID          string        `json:"id"`
	Number      string        `json:"number"`
	Description string        `json:"description"`
	Phase       arcadia.Phase `json:"arcadia_phase"`
}

// WorkPackage is a mined work package reference.
type WorkPackage struct {
	ID                    string        `json:"id"`
	Number                string        `json:"number"`
	Description           string        `json:"description"`
	Phase                 arcadia.Phase `json:"arcadia_phase"`
	RequirementsPotential string        `json:"requirements_potential"` // high|medium|low
}

// TechnicalComponent is a mined technical component reference.
type TechnicalComponent struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Phase       arcadia.Phase `json:"arcadia_phase"`
}

// RequirementIndicator is a mined potential-requirement statement.
type RequirementIndicator struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description"`
	Type        string `json:"type"`     // functional|non_functional|general
	Priority    string `json:"priority"` // MUST|SHOULD|COULD
}

// PhaseRelevance scores how strongly the proposal touches a phase.
type PhaseRelevance struct {
	RelevanceScore int      `json:"relevance_score"`
	FoundKeywords  []string `json:"found_keywords"`
	Percentage     float64  `json:"percentage"`
}

// AnalyzeProposal mines MBSE-relevant structure from proposal text.
func (p *Processor) AnalyzeProposal(text string) ProposalAnalysis {
	timer := logging.StartTimer(logging.CategoryDocument, "Processor.AnalyzeProposal")
	defer timer.Stop()

	analysis := ProposalAnalysis{
		Objectives:            p.extractObjectives(text),
		Stakeholders:          p.extractStakeholders(text),
		WorkPackages:          p.extractWorkPackages(text),
		TechnicalComponents:   p.extractTechnicalComponents(text),
		RequirementIndicators: p.extractRequirementIndicators(text),
		PhaseRelevance:        p.mapPhaseRelevance(text),
	}

	logging.Document("Proposal analysis: %d objectives, %d stakeholders, %d WPs, %d components, %d indicators",
		len(analysis.Objectives), len(analysis.Stakeholders), len(analysis.WorkPackages),
		len(analysis.TechnicalComponents), len(analysis.RequirementIndicators))
	return analysis
}

func (p *Processor) extractObjectives(text string) []Objective {
	var objectives []Objective
	for _, pattern := range objectivePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			var number, description string
			if len(match) == 3 {
				number, description = match[1], match[2]
			} else {
				description = match[1]
			}
			if number == "" {
				number = fmt.Sprintf("%d", len(objectives)+1)
			}
			objectives = append(objectives, Objective{
				ID:          fmt.Sprintf("OBJ-%02d", len(objectives)+1),
				Number:      number,
				Description: strings.TrimSpace(description),
				Phase:       classifyDescriptionPhase(description),
			})
		}
	}
	return objectives
}

func (p *Processor) extractStakeholders(text string) []arcadia.Stakeholder {
	var stakeholders []arcadia.Stakeholder
	for _, pattern := range stakeholderPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			description := strings.TrimSpace(match[1])
			if len(description) <= 5 { // Filter out very short matches
				continue
			}
			stakeholders = append(stakeholders, arcadia.Stakeholder{
				ID:          fmt.Sprintf("STK-%02d", len(stakeholders)+1),
				Description: description,
				Type:        classifyStakeholderType(description),
				Phase:       arcadia.PhaseOperational,
			})
		}
	}
	return stakeholders
}

func (p *Processor) extractWorkPackages(text string) []WorkPackage {
	var packages []WorkPackage
	for _, match := range workPackagePattern.FindAllStringSubmatch(text, -1) {
		number, description := match[1], strings.TrimSpace(match[2])
		packages = append(packages, WorkPackage{
			ID:                    "WP" + number,
			Number:                number,
			Description:           description,
			Phase:                 classifyWorkPackagePhase(description),
			RequirementsPotential: assessRequirementsPotential(description),
		})
	}
	return packages
}

func (p *Processor) extractTechnicalComponents(text string) []TechnicalComponent {
	var components []TechnicalComponent
	for _, pattern := range componentPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			description := strings.TrimSpace(match[1])
			if len(description) <= 10 {
				continue
			}
			components = append(components, TechnicalComponent{
				ID:          fmt.Sprintf("COMP-%02d", len(components)+1),
				Description: description,
				Type:        classifyComponentType(description),
				Phase:       classifyDescriptionPhase(description),
			})
		}
	}
	return components
}

func (p *Processor) extractRequirementIndicators(text string) []RequirementIndicator {
	var indicators []RequirementIndicator
	for _, pattern := range requirementIndicatorPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			description := strings.TrimSpace(match[1])
			if len(description) <= 5 {
				continue
			}
			indicators = append(indicators, RequirementIndicator{
				ID:          fmt.Sprintf("REQ-IND-%02d", len(indicators)+1),
				Text:        match[0],
				Description: description,
				Type:        classifyRequirementType(match[0]),
				Priority:    estimatePriority(match[0]),
			})
		}
	}
	return indicators
}

func (p *Processor) mapPhaseRelevance(text string) map[arcadia.Phase]PhaseRelevance {
	lower := strings.ToLower(text)
	mapping := make(map[arcadia.Phase]PhaseRelevance, len(phaseKeywords))

	for phase, keywords := range phaseKeywords {
		score := 0
		var found []string
		for _, kw := range keywords {
			count := strings.Count(lower, kw)
			if count > 0 {
				score += count
				found = append(found, kw)
			}
		}
		pct := 0.0
		if len(keywords) > 0 {
			pct = float64(score) / float64(len(keywords)) * 100
		}
		mapping[phase] = PhaseRelevance{
			RelevanceScore: score,
			FoundKeywords:  found,
			Percentage:     pct,
		}
	}
	return mapping
}

// Keyword-based classifiers for mined fragments.

func classifyDescriptionPhase(description string) arcadia.Phase {
	lower := strings.ToLower(description)
	switch {
	case containsAny(lower, "stakeholder", "user", "actor", "mission", "goal"):
		return arcadia.PhaseOperational
	case containsAny(lower, "function", "requirement", "interface", "system"):
		return arcadia.PhaseSystem
	case containsAny(lower, "component", "logical", "behavior", "interaction"):
		return arcadia.PhaseLogical
	case containsAny(lower, "implementation", "deployment", "physical", "hardware"):
		return arcadia.PhasePhysical
	}
	return arcadia.PhaseSystem
}

func classifyStakeholderType(description string) string {
	lower := strings.ToLower(description)
	switch {
	case containsAny(lower, "soc", "analyst", "security"):
		return "technical_user"
	case containsAny(lower, "manager", "director", "admin"):
		return "management"
	case containsAny(lower, "developer", "engineer", "team"):
		return "technical_team"
	}
	return "general_user"
}

func classifyWorkPackagePhase(description string) arcadia.Phase {
	lower := strings.ToLower(description)
	switch {
	case containsAny(lower, "stakeholder", "analysis", "requirement", "elicitation"):
		return arcadia.PhaseOperational
	case containsAny(lower, "architecture", "design", "component"):
		return arcadia.PhaseLogical
	case containsAny(lower, "implementation", "deployment", "pilot"):
		return arcadia.PhasePhysical
	}
	return arcadia.PhaseSystem
}

func assessRequirementsPotential(description string) string {
	lower := strings.ToLower(description)
	switch {
	case containsAny(lower, "requirement", "specification", "analysis"):
		return "high"
	case containsAny(lower, "design", "architecture", "component"):
		return "medium"
	}
	return "low"
}

func classifyComponentType(description string) string {
	lower := strings.ToLower(description)
	switch {
	case containsAny(lower, "ai", "ml", "algorithm", "model"):
		return "ai_component"
	case containsAny(lower, "interface", "api", "protocol"):
		return "interface"
	case containsAny(lower, "data", "database", "storage"):
		return "data_component"
	}
	return "system_component"
}

func classifyRequirementType(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "shall", "must", "will"):
		return "functional"
	case containsAny(lower, "performance", "security", "usability", "reliability"):
		return "non_functional"
	}
	return "general"
}

func estimatePriority(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "must", "critical", "essential"):
		return "MUST"
	case containsAny(lower, "should", "important"):
		return "SHOULD"
	}
	return "COULD"
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
