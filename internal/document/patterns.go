package document

import (
	"regexp"

	"arise/internal/arcadia"
)

// Phase keyword sets from the Thales ARCADIA methodology. Used for
// chunk classification and phase-relevance scoring. Matching is
// case-insensitive substring containment.
var phaseKeywords = map[arcadia.Phase][]string{
	arcadia.PhaseOperational: {
		"stakeholder", "actor", "mission", "capability", "operational",
		"use case", "scenario", "need", "goal", "activity", "process",
		"dotmlpf", "capability gap", "operational context",
	},
	arcadia.PhaseSystem: {
		"function", "requirement", "interface", "system", "constraint",
		"mode", "service", "capability", "trade-off", "feasibility",
		"functional chain", "system need", "performance",
	},
	arcadia.PhaseLogical: {
		"component", "logical", "behavior", "interaction", "scenario",
		"exchange", "protocol", "breakdown", "viewpoint", "compromise",
		"architecture driver", "functional allocation", "interface",
	},
	arcadia.PhasePhysical: {
		"physical", "implementation", "deployment", "node", "configuration",
		"hardware", "software", "reuse", "pattern", "hosting",
		"behavioral component", "resource allocation", "technology",
	},
	arcadia.PhaseBuildingStrategy: {
		"pbs", "epbs", "integration contract", "ivvq", "configuration item",
		"component contract", "test strategy", "verification", "validation",
	},
}

// classificationOrder fixes tie-breaking: earlier phases win ties.
var classificationOrder = []arcadia.Phase{
	arcadia.PhaseOperational,
	arcadia.PhaseSystem,
	arcadia.PhaseLogical,
	arcadia.PhasePhysical,
	arcadia.PhaseBuildingStrategy,
}

// PhaseKeywords returns the keyword set for a phase.
func PhaseKeywords(phase arcadia.Phase) []string {
	return phaseKeywords[phase]
}

// Regex families for proposal analysis. Compiled once and shared.
var (
	objectivePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)(?:Objective|Goal|Aim)\s*(\d+)[:.]?\s*([^.\n]+)`),
		regexp.MustCompile(`(?m)(\d+)\.\s*([A-Z][^.\n]+)`),
		regexp.MustCompile(`(?m)[•\-]\s*([A-Z][^.\n]+)`),
	}

	stakeholderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:stakeholder|actor|user|team|organization)s?[:\s]\s*([^.\n]+)`),
		regexp.MustCompile(`(?i)SOCs?\s+([^.\n]+)`),
		regexp.MustCompile(`(?i)(?:analyst|engineer|manager|operator)s?\s+([^.\n]*)`),
		regexp.MustCompile(`(?i)(?:consortium|partner)s?\s*[:\s]\s*([^.\n]+)`),
	}

	workPackagePattern = regexp.MustCompile(`(?i)(?:WP|Work Package)\s*(\d+)[:.]?\s*([^.\n]+)`)

	componentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:component|module|system|platform|service)\s*[:\-]?\s*([^.\n]+)`),
		regexp.MustCompile(`(?i)(?:AI|ML|algorithm|model)\s+([^.\n]+)`),
		regexp.MustCompile(`(?i)(?:interface|API|protocol)\s+([^.\n]+)`),
	}

	requirementIndicatorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:shall|must|will|should|needs? to)\s+([^.\n]+)`),
		regexp.MustCompile(`(?i)(?:requirement|constraint|specification)s?\s*[:\-]?\s*([^.\n]+)`),
		regexp.MustCompile(`(?i)(?:performance|security|usability|reliability)\s+([^.\n]+)`),
	}
)
