package requirements

import (
	"strings"

	"arise/internal/arcadia"
)

// Phase-specific verification methods for functional requirements.
var functionalVerificationMethods = map[arcadia.Phase][]string{
	arcadia.PhaseOperational: {
		"Stakeholder review and approval",
		"Operational scenario walkthrough",
		"User acceptance testing",
		"Capability demonstration",
	},
	arcadia.PhaseSystem: {
		"Requirements traceability check",
		"Functional analysis verification",
		"System scenario simulation",
		"Trade-off analysis validation",
	},
	arcadia.PhaseLogical: {
		"Component allocation verification",
		"Interface consistency check",
		"Multi-viewpoint analysis",
		"Architecture compromise validation",
	},
	arcadia.PhasePhysical: {
		"Implementation feasibility assessment",
		"Physical interface testing",
		"Deployment scenario validation",
		"Resource constraint verification",
	},
}

// Category-specific verification methods for NFRs.
var nfrVerificationMethods = map[arcadia.NFRCategory][]string{
	arcadia.NFRPerformance: {
		"Performance testing and benchmarking",
		"Load testing and stress analysis",
		"Response time measurement",
		"Throughput analysis",
	},
	arcadia.NFRSecurity: {
		"Security audit and penetration testing",
		"Vulnerability assessment",
		"Threat modeling validation",
		"Access control verification",
	},
	arcadia.NFRUsability: {
		"User experience testing",
		"Usability inspection and evaluation",
		"Accessibility compliance audit",
		"Human factors assessment",
	},
	arcadia.NFRReliability: {
		"Reliability testing and MTBF analysis",
		"Fault injection and tolerance testing",
		"Failure mode analysis",
		"Availability measurement",
	},
	arcadia.NFRScalability: {
		"Scalability testing and capacity planning",
		"Resource utilization analysis",
		"Growth scenario validation",
		"Performance scaling verification",
	},
	arcadia.NFRMaintainability: {
		"Code quality metrics assessment",
		"Maintainability index calculation",
		"Technical debt evaluation",
		"Maintenance effort estimation",
	},
}

// Measurement methods per NFR category.
var measurementMethods = map[arcadia.NFRCategory]string{
	arcadia.NFRPerformance:     "Performance monitoring and benchmarking",
	arcadia.NFRSecurity:        "Security assessment and audit",
	arcadia.NFRUsability:       "User testing and evaluation",
	arcadia.NFRReliability:     "Reliability testing and analysis",
	arcadia.NFRScalability:     "Load testing and capacity analysis",
	arcadia.NFRMaintainability: "Code quality metrics and assessment",
}

// selectVerificationMethod chooses a method from the phase×type or
// category table, specialised by requirement content for functional
// requirements.
func selectVerificationMethod(reqType arcadia.RequirementType, phase arcadia.Phase, category arcadia.NFRCategory, requirementText string) string {
	if reqType == arcadia.RequirementFunctional || reqType == arcadia.RequirementStakeholder {
		lower := strings.ToLower(requirementText)
		switch {
		case strings.Contains(lower, "interface") || strings.Contains(lower, "communication"):
			return "Interface testing and integration verification"
		case strings.Contains(lower, "user") || strings.Contains(lower, "operator"):
			return "User acceptance testing and operational validation"
		case strings.Contains(lower, "scenario") || strings.Contains(lower, "operational"):
			return "Operational scenario validation and testing"
		case strings.Contains(lower, "performance") || strings.Contains(lower, "response"):
			return "Performance testing and system validation"
		}
		if methods, ok := functionalVerificationMethods[phase]; ok && len(methods) > 0 {
			return methods[0]
		}
		return "Functional testing and verification"
	}

	if methods, ok := nfrVerificationMethods[category]; ok && len(methods) > 0 {
		return methods[0]
	}
	return "Requirements review and validation"
}

// applyVerificationHint uses a "Verification: ..." hint verbatim when
// longer than 15 characters.
func applyVerificationHint(line, selected string) string {
	match := verificationHintPattern.FindStringSubmatch(line)
	if match == nil {
		return selected
	}
	custom := strings.TrimSpace(match[1])
	if len(custom) > 15 {
		return custom
	}
	return selected
}

// extractMetric finds a value+unit metric in the requirement text.
func extractMetric(text string) string {
	for _, pattern := range metricPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			return match[1] + " " + match[2]
		}
	}
	return "Quantitative measure to be defined"
}

// extractTargetValue finds a bounded, exact or range target value.
func extractTargetValue(text string) string {
	if match := targetRangePattern.FindStringSubmatch(text); match != nil {
		return match[1] + "-" + match[2]
	}
	for _, pattern := range targetPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			return match[1]
		}
	}
	return "Target value to be defined"
}

// measurementMethod returns the per-category measurement method.
func measurementMethod(category arcadia.NFRCategory) string {
	if method, ok := measurementMethods[category]; ok {
		return method
	}
	return "Measurement and analysis"
}
