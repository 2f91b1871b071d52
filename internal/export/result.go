package export

import (
	"encoding/json"
	"fmt"

	"arise/internal/orchestrator"
)

// ToResultJSON renders a full run result as the canonical JSON
// document: optional phase analyses, cross-phase analysis, traditional
// requirements, validation report and quality metrics.
func ToResultJSON(result *orchestrator.Result) (string, error) {
	payload := map[string]interface{}{
		"traditional_requirements": map[string]interface{}{
			"requirements": result.Traditional.Requirements,
			"stakeholders": result.Traditional.Stakeholders,
			"statistics":   result.Traditional.Statistics,
		},
		"quality_metrics": map[string]interface{}{
			"overall_score":           result.QualityScore,
			"template_compliance":     result.TemplateCompliance,
			"generation_time_seconds": result.GenerationTime,
		},
	}

	if result.Structured != nil {
		if result.Structured.Operational != nil {
			payload["operational_analysis"] = result.Structured.Operational
		}
		if result.Structured.System != nil {
			payload["system_analysis"] = result.Structured.System
		}
		if result.Structured.Logical != nil {
			payload["logical_architecture"] = result.Structured.Logical
		}
		if result.Structured.Physical != nil {
			payload["physical_architecture"] = result.Structured.Physical
		}
		if result.Structured.CrossPhase != nil {
			payload["cross_phase_analysis"] = result.Structured.CrossPhase
		}
		payload["generation_metadata"] = result.Structured.Metadata
	}

	if result.ValidationReport != nil {
		payload["validation_report"] = result.ValidationReport
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}
