// Package export renders a requirements document into the supported
// interchange formats: JSON, Markdown, CSV (Excel-compatible), DOORS
// block format and OMG ReqIF XML.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"arise/internal/arcadia"
	"arise/internal/logging"
)

// Format names accepted by Export.
const (
	FormatJSON     = "JSON"
	FormatMarkdown = "Markdown"
	FormatExcel    = "Excel"
	FormatDOORS    = "DOORS"
	FormatReqIF    = "ReqIF"
)

// Export renders the document in the named format.
func Export(doc arcadia.RequirementsDocument, format string) (string, error) {
	timer := logging.StartTimer(logging.CategoryExport, "Export")
	defer timer.Stop()

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal requirements: %w", err)
		}
		return string(data), nil
	case FormatMarkdown:
		return ToMarkdown(doc), nil
	case FormatExcel:
		return ToCSV(doc)
	case FormatDOORS:
		return ToDOORS(doc), nil
	case FormatReqIF:
		return ToReqIF(doc), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

// orderedPhases returns the document phases in ARCADIA order.
func orderedPhases(doc arcadia.RequirementsDocument) []arcadia.Phase {
	var phases []arcadia.Phase
	for _, phase := range arcadia.AnalysisPhases {
		if _, ok := doc.Requirements[phase]; ok {
			phases = append(phases, phase)
		}
	}
	return phases
}

// typeGroups returns the per-kind requirement lists of a phase group in
// stable order with their display names.
func typeGroups(group arcadia.PhaseRequirements) []struct {
	Name string
	Reqs []arcadia.Requirement
} {
	return []struct {
		Name string
		Reqs []arcadia.Requirement
	}{
		{"Functional", group.Functional},
		{"Non_Functional", group.NonFunctional},
		{"Stakeholder", group.Stakeholder},
	}
}

// titleCase uppercases the first letter of a phase name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
