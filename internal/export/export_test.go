package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"arise/internal/arcadia"
)

func sampleDocument() arcadia.RequirementsDocument {
	return arcadia.RequirementsDocument{
		Requirements: map[arcadia.Phase]arcadia.PhaseRequirements{
			arcadia.PhaseOperational: {
				Functional: []arcadia.Requirement{
					{
						ID:                 "FR-OPE-001",
						Type:               arcadia.RequirementFunctional,
						Title:              "Equipment monitoring",
						Description:        "The system shall monitor equipment status continuously",
						Priority:           arcadia.PriorityMust,
						Phase:              arcadia.PhaseOperational,
						VerificationMethod: "Operational scenario walkthrough",
					},
				},
				NonFunctional: []arcadia.Requirement{
					{
						ID:                 "NFR-PERF-001",
						Type:               arcadia.RequirementNonFunctional,
						Title:              "Fast response with <angle> & \"quote\"",
						Description:        "The system shall respond within 100 milliseconds",
						Priority:           arcadia.PriorityShould,
						Phase:              arcadia.PhaseOperational,
						VerificationMethod: "Performance testing and benchmarking",
						Category:           arcadia.NFRPerformance,
					},
				},
			},
		},
		Stakeholders: map[string]arcadia.Stakeholder{},
		Statistics:   map[string]interface{}{},
	}
}

func TestToMarkdown(t *testing.T) {
	md := ToMarkdown(sampleDocument())

	for _, want := range []string{
		"# Generated Requirements",
		"# Operational Phase",
		"## Functional Requirements",
		"## Non-Functional Requirements",
		"### FR-OPE-001",
		"### NFR-PERF-001",
		"*Priority*: MUST",
		"*Verification*: Operational scenario walkthrough",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestToCSV(t *testing.T) {
	output, err := ToCSV(sampleDocument())
	if err != nil {
		t.Fatalf("ToCSV failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(output)).ReadAll()
	if err != nil {
		t.Fatalf("CSV does not parse: %v", err)
	}

	header := records[0]
	want := []string{"ID", "Phase", "Type", "Title", "Description", "Priority", "Verification Method"}
	for i, column := range want {
		if header[i] != column {
			t.Errorf("header[%d] = %s, want %s", i, header[i], column)
		}
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[1][0] != "FR-OPE-001" || records[1][1] != "Operational" {
		t.Errorf("first row = %v", records[1])
	}
}

func TestToDOORS(t *testing.T) {
	doors := ToDOORS(sampleDocument())

	for _, want := range []string{
		"module main",
		`folder "Functional"`,
		`folder "Non-Functional"`,
		`requirement "FR-OPE-001" = "Equipment monitoring"`,
		`text = "The system shall monitor equipment status continuously"`,
		`priority = "MUST"`,
		`verification = "Operational scenario walkthrough"`,
		"end folder",
		"end module",
	} {
		if !strings.Contains(doors, want) {
			t.Errorf("DOORS export missing %q", want)
		}
	}

	// end module is the final statement.
	if !strings.HasSuffix(strings.TrimSpace(doors), "end module") {
		t.Error("DOORS export must end with end module")
	}
}

func TestToReqIF(t *testing.T) {
	reqif := ToReqIF(sampleDocument())

	for _, want := range []string{
		`<REQ-IF xmlns="http://www.omg.org/ReqIF"`,
		"<SPEC-OBJECT IDENTIFIER=\"SPEC_OBJ_1\">",
		"<SPEC-OBJECT IDENTIFIER=\"SPEC_OBJ_2\">",
		"REQ_ID", "REQ_TITLE", "REQ_DESCRIPTION", "REQ_PHASE",
		"REQ_TYPE", "REQ_PRIORITY", "REQ_VERIFICATION",
	} {
		if !strings.Contains(reqif, want) {
			t.Errorf("ReqIF export missing %q", want)
		}
	}

	// XML special characters in text fields are escaped.
	if strings.Contains(reqif, "<angle>") {
		t.Error("unescaped angle brackets in ReqIF output")
	}
	if !strings.Contains(reqif, "&lt;angle&gt;") {
		t.Error("expected escaped angle brackets")
	}
	if !strings.Contains(reqif, "&amp;") {
		t.Error("expected escaped ampersand")
	}
}

func TestExportDispatch(t *testing.T) {
	doc := sampleDocument()

	for _, format := range []string{FormatJSON, FormatMarkdown, FormatExcel, FormatDOORS, FormatReqIF} {
		output, err := Export(doc, format)
		if err != nil {
			t.Errorf("Export(%s) failed: %v", format, err)
		}
		if output == "" {
			t.Errorf("Export(%s) returned empty output", format)
		}
	}

	if _, err := Export(doc, "YAML"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
