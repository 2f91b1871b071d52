package export

import (
	"fmt"
	"strings"
	"time"

	"arise/internal/arcadia"
)

// xmlEscape escapes XML special characters in attribute text.
func xmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

// ToReqIF renders the document as OMG ReqIF XML with one SPEC-OBJECT
// per requirement and the REQ_ID/REQ_TITLE/REQ_DESCRIPTION/REQ_PHASE/
// REQ_TYPE/REQ_PRIORITY/REQ_VERIFICATION attribute definitions.
func ToReqIF(doc arcadia.RequirementsDocument) string {
	var sb strings.Builder

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<REQ-IF xmlns="http://www.omg.org/ReqIF" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
    <THE-HEADER>
        <REQ-IF-HEADER IDENTIFIER="ARISE_EXPORT">
            <COMMENT>Generated by ARISE</COMMENT>
            <CREATION-TIME>`)
	sb.WriteString(fmt.Sprintf("%d", time.Now().Unix()))
	sb.WriteString(`</CREATION-TIME>
            <REPOSITORY-ID>ARISE</REPOSITORY-ID>
            <REQ-IF-TOOL-ID>ARISE_SYSTEM</REQ-IF-TOOL-ID>
            <REQ-IF-VERSION>1.0</REQ-IF-VERSION>
            <SOURCE-TOOL-ID>ARISE</SOURCE-TOOL-ID>
            <TITLE>ARISE Requirements Export</TITLE>
        </REQ-IF-HEADER>
    </THE-HEADER>
    <CORE-CONTENT>
        <REQ-IF-CONTENT>
            <SPEC-OBJECTS>`)

	specID := 1
	for _, phase := range orderedPhases(doc) {
		for _, group := range typeGroups(doc.Requirements[phase]) {
			for _, req := range group.Reqs {
				writeSpecObject(&sb, specID, req, string(phase), group.Name)
				specID++
			}
		}
	}

	sb.WriteString(`
            </SPEC-OBJECTS>
        </REQ-IF-CONTENT>
    </CORE-CONTENT>
</REQ-IF>`)

	return sb.String()
}

func writeSpecObject(sb *strings.Builder, specID int, req arcadia.Requirement, phase, reqType string) {
	attributes := []struct {
		Definition string
		Value      string
	}{
		{"REQ_ID", req.ID},
		{"REQ_TITLE", xmlEscape(req.Title)},
		{"REQ_DESCRIPTION", xmlEscape(req.Description)},
		{"REQ_PHASE", phase},
		{"REQ_TYPE", strings.ToLower(reqType)},
		{"REQ_PRIORITY", string(req.Priority)},
		{"REQ_VERIFICATION", xmlEscape(req.VerificationMethod)},
	}

	fmt.Fprintf(sb, `
                <SPEC-OBJECT IDENTIFIER="SPEC_OBJ_%d">
                    <VALUES>`, specID)
	for _, attr := range attributes {
		fmt.Fprintf(sb, `
                        <ATTRIBUTE-VALUE-STRING THE-VALUE="%s">
                            <DEFINITION>
                                <ATTRIBUTE-DEFINITION-STRING-REF>%s</ATTRIBUTE-DEFINITION-STRING-REF>
                            </DEFINITION>
                        </ATTRIBUTE-VALUE-STRING>`, attr.Value, attr.Definition)
	}
	sb.WriteString(`
                    </VALUES>
                </SPEC-OBJECT>`)
}
