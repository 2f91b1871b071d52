package export

import (
	"fmt"
	"strings"

	"arise/internal/arcadia"
)

// ToDOORS renders the document in the DOORS plain-text block format:
// module main, per-phase folder sections, per-requirement attribute
// assignments, closed with end folder / end module.
func ToDOORS(doc arcadia.RequirementsDocument) string {
	var sb strings.Builder
	sb.WriteString("// DOORS Import File\n")
	sb.WriteString("// Generated by ARISE\n\n")
	sb.WriteString("module main\n\n")

	for _, phase := range orderedPhases(doc) {
		fmt.Fprintf(&sb, "// %s Phase Requirements\n", titleCase(string(phase)))

		for _, group := range typeGroups(doc.Requirements[phase]) {
			if len(group.Reqs) == 0 {
				continue
			}
			fmt.Fprintf(&sb, "folder %q\n", strings.ReplaceAll(group.Name, "_", "-"))

			for _, req := range group.Reqs {
				title := strings.ReplaceAll(req.Title, `"`, `""`)
				description := strings.ReplaceAll(req.Description, `"`, `""`)

				fmt.Fprintf(&sb, "requirement \"%s\" = \"%s\"\n", req.ID, title)
				fmt.Fprintf(&sb, "text = \"%s\"\n", description)
				fmt.Fprintf(&sb, "priority = \"%s\"\n", req.Priority)
				fmt.Fprintf(&sb, "verification = \"%s\"\n\n", req.VerificationMethod)
			}

			sb.WriteString("end folder\n\n")
		}
	}

	sb.WriteString("end module\n")
	return sb.String()
}
