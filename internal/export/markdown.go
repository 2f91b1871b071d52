package export

import (
	"fmt"
	"strings"

	"arise/internal/arcadia"
)

// ToMarkdown renders the document as Markdown: an H1 per phase under
// "Generated Requirements", an H2 per category, an H3 per requirement
// id followed by description, priority and verification method.
func ToMarkdown(doc arcadia.RequirementsDocument) string {
	var sb strings.Builder
	sb.WriteString("# Generated Requirements\n\n")

	for _, phase := range orderedPhases(doc) {
		fmt.Fprintf(&sb, "# %s Phase\n\n", titleCase(string(phase)))

		for _, group := range typeGroups(doc.Requirements[phase]) {
			if len(group.Reqs) == 0 {
				continue
			}
			fmt.Fprintf(&sb, "## %s Requirements\n\n", strings.ReplaceAll(group.Name, "_", "-"))

			for _, req := range group.Reqs {
				fmt.Fprintf(&sb, "### %s\n\n", req.ID)
				fmt.Fprintf(&sb, "**%s**\n\n", req.Title)
				fmt.Fprintf(&sb, "*Description*: %s\n\n", req.Description)
				fmt.Fprintf(&sb, "*Priority*: %s\n\n", req.Priority)
				fmt.Fprintf(&sb, "*Verification*: %s\n\n", req.VerificationMethod)
				sb.WriteString("---\n\n")
			}
		}
	}

	return sb.String()
}
