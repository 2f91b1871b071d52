package export

import (
	"encoding/csv"
	"fmt"
	"strings"

	"arise/internal/arcadia"
)

// ToCSV renders the document in Excel-compatible CSV with columns
// ID, Phase, Type, Title, Description, Priority, Verification Method.
func ToCSV(doc arcadia.RequirementsDocument) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write([]string{"ID", "Phase", "Type", "Title", "Description", "Priority", "Verification Method"}); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, phase := range orderedPhases(doc) {
		for _, group := range typeGroups(doc.Requirements[phase]) {
			for _, req := range group.Reqs {
				record := []string{
					req.ID,
					titleCase(string(phase)),
					strings.ReplaceAll(group.Name, "_", "-"),
					req.Title,
					req.Description,
					string(req.Priority),
					req.VerificationMethod,
				}
				if err := writer.Write(record); err != nil {
					return "", fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
