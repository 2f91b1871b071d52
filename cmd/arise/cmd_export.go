package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arise/internal/arcadia"
	"arise/internal/export"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <requirements-json>",
	Short: "Render a saved requirements document in another format",
	Long: `Reads a requirements document (the traditional_requirements structure
of an analyze result) and renders it as Markdown, CSV, DOORS or ReqIF.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", export.FormatMarkdown,
		"output format: JSON|Markdown|Excel|DOORS|ReqIF")
}

func runExport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read requirements: %w", err)
	}

	// Accept either a bare requirements document or a full analyze
	// result carrying one under traditional_requirements.
	var doc arcadia.RequirementsDocument
	var wrapper struct {
		Traditional *arcadia.RequirementsDocument `json:"traditional_requirements"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Traditional != nil {
		doc = *wrapper.Traditional
	} else if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse requirements document: %w", err)
	}

	output, err := export.Export(doc, exportFormat)
	if err != nil {
		return err
	}

	fmt.Println(output)
	return nil
}
