package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arise/internal/export"
	"arise/internal/orchestrator"
)

var (
	analyzePhase   string
	analyzeTypes   []string
	analyzeProject string
	analyzeOutput  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <proposal-file>",
	Short: "Run the full ARCADIA analysis pipeline over a proposal",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzePhase, "phase", "p", "all", "target phase: operational|system|logical|physical|all")
	analyzeCmd.Flags().StringSliceVarP(&analyzeTypes, "types", "t", nil, "requirement types (functional,non_functional,stakeholder)")
	analyzeCmd.Flags().StringVar(&analyzeProject, "project", "", "project name for persistence")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write JSON result to file instead of stdout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	proposalPath := args[0]
	data, err := os.ReadFile(proposalPath)
	if err != nil {
		return fmt.Errorf("failed to read proposal: %w", err)
	}

	client, err := newLLMClient(cmd.Context())
	if err != nil {
		return err
	}

	orch := orchestrator.New(cfg.Pipeline, client, cfg.LLM.Model, nil)

	logger.Info("starting analysis",
		zap.String("proposal", proposalPath),
		zap.String("phase", analyzePhase))

	result, err := orch.Run(cmd.Context(), string(data), analyzePhase, analyzeTypes, analyzeProject)
	if err != nil {
		return err
	}

	output, err := export.ToResultJSON(result)
	if err != nil {
		return err
	}

	if analyzeOutput != "" {
		if err := os.WriteFile(analyzeOutput, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		logger.Info("analysis complete",
			zap.String("output", analyzeOutput),
			zap.Float64("quality", result.QualityScore),
			zap.Float64("seconds", result.GenerationTime))
		return nil
	}

	fmt.Println(output)
	return nil
}
