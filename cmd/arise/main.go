// Package main implements the arise CLI - an ARCADIA extraction and
// requirements-generation pipeline over engineering project proposals.
//
// Command implementations are split across cmd_*.go files:
//   - cmd_analyze.go - analyzeCmd, runAnalyze()
//   - cmd_ingest.go  - ingestCmd, runIngest()
//   - cmd_chat.go    - chatCmd, runChat()
//   - cmd_export.go  - exportCmd, runExport()
//   - cmd_stats.go   - statsCmd, runStats()
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"arise/internal/config"
	"arise/internal/embedding"
	"arise/internal/llm"
	"arise/internal/logging"
	"arise/internal/store"
)

var (
	// Global flags
	verbose    bool
	configPath string
	workspace  string

	// Shared state
	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "arise",
	Short: "ARISE - ARCADIA extraction and requirements generation",
	Long: `ARISE ingests free-form engineering project proposals and produces a
structured multi-phase ARCADIA analysis: actors, capabilities,
functions, components, traceability, gap analysis and derived
requirements with priorities and verification methods.

A retrieval-augmented chat surface answers questions grounded in the
ingested document corpus.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize zap logger for CLI output
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// Initialize internal file-based logging for telemetry
		ws := workspace
		if ws == "" {
			ws, _ = os.Getwd()
		}
		if err := logging.Initialize(ws); err != nil {
			logger.Warn("file logging unavailable", zap.Error(err))
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default .arise/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&workspace, "workspace", "", "workspace directory (default cwd)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
}

// newLLMClient builds the gateway from configuration.
func newLLMClient(ctx context.Context) (llm.Client, error) {
	timeout, err := cfg.LLMTimeout()
	if err != nil {
		return nil, err
	}

	switch cfg.LLM.Provider {
	case "genai":
		return llm.NewGenAIClient(ctx, cfg.LLM.APIKey, cfg.LLM.MaxRetries)
	default:
		return llm.NewOllamaClientWithConfig(llm.OllamaConfig{
			BaseURL:    cfg.LLM.BaseURL,
			Timeout:    timeout,
			MaxRetries: cfg.LLM.MaxRetries,
		}), nil
	}
}

// openStore opens the embedding store and attaches the configured
// embedding engine. Engine construction failure degrades to keyword
// search rather than failing the command.
func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.Store.DatabasePath, cfg.Store.CollectionName)
	if err != nil {
		return nil, err
	}

	engine, err := embedding.NewEngine(embedding.Config{
		Provider:       cfg.Embedding.Provider,
		OllamaEndpoint: cfg.Embedding.OllamaEndpoint,
		OllamaModel:    cfg.Embedding.OllamaModel,
		GenAIAPIKey:    cfg.Embedding.GenAIAPIKey,
		GenAIModel:     cfg.Embedding.GenAIModel,
		TaskType:       cfg.Embedding.TaskType,
	})
	if err != nil {
		logger.Warn("embedding engine unavailable, falling back to keyword search", zap.Error(err))
	} else {
		st.SetEmbeddingEngine(engine)
	}

	return st, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
