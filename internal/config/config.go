package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"arise/internal/logging"
)

// Config holds all ARISE configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// LLM gateway configuration
	LLM LLMConfig `yaml:"llm"`

	// Embedding engine configuration
	Embedding EmbeddingConfig `yaml:"embedding"`

	// Vector store configuration
	Store StoreConfig `yaml:"store"`

	// Pipeline feature flags
	Pipeline PipelineConfig `yaml:"pipeline"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the LLM gateway.
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // "ollama" or "genai"
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Timeout     string  `yaml:"timeout"`
	MaxRetries  int     `yaml:"max_retries"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// EmbeddingConfig configures the embedding engine backend.
type EmbeddingConfig struct {
	Provider       string `yaml:"provider"` // "ollama" or "genai"
	OllamaEndpoint string `yaml:"ollama_endpoint"`
	OllamaModel    string `yaml:"ollama_model"`
	GenAIAPIKey    string `yaml:"genai_api_key"`
	GenAIModel     string `yaml:"genai_model"`
	TaskType       string `yaml:"task_type"`
}

// StoreConfig configures the persistent vector store.
type StoreConfig struct {
	DatabasePath   string `yaml:"database_path"`
	CollectionName string `yaml:"collection_name"`
}

// PipelineConfig holds the orchestrator feature flags.
type PipelineConfig struct {
	EnableEnhancedGeneration bool    `yaml:"enable_enhanced_generation"`
	EnableStructuredAnalysis bool    `yaml:"enable_structured_analysis"`
	EnablePersistence        bool    `yaml:"enable_persistence"`
	EnableValidation         bool    `yaml:"enable_validation"`
	EnableEnrichment         bool    `yaml:"enable_enrichment"`
	EnableCrossPhaseAnalysis bool    `yaml:"enable_cross_phase_analysis"`
	QualityThreshold         float64 `yaml:"quality_threshold"`
}

// LoggingConfig mirrors the file-logger settings.
type LoggingConfig struct {
	Level      string          `yaml:"level"`
	DebugMode  bool            `yaml:"debug_mode"`
	JSONFormat bool            `yaml:"json_format"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "ARISE",
		Version: "1.0.0",

		LLM: LLMConfig{
			Provider:    "ollama",
			Model:       "llama3:instruct",
			BaseURL:     "http://localhost:11434",
			Timeout:     "60s",
			MaxRetries:  3,
			Temperature: 0.3,
			MaxTokens:   4096,
		},

		Embedding: EmbeddingConfig{
			Provider:       "ollama",
			OllamaEndpoint: "http://localhost:11434",
			OllamaModel:    "embeddinggemma",
			GenAIModel:     "gemini-embedding-001",
			TaskType:       "SEMANTIC_SIMILARITY",
		},

		Store: StoreConfig{
			DatabasePath:   "data/arise.db",
			CollectionName: "proposal_chunks",
		},

		Pipeline: PipelineConfig{
			EnableEnhancedGeneration: true,
			EnableStructuredAnalysis: true,
			EnablePersistence:        true,
			EnableValidation:         true,
			EnableEnrichment:         true,
			EnableCrossPhaseAnalysis: true,
			QualityThreshold:         0.7,
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the given path, falling back to defaults
// for anything the file does not set. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = filepath.Join(".arise", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.BootDebug("No config file at %s, using defaults", path)
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Boot("Configuration loaded from %s (llm=%s/%s, embedding=%s)",
		path, cfg.LLM.Provider, cfg.LLM.Model, cfg.Embedding.Provider)
	return cfg, nil
}

// applyEnvOverrides pulls secrets from the environment. Env always wins
// over file values so keys never need to live on disk.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ARISE_LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		if c.LLM.Provider == "genai" && c.LLM.APIKey == "" {
			c.LLM.APIKey = v
		}
		if c.Embedding.GenAIAPIKey == "" {
			c.Embedding.GenAIAPIKey = v
		}
	}
	if v := os.Getenv("ARISE_LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("ARISE_DB_PATH"); v != "" {
		c.Store.DatabasePath = v
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "ollama", "genai":
	default:
		return fmt.Errorf("unsupported llm provider: %s (use 'ollama' or 'genai')", c.LLM.Provider)
	}
	switch c.Embedding.Provider {
	case "ollama", "genai":
	default:
		return fmt.Errorf("unsupported embedding provider: %s (use 'ollama' or 'genai')", c.Embedding.Provider)
	}
	if _, err := c.LLMTimeout(); err != nil {
		return err
	}
	if c.Pipeline.QualityThreshold < 0 || c.Pipeline.QualityThreshold > 1 {
		return fmt.Errorf("quality_threshold must be in [0,1], got %v", c.Pipeline.QualityThreshold)
	}
	return nil
}

// LLMTimeout parses the LLM timeout string.
func (c *Config) LLMTimeout() (time.Duration, error) {
	if c.LLM.Timeout == "" {
		return 60 * time.Second, nil
	}
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid llm timeout %q: %w", c.LLM.Timeout, err)
	}
	return d, nil
}

// Save writes the configuration to the given path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
