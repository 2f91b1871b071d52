package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"arise/internal/logging"
)

// OllamaClient implements Client against a local or remote Ollama server
// using the native /api/generate endpoint.
type OllamaClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// OllamaConfig holds configuration for the Ollama client.
type OllamaConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// DefaultOllamaConfig returns sensible defaults.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		BaseURL:    "http://localhost:11434",
		Timeout:    120 * time.Second,
		MaxRetries: 3,
	}
}

// NewOllamaClient creates a client with default config.
func NewOllamaClient(baseURL string) *OllamaClient {
	cfg := DefaultOllamaConfig()
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return NewOllamaClientWithConfig(cfg)
}

// NewOllamaClientWithConfig creates a client with custom config.
func NewOllamaClientWithConfig(cfg OllamaConfig) *OllamaClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &OllamaClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxRetries: cfg.MaxRetries,
	}
}

// ollamaGenerateRequest is the native Ollama generate request body.
type ollamaGenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// ollamaGenerateResponse is the non-streaming response body.
type ollamaGenerateResponse struct {
	Model     string `json:"model"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	EvalCount int    `json:"eval_count,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Generate sends a prompt and returns the completion text.
func (c *OllamaClient) Generate(ctx context.Context, model string, prompt string, opts Options) (string, error) {
	timer := logging.StartTimer(logging.CategoryAPI, "Ollama.Generate")
	defer timer.Stop()

	reqBody := ollamaGenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": opts.Temperature,
		},
	}
	if opts.MaxTokens > 0 {
		reqBody.Options["num_predict"] = opts.MaxTokens
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if opts.Timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	logging.APIDebug("Ollama.Generate: model=%s prompt_chars=%d temp=%.2f", model, len(prompt), opts.Temperature)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			logging.APIWarn("Ollama.Generate: retry %d/%d after %v (%v)", attempt, c.maxRetries, backoff, lastErr)
			select {
			case <-reqCtx.Done():
				return "", fmt.Errorf("request cancelled: %w", reqCtx.Err())
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(reqCtx, "POST", c.baseURL+"/api/generate", bytes.NewReader(jsonData))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if errors.Is(reqCtx.Err(), context.Canceled) {
				return "", fmt.Errorf("request cancelled: %w", reqCtx.Err())
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			logging.APIError("Ollama.Generate: rate limited (429)")
			return "", ErrRateLimited
		}

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body))
		}

		var genResp ollamaGenerateResponse
		if err := json.Unmarshal(body, &genResp); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}

		if genResp.Error != "" {
			return "", fmt.Errorf("ollama error: %s", genResp.Error)
		}

		if strings.TrimSpace(genResp.Response) == "" {
			return "", ErrEmptyCompletion
		}

		logging.API("Ollama.Generate: completed, model=%s response_chars=%d", model, len(genResp.Response))
		return strings.TrimSpace(genResp.Response), nil
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}
