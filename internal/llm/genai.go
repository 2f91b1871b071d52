package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"arise/internal/logging"
)

// GenAIClient implements Client against Google's Gemini API.
type GenAIClient struct {
	client     *genai.Client
	maxRetries int
}

// NewGenAIClient creates a Gemini-backed gateway.
func NewGenAIClient(ctx context.Context, apiKey string, maxRetries int) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	logging.API("GenAI client created")
	return &GenAIClient{
		client:     client,
		maxRetries: maxRetries,
	}, nil
}

func float32Ptr(f float32) *float32 {
	return &f
}

// Generate sends a prompt and returns the completion text.
func (c *GenAIClient) Generate(ctx context.Context, model string, prompt string, opts Options) (string, error) {
	timer := logging.StartTimer(logging.CategoryAPI, "GenAI.Generate")
	defer timer.Stop()

	reqCtx := ctx
	var cancel context.CancelFunc
	if opts.Timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: float32Ptr(float32(opts.Temperature)),
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	logging.APIDebug("GenAI.Generate: model=%s prompt_chars=%d temp=%.2f", model, len(prompt), opts.Temperature)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			logging.APIWarn("GenAI.Generate: retry %d/%d after %v (%v)", attempt, c.maxRetries, backoff, lastErr)
			select {
			case <-reqCtx.Done():
				return "", fmt.Errorf("request cancelled: %w", reqCtx.Err())
			case <-time.After(backoff):
			}
		}

		result, err := c.client.Models.GenerateContent(reqCtx, model, contents, cfg)
		if err != nil {
			if isRateLimitError(err) {
				logging.APIError("GenAI.Generate: rate limited")
				return "", ErrRateLimited
			}
			if reqCtx.Err() != nil {
				return "", fmt.Errorf("request cancelled: %w", reqCtx.Err())
			}
			lastErr = fmt.Errorf("generate failed: %w", err)
			continue
		}

		text := result.Text()
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyCompletion
		}

		logging.API("GenAI.Generate: completed, model=%s response_chars=%d", model, len(text))
		return strings.TrimSpace(text), nil
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// isRateLimitError detects quota errors from the Gemini API.
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "quota")
}
