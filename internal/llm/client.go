// Package llm provides the gateway to remote text-generation endpoints.
// It is the only package that knows the wire format of the underlying
// provider; every other component sees a plain text-in / text-out contract.
package llm

import (
	"context"
	"errors"
	"time"
)

// Client defines the single-operation interface to an LLM endpoint.
type Client interface {
	// Generate sends a prompt to the named model and returns the text
	// produced. Transport and timeout failures are retried internally
	// (up to the configured retry count); rate-limit errors propagate
	// as ErrRateLimited. Response parsing is a caller concern.
	Generate(ctx context.Context, model string, prompt string, opts Options) (string, error)
}

// Options controls a single generation request.
type Options struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultOptions returns the options used by the extraction pipeline.
func DefaultOptions() Options {
	return Options{
		Temperature: 0.3,
		MaxTokens:   4096,
		Timeout:     60 * time.Second,
	}
}

// Sentinel errors surfaced by gateway implementations.
var (
	// ErrRateLimited indicates the endpoint rejected the request with a
	// rate limit. It is not retried; callers decide how to back off.
	ErrRateLimited = errors.New("llm: rate limit exceeded")

	// ErrEmptyCompletion indicates the endpoint returned no text body.
	ErrEmptyCompletion = errors.New("llm: no completion returned")
)
