package llm

import (
	"context"
	"strings"
	"sync"
)

// ScriptedClient is a deterministic Client for tests. Responses are
// selected by prompt substring match, in registration order; unmatched
// prompts receive the default response. Every call is recorded so tests
// can assert on prompt contents and call counts.
type ScriptedClient struct {
	mu       sync.Mutex
	rules    []scriptRule
	fallback string
	calls    []ScriptedCall
}

type scriptRule struct {
	substring string
	response  string
}

// ScriptedCall records a single Generate invocation.
type ScriptedCall struct {
	Model  string
	Prompt string
	Opts   Options
}

// NewScriptedClient creates a stub whose unmatched prompts return fallback.
func NewScriptedClient(fallback string) *ScriptedClient {
	return &ScriptedClient{fallback: fallback}
}

// Respond registers a response for prompts containing the given substring.
func (c *ScriptedClient) Respond(substring, response string) *ScriptedClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = append(c.rules, scriptRule{substring: substring, response: response})
	return c
}

// Generate returns the first matching scripted response.
func (c *ScriptedClient) Generate(ctx context.Context, model string, prompt string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, ScriptedCall{Model: model, Prompt: prompt, Opts: opts})

	for _, rule := range c.rules {
		if strings.Contains(prompt, rule.substring) {
			return rule.response, nil
		}
	}
	return c.fallback, nil
}

// Calls returns a copy of the recorded invocations.
func (c *ScriptedClient) Calls() []ScriptedCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ScriptedCall, len(c.calls))
	copy(out, c.calls)
	return out
}

// CallCount returns the number of Generate invocations so far.
func (c *ScriptedClient) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}
