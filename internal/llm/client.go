// Package llm provides the text-generation client used by the tier-2
// fix generator. Engines are tried in a fallback chain: each engine
// reports availability and the first one that succeeds wins.
package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/remedykit/remedy-cli/internal/llm/engine"
)

const (
	defaultMaxTokens   = 2000
	defaultTemperature = 0.2
)

// Client is an LLM client with fallback chain support.
type Client struct {
	engines []engine.LLMEngine

	provider   string // "claude", "gemini", or "api"; empty means auto-detect
	apiModel   string
	apiBaseURL string

	maxTokens   int
	temperature float64
	verbose     bool
}

// ClientOption is a functional option for configuring the client.
type ClientOption func(*Client)

// WithMaxTokens sets the default max tokens.
func WithMaxTokens(maxTokens int) ClientOption {
	return func(c *Client) { c.maxTokens = maxTokens }
}

// WithTemperature sets the default temperature.
func WithTemperature(temperature float64) ClientOption {
	return func(c *Client) { c.temperature = temperature }
}

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) ClientOption {
	return func(c *Client) { c.verbose = verbose }
}

// WithProvider pins the chain to one backend instead of auto-detect.
func WithProvider(provider string) ClientOption {
	return func(c *Client) { c.provider = provider }
}

// WithAPIConfig overrides the API engine's model and endpoint.
func WithAPIConfig(model, baseURL string) ClientOption {
	return func(c *Client) {
		c.apiModel = model
		c.apiBaseURL = baseURL
	}
}

// WithEngines replaces the engine chain, suppressing auto-detection
// even when called with no engines. Mainly for tests.
func WithEngines(engines ...engine.LLMEngine) ClientOption {
	return func(c *Client) { c.engines = append([]engine.LLMEngine{}, engines...) }
}

// NewClient creates a new LLM client. Without WithEngines, the chain
// is built from the environment: an installed assistant CLI first,
// then the OpenAI-compatible API when a key is configured.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.engines == nil {
		c.initEngines()
	}

	return c
}

// initEngines builds the engine fallback chain. A pinned provider
// yields a single-engine chain; otherwise CLI engines are tried in
// order, then the API engine when a key is configured.
func (c *Client) initEngines() {
	c.engines = []engine.LLMEngine{}

	for _, pt := range []engine.CLIProviderType{engine.ProviderClaude, engine.ProviderGemini} {
		if c.provider != "" && c.provider != string(pt) {
			continue
		}
		eng, err := engine.NewCLIEngine(pt, engine.WithCLIVerbose(c.verbose))
		if err == nil && eng.IsAvailable() {
			c.engines = append(c.engines, eng)
		}
	}

	if c.provider != "" && c.provider != "api" {
		return
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		opts := []engine.APIEngineOption{engine.WithAPIVerbose(c.verbose)}
		if c.apiModel != "" {
			opts = append(opts, engine.WithAPIModel(c.apiModel))
		}
		if c.apiBaseURL != "" {
			opts = append(opts, engine.WithAPIURL(c.apiBaseURL))
		}
		c.engines = append(c.engines, engine.NewAPIEngine(apiKey, opts...))
	}
}

// HasEngine reports whether any engine in the chain is available.
func (c *Client) HasEngine() bool {
	for _, eng := range c.engines {
		if eng.IsAvailable() {
			return true
		}
	}
	return false
}

// Complete sends the prompts through the engine chain and returns the
// first successful response.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := &engine.Request{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		MaxTokens:    c.maxTokens,
		Temperature:  c.temperature,
	}

	var lastErr error
	for _, eng := range c.engines {
		if !eng.IsAvailable() {
			continue
		}

		result, err := eng.Execute(ctx, req)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if c.verbose {
			fmt.Fprintf(os.Stderr, "engine %s failed: %v, trying next engine...\n", eng.Name(), err)
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("all engines failed, last error: %w", lastErr)
	}

	return "", fmt.Errorf("no available LLM engine configured")
}
