// Package engine defines the text-generation engine abstraction and
// its implementations: installed assistant CLIs and an
// OpenAI-compatible HTTP API.
package engine

import "context"

// Request is a generation request passed to an engine.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// CombinedPrompt merges system and user prompts for engines that have
// no separate system message channel (the CLI tools).
func (r *Request) CombinedPrompt() string {
	if r.SystemPrompt == "" {
		return r.UserPrompt
	}
	return r.SystemPrompt + "\n\n" + r.UserPrompt
}

// LLMEngine is a single text-generation backend. Engines are chained
// by the client: IsAvailable gates participation, Execute does the
// work.
type LLMEngine interface {
	// Name returns the engine identifier for logs.
	Name() string

	// IsAvailable reports whether the engine can be used right now
	// (binary installed, key configured).
	IsAvailable() bool

	// Execute runs one generation request.
	Execute(ctx context.Context, req *Request) (string, error)
}
