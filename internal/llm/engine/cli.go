package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const defaultCLITimeout = 120 * time.Second

// CLIProviderType identifies a supported CLI tool.
type CLIProviderType string

const (
	// ProviderClaude is the Claude CLI provider.
	ProviderClaude CLIProviderType = "claude"
	// ProviderGemini is the Gemini CLI provider.
	ProviderGemini CLIProviderType = "gemini"
)

// IsValid checks if the provider type is valid.
func (t CLIProviderType) IsValid() bool {
	switch t {
	case ProviderClaude, ProviderGemini:
		return true
	default:
		return false
	}
}

// cliProvider defines how to invoke a specific CLI tool.
type cliProvider struct {
	command   string
	buildArgs func(prompt string) []string
}

var cliProviders = map[CLIProviderType]cliProvider{
	ProviderClaude: {
		command: "claude",
		buildArgs: func(prompt string) []string {
			return []string{"-p", prompt, "--output-format", "text"}
		},
	},
	ProviderGemini: {
		command: "gemini",
		buildArgs: func(prompt string) []string {
			return []string{"-p", prompt}
		},
	},
}

// CLIEngine implements LLMEngine by shelling out to an installed
// assistant CLI (claude, gemini).
type CLIEngine struct {
	providerType CLIProviderType
	provider     cliProvider
	timeout      time.Duration
	verbose      bool
	customPath   string
}

// CLIEngineOption is a functional option for CLIEngine.
type CLIEngineOption func(*CLIEngine)

// WithCLITimeout sets the execution timeout.
func WithCLITimeout(timeout time.Duration) CLIEngineOption {
	return func(e *CLIEngine) { e.timeout = timeout }
}

// WithCLIVerbose enables verbose logging.
func WithCLIVerbose(verbose bool) CLIEngineOption {
	return func(e *CLIEngine) { e.verbose = verbose }
}

// WithCLIPath sets a custom path to the CLI executable.
func WithCLIPath(path string) CLIEngineOption {
	return func(e *CLIEngine) { e.customPath = path }
}

// NewCLIEngine creates a new CLI engine for the given provider.
func NewCLIEngine(providerType CLIProviderType, opts ...CLIEngineOption) (*CLIEngine, error) {
	provider, ok := cliProviders[providerType]
	if !ok {
		return nil, fmt.Errorf("unsupported CLI provider: %s", providerType)
	}

	e := &CLIEngine{
		providerType: providerType,
		provider:     provider,
		timeout:      defaultCLITimeout,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Name returns the engine identifier.
func (e *CLIEngine) Name() string {
	return fmt.Sprintf("cli-%s", e.providerType)
}

// IsAvailable checks if the CLI executable is installed.
func (e *CLIEngine) IsAvailable() bool {
	_, err := exec.LookPath(e.commandPath())
	return err == nil
}

// Execute sends the request via the CLI tool.
func (e *CLIEngine) Execute(ctx context.Context, req *Request) (string, error) {
	prompt := req.CombinedPrompt()
	args := e.provider.buildArgs(prompt)

	if e.verbose {
		fmt.Fprintf(os.Stderr, "CLI engine (%s) request:\n  Prompt length: %d chars\n",
			e.providerType, len(prompt))
	}

	cmdCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, e.commandPath(), args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("CLI command timed out after %v", e.timeout)
		}
		return "", fmt.Errorf("CLI command failed: %w\nstderr: %s", err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// commandPath returns the path to the CLI executable.
func (e *CLIEngine) commandPath() string {
	if e.customPath != "" {
		return e.customPath
	}
	return e.provider.command
}
