package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/remedykit/remedy-cli/internal/config"
	"github.com/remedykit/remedy-cli/internal/diag"
	"github.com/remedykit/remedy-cli/internal/generator"
	"github.com/remedykit/remedy-cli/internal/llm"
	"go.uber.org/zap"
)

// readInput reads diagnostic output from a file, or from stdin when
// path is empty or "-". Piping build output in is the common case:
//
//	tsc --noEmit 2>&1 | remedy clusters --tool tsc
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

// parseDiagnostics resolves the named adapter and parses the output.
func parseDiagnostics(tool, output string) ([]diag.Diagnostic, error) {
	adapter, err := diag.Global().Get(tool)
	if err != nil {
		return nil, fmt.Errorf("unknown tool %q: supported tools are %s",
			tool, strings.Join(diag.Global().Names(), ", "))
	}
	return adapter.ParseOutput(output)
}

// newGenerator builds the tier-2 fix generator from config. Returns
// nil when no generation backend is available, which disables tier 2.
func newGenerator(cfg *config.Config, log *zap.Logger) generator.FixGenerator {
	client := llm.NewClient(
		llm.WithProvider(cfg.GetProvider()),
		llm.WithAPIConfig(cfg.GetModel(), cfg.GetAPIBaseURL()),
		llm.WithVerbose(verbose),
	)
	if !client.HasEngine() {
		log.Debug("no generation backend available, tier 2 disabled")
		return nil
	}
	return generator.NewLLMGenerator(client, log)
}
