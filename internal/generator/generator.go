// Package generator implements tier 2: asking an external
// text-generation service for unified-diff patches when no
// deterministic rule matched a cluster.
package generator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/remedykit/remedy-cli/internal/llm"
	"github.com/remedykit/remedy-cli/internal/patch"
	"go.uber.org/zap"
)

// FixGenerator produces candidate patches for one error. The call is
// asynchronous-by-contract and may fail; callers must treat a failure
// as "zero patches produced", never as a fatal run error.
type FixGenerator interface {
	GenerateFixForError(ctx context.Context, errorMessage, codeContext, supportingDocs string) ([]patch.Patch, error)
}

const systemPrompt = `You are a code migration assistant. A dependency upgrade broke the build.
Given a compiler error, the surrounding code, and upgrade notes, produce a fix as a unified diff.

Rules:
- Respond with exactly one fenced ` + "```diff" + ` block and nothing else.
- Use hunk headers of the form @@ -<start>,<count> +<start>,<count> @@ with 1-indexed line numbers matching the code context.
- Prefix removed lines with -, added lines with +, unchanged lines with a space.
- Change as few lines as possible. If you cannot produce a safe fix, respond with the single word SKIP.`

// LLMGenerator is the FixGenerator backed by the llm client chain.
type LLMGenerator struct {
	client *llm.Client
	log    *zap.Logger
}

// NewLLMGenerator creates a generator on top of an LLM client.
func NewLLMGenerator(client *llm.Client, log *zap.Logger) *LLMGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMGenerator{client: client, log: log}
}

var fileHeader = regexp.MustCompile(`(?m)^--- a/(.+)$`)

// GenerateFixForError asks the model for a patch and extracts the
// diff with the two-stage parse. A response of SKIP, an extraction
// miss, or a diff with no parseable hunks all yield zero patches
// without error; only transport-level failures return an error.
func (g *LLMGenerator) GenerateFixForError(ctx context.Context, errorMessage, codeContext, supportingDocs string) ([]patch.Patch, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "## Compiler error\n%s\n", errorMessage)
	if codeContext != "" {
		fmt.Fprintf(&prompt, "\n## Code context\n```\n%s\n```\n", codeContext)
	}
	if supportingDocs != "" {
		fmt.Fprintf(&prompt, "\n## Upgrade notes\n%s\n", supportingDocs)
	}

	response, err := g.client.Complete(ctx, systemPrompt, prompt.String())
	if err != nil {
		return nil, fmt.Errorf("fix generation failed: %w", err)
	}

	if strings.TrimSpace(response) == "SKIP" {
		g.log.Debug("generator declined to fix", zap.String("error", errorMessage))
		return nil, nil
	}

	diff, status := ExtractDiff(response)
	if status == ExtractNone {
		g.log.Debug("no diff in generator response", zap.String("error", errorMessage))
		return nil, nil
	}

	if hunks := patch.ParseDiff(diff); len(hunks) == 0 {
		return nil, nil
	}

	// The target file is usually known to the caller; a --- header in
	// the diff fills it in when present.
	filePath := ""
	if m := fileHeader.FindStringSubmatch(diff); m != nil {
		filePath = m[1]
	}

	g.log.Debug("generated patch",
		zap.String("error", errorMessage),
		zap.String("extraction", status.String()))

	return []patch.Patch{{
		Diff:        diff,
		Description: "Generated fix: " + firstSentence(errorMessage),
		FilePath:    filePath,
		Source:      patch.SourceGenerated,
	}}, nil
}

// firstSentence trims an error message down to summary length.
func firstSentence(s string) string {
	if i := strings.IndexAny(s, ".\n"); i > 0 {
		return s[:i]
	}
	return s
}
