package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/remedykit/remedy-cli/internal/llm"
	"github.com/remedykit/remedy-cli/internal/llm/engine"
	"github.com/remedykit/remedy-cli/internal/patch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine returns a canned response or error.
type fakeEngine struct {
	response string
	err      error
}

func (f *fakeEngine) Name() string      { return "fake" }
func (f *fakeEngine) IsAvailable() bool { return true }
func (f *fakeEngine) Execute(ctx context.Context, req *engine.Request) (string, error) {
	return f.response, f.err
}

func newTestGenerator(eng engine.LLMEngine) *LLMGenerator {
	return NewLLMGenerator(llm.NewClient(llm.WithEngines(eng)), nil)
}

func TestGenerateFixForError(t *testing.T) {
	response := "Fixing the import.\n```diff\n--- a/src/app.ts\n+++ b/src/app.ts\n@@ -2,1 +2,1 @@\n-import { Observable } from 'rxjs/Observable';\n+import { Observable } from 'rxjs';\n```"
	gen := newTestGenerator(&fakeEngine{response: response})

	patches, err := gen.GenerateFixForError(context.Background(), "Cannot find module 'rxjs/Observable'.", "1: import ...", "")
	require.NoError(t, err)
	require.Len(t, patches, 1)

	p := patches[0]
	assert.Equal(t, patch.SourceGenerated, p.Source)
	assert.Equal(t, "src/app.ts", p.FilePath)
	assert.Contains(t, p.Diff, "+import { Observable } from 'rxjs';")
	assert.Contains(t, p.Description, "Generated fix:")
}

func TestGenerateFixForErrorSkip(t *testing.T) {
	gen := newTestGenerator(&fakeEngine{response: "SKIP"})

	patches, err := gen.GenerateFixForError(context.Background(), "some error", "", "")
	require.NoError(t, err)
	assert.Empty(t, patches)
}

func TestGenerateFixForErrorNoDiffInResponse(t *testing.T) {
	gen := newTestGenerator(&fakeEngine{response: "You should update the imports by hand."})

	patches, err := gen.GenerateFixForError(context.Background(), "some error", "", "")
	require.NoError(t, err)
	assert.Empty(t, patches)
}

func TestGenerateFixForErrorTransportFailure(t *testing.T) {
	gen := newTestGenerator(&fakeEngine{err: errors.New("connection refused")})

	patches, err := gen.GenerateFixForError(context.Background(), "some error", "", "")
	require.Error(t, err)
	assert.Empty(t, patches)
}

func TestGenerateFixForErrorNoFileHeader(t *testing.T) {
	// Diff without --- header: FilePath stays empty for the caller to
	// fill in.
	response := "```diff\n@@ -1,1 +1,1 @@\n-a\n+b\n```"
	gen := newTestGenerator(&fakeEngine{response: response})

	patches, err := gen.GenerateFixForError(context.Background(), "err", "", "")
	require.NoError(t, err)
	require.Len(t, patches, 1)
	assert.Empty(t, patches[0].FilePath)
}
