// Package patch implements the unified-diff patch engine: parsing,
// validation, application, reversal, and all-or-nothing batch apply
// with rollback.
//
// The engine operates purely on text and line positions, not syntax
// trees. Patch success is therefore never guaranteed; validation
// guards against files that drifted since the patch was computed.
package patch

import (
	"errors"

	"go.uber.org/zap"
)

// Source records where a patch came from. Provenance is kept for
// audit and review output only; it never affects application.
type Source string

const (
	// SourcePattern marks patches produced by a deterministic rule.
	SourcePattern Source = "pattern"
	// SourceGenerated marks patches produced by the LLM generator.
	SourceGenerated Source = "generated"
	// SourceManual marks patches produced by hand or by Create.
	SourceManual Source = "manual"
)

// Patch is a value object wrapping one unified-diff against one file.
type Patch struct {
	// Diff is the unified-diff text.
	Diff string

	// Description is a human-readable summary for review output.
	Description string

	// FilePath is the target file, relative to the workspace root.
	FilePath string

	// Source records provenance.
	Source Source
}

// Failure taxonomy. Callers distinguish "stale patch" from structural
// problems so the run summary can report them separately.
var (
	// ErrNoHunks means the diff text contains no recoverable hunk
	// structure.
	ErrNoHunks = errors.New("no hunks found in diff")

	// ErrValidation means the file content no longer matches the
	// patch's context lines (stale patch). The file is left untouched.
	ErrValidation = errors.New("patch context does not match file content")

	// ErrApply means a splice position computed from the hunk headers
	// is invalid for the target content.
	ErrApply = errors.New("patch cannot be applied")
)

// Engine applies patches to files on disk.
//
// Content-level operations (ParseDiff, Validate, Apply, ReverseDiff,
// Create) are package-level pure functions; the Engine adds file I/O
// and batch semantics on top.
type Engine struct {
	log *zap.Logger
}

// NewEngine creates a patch engine. A nil logger disables debug traces.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}
