// Package tsc adapts TypeScript compiler (tsc) output into diagnostics.
package tsc

import (
	"github.com/remedykit/remedy-cli/internal/diag"
)

// Compile-time interface check
var _ diag.Adapter = (*Adapter)(nil)

// Adapter parses tsc text output.
//
// Note: Adapter is goroutine-safe and stateless.
type Adapter struct{}

// New creates a new tsc adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return "tsc"
}

// ParseOutput converts tsc output to diagnostics.
func (a *Adapter) ParseOutput(output string) ([]diag.Diagnostic, error) {
	return parseOutput(output)
}
