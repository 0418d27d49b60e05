// Package gobuild adapts `go build` compiler output into diagnostics.
package gobuild

import (
	"github.com/remedykit/remedy-cli/internal/diag"
)

// Compile-time interface check
var _ diag.Adapter = (*Adapter)(nil)

// Adapter parses go build text output.
type Adapter struct{}

// New creates a new go build adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return "gobuild"
}

// ParseOutput converts go build output to diagnostics.
func (a *Adapter) ParseOutput(output string) ([]diag.Diagnostic, error) {
	return parseOutput(output)
}
