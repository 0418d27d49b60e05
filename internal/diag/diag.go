// Package diag defines the diagnostic shape shared by every analyzer
// adapter and consumed by the clustering and repair layers.
package diag

import "fmt"

// Severity levels reported by analyzers.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Diagnostic is a single compiler/analyzer-reported issue.
// Adapters map tool-native output into this shape before it enters the
// core; nothing downstream ever sees a tool-specific representation.
type Diagnostic struct {
	File     string
	Line     int // 1-indexed
	Message  string
	Severity string // "error", "warning", "info"
}

// String renders the diagnostic in the conventional file:line form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Severity, d.Message)
}

// IsError reports whether the diagnostic is an error (as opposed to a
// warning or informational message).
func (d Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}
