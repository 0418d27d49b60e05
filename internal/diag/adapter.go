package diag

// Adapter converts one analyzer's native output into Diagnostics.
//
// Design:
// - One adapter per tool (tsc, go build, ...)
// - Adapters are stateless and goroutine-safe
// - The core never sees tool-specific diagnostic shapes
type Adapter interface {
	// Name returns the adapter name (e.g., "tsc", "gobuild").
	Name() string

	// ParseOutput converts raw tool output (stdout+stderr, text) into
	// diagnostics. Unrecognized lines are skipped, never an error.
	ParseOutput(output string) ([]Diagnostic, error)
}
