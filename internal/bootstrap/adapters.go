package bootstrap

import (
	// Import adapters for registration side-effects.
	// Each adapter's register.go file contains an init() function
	// that registers the adapter with the global registry.
	_ "github.com/remedykit/remedy-cli/internal/diag/gobuild"
	_ "github.com/remedykit/remedy-cli/internal/diag/tsc"
)

// This package only imports adapter and rule packages for their init()
// side-effects. Import this package from main.go to ensure everything
// is registered.
