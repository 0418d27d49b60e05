package bootstrap

import (
	// Import builtin rules for registration side-effects. Registration
	// order inside the package fixes rule priority.
	_ "github.com/remedykit/remedy-cli/internal/rule/builtin"
)
