package gobuild

import (
	"github.com/remedykit/remedy-cli/internal/diag"
)

func init() {
	_ = diag.Global().Register(New())
}
