package main

import (
	"github.com/remedykit/remedy-cli/internal/cmd"

	// Bootstrap: register all diagnostic adapters and pattern rules
	_ "github.com/remedykit/remedy-cli/internal/bootstrap"
)

// Version is set by build -ldflags "-X main.Version=x.y.z"
var Version = "dev"

func main() {
	// Set version for version command
	cmd.SetVersion(Version)

	cmd.Execute()
}
