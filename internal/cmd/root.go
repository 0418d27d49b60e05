package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// verbose is a global flag for verbose output
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "remedy",
	Short: "remedy - Automated repair for post-upgrade build errors",
	Long: `remedy clusters the compiler errors a dependency upgrade leaves behind
and repairs them in two tiers: deterministic pattern rules first, then
generated unified-diff patches for whatever the rules don't cover.

Features:
  - Error clustering by normalized message shape
  - Ordered pattern-rule registry (first match wins)
  - Unified-diff patch engine with validation and rollback
  - Generated fixes via claude/gemini CLIs or an OpenAI-compatible API
  - Dependency changelog lookups for fix context
  - MCP server for coding-agent integration`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
