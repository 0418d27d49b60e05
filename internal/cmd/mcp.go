package cmd

import (
	"github.com/remedykit/remedy-cli/internal/config"
	"github.com/remedykit/remedy-cli/internal/logging"
	"github.com/remedykit/remedy-cli/internal/mcp"
	"github.com/remedykit/remedy-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var mcpDir string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server to integrate with coding agents",
	Long: `Start Model Context Protocol (MCP) server.
Coding agents can cluster build errors and request fix proposals
through stdio.

Tools provided by MCP server:
- cluster_errors: group raw diagnostics into error clusters
- suggest_fixes: propose unified-diff patches for the clusters

Communicates via stdio for integration with Claude Desktop, Claude Code, Cursor, and other MCP clients.`,
	Example: `  remedy mcp
  remedy mcp --dir ./service`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVarP(&mcpDir, "dir", "d", ".", "workspace root for code context lookups")
}

func runMCP(cmd *cobra.Command, args []string) error {
	appCfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(verbose)
	defer func() { _ = log.Sync() }()

	cfg := pipeline.Config{
		WorkDir:             mcpDir,
		MaxGeneratedPatches: appCfg.GetMaxGeneratedPatches(),
		ContextLines:        appCfg.GetContextLines(),
	}

	server := mcp.NewServer(cfg, newGenerator(appCfg, log), log)
	return server.Start(cmd.Context())
}
