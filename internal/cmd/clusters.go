package cmd

import (
	"fmt"

	"github.com/remedykit/remedy-cli/internal/cluster"
	"github.com/remedykit/remedy-cli/internal/ui"
	"github.com/spf13/cobra"
)

var clustersInput string

var clustersCmd = &cobra.Command{
	Use:   "clusters --tool <tool>",
	Short: "Group build errors into clusters by message shape",
	Long: `Parse raw compiler or build output and group the diagnostics into
error clusters. Messages that differ only in string literals, numbers,
or file paths land in the same cluster, so a hundred instances of one
broken import show up as a single problem to solve.`,
	Example: `  tsc --noEmit 2>&1 | remedy clusters --tool tsc
  remedy clusters --tool gobuild --input build.log`,
	RunE: runClusters,
}

var clustersTool string

func init() {
	rootCmd.AddCommand(clustersCmd)

	clustersCmd.Flags().StringVarP(&clustersTool, "tool", "t", "", "diagnostic tool that produced the output (required)")
	clustersCmd.Flags().StringVarP(&clustersInput, "input", "i", "", "input file (default: stdin)")
	_ = clustersCmd.MarkFlagRequired("tool")
}

func runClusters(cmd *cobra.Command, args []string) error {
	output, err := readInput(clustersInput)
	if err != nil {
		return err
	}

	diagnostics, err := parseDiagnostics(clustersTool, output)
	if err != nil {
		return err
	}

	clusters := cluster.Cluster(diagnostics)
	if len(clusters) == 0 {
		ui.PrintInfo("No diagnostics found")
		return nil
	}

	ui.PrintTitle("CLUSTERS", fmt.Sprintf("%d cluster(s) across %d diagnostic(s)", len(clusters), len(diagnostics)))
	for _, c := range clusters {
		fmt.Println()
		fmt.Printf("%s  (%d instance(s))\n", c.ID, c.Size())
		ui.PrintIndent("pattern: " + c.Pattern)
		ui.PrintIndent("first:   " + c.Representative.String())
		if verbose {
			for _, d := range c.Instances[1:] {
				ui.PrintIndent("         " + d.String())
			}
		}
	}

	return nil
}
