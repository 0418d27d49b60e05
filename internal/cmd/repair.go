package cmd

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/remedykit/remedy-cli/internal/config"
	"github.com/remedykit/remedy-cli/internal/logging"
	"github.com/remedykit/remedy-cli/internal/pipeline"
	"github.com/remedykit/remedy-cli/internal/preview"
	"github.com/remedykit/remedy-cli/internal/rule"
	"github.com/remedykit/remedy-cli/internal/ui"
	"github.com/spf13/cobra"
)

var (
	repairTool   string
	repairInput  string
	repairDir    string
	repairDocs   string
	repairMax    int
	repairYes    bool
	repairDryRun bool
)

var repairCmd = &cobra.Command{
	Use:   "repair --tool <tool>",
	Short: "Cluster build errors and apply fixes",
	Long: `Run the full repair pipeline: cluster the diagnostics, match each
cluster against the deterministic pattern rules, send unmatched
clusters to the fix generator, then apply every accepted patch as one
all-or-nothing batch. A failed patch rolls back everything applied
before it.

Patches are shown for review before anything touches disk; pass --yes
to skip confirmation in CI.`,
	Example: `  tsc --noEmit 2>&1 | remedy repair --tool tsc
  remedy repair --tool gobuild --input build.log --dir ./service --docs notes.md
  remedy repair --tool tsc --input errors.txt --dry-run`,
	RunE: runRepair,
}

func init() {
	rootCmd.AddCommand(repairCmd)

	repairCmd.Flags().StringVarP(&repairTool, "tool", "t", "", "diagnostic tool that produced the output (required)")
	repairCmd.Flags().StringVarP(&repairInput, "input", "i", "", "input file (default: stdin)")
	repairCmd.Flags().StringVarP(&repairDir, "dir", "d", ".", "workspace root patches are applied under")
	repairCmd.Flags().StringVar(&repairDocs, "docs", "", "file with upgrade notes for generated fixes")
	repairCmd.Flags().IntVar(&repairMax, "max-generated", 0, "cap on generated patches per run (default: config or 10)")
	repairCmd.Flags().BoolVarP(&repairYes, "yes", "y", false, "apply without confirmation")
	repairCmd.Flags().BoolVar(&repairDryRun, "dry-run", false, "plan and preview only, apply nothing")
	_ = repairCmd.MarkFlagRequired("tool")
}

func runRepair(cmd *cobra.Command, args []string) error {
	output, err := readInput(repairInput)
	if err != nil {
		return err
	}

	diagnostics, err := parseDiagnostics(repairTool, output)
	if err != nil {
		return err
	}
	if len(diagnostics) == 0 {
		ui.PrintInfo("No diagnostics found, nothing to repair")
		return nil
	}

	appCfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(verbose)
	defer func() { _ = log.Sync() }()

	cfg := pipeline.Config{
		WorkDir:             repairDir,
		MaxGeneratedPatches: appCfg.GetMaxGeneratedPatches(),
		ContextLines:        appCfg.GetContextLines(),
	}
	if repairMax > 0 {
		cfg.MaxGeneratedPatches = repairMax
	}
	if repairDocs != "" {
		docs, err := os.ReadFile(repairDocs)
		if err != nil {
			return fmt.Errorf("failed to read docs file: %w", err)
		}
		cfg.SupportingDocs = string(docs)
	}

	gen := newGenerator(appCfg, log)
	if gen == nil {
		ui.PrintWarn("No generation backend available, pattern rules only")
	}

	p := pipeline.New(cfg, rule.Global(), gen, log)
	plan := p.Plan(cmd.Context(), diagnostics)

	patches := plan.Patches()
	printPlan(plan)
	if len(patches) == 0 {
		ui.PrintWarn("No fixes available for these clusters")
		return nil
	}

	if repairDryRun {
		ui.PrintInfo("Dry run, no patches applied")
		return nil
	}

	if !repairYes {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Apply %d patch(es)", len(patches)),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			fmt.Println("\nRepair cancelled")
			return nil
		}
	}

	summary := p.Apply(plan)
	printSummary(summary)

	if summary.RolledBack {
		return fmt.Errorf("repair failed: %s", summary.FailureReason)
	}
	return nil
}

// printPlan renders each cluster outcome and its patch previews.
func printPlan(plan *pipeline.Plan) {
	ui.PrintTitle("PLAN", fmt.Sprintf("run %s, %d cluster(s)", plan.RunID, len(plan.Outcomes)))

	for _, o := range plan.Outcomes {
		fmt.Println()
		switch o.Tier {
		case pipeline.TierPattern:
			ui.PrintOK(fmt.Sprintf("%s matched rule %s (%d patch(es))", o.Cluster.ID, o.RuleID, len(o.Patches)))
		case pipeline.TierGenerated:
			ui.PrintOK(fmt.Sprintf("%s fix generated (%d patch(es))", o.Cluster.ID, len(o.Patches)))
		default:
			ui.PrintWarn(fmt.Sprintf("%s unresolved: %s", o.Cluster.ID, o.Cluster.Representative.String()))
			if o.Err != nil {
				ui.PrintIndent(fmt.Sprintf("generation error: %v", o.Err))
			}
		}

		for _, pt := range o.Patches {
			fmt.Printf("\n  %s: %s\n", pt.FilePath, pt.Description)
			fmt.Print(preview.Render(pt.Diff))
		}
	}
	fmt.Println()
}

// printSummary renders the post-apply report.
func printSummary(s *pipeline.Summary) {
	if s.RolledBack {
		ui.PrintError(fmt.Sprintf("Batch failed and was rolled back: %s", s.FailureReason))
		for _, e := range s.RollbackErrors {
			ui.PrintError("rollback error: " + e)
		}
	} else {
		ui.PrintOK(fmt.Sprintf("Applied %d patch(es)", s.PatchesApplied))
	}

	ui.PrintInfo(fmt.Sprintf("%d diagnostic(s), %d cluster(s): %d matched, %d generated, %d unresolved",
		s.TotalDiagnostics, s.ClusterCount, s.MatchedClusters, s.GeneratedClusters, s.UnresolvedClusters))
}
