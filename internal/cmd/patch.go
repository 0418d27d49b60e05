package cmd

import (
	"fmt"
	"os"

	"github.com/remedykit/remedy-cli/internal/logging"
	"github.com/remedykit/remedy-cli/internal/patch"
	"github.com/remedykit/remedy-cli/internal/preview"
	"github.com/remedykit/remedy-cli/internal/ui"
	"github.com/spf13/cobra"
)

var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Apply or revert a unified-diff patch file",
	Long: `Work with a single unified-diff patch outside the repair pipeline.
The patch is validated against the target file's current content
before anything is written; a context mismatch leaves the file
untouched.`,
}

var patchApplyCmd = &cobra.Command{
	Use:   "apply <target-file> <diff-file>",
	Short: "Validate and apply a patch to a file",
	Example: `  remedy patch apply src/app.ts fix.diff
  remedy patch apply --show src/app.ts fix.diff`,
	Args: cobra.ExactArgs(2),
	RunE: runPatchApply,
}

var patchRevertCmd = &cobra.Command{
	Use:     "revert <target-file> <diff-file>",
	Short:   "Undo a previously applied patch",
	Long:    `Reverse the diff (swapping additions and removals) and apply it, restoring the file to its pre-patch content.`,
	Example: `  remedy patch revert src/app.ts fix.diff`,
	Args:    cobra.ExactArgs(2),
	RunE:    runPatchRevert,
}

var patchShow bool

func init() {
	rootCmd.AddCommand(patchCmd)
	patchCmd.AddCommand(patchApplyCmd)
	patchCmd.AddCommand(patchRevertCmd)

	patchApplyCmd.Flags().BoolVar(&patchShow, "show", false, "preview the diff before applying")
}

func runPatchApply(cmd *cobra.Command, args []string) error {
	targetPath, diffPath := args[0], args[1]

	diff, err := os.ReadFile(diffPath)
	if err != nil {
		return fmt.Errorf("failed to read diff file: %w", err)
	}

	if patchShow {
		fmt.Print(preview.Render(string(diff)))
	}

	log := logging.New(verbose)
	defer func() { _ = log.Sync() }()

	engine := patch.NewEngine(log)
	p := &patch.Patch{
		Diff:        string(diff),
		Description: "manual patch from " + diffPath,
		FilePath:    targetPath,
		Source:      patch.SourceManual,
	}

	if err := engine.ApplyToFile(targetPath, p); err != nil {
		return err
	}

	ui.PrintOK("Patched " + targetPath)
	return nil
}

func runPatchRevert(cmd *cobra.Command, args []string) error {
	targetPath, diffPath := args[0], args[1]

	diff, err := os.ReadFile(diffPath)
	if err != nil {
		return fmt.Errorf("failed to read diff file: %w", err)
	}

	log := logging.New(verbose)
	defer func() { _ = log.Sync() }()

	engine := patch.NewEngine(log)
	p := &patch.Patch{
		Diff:        string(diff),
		Description: "manual patch from " + diffPath,
		FilePath:    targetPath,
		Source:      patch.SourceManual,
	}

	if err := engine.RevertFile(targetPath, p); err != nil {
		return err
	}

	ui.PrintOK("Reverted " + targetPath)
	return nil
}
