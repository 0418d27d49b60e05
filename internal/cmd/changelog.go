package cmd

import (
	"fmt"
	"strings"

	"github.com/remedykit/remedy-cli/internal/changelog"
	"github.com/remedykit/remedy-cli/internal/config"
	"github.com/remedykit/remedy-cli/internal/ui"
	"github.com/spf13/cobra"
)

var (
	changelogLimit int
	changelogFrom  string
	changelogTo    string
	changelogOpen  bool
)

var changelogCmd = &cobra.Command{
	Use:   "changelog <owner/repo>",
	Short: "Show release notes for an upgraded dependency",
	Long: `Fetch GitHub release notes for a dependency. The output makes useful
supporting docs for 'remedy repair --docs': save it to a file and pass
it along so generated fixes know what changed in the upgrade.`,
	Example: `  remedy changelog angular/angular --limit 5
  remedy changelog ReactiveX/rxjs --from 5.5.0 --to 6.0.0 > notes.md
  remedy changelog angular/angular --open`,
	Args: cobra.ExactArgs(1),
	RunE: runChangelog,
}

func init() {
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().IntVarP(&changelogLimit, "limit", "n", 10, "number of releases to show")
	changelogCmd.Flags().StringVar(&changelogFrom, "from", "", "oldest tag to include (exclusive)")
	changelogCmd.Flags().StringVar(&changelogTo, "to", "", "newest tag to include")
	changelogCmd.Flags().BoolVar(&changelogOpen, "open", false, "open the releases page in the browser instead")
}

func runChangelog(cmd *cobra.Command, args []string) error {
	repo := args[0]

	if changelogOpen {
		if err := changelog.OpenInBrowser(repo); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
		ui.PrintOK("Opened " + changelog.ReleasesURL(repo))
		return nil
	}

	appCfg, err := config.Load()
	if err != nil {
		return err
	}

	client := changelog.NewClient(changelog.WithToken(appCfg.GetGitHubToken()))

	// Tag range requested: emit the concatenated notes form that feeds
	// straight into --docs.
	if changelogFrom != "" || changelogTo != "" {
		notes, err := client.Notes(cmd.Context(), repo, changelogFrom, changelogTo)
		if err != nil {
			return err
		}
		if notes == "" {
			ui.PrintWarn("No release notes found in the requested range")
			return nil
		}
		fmt.Print(notes)
		return nil
	}

	releases, err := client.Releases(cmd.Context(), repo, changelogLimit)
	if err != nil {
		return err
	}
	if len(releases) == 0 {
		ui.PrintWarn("No releases found for " + repo)
		return nil
	}

	ui.PrintTitle("RELEASES", repo)
	for _, r := range releases {
		fmt.Println()
		name := r.Name
		if name == "" {
			name = r.TagName
		}
		fmt.Printf("%s (%s)\n", name, r.PublishedAt.Format("2006-01-02"))
		if body := strings.TrimSpace(r.Body); body != "" && verbose {
			fmt.Println(body)
		}
	}

	return nil
}
