package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/declare-cloud/releasenotes/internal/changelog"
	clierrors "github.com/declare-cloud/releasenotes/internal/errors"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Render the release notes for the next release",
	Long: `Render the Markdown changelog entry for the commits since the latest release.

Commits are classified with the rule table, grouped into sections, sorted and
rendered with the template fragments. With --write the entry is prepended to
the changelog file, unless dry-run is enabled or no commit would be listed.
When no commit warrants a release and --version is not given, nothing is
rendered.`,
	Example: `  # Print the entry
  releasenotes notes

  # Render from exported commit records
  releasenotes notes --input commits.yaml --last-version 1.4.2

  # Prepend to CHANGELOG.md
  releasenotes notes --write

  # Terminal summary instead of Markdown
  releasenotes notes --summary`,
	Args: cobra.NoArgs,
	RunE: runNotes,
}

func init() {
	notesCmd.GroupID = GroupRelease
	addSourceFlags(notesCmd)
	notesCmd.Flags().String("version", "", "Version to render instead of the computed next version")
	notesCmd.Flags().BoolP("write", "w", false, "Prepend the entry to the changelog file")
	notesCmd.Flags().Bool("summary", false, "Print a terminal summary of the groups instead of Markdown")
	notesCmd.Flags().Bool("plain", false, "Plain summary output (no colors/icons)")
	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command, args []string) error {
	versionOverride, _ := cmd.Flags().GetString("version")
	write, _ := cmd.Flags().GetBool("write")
	summary, _ := cmd.Flags().GetBool("summary")
	plain, _ := cmd.Flags().GetBool("plain")

	if write && summary {
		return clierrors.InvalidFlagCombination("--write --summary",
			"The summary is for terminals only; drop one of the flags")
	}

	p, src, err := prepare(cmd)
	if err != nil {
		return err
	}

	out, err := p.run(cmd.Context(), src, versionOverride)
	if err != nil {
		return err
	}

	if summary {
		opts := changelog.FormatOptions{Plain: plainOutput(cmd.OutOrStdout(), plain)}
		return changelog.FormatGroups(out.groups, cmd.OutOrStdout(), opts)
	}

	if out.version == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No release: no commits since the last release warrant a new version")
		return nil
	}

	entry, err := p.renderer.RenderString(out.context)
	if err != nil {
		return clierrors.RenderFailed(err)
	}

	if !write {
		fmt.Fprint(cmd.OutOrStdout(), entry)
		return nil
	}
	if out.context.IsEmpty() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to write: every commit since the last release is hidden")
		return nil
	}
	if p.cfg.DryRun {
		fmt.Fprintf(cmd.ErrOrStderr(), "Dry run: not writing %s\n", p.cfg.ChangelogFile)
		fmt.Fprint(cmd.OutOrStdout(), entry)
		return nil
	}
	if err := changelog.PrependFile(p.cfg.ChangelogFile, entry); err != nil {
		return clierrors.FileNotWritable(p.cfg.ChangelogFile, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d commits to %s\n", out.context.CommitCount(), p.cfg.ChangelogFile)
	return nil
}
