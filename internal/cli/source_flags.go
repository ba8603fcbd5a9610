package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/declare-cloud/releasenotes/internal/changelog"
	clierrors "github.com/declare-cloud/releasenotes/internal/errors"
)

// addSourceFlags registers the commit source flags shared by notes and decide.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Read commit records from a JSON or YAML file instead of git")
	cmd.Flags().String("repo", ".", "Repository to read the history from")
	cmd.Flags().String("last-version", "", "Last released version when reading from --input")
}

// sourceFlags reads the flags registered by addSourceFlags.
func sourceFlags(cmd *cobra.Command) (input, repo, lastVersion string, err error) {
	input, _ = cmd.Flags().GetString("input")
	repo, _ = cmd.Flags().GetString("repo")
	lastVersion, _ = cmd.Flags().GetString("last-version")

	if lastVersion != "" && input == "" {
		return "", "", "", clierrors.InvalidFlagCombination("--last-version without --input",
			"The last version is read from the latest git tag unless commits come from --input")
	}
	return input, repo, lastVersion, nil
}

// prepare resolves the pipeline and reads the commits for cmd.
func prepare(cmd *cobra.Command) (*pipeline, *source, error) {
	input, repo, lastVersion, err := sourceFlags(cmd)
	if err != nil {
		return nil, nil, err
	}

	p, err := loadPipeline(cmd, repo)
	if err != nil {
		return nil, nil, err
	}

	src, err := p.readCommits(cmd.Context(), input, repo)
	if err != nil {
		return nil, nil, err
	}
	if lastVersion != "" {
		src.lastVersion = lastVersion
		src.lastTag = p.cfg.TagPrefix + lastVersion
	}
	return p, src, nil
}

// plainOutput reports whether w should get uncolored output: when asked
// for, or when w is not a terminal.
func plainOutput(w io.Writer, plain bool) bool {
	if plain {
		return true
	}
	f, ok := w.(*os.File)
	return !ok || !changelog.IsTerminal(f)
}
