// Package cli implements the releasenotes command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/declare-cloud/releasenotes/internal/changelog"
	"github.com/declare-cloud/releasenotes/internal/commits"
	clierrors "github.com/declare-cloud/releasenotes/internal/errors"
	"github.com/declare-cloud/releasenotes/internal/gitlog"
	"github.com/declare-cloud/releasenotes/internal/release"
)

// Command groups shown in help output.
const (
	GroupRelease = "release"
	GroupInfo    = "info"
)

var rootCmd = &cobra.Command{
	Use:   "releasenotes",
	Short: "Classify conventional commits and render release notes",
	Long: `releasenotes classifies conventional commits against a rule table, decides
the release severity, and renders a Markdown changelog entry.

Commits are read from the git history since the latest release tag, or from a
JSON/YAML file of commit records with --input.

Configuration is read from .releasenotes.yml and RELNOTES_* environment
variables.`,
	Example: `  # Print the notes for the next release
  releasenotes notes

  # Prepend them to CHANGELOG.md
  releasenotes notes --write

  # Fail CI when nothing warrants a release
  releasenotes decide --exit-code`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		setDebug(debug, cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInfo, Title: "Information:"},
	)

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default: .releasenotes.yml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Print debug output to stderr")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Restrict releases to the current branch and never write files")
}

// setDebug wires or clears the debug loggers of every pipeline package.
func setDebug(enabled bool, w io.Writer) {
	var logger func(format string, args ...any)
	if enabled {
		logger = func(format string, args ...any) {
			fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
		}
	}
	commits.SetDebugLogger(logger)
	release.SetDebugLogger(logger)
	changelog.SetDebugLogger(logger)
	gitlog.SetDebugLogger(logger)
}

// Execute runs the root command. Errors are printed here; the caller only
// maps the returned error to an exit code.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		clierrors.FprintAny(rootCmd.ErrOrStderr(), err)
	}
	return err
}
