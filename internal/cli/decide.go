package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/declare-cloud/releasenotes/internal/changelog"
	"github.com/declare-cloud/releasenotes/internal/release"
	"github.com/declare-cloud/releasenotes/internal/rules"
)

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Decide whether and how to release",
	Long: `Decide the release severity of the commits since the latest release.

Prints the severity, the next version, whether the current branch may release
and the publish steps that would run. With --exit-code the command exits with
status 2 when no release is warranted.`,
	Example: `  # Human readable decision
  releasenotes decide

  # Machine readable
  releasenotes decide --json

  # Gate a CI job
  releasenotes decide --exit-code || echo "nothing to release"`,
	Args: cobra.NoArgs,
	RunE: runDecide,
}

func init() {
	decideCmd.GroupID = GroupRelease
	addSourceFlags(decideCmd)
	decideCmd.Flags().Bool("exit-code", false, "Exit with status 2 when no release is warranted")
	decideCmd.Flags().Bool("json", false, "Print the decision as JSON")
	decideCmd.Flags().Bool("plain", false, "Plain output (no colors/icons)")
	rootCmd.AddCommand(decideCmd)
}

// decisionReport is the JSON shape of decide --json.
type decisionReport struct {
	Severity    rules.Severity          `json:"severity"`
	Version     string                  `json:"version,omitempty"`
	ReleaseType string                  `json:"release_type,omitempty"`
	Branch      string                  `json:"branch"`
	Branches    []string                `json:"branches"`
	CanRelease  bool                    `json:"can_release"`
	Steps       []string                `json:"steps"`
	Decision    release.ReleaseDecision `json:"decision"`
}

func runDecide(cmd *cobra.Command, args []string) error {
	exitCode, _ := cmd.Flags().GetBool("exit-code")
	asJSON, _ := cmd.Flags().GetBool("json")
	plain, _ := cmd.Flags().GetBool("plain")

	p, src, err := prepare(cmd)
	if err != nil {
		return err
	}

	out, err := p.run(cmd.Context(), src, "")
	if err != nil {
		return err
	}

	opts := p.releaseOptions()
	report := decisionReport{
		Severity:    out.decision.Severity,
		Version:     out.version,
		ReleaseType: out.releaseType,
		Branch:      opts.Branch,
		Branches:    release.Branches(opts),
		CanRelease:  release.CanRelease(opts),
		Steps:       release.Steps(opts),
		Decision:    out.decision,
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		summary := changelog.DecisionSummary{
			Severity:   report.Severity,
			Version:    report.Version,
			Branch:     report.Branch,
			CanRelease: report.CanRelease,
			Steps:      report.Steps,
		}
		formatOpts := changelog.FormatOptions{Plain: plainOutput(cmd.OutOrStdout(), plain)}
		if err := changelog.FormatDecision(summary, cmd.OutOrStdout(), formatOpts); err != nil {
			return err
		}
	}

	if exitCode && !out.decision.Releasable() {
		return NewExitError(ExitNoRelease)
	}
	return nil
}
