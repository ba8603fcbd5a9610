package release

import "slices"

// Publish step identifiers, in pipeline order.
const (
	StepNotes     = "release-notes-generator"
	StepChangelog = "changelog"
	StepGit       = "git"
	StepNPM       = "npm"
	StepGitHub    = "github"
)

// DefaultReleaseBranches is the real-release branch set.
var DefaultReleaseBranches = []string{"main"}

// Options is the slice of configuration the pipeline composition needs.
// It is built once at process entry; nothing here reads the environment.
type Options struct {
	DryRun          bool
	Branch          string
	ReleaseBranches []string
	// CI and GitHubToken only matter by presence.
	CI          string
	GitHubToken string
}

// Publishing reports whether the publishing-only steps are enabled.
func (o Options) Publishing() bool {
	return o.CI != "" && o.GitHubToken != ""
}

// Steps returns the ordered publish steps. Notes and changelog always run;
// git, npm and github are added only when both CI and a token are present.
func Steps(o Options) []string {
	steps := []string{StepNotes, StepChangelog}
	if o.Publishing() {
		steps = append(steps, StepGit, StepNPM, StepGitHub)
	}
	return steps
}

// Branches returns the branches a release may be cut from: the current
// branch in dry-run mode, the configured release branches otherwise.
func Branches(o Options) []string {
	if o.DryRun {
		if o.Branch == "" {
			return []string{}
		}
		return []string{o.Branch}
	}
	if len(o.ReleaseBranches) == 0 {
		return slices.Clone(DefaultReleaseBranches)
	}
	return slices.Clone(o.ReleaseBranches)
}

// CanRelease reports whether the current branch is in the release set.
func CanRelease(o Options) bool {
	return o.Branch != "" && slices.Contains(Branches(o), o.Branch)
}
