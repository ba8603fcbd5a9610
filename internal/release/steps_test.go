package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSteps(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		opts Options
		want []string
	}{
		"local run": {
			want: []string{StepNotes, StepChangelog},
		},
		"ci without token": {
			opts: Options{CI: "true"},
			want: []string{StepNotes, StepChangelog},
		},
		"token without ci": {
			opts: Options{GitHubToken: "ghp_x"},
			want: []string{StepNotes, StepChangelog},
		},
		"ci with token": {
			opts: Options{CI: "true", GitHubToken: "ghp_x"},
			want: []string{StepNotes, StepChangelog, StepGit, StepNPM, StepGitHub},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Steps(tt.opts))
		})
	}
}

func TestBranches(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		opts        Options
		want        []string
		wantRelease bool
	}{
		"real release on main": {
			opts:        Options{Branch: "main"},
			want:        []string{"main"},
			wantRelease: true,
		},
		"real release on feature branch": {
			opts: Options{Branch: "feature/x"},
			want: []string{"main"},
		},
		"dry run uses current branch": {
			opts:        Options{DryRun: true, Branch: "feature/x"},
			want:        []string{"feature/x"},
			wantRelease: true,
		},
		"configured release branches": {
			opts:        Options{Branch: "release", ReleaseBranches: []string{"main", "release"}},
			want:        []string{"main", "release"},
			wantRelease: true,
		},
		"dry run without branch": {
			opts: Options{DryRun: true},
			want: []string{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Branches(tt.opts))
			assert.Equal(t, tt.wantRelease, CanRelease(tt.opts))
		})
	}
}

func TestBranches_ReturnsCopy(t *testing.T) {
	t.Parallel()

	got := Branches(Options{})
	got[0] = "mutated"
	assert.Equal(t, []string{"main"}, DefaultReleaseBranches)
}
