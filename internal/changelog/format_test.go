package changelog

import (
	"strings"
	"testing"

	"github.com/declare-cloud/releasenotes/internal/commits"
	"github.com/declare-cloud/releasenotes/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatGroups_Plain(t *testing.T) {
	t.Parallel()

	table := rules.Default()
	groups := Group(enrich(table,
		commits.RawCommit{Hash: "abc1234567890", Type: "feat", Scope: "ui", Subject: "add X"},
		commits.RawCommit{Hash: "def5678901234", Type: "fix", Subject: "fix Y"},
	), table, GroupOptions{})

	var b strings.Builder
	require.NoError(t, FormatGroups(groups, &b, FormatOptions{Plain: true}))

	want := "## Features\n  - [minor] ui: add X (abc1234)\n\n## Bug Fixes\n  - [patch] fix Y (def5678)\n"
	assert.Equal(t, want, b.String())
}

func TestFormatGroups_Empty(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	require.NoError(t, FormatGroups(nil, &b, FormatOptions{Plain: true}))
	assert.Equal(t, "No notable changes.\n", b.String())
}

func TestFormatDecision_Plain(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		summary  DecisionSummary
		contains []string
	}{
		"release": {
			summary: DecisionSummary{
				Severity:   rules.SeverityMinor,
				Version:    "1.3.0",
				Branch:     "main",
				CanRelease: true,
				Steps:      []string{"release-notes-generator", "changelog"},
			},
			contains: []string{
				"release: minor\n",
				"next version: 1.3.0\n",
				"branch: main (release allowed: true)\n",
				"steps: release-notes-generator, changelog\n",
			},
		},
		"no release": {
			summary:  DecisionSummary{Branch: "dev"},
			contains: []string{"release: none\n", "next version: (no release)\n"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var b strings.Builder
			require.NoError(t, FormatDecision(tt.summary, &b, FormatOptions{Plain: true}))
			for _, want := range tt.contains {
				assert.Contains(t, b.String(), want)
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text     string
		maxWidth int
		want     string
	}{
		"fits":          {text: "short", maxWidth: 10, want: "short"},
		"wraps at word": {text: "one two three", maxWidth: 8, want: "one two\n    three"},
		"no limit":      {text: "one two three", maxWidth: 0, want: "one two three"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wrapText(tt.text, tt.maxWidth, "    "))
		})
	}
}

func TestFormatCommitSummary(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 80)
	got := FormatCommitSummary(rules.SeverityPatch, long, FormatOptions{Plain: true})
	assert.Equal(t, "[patch] "+strings.Repeat("x", 57)+"...", got)
	assert.Equal(t, "[none] s", FormatCommitSummary("", "s", FormatOptions{Plain: true}))
}
