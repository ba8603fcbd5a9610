package commits

import (
	"testing"

	"github.com/declare-cloud/releasenotes/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	c := NewClassifier(rules.Default())

	tests := map[string]struct {
		raw         RawCommit
		wantMatched bool
		wantSection string
		wantSev     rules.Severity
		wantIcon    string
		wantHidden  bool
	}{
		"feature": {
			raw:         RawCommit{Type: "feat", Subject: "add X"},
			wantMatched: true,
			wantSection: "Features",
			wantSev:     rules.SeverityMinor,
			wantIcon:    "✨",
		},
		"fix": {
			raw:         RawCommit{Type: "fix", Subject: "fix Y"},
			wantMatched: true,
			wantSection: "Bug Fixes",
			wantSev:     rules.SeverityPatch,
			wantIcon:    "🐛",
		},
		"breaking via header marker": {
			raw:         RawCommit{Type: "feat", Subject: "remove Z", Breaking: true},
			wantMatched: true,
			wantSection: "Breaking Changes",
			wantSev:     rules.SeverityMajor,
			wantIcon:    "💥",
		},
		"breaking via note": {
			raw: RawCommit{
				Type:  "docs",
				Notes: []Note{{Title: "BREAKING CHANGE", Text: "config moved"}},
			},
			wantMatched: true,
			wantSection: "Breaking Changes",
			wantSev:     rules.SeverityMajor,
			wantIcon:    "💥",
		},
		"no-release scope": {
			raw:         RawCommit{Type: "fix", Scope: rules.NoReleaseScope},
			wantMatched: true,
			wantSev:     rules.SeverityNone,
			wantHidden:  true,
		},
		"docs has no severity": {
			raw:         RawCommit{Type: "docs"},
			wantMatched: true,
			wantSection: "Documentation",
			wantSev:     rules.SeverityNone,
			wantIcon:    "📝",
		},
		"unmatched": {
			raw:     RawCommit{Type: "wip", Subject: "stuff"},
			wantSev: rules.SeverityNone,
		},
		"non-conventional": {
			raw:     RawCommit{Header: "Update README.md"},
			wantSev: rules.SeverityNone,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := c.Classify(tt.raw)
			assert.Equal(t, tt.wantMatched, got.Matched)
			assert.Equal(t, tt.wantSection, got.Section)
			assert.Equal(t, tt.wantSev, got.Severity)
			assert.Equal(t, tt.wantIcon, got.Icon)
			assert.Equal(t, tt.wantHidden, got.Hidden)
			assert.Equal(t, tt.raw, got.RawCommit, "raw record must be carried unchanged")
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	t.Parallel()

	table := rules.MustNew([]rules.Rule{
		{Type: "fix", Section: "Fixes", Severity: rules.SeverityPatch, Icon: "a"},
		{Type: "fix", Scope: "api", Section: "API Fixes", Severity: rules.SeverityMinor, Icon: "b"},
	})
	got := NewClassifier(table).Classify(RawCommit{Type: "fix", Scope: "api"})

	require.True(t, got.Matched)
	assert.Equal(t, "Fixes", got.Section)
	assert.Equal(t, rules.SeverityPatch, got.Severity)
	assert.Equal(t, "a", got.Icon)
}

func TestClassifiedCommit_Visible(t *testing.T) {
	t.Parallel()

	c := NewClassifier(rules.Default())

	assert.True(t, c.Classify(RawCommit{Type: "feat"}).Visible())
	assert.False(t, c.Classify(RawCommit{Type: "ci"}).Visible())
	assert.False(t, c.Classify(RawCommit{Type: "feat", Scope: rules.NoReleaseScope}).Visible())
	assert.False(t, c.Classify(RawCommit{Type: "unknown"}).Visible())
}

func TestRawCommit_IsBreaking(t *testing.T) {
	t.Parallel()

	assert.True(t, RawCommit{Breaking: true}.IsBreaking())
	assert.True(t, RawCommit{Notes: []Note{{Title: "BREAKING CHANGES"}}}.IsBreaking())
	assert.True(t, RawCommit{Notes: []Note{{Title: "breaking-change"}}}.IsBreaking())
	assert.False(t, RawCommit{Notes: []Note{{Title: "Deprecations"}}}.IsBreaking())
	assert.False(t, RawCommit{}.IsBreaking())
}
