package release

import (
	"testing"

	"github.com/declare-cloud/releasenotes/internal/commits"
	"github.com/declare-cloud/releasenotes/internal/rules"
	"github.com/stretchr/testify/assert"
)

func classifyAll(raws ...commits.RawCommit) []commits.ClassifiedCommit {
	c := commits.NewClassifier(rules.Default())
	out := make([]commits.ClassifiedCommit, len(raws))
	for i, r := range raws {
		out[i] = c.Classify(r)
	}
	return out
}

func TestDecide(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raws []commits.RawCommit
		want rules.Severity
	}{
		"empty set": {
			want: rules.SeverityNone,
		},
		"docs only": {
			raws: []commits.RawCommit{{Type: "docs"}, {Type: "chore"}},
			want: rules.SeverityNone,
		},
		"fix": {
			raws: []commits.RawCommit{{Type: "docs"}, {Type: "fix"}},
			want: rules.SeverityPatch,
		},
		"feature beats fix": {
			raws: []commits.RawCommit{{Type: "fix"}, {Type: "feat"}, {Type: "perf"}},
			want: rules.SeverityMinor,
		},
		"breaking feature": {
			raws: []commits.RawCommit{
				{Type: "feat", Subject: "add X"},
				{Type: "fix", Subject: "fix Y"},
				{Type: "feat", Subject: "remove Z", Breaking: true},
			},
			want: rules.SeverityMajor,
		},
		"breaking docs still major": {
			raws: []commits.RawCommit{{Type: "docs", Breaking: true}},
			want: rules.SeverityMajor,
		},
		"breaking note": {
			raws: []commits.RawCommit{{Type: "chore", Notes: []commits.Note{{Title: "BREAKING CHANGE", Text: "x"}}}},
			want: rules.SeverityMajor,
		},
		"no-release scope suppresses": {
			raws: []commits.RawCommit{{Type: "feat", Scope: rules.NoReleaseScope}, {Type: "fix", Scope: rules.NoReleaseScope}},
			want: rules.SeverityNone,
		},
		"unmatched commits contribute none": {
			raws: []commits.RawCommit{{Header: "Merge stuff"}, {Type: "wip"}},
			want: rules.SeverityNone,
		},
	}

	a := NewAggregator(rules.Default())
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			d := a.Decide(classifyAll(tt.raws...))
			assert.Equal(t, tt.want, d.Severity)
			assert.Equal(t, len(tt.raws), d.Commits)
			assert.Equal(t, tt.want != rules.SeverityNone, d.Releasable())
		})
	}
}

func TestDecide_BreakingOverridesRuleSeverity(t *testing.T) {
	t.Parallel()

	// The breaking rule is declared last, so the type rule matches first.
	table := rules.MustNew([]rules.Rule{
		{Type: "feat", Section: "Features", Severity: rules.SeverityMinor},
		{Breaking: rules.Bool(true), Section: "Breaking", Severity: rules.SeverityMajor},
	})
	cs := []commits.ClassifiedCommit{
		commits.NewClassifier(table).Classify(commits.RawCommit{Type: "feat", Breaking: true}),
	}

	assert.Equal(t, rules.SeverityMinor, cs[0].Severity)
	d := NewAggregator(table).Decide(cs)
	assert.Equal(t, rules.SeverityMajor, d.Severity)
	assert.Equal(t, 1, d.Breaking)
}

func TestDecide_UsesSeverityView(t *testing.T) {
	t.Parallel()

	// A listed rule without a severity does not shadow a later severity rule.
	table := rules.MustNew([]rules.Rule{
		{Type: "feat", Scope: "ui", Section: "UI"},
		{Type: "feat", Section: "Features", Severity: rules.SeverityMinor},
	})
	cs := []commits.ClassifiedCommit{
		commits.NewClassifier(table).Classify(commits.RawCommit{Type: "feat", Scope: "ui"}),
	}

	assert.Equal(t, "UI", cs[0].Section)
	assert.Equal(t, rules.SeverityMinor, NewAggregator(table).Decide(cs).Severity)
}

func TestDecide_HiddenCommitsCount(t *testing.T) {
	t.Parallel()

	table := rules.MustNew([]rules.Rule{
		{Type: "build", Section: "Build", Severity: rules.SeverityPatch, Hidden: true},
	})
	cs := []commits.ClassifiedCommit{
		commits.NewClassifier(table).Classify(commits.RawCommit{Type: "build"}),
	}

	assert.False(t, cs[0].Visible())
	assert.Equal(t, rules.SeverityPatch, NewAggregator(table).Decide(cs).Severity)
}

func TestDecide_Counts(t *testing.T) {
	t.Parallel()

	d := NewAggregator(rules.Default()).Decide(classifyAll(
		commits.RawCommit{Type: "feat"},
		commits.RawCommit{Type: "feat"},
		commits.RawCommit{Type: "fix"},
		commits.RawCommit{Type: "docs"},
	))

	assert.Equal(t, 2, d.Counts[rules.SeverityMinor])
	assert.Equal(t, 1, d.Counts[rules.SeverityPatch])
	assert.Equal(t, 1, d.Counts[rules.SeverityNone])
	assert.Equal(t, 0, d.Breaking)
}

func TestDecideEnriched(t *testing.T) {
	t.Parallel()

	cs := classifyAll(commits.RawCommit{Type: "fix"})
	enriched := []commits.EnrichedCommit{{ClassifiedCommit: cs[0]}}

	d := NewAggregator(rules.Default()).DecideEnriched(enriched)
	assert.Equal(t, rules.SeverityPatch, d.Severity)
}
