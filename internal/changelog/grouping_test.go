package changelog

import (
	"testing"
	"time"

	"github.com/declare-cloud/releasenotes/internal/commits"
	"github.com/declare-cloud/releasenotes/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRepoURL = "https://github.com/declare-cloud/website"

func enrich(table *rules.Table, raws ...commits.RawCommit) []commits.EnrichedCommit {
	c := commits.NewClassifier(table)
	e := commits.NewEnricher(commits.EnrichOptions{RepositoryURL: testRepoURL, EmitBody: true})
	out := make([]commits.EnrichedCommit, len(raws))
	for i, r := range raws {
		out[i] = commits.EnrichedCommit{ClassifiedCommit: c.Classify(r), Presentation: e.Enrich(r)}
	}
	return out
}

func at(day int) commits.Person {
	return commits.Person{Name: "dev", Date: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)}
}

func titles(groups []CommitGroup) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Title
	}
	return out
}

func subjects(g CommitGroup) []string {
	out := make([]string, len(g.Commits))
	for i, c := range g.Commits {
		out[i] = c.Subject
	}
	return out
}

func TestGroup_BreakingScenario(t *testing.T) {
	t.Parallel()

	table := rules.Default()
	cs := enrich(table,
		commits.RawCommit{Hash: "a1", Type: "feat", Subject: "add X"},
		commits.RawCommit{Hash: "b2", Type: "fix", Subject: "fix Y"},
		commits.RawCommit{Hash: "c3", Type: "feat", Subject: "remove Z", Breaking: true},
	)

	groups := Group(cs, table, GroupOptions{})
	require.Equal(t, []string{"Breaking Changes", "Features", "Bug Fixes"}, titles(groups))
	assert.Equal(t, []string{"remove Z"}, subjects(groups[0]))
	assert.Equal(t, "💥", groups[0].Icon)
	assert.Equal(t, []string{"add X"}, subjects(groups[1]))
	assert.Equal(t, []string{"fix Y"}, subjects(groups[2]))
}

func TestGroup_Ordering(t *testing.T) {
	t.Parallel()

	table := rules.Default()

	tests := map[string]struct {
		raws []commits.RawCommit
		opts GroupOptions
		want []string
	}{
		"empty set": {
			want: []string{},
		},
		"table order not discovery order": {
			raws: []commits.RawCommit{
				{Type: "docs", Subject: "d"},
				{Type: "fix", Subject: "f"},
				{Type: "feat", Subject: "a"},
			},
			want: []string{"Features", "Bug Fixes", "Documentation"},
		},
		"hidden types excluded": {
			raws: []commits.RawCommit{
				{Type: "ci", Subject: "pipeline"},
				{Type: "build", Subject: "deps"},
				{Type: "fix", Scope: rules.NoReleaseScope, Subject: "quiet"},
				{Type: "fix", Subject: "loud"},
			},
			want: []string{"Bug Fixes"},
		},
		"unclassified dropped by default": {
			raws: []commits.RawCommit{
				{Header: "Merge branch x"},
				{Type: "feat", Subject: "a"},
			},
			want: []string{"Features"},
		},
		"unclassified last when included": {
			raws: []commits.RawCommit{
				{Header: "Merge branch x"},
				{Type: "feat", Subject: "a"},
				{Type: "wip", Subject: "w"},
			},
			opts: GroupOptions{IncludeUnclassified: true},
			want: []string{"Features", UnclassifiedTitle},
		},
		"group by type reconciles titles": {
			raws: []commits.RawCommit{
				{Type: "perf", Subject: "p"},
				{Type: "feat", Subject: "a"},
			},
			opts: GroupOptions{By: GroupByType},
			want: []string{"Features", "Performance"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			groups := Group(enrich(table, tt.raws...), table, tt.opts)
			assert.Equal(t, tt.want, titles(groups))
		})
	}
}

func TestGroup_UnmatchedTitlesInDiscoveryOrder(t *testing.T) {
	t.Parallel()

	table := rules.MustNew([]rules.Rule{
		{Type: "feat", Section: "Features", Icon: "+"},
		{Type: "zeta", Section: "Zeta"},
		{Type: "alpha", Section: "Alpha"},
	})
	cs := enrich(table,
		commits.RawCommit{Type: "zeta", Subject: "z"},
		commits.RawCommit{Type: "alpha", Subject: "a"},
		commits.RawCommit{Type: "feat", Subject: "f"},
	)
	// working titles the table does not declare
	cs[0].Section, cs[1].Section = "Custom Z", "Custom A"
	cs[0].Type, cs[1].Type = "", ""

	groups := Group(cs, table, GroupOptions{})
	assert.Equal(t, []string{"Features", "Custom Z", "Custom A"}, titles(groups))
}

func TestGroup_ReconciliationMergesTitles(t *testing.T) {
	t.Parallel()

	table := rules.Default()
	cs := enrich(table,
		commits.RawCommit{Type: "feat", Subject: "one"},
		commits.RawCommit{Type: "feat", Subject: "two"},
	)
	// A working title padded with whitespace resolves to the same section.
	cs[1].Section = "  Features "

	groups := Group(cs, table, GroupOptions{})
	require.Len(t, groups, 1)
	assert.Equal(t, "Features", groups[0].Title)
	assert.Equal(t, "✨", groups[0].Icon)
	assert.Equal(t, []string{"one", "two"}, subjects(groups[0]))
}

func TestGroup_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	table := rules.Default()
	cs := enrich(table,
		commits.RawCommit{Type: "feat", Scope: "b", Subject: "first", Committer: at(1)},
		commits.RawCommit{Type: "feat", Subject: "second", Committer: at(2)},
	)

	Group(cs, table, GroupOptions{})
	assert.Equal(t, "first", cs[0].Subject)
	assert.Equal(t, "second", cs[1].Subject)
}

func TestSortCommits(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raws []commits.RawCommit
		want []string
	}{
		"unscoped before scoped": {
			raws: []commits.RawCommit{
				{Subject: "scoped", Scope: "api", Committer: at(1)},
				{Subject: "plain", Committer: at(9)},
			},
			want: []string{"plain", "scoped"},
		},
		"unscoped by date": {
			raws: []commits.RawCommit{
				{Subject: "late", Committer: at(5)},
				{Subject: "early", Committer: at(2)},
			},
			want: []string{"early", "late"},
		},
		"same scope by date": {
			raws: []commits.RawCommit{
				{Subject: "ui-late", Scope: "ui", Committer: at(7)},
				{Subject: "ui-early", Scope: "ui", Committer: at(3)},
			},
			want: []string{"ui-early", "ui-late"},
		},
		"different scopes by scope value": {
			raws: []commits.RawCommit{
				{Subject: "web", Scope: "web", Committer: at(1)},
				{Subject: "api", Scope: "api", Committer: at(9)},
				{Subject: "core", Scope: "core", Committer: at(5)},
			},
			want: []string{"api", "core", "web"},
		},
		"full chain": {
			raws: []commits.RawCommit{
				{Subject: "ui-2", Scope: "ui", Committer: at(8)},
				{Subject: "none-2", Committer: at(6)},
				{Subject: "api-1", Scope: "api", Committer: at(9)},
				{Subject: "ui-1", Scope: "ui", Committer: at(4)},
				{Subject: "none-1", Committer: at(2)},
			},
			want: []string{"none-1", "none-2", "api-1", "ui-1", "ui-2"},
		},
		"equal keys keep input order": {
			raws: []commits.RawCommit{
				{Subject: "x"},
				{Subject: "y"},
				{Subject: "z"},
			},
			want: []string{"x", "y", "z"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cs := make([]commits.EnrichedCommit, len(tt.raws))
			for i, r := range tt.raws {
				cs[i] = commits.EnrichedCommit{
					ClassifiedCommit: commits.ClassifiedCommit{RawCommit: r},
					Presentation:     commits.Presentation{CommitterDate: r.Committer.Date},
				}
			}
			SortCommits(cs)
			assert.Equal(t, tt.want, subjects(CommitGroup{Commits: cs}))
		})
	}
}

func TestNoteGroups(t *testing.T) {
	t.Parallel()

	table := rules.Default()
	cs := enrich(table,
		commits.RawCommit{Hash: "1111111aaa", Type: "feat", Scope: "api", Subject: "a", Breaking: true,
			Notes: []commits.Note{{Title: "BREAKING CHANGES", Text: "api removed"}}},
		commits.RawCommit{Hash: "2222222bbb", Type: "fix", Subject: "b",
			Notes: []commits.Note{{Title: "Deprecations", Text: "old flag"}, {Title: "BREAKING CHANGES", Text: "flag renamed"}}},
		commits.RawCommit{Hash: "3333333ccc", Type: "ci", Subject: "hidden",
			Notes: []commits.Note{{Title: "Hidden", Text: "never shown"}}},
	)

	notes := NoteGroups(Group(cs, table, GroupOptions{}))
	require.Len(t, notes, 2)
	assert.Equal(t, "BREAKING CHANGES", notes[0].Title)
	require.Len(t, notes[0].Notes, 2)
	assert.Equal(t, "api removed", notes[0].Notes[0].Text)
	assert.Equal(t, "api", notes[0].Notes[0].Scope)
	assert.Equal(t, "1111111", notes[0].Notes[0].ShortHash)
	assert.Equal(t, "flag renamed", notes[0].Notes[1].Text)
	assert.Equal(t, "Deprecations", notes[1].Title)
}

func TestParseGroupBy(t *testing.T) {
	t.Parallel()

	got, err := ParseGroupBy("")
	require.NoError(t, err)
	assert.Equal(t, GroupBySection, got)

	got, err = ParseGroupBy("type")
	require.NoError(t, err)
	assert.Equal(t, GroupByType, got)

	_, err = ParseGroupBy("author")
	assert.Error(t, err)
}
