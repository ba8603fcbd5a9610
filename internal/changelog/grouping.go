package changelog

import (
	"fmt"
	"sort"

	"github.com/declare-cloud/releasenotes/internal/commits"
	"github.com/declare-cloud/releasenotes/internal/rules"
)

// GroupBy selects the working title commits are first grouped under.
type GroupBy string

const (
	// GroupBySection groups by the section assigned during classification.
	GroupBySection GroupBy = "section"
	// GroupByType groups by the raw commit type; titles are reconciled
	// against the rule table afterwards.
	GroupByType GroupBy = "type"
)

// UnclassifiedTitle is the section for commits no rule matched, used only
// when unclassified commits are included.
const UnclassifiedTitle = "Other Changes"

// GroupOptions configures Group.
type GroupOptions struct {
	By                  GroupBy
	IncludeUnclassified bool
}

// ParseGroupBy converts a configuration token into a GroupBy.
func ParseGroupBy(s string) (GroupBy, error) {
	switch GroupBy(s) {
	case "", GroupBySection:
		return GroupBySection, nil
	case GroupByType:
		return GroupByType, nil
	}
	return "", fmt.Errorf("invalid group_by %q (expected: section or type)", s)
}

// Group partitions cs into ordered commit groups.
//
// Hidden and unlisted commits are left out; they still count towards the
// release decision, which is computed separately. Groups are ordered by
// the position of their title in the table's section rules, unknown
// titles last in discovery order. The input is not modified.
func Group(cs []commits.EnrichedCommit, table *rules.Table, opts GroupOptions) []CommitGroup {
	groups := collect(cs, opts)
	groups = reconcile(groups, table)

	for i := range groups {
		SortCommits(groups[i].Commits)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groupRank(table, groups[i].Title) < groupRank(table, groups[j].Title)
	})

	logDebug("[group] %d commits -> %d groups", len(cs), len(groups))
	return groups
}

// collect buckets commits under their working title in discovery order.
func collect(cs []commits.EnrichedCommit, opts GroupOptions) []CommitGroup {
	var groups []CommitGroup
	index := make(map[string]int)

	for _, c := range cs {
		title, ok := workingTitle(c, opts)
		if !ok {
			continue
		}
		i, seen := index[title]
		if !seen {
			i = len(groups)
			index[title] = i
			groups = append(groups, CommitGroup{Title: title, Icon: c.Icon})
		}
		groups[i].Commits = append(groups[i].Commits, c)
	}
	return groups
}

func workingTitle(c commits.EnrichedCommit, opts GroupOptions) (string, bool) {
	if !c.Matched {
		return UnclassifiedTitle, opts.IncludeUnclassified
	}
	if !c.Visible() {
		return "", false
	}
	if opts.By == GroupByType && c.Type != "" {
		return c.Type, true
	}
	return c.Section, true
}

// reconcile rewrites each working title and icon from the rule table and
// merges groups that end up with the same title.
func reconcile(groups []CommitGroup, table *rules.Table) []CommitGroup {
	var out []CommitGroup
	index := make(map[string]int)

	for _, g := range groups {
		if g.Title != UnclassifiedTitle {
			if rule, ok := table.ResolveSection(g.Title, typesOf(g.Commits)); ok {
				g.Title = rule.Section
				g.Icon = rule.Icon
			}
		}

		if i, seen := index[g.Title]; seen {
			out[i].Commits = append(out[i].Commits, g.Commits...)
			continue
		}
		index[g.Title] = len(out)
		out = append(out, g)
	}
	return out
}

func typesOf(cs []commits.EnrichedCommit) []string {
	seen := make(map[string]bool)
	var types []string
	for _, c := range cs {
		if c.Type == "" || seen[c.Type] {
			continue
		}
		seen[c.Type] = true
		types = append(types, c.Type)
	}
	return types
}

func groupRank(table *rules.Table, title string) int {
	if i := table.SectionIndex(title); i >= 0 {
		return i
	}
	return len(table.SectionRules())
}

// SortCommits orders a group in place: unscoped commits first, then
// commits with equal scopes by committer date ascending, otherwise by
// scope. The sort is stable, so input order breaks remaining ties.
func SortCommits(cs []commits.EnrichedCommit) {
	sort.SliceStable(cs, func(i, j int) bool {
		return commitLess(cs[i], cs[j])
	})
}

func commitLess(a, b commits.EnrichedCommit) bool {
	aScoped, bScoped := a.Scope != "", b.Scope != ""
	if aScoped != bScoped {
		return !aScoped
	}
	if a.Scope == b.Scope {
		return a.CommitterDate.Before(b.CommitterDate)
	}
	return a.Scope < b.Scope
}

// NoteGroups collects the notes of the grouped commits by title, in the
// order titles are first seen while walking the groups.
func NoteGroups(groups []CommitGroup) []NoteGroup {
	var out []NoteGroup
	index := make(map[string]int)

	for _, g := range groups {
		for _, c := range g.Commits {
			for _, n := range c.Notes {
				i, seen := index[n.Title]
				if !seen {
					i = len(out)
					index[n.Title] = i
					out = append(out, NoteGroup{Title: n.Title})
				}
				out[i].Notes = append(out[i].Notes, NoteEntry{
					Title:     n.Title,
					Text:      n.Text,
					Scope:     c.Scope,
					Hash:      c.Hash,
					ShortHash: c.ShortHash,
					CommitURL: c.CommitURL,
				})
			}
		}
	}
	return out
}
