package changelog

import (
	"time"

	"github.com/declare-cloud/releasenotes/internal/commits"
)

// CommitGroup is one rendered section: a title, its icon and the commits
// placed in it, already sorted.
type CommitGroup struct {
	Title   string
	Icon    string
	Commits []commits.EnrichedCommit
}

// NoteGroup collects the footer notes sharing a title, such as all
// "BREAKING CHANGES" notes of a release.
type NoteGroup struct {
	Title string
	Notes []NoteEntry
}

// NoteEntry is one note together with the commit it came from.
type NoteEntry struct {
	Title     string
	Text      string
	Scope     string
	Hash      string
	ShortHash string
	CommitURL string
}

// Repository identifies the repository links point at.
type Repository struct {
	URL   string
	Owner string
	Name  string
}

// NextRelease is the metadata of the release being rendered.
type NextRelease struct {
	Version string
	Date    time.Time
	// Type is the bump kind: major, minor or patch.
	Type string
}

// Context is everything the main fragment is executed against.
type Context struct {
	Version     string
	PreviousTag string
	CurrentTag  string
	Title       string
	// Date is the fallback release date when NextRelease.Date is unset.
	Date        time.Time
	IsPatch     bool
	LinkCompare bool
	Repository  Repository

	CommitGroups []CommitGroup
	NoteGroups   []NoteGroup
	NextRelease  NextRelease
}

// IsEmpty reports whether the context has no commit groups to render.
func (c *Context) IsEmpty() bool {
	return len(c.CommitGroups) == 0
}

// CommitCount returns the number of commits across all groups.
func (c *Context) CommitCount() int {
	n := 0
	for _, g := range c.CommitGroups {
		n += len(g.Commits)
	}
	return n
}
