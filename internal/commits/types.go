// Package commits turns raw commit records into classified, enriched records
// ready for grouping and rendering.
package commits

import (
	"strings"
	"time"

	"github.com/declare-cloud/releasenotes/internal/rules"
)

// Person identifies a commit author or committer.
type Person struct {
	Name  string    `yaml:"name" json:"name"`
	Email string    `yaml:"email" json:"email"`
	Date  time.Time `yaml:"date" json:"date"`
}

// ObjectID is a nested long/short hash pair as emitted by some log readers.
type ObjectID struct {
	Long  string `yaml:"long" json:"long"`
	Short string `yaml:"short" json:"short"`
}

// Reference is an issue or pull request reference found in a commit message.
type Reference struct {
	Action     string `yaml:"action,omitempty" json:"action,omitempty"`
	Owner      string `yaml:"owner,omitempty" json:"owner,omitempty"`
	Repository string `yaml:"repository,omitempty" json:"repository,omitempty"`
	Issue      string `yaml:"issue,omitempty" json:"issue,omitempty"`
	Raw        string `yaml:"raw,omitempty" json:"raw,omitempty"`
	Prefix     string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
}

// Note is a titled footer note such as "BREAKING CHANGE".
type Note struct {
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
}

// RawCommit is a commit record as received from the log reader.
type RawCommit struct {
	Hash      string   `yaml:"hash,omitempty" json:"hash,omitempty"`
	ShortHash string   `yaml:"shortHash,omitempty" json:"shortHash,omitempty"`
	Commit    ObjectID `yaml:"commit,omitempty" json:"commit,omitempty"`
	TreeHash  string   `yaml:"treeHash,omitempty" json:"treeHash,omitempty"`
	Tree      ObjectID `yaml:"tree,omitempty" json:"tree,omitempty"`

	Type     string `yaml:"type,omitempty" json:"type,omitempty"`
	Scope    string `yaml:"scope,omitempty" json:"scope,omitempty"`
	Subject  string `yaml:"subject,omitempty" json:"subject,omitempty"`
	Header   string `yaml:"header,omitempty" json:"header,omitempty"`
	Body     string `yaml:"body,omitempty" json:"body,omitempty"`
	Footer   string `yaml:"footer,omitempty" json:"footer,omitempty"`
	Breaking bool   `yaml:"breaking,omitempty" json:"breaking,omitempty"`

	Author    Person `yaml:"author,omitempty" json:"author,omitempty"`
	Committer Person `yaml:"committer,omitempty" json:"committer,omitempty"`

	References []Reference `yaml:"references,omitempty" json:"references,omitempty"`
	Notes      []Note      `yaml:"notes,omitempty" json:"notes,omitempty"`
	Mentions   []string    `yaml:"mentions,omitempty" json:"mentions,omitempty"`
	Message    string      `yaml:"message,omitempty" json:"message,omitempty"`
}

// IsBreaking reports whether the commit carries a breaking-change marker:
// the "!" header marker or a BREAKING CHANGE note.
func (c RawCommit) IsBreaking() bool {
	if c.Breaking {
		return true
	}
	for _, n := range c.Notes {
		if isBreakingNoteTitle(n.Title) {
			return true
		}
	}
	return false
}

func isBreakingNoteTitle(title string) bool {
	t := strings.ToUpper(strings.TrimSpace(title))
	return strings.HasPrefix(t, "BREAKING CHANGE") || strings.HasPrefix(t, "BREAKING-CHANGE")
}

// ClassifiedCommit is a RawCommit plus the outcome of rule matching.
// Unmatched commits carry an empty section and icon, severity none and
// Matched set to false.
type ClassifiedCommit struct {
	RawCommit

	Section  string
	Severity rules.Severity
	Icon     string
	Hidden   bool
	Matched  bool
}

// Visible reports whether the commit belongs in a rendered section.
func (c ClassifiedCommit) Visible() bool {
	return c.Matched && !c.Hidden && c.Section != ""
}

// Presentation holds the fields derived by the Enricher from a raw commit.
type Presentation struct {
	Hash          string
	ShortHash     string
	CommitURL     string
	TreeHash      string
	ShortTreeHash string

	AuthorName     string
	AuthorEmail    string
	AuthorDate     time.Time
	CommitterName  string
	CommitterEmail string
	CommitterDate  time.Time

	// PRNumber and PRURL are always present, possibly empty.
	PRNumber string
	PRURL    string

	// CommitBody is empty when body emission is disabled or the body
	// carries the skip marker.
	CommitBody string

	Notes    []Note
	Mentions []string
}

// EnrichedCommit combines classification and presentation of one commit.
// Presentation fields shadow the raw Hash, ShortHash, TreeHash and Notes
// with their resolved values.
type EnrichedCommit struct {
	ClassifiedCommit
	Presentation
}
