package commits

import (
	"strings"
)

// DefaultSkipMarker is the body marker that keeps a commit body out of release notes.
const DefaultSkipMarker = "[skip release notes]"

const shortHashLen = 7

// EnrichOptions configures presentation field derivation.
type EnrichOptions struct {
	// RepositoryURL is the repository base URL; a trailing ".git" is stripped.
	RepositoryURL string
	// EmitBody toggles whether commit bodies are attached as CommitBody.
	EmitBody bool
	// SkipMarker suppresses the body when found in it. Empty uses DefaultSkipMarker.
	SkipMarker string
}

// Enricher derives presentation fields from raw commits. It is a pure
// one-to-one transform and does not depend on classification.
type Enricher struct {
	baseURL    string
	emitBody   bool
	skipMarker string
}

// NewEnricher creates an enricher from options.
func NewEnricher(opts EnrichOptions) *Enricher {
	marker := opts.SkipMarker
	if marker == "" {
		marker = DefaultSkipMarker
	}
	return &Enricher{
		baseURL:    BaseURL(opts.RepositoryURL),
		emitBody:   opts.EmitBody,
		skipMarker: marker,
	}
}

// BaseURL returns the repository base URL used for links.
func (e *Enricher) BaseURL() string {
	return e.baseURL
}

// Enrich derives the presentation fields of raw.
//
// Fallback chains, first non-empty wins:
//
//	Hash      <- Hash, Commit.Long
//	ShortHash <- ShortHash, Commit.Short, Hash[:7]
//	TreeHash  <- TreeHash, Tree.Long
func (e *Enricher) Enrich(raw RawCommit) Presentation {
	p := Presentation{
		Hash:           resolveHash(raw),
		TreeHash:       firstNonEmpty(raw.TreeHash, raw.Tree.Long),
		AuthorName:     raw.Author.Name,
		AuthorEmail:    raw.Author.Email,
		AuthorDate:     raw.Author.Date,
		CommitterName:  raw.Committer.Name,
		CommitterEmail: raw.Committer.Email,
		CommitterDate:  raw.Committer.Date,
		Notes:          copyNotes(raw.Notes),
		Mentions:       copyStrings(raw.Mentions),
	}

	p.ShortHash = firstNonEmpty(raw.ShortHash, raw.Commit.Short, truncate(p.Hash, shortHashLen))
	p.ShortTreeHash = firstNonEmpty(raw.Tree.Short, truncate(p.TreeHash, shortHashLen))
	p.CommitURL = e.CommitURL(p.Hash)
	p.PRNumber, p.PRURL = e.pullRequest(raw.References)

	if e.emitBody && !e.Suppressed(raw.Body) {
		p.CommitBody = raw.Body
	}

	return p
}

// Suppressed reports whether body carries the skip marker.
func (e *Enricher) Suppressed(body string) bool {
	return strings.Contains(body, e.skipMarker)
}

// CommitURL builds the commit link for hash, or "" when hash or the base URL is empty.
func (e *Enricher) CommitURL(hash string) string {
	if hash == "" || e.baseURL == "" {
		return ""
	}
	return e.baseURL + "/commit/" + hash
}

// PullURL builds the pull request link for number, or "" when either part is empty.
func (e *Enricher) PullURL(number string) string {
	if number == "" || e.baseURL == "" {
		return ""
	}
	return e.baseURL + "/pull/" + number
}

// pullRequest returns the number and URL of the first reference with an
// issue number and an empty or "#" prefix. Both are empty when none qualifies.
func (e *Enricher) pullRequest(refs []Reference) (string, string) {
	for _, ref := range refs {
		if ref.Issue == "" {
			continue
		}
		if ref.Prefix != "" && ref.Prefix != "#" {
			continue
		}
		return ref.Issue, e.PullURL(ref.Issue)
	}
	return "", ""
}

// BaseURL normalizes a repository URL into an https base without a VCS suffix.
//
//	git+https://github.com/o/r.git -> https://github.com/o/r
//	git@github.com:o/r.git         -> https://github.com/o/r
func BaseURL(repoURL string) string {
	u := strings.TrimSpace(repoURL)
	u = strings.TrimPrefix(u, "git+")
	if strings.HasPrefix(u, "git@") {
		if host, path, ok := strings.Cut(strings.TrimPrefix(u, "git@"), ":"); ok {
			u = "https://" + host + "/" + path
		}
	}
	u = strings.TrimSuffix(u, "/")
	u = strings.TrimSuffix(u, ".git")
	return strings.TrimSuffix(u, "/")
}

func resolveHash(raw RawCommit) string {
	return firstNonEmpty(raw.Hash, raw.Commit.Long)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func copyNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)
	return out
}

func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
