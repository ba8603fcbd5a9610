package gitlog

import (
	"regexp"
	"strings"

	"github.com/declare-cloud/releasenotes/internal/commits"
)

// BreakingNoteTitle is the title given to breaking-change notes.
const BreakingNoteTitle = "BREAKING CHANGES"

var (
	headerPattern    = regexp.MustCompile(`^(\w+)(?:\(([^()]*)\))?(!)?: (.+)$`)
	notePattern      = regexp.MustCompile(`^(BREAKING[ -]CHANGES?)[:\s]\s*(.*)$`)
	referencePattern = regexp.MustCompile(`(?i)(?:\b(close[sd]?|fix(?:e[sd])?|resolve[sd]?)\s+)?(?:([\w-]+)/([\w.-]+))?(#|gh-)(\d+)\b`)
	actionPattern    = regexp.MustCompile(`(?i)^(close[sd]?|fix(?:e[sd])?|resolve[sd]?)\s+(?:[\w-]+/[\w.-]+)?(#|gh-)\d+`)
	mentionPattern   = regexp.MustCompile(`\B@([\w-]+)`)
)

// ParseMessage splits a commit message into its conventional-commit parts.
// A header that does not follow "type(scope)!: subject" leaves Type and
// Subject empty; such commits match no rule.
func ParseMessage(message string) commits.RawCommit {
	msg := strings.ReplaceAll(message, "\r\n", "\n")
	msg = strings.TrimSpace(msg)

	header, rest, _ := strings.Cut(msg, "\n")
	header = strings.TrimSpace(header)

	raw := commits.RawCommit{Header: header, Message: message}
	if m := headerPattern.FindStringSubmatch(header); m != nil {
		raw.Type = strings.ToLower(m[1])
		raw.Scope = strings.TrimSpace(m[2])
		raw.Breaking = m[3] == "!"
		raw.Subject = strings.TrimSpace(m[4])
	}

	raw.Body, raw.Footer = splitFooter(strings.Trim(rest, "\n"))
	raw.Notes = parseNotes(raw.Footer)

	if raw.Breaking && !hasBreakingNote(raw.Notes) {
		raw.Notes = append(raw.Notes, commits.Note{Title: BreakingNoteTitle, Text: raw.Subject})
	}
	if hasBreakingNote(raw.Notes) {
		raw.Breaking = true
	}

	raw.References = parseReferences(header + "\n" + rest)
	raw.Mentions = parseMentions(msg)
	return raw
}

// splitFooter separates the body from the footer. The footer starts at the
// first breaking-change note or issue-closing line.
func splitFooter(text string) (string, string) {
	if text == "" {
		return "", ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		l := strings.TrimSpace(line)
		if notePattern.MatchString(l) || actionPattern.MatchString(l) {
			body := strings.TrimSpace(strings.Join(lines[:i], "\n"))
			footer := strings.TrimSpace(strings.Join(lines[i:], "\n"))
			return body, footer
		}
	}
	return strings.TrimSpace(text), ""
}

func parseNotes(footer string) []commits.Note {
	var notes []commits.Note
	var current *commits.Note

	for _, line := range strings.Split(footer, "\n") {
		l := strings.TrimSpace(line)
		if m := notePattern.FindStringSubmatch(l); m != nil {
			notes = append(notes, commits.Note{Title: BreakingNoteTitle, Text: m[2]})
			current = &notes[len(notes)-1]
			continue
		}
		if actionPattern.MatchString(l) {
			current = nil
			continue
		}
		if current != nil && l != "" {
			if current.Text != "" {
				current.Text += "\n"
			}
			current.Text += l
		}
	}

	for i := range notes {
		notes[i].Text = strings.TrimSpace(notes[i].Text)
	}
	return notes
}

func hasBreakingNote(notes []commits.Note) bool {
	for _, n := range notes {
		if n.Title == BreakingNoteTitle {
			return true
		}
	}
	return false
}

func parseReferences(text string) []commits.Reference {
	var refs []commits.Reference
	for _, m := range referencePattern.FindAllStringSubmatch(text, -1) {
		ref := commits.Reference{
			Action:     m[1],
			Owner:      m[2],
			Repository: m[3],
			Prefix:     strings.ToLower(m[4]),
			Issue:      m[5],
		}
		ref.Raw = strings.TrimSpace(strings.TrimPrefix(m[0], m[1]))
		if ref.Action != "" {
			ref.Action = strings.ToUpper(ref.Action[:1]) + strings.ToLower(ref.Action[1:])
		}
		refs = append(refs, ref)
	}
	return refs
}

func parseMentions(text string) []string {
	var mentions []string
	seen := make(map[string]bool)
	for _, m := range mentionPattern.FindAllStringSubmatch(text, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		mentions = append(mentions, m[1])
	}
	return mentions
}
