package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/declare-cloud/releasenotes/internal/commits"
	"github.com/declare-cloud/releasenotes/internal/rules"
)

// SeverityStyle defines the color and label glyph for a severity.
type SeverityStyle struct {
	Color *color.Color
	Icon  string
}

var severityStyles = map[rules.Severity]SeverityStyle{
	rules.SeverityMajor: {Color: color.New(color.FgRed, color.Bold), Icon: "▲"},
	rules.SeverityMinor: {Color: color.New(color.FgGreen), Icon: "+"},
	rules.SeverityPatch: {Color: color.New(color.FgYellow), Icon: "•"},
	rules.SeverityNone:  {Color: color.New(color.FgHiBlack), Icon: "-"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// DecisionSummary is what FormatDecision prints.
type DecisionSummary struct {
	Severity   rules.Severity
	Version    string
	Branch     string
	CanRelease bool
	Steps      []string
}

// FormatDecision writes the release decision as a short colored block.
func FormatDecision(s DecisionSummary, w io.Writer, opts FormatOptions) error {
	sev := s.Severity.OrNone()
	style := styleFor(sev)

	label := string(sev)
	if !opts.Plain {
		label = style.Color.Sprintf("%s %s", style.Icon, sev)
	}
	if _, err := fmt.Fprintf(w, "release: %s\n", label); err != nil {
		return err
	}

	next := s.Version
	if next == "" {
		next = "(no release)"
	}
	if _, err := fmt.Fprintf(w, "next version: %s\n", next); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "branch: %s (release allowed: %t)\n", s.Branch, s.CanRelease); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "steps: %s\n", strings.Join(s.Steps, ", "))
	return err
}

// FormatGroups writes commit groups to the writer with terminal styling.
// Each group shows its icon and title followed by one line per commit,
// tagged with the severity the commit's rule assigned.
func FormatGroups(groups []CommitGroup, w io.Writer, opts FormatOptions) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, "No notable changes.")
		return err
	}

	width := resolveWidth(opts.MaxWidth)
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeGroupHeader(g, w, opts); err != nil {
			return fmt.Errorf("formatting group %s: %w", g.Title, err)
		}
		for _, c := range g.Commits {
			if err := writeCommitLine(c, w, opts, width); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeGroupHeader(g CommitGroup, w io.Writer, opts FormatOptions) error {
	if opts.Plain || g.Icon == "" {
		_, err := fmt.Fprintf(w, "## %s\n", g.Title)
		return err
	}
	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "%s %s\n", g.Icon, bold(g.Title))
	return err
}

// writeCommitLine writes a single commit with optional wrapping.
func writeCommitLine(c commits.EnrichedCommit, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	hash := c.ShortHash
	text := c.Subject
	if c.Scope != "" {
		text = c.Scope + ": " + c.Subject
	}
	text = FormatCommitSummary(c.Severity, text, opts)

	if opts.Plain {
		if hash != "" {
			text += " (" + hash + ")"
		}
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix)-len(hash)-3, "    ")
	if hash != "" {
		faint := color.New(color.Faint).SprintFunc()
		wrapped += " " + faint("("+hash+")")
	}
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, wrapped)
	return err
}

// FormatCommitSummary prefixes a commit subject with its severity and
// truncates it to 60 characters.
func FormatCommitSummary(sev rules.Severity, subject string, opts FormatOptions) string {
	text := truncateText(subject, 60)
	if opts.Plain {
		return fmt.Sprintf("[%s] %s", sev.OrNone(), text)
	}
	style := styleFor(sev)
	return fmt.Sprintf("%s %s", style.Color.Sprint(style.Icon), text)
}

func styleFor(sev rules.Severity) SeverityStyle {
	if s, ok := severityStyles[sev.OrNone()]; ok {
		return s
	}
	return severityStyles[rules.SeverityNone]
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
