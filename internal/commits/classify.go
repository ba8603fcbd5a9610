package commits

import "github.com/declare-cloud/releasenotes/internal/rules"

// Classifier maps commits to the first matching rule of a table.
type Classifier struct {
	table *rules.Table
}

// NewClassifier creates a classifier backed by table.
func NewClassifier(table *rules.Table) *Classifier {
	return &Classifier{table: table}
}

// Table returns the rule table the classifier consults.
func (c *Classifier) Table() *rules.Table {
	return c.table
}

// Classify returns the commit with section, severity, icon and hidden taken
// from the first matching rule. Unmatched commits get severity none and
// empty presentation fields; classification never fails.
func (c *Classifier) Classify(raw RawCommit) ClassifiedCommit {
	out := ClassifiedCommit{
		RawCommit: raw,
		Severity:  rules.SeverityNone,
	}

	rule, ok := c.table.Match(TargetOf(raw))
	if !ok {
		logDebug("[classify] %s: no rule for type=%q scope=%q", shortOf(raw), raw.Type, raw.Scope)
		return out
	}

	out.Matched = true
	out.Section = rule.Section
	out.Severity = rule.Severity.OrNone()
	out.Icon = rule.Icon
	out.Hidden = rule.Hidden
	logDebug("[classify] %s: %s", shortOf(raw), rule)
	return out
}

// TargetOf extracts the rule matching target from a commit.
func TargetOf(raw RawCommit) rules.Target {
	return rules.Target{
		Type:     raw.Type,
		Scope:    raw.Scope,
		Breaking: raw.IsBreaking(),
	}
}

func shortOf(raw RawCommit) string {
	h := resolveHash(raw)
	if len(h) > 7 {
		return h[:7]
	}
	if h == "" {
		return "<nohash>"
	}
	return h
}
