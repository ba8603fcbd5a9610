package rules

import (
	"slices"
	"strings"
)

// Table is an ordered, immutable list of rules plus the two derived views.
// It is built once at startup and only read afterwards.
type Table struct {
	rules    []Rule
	severity []Rule
	sections []Rule
}

// New validates rules and builds a Table from them.
func New(rules []Rule) (*Table, error) {
	if err := Validate(rules); err != nil {
		return nil, err
	}

	t := &Table{rules: append([]Rule(nil), rules...)}
	for _, r := range t.rules {
		if r.HasSeverity() {
			t.severity = append(t.severity, r)
		}
		if r.Listed() {
			t.sections = append(t.sections, r)
		}
	}
	return t, nil
}

// MustNew is like New but panics on invalid input. Use only for static tables.
func MustNew(rules []Rule) *Table {
	t, err := New(rules)
	if err != nil {
		panic(err)
	}
	return t
}

// Rules returns a copy of the full table in declaration order.
func (t *Table) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// SeverityRules returns the rules that carry a severity, in declaration order.
func (t *Table) SeverityRules() []Rule {
	return append([]Rule(nil), t.severity...)
}

// SectionRules returns the rules that carry a display section, in declaration order.
func (t *Table) SectionRules() []Rule {
	return append([]Rule(nil), t.sections...)
}

// Match scans the table in order and returns the first rule matching target.
func (t *Table) Match(target Target) (Rule, bool) {
	for _, r := range t.rules {
		if r.Matches(target) {
			return r, true
		}
	}
	return Rule{}, false
}

// MatchSeverity returns the severity assigned by the first matching severity rule,
// or SeverityNone when no severity rule matches.
func (t *Table) MatchSeverity(target Target) Severity {
	for _, r := range t.severity {
		if r.Matches(target) {
			return r.Severity
		}
	}
	return SeverityNone
}

// SectionIndex returns the position of the first section rule declaring title,
// or -1 when no section rule declares it.
func (t *Table) SectionIndex(title string) int {
	for i, r := range t.sections {
		if r.Section == title {
			return i
		}
	}
	return -1
}

// ResolveSection finds the section rule for a working group title. A rule
// whose section equals the trimmed title wins; otherwise the first rule
// whose type equals one of types is used.
func (t *Table) ResolveSection(title string, types []string) (Rule, bool) {
	trimmed := strings.TrimSpace(title)
	for _, r := range t.sections {
		if r.Section == trimmed {
			return r, true
		}
	}
	for _, r := range t.sections {
		if r.Type != "" && slices.Contains(types, r.Type) {
			return r, true
		}
	}
	return Rule{}, false
}
