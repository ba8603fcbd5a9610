package rules

import "fmt"

// Severity is the release impact of a change.
type Severity string

const (
	SeverityNone  Severity = "none"
	SeverityPatch Severity = "patch"
	SeverityMinor Severity = "minor"
	SeverityMajor Severity = "major"
)

// Rank returns the numeric weight of a severity: major(3) > minor(2) > patch(1) > none(0).
// Empty and unknown values rank as none.
func (s Severity) Rank() int {
	switch s {
	case SeverityMajor:
		return 3
	case SeverityMinor:
		return 2
	case SeverityPatch:
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityNone, SeverityPatch, SeverityMinor, SeverityMajor:
		return true
	}
	return false
}

// OrNone returns s, or SeverityNone when s is empty.
func (s Severity) OrNone() Severity {
	if s == "" {
		return SeverityNone
	}
	return s
}

// Max returns the higher of two severities.
func Max(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b.OrNone()
	}
	return a.OrNone()
}

// Rule is one entry of the classification table. Rules are tried in
// declaration order and the first structural match wins.
//
// A rule with Breaking set to true matches any commit that carries a
// breaking-change marker and cannot be narrowed by Type or Scope. A rule
// with only a Scope acts as a scope-level override for every type. An
// empty Section means the commit is unlisted.
type Rule struct {
	Type     string   `yaml:"type,omitempty" json:"type,omitempty"`
	Scope    string   `yaml:"scope,omitempty" json:"scope,omitempty"`
	Breaking *bool    `yaml:"breaking,omitempty" json:"breaking,omitempty"`
	Section  string   `yaml:"section,omitempty" json:"section,omitempty"`
	Severity Severity `yaml:"severity,omitempty" json:"severity,omitempty" validate:"omitempty,oneof=major minor patch none"`
	Icon     string   `yaml:"icon,omitempty" json:"icon,omitempty"`
	Hidden   bool     `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// Target is the part of a commit a rule is matched against.
type Target struct {
	Type     string
	Scope    string
	Breaking bool
}

// IsBreakingRule reports whether the rule triggers on the breaking-change marker.
func (r Rule) IsBreakingRule() bool {
	return r.Breaking != nil && *r.Breaking
}

// HasSeverity reports whether the rule assigns a severity.
func (r Rule) HasSeverity() bool {
	return r.Severity != ""
}

// Listed reports whether the rule places commits in a display section.
func (r Rule) Listed() bool {
	return r.Section != ""
}

// Matches reports whether the rule structurally matches the target.
func (r Rule) Matches(t Target) bool {
	if r.IsBreakingRule() {
		return t.Breaking
	}
	if r.Breaking != nil && t.Breaking {
		// breaking: false restricts the rule to non-breaking commits
		return false
	}
	if r.Type == "" && r.Scope == "" {
		return false
	}
	if r.Type != "" && r.Type != t.Type {
		return false
	}
	return r.Scope == "" || r.Scope == t.Scope
}

// String returns a compact description used in debug output and the rules listing.
func (r Rule) String() string {
	var match string
	switch {
	case r.IsBreakingRule():
		match = "breaking"
	case r.Type != "" && r.Scope != "":
		match = fmt.Sprintf("%s(%s)", r.Type, r.Scope)
	case r.Type != "":
		match = r.Type
	default:
		match = fmt.Sprintf("*(%s)", r.Scope)
	}
	return fmt.Sprintf("%s -> section=%q severity=%s hidden=%t", match, r.Section, r.Severity.OrNone(), r.Hidden)
}

// Bool returns a pointer to b, for building rules in code.
func Bool(b bool) *bool {
	return &b
}
