package rules

// NoReleaseScope is the scope that suppresses a release for any commit type.
const NoReleaseScope = "no-release"

// DefaultRules returns the built-in rule table in declaration order.
// Sections follow the project's changelog types; severities follow the
// conventional-commits release rules.
func DefaultRules() []Rule {
	return []Rule{
		{Breaking: Bool(true), Section: "Breaking Changes", Severity: SeverityMajor, Icon: "💥"},
		{Scope: NoReleaseScope, Severity: SeverityNone, Hidden: true},
		{Type: "feat", Section: "Features", Severity: SeverityMinor, Icon: "✨"},
		{Type: "fix", Section: "Bug Fixes", Severity: SeverityPatch, Icon: "🐛"},
		{Type: "perf", Section: "Performance", Severity: SeverityPatch, Icon: "⚡"},
		{Type: "revert", Section: "Reverts", Severity: SeverityPatch, Icon: "⏪"},
		{Type: "docs", Section: "Documentation", Icon: "📝"},
		{Type: "chore", Section: "Chores", Icon: "🔧"},
		{Type: "refactor", Section: "Refactoring", Icon: "♻️"},
		{Type: "test", Section: "Tests", Icon: "✅"},
		{Type: "style", Section: "Style", Icon: "🎨"},
		{Type: "build", Section: "Build System", Icon: "📦", Hidden: true},
		{Type: "ci", Section: "Continuous Integration", Icon: "👷", Hidden: true},
	}
}

// Default returns a table built from DefaultRules.
func Default() *Table {
	return MustNew(DefaultRules())
}
