package release

import (
	"github.com/declare-cloud/releasenotes/internal/commits"
	"github.com/declare-cloud/releasenotes/internal/rules"
)

// ReleaseDecision is the overall severity of a commit set.
// SeverityNone means no release should be published.
type ReleaseDecision struct {
	Severity rules.Severity `json:"severity"`
	// Commits is the number of commits considered.
	Commits int `json:"commits"`
	// Breaking counts commits carrying a breaking-change marker.
	Breaking int `json:"breaking"`
	// Counts tallies commits per contributed severity.
	Counts map[rules.Severity]int `json:"counts"`
}

// Releasable reports whether the decision calls for a release.
func (d ReleaseDecision) Releasable() bool {
	return d.Severity.Rank() > rules.SeverityNone.Rank()
}

// Aggregator reduces a classified commit set to one ReleaseDecision using
// the severity view of a rule table.
type Aggregator struct {
	table *rules.Table
}

// NewAggregator creates an aggregator backed by table.
func NewAggregator(table *rules.Table) *Aggregator {
	return &Aggregator{table: table}
}

// Severity returns the severity a single commit contributes. The first
// matching severity rule decides; a breaking-change marker forces major
// whatever that rule says.
func (a *Aggregator) Severity(c commits.ClassifiedCommit) rules.Severity {
	target := commits.TargetOf(c.RawCommit)
	if target.Breaking {
		return rules.SeverityMajor
	}
	return a.table.MatchSeverity(target).OrNone()
}

// Decide reduces cs with major > minor > patch > none. Hidden commits
// still count. An empty set yields none.
func (a *Aggregator) Decide(cs []commits.ClassifiedCommit) ReleaseDecision {
	d := ReleaseDecision{
		Severity: rules.SeverityNone,
		Commits:  len(cs),
		Counts:   make(map[rules.Severity]int),
	}

	for _, c := range cs {
		sev := a.Severity(c)
		if c.IsBreaking() {
			d.Breaking++
		}
		d.Counts[sev]++
		d.Severity = rules.Max(d.Severity, sev)
	}

	logDebug("[decide] %d commits -> %s (breaking=%d)", d.Commits, d.Severity, d.Breaking)
	return d
}

// DecideEnriched is Decide over the output of the processing pass.
func (a *Aggregator) DecideEnriched(cs []commits.EnrichedCommit) ReleaseDecision {
	classified := make([]commits.ClassifiedCommit, len(cs))
	for i, c := range cs {
		classified[i] = c.ClassifiedCommit
	}
	return a.Decide(classified)
}
