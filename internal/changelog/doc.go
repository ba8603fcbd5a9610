// Package changelog turns processed commits into a release notes entry.
//
// This package implements:
//   - grouping commits into ordered sections driven by the rule table
//   - rendering groups through named text/template fragments
//   - embedded default fragments with a directory override
//   - prepending a rendered entry to CHANGELOG.md
//   - a colored terminal summary of the groups
package changelog
