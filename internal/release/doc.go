// Package release decides whether and how a commit set is released.
//
// The aggregator reduces classified commits to a single ReleaseDecision,
// NextVersion turns that decision into a version string, and Steps and
// Branches compose the publishing pipeline from an explicit Options value.
package release
