// Package rules provides the declarative commit classification table.
//
// This package implements:
//   - Rule and Severity types with the major > minor > patch > none order
//   - The built-in rule table derived from the project's changelog types
//   - YAML rules file loading and fail-fast validation
//   - Read-only severity and section views used for aggregation and grouping
//
// The table is consulted by both the commit classifier and the grouping engine,
// so section names, icons and ordering always come from one place.
package rules
