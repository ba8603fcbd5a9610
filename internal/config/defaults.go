package config

import "github.com/declare-cloud/releasenotes/internal/commits"

// DefaultRepositoryURL is the repository links point at unless overridden.
const DefaultRepositoryURL = "https://github.com/declare-cloud/website"

// GetDefaults returns the default configuration values as a map
// suitable for loading into koanf.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"dry_run":              false,
		"branch":               "",
		"release_branches":     []string{"main"},
		"repository_url":       DefaultRepositoryURL,
		"emit_commit_body":     true,
		"skip_marker":          commits.DefaultSkipMarker,
		"templates_dir":        "",
		"rules_file":           "",
		"changelog_file":       "CHANGELOG.md",
		"group_by":             "section",
		"include_unclassified": false,
		"tag_prefix":           "v",
		"max_parallel":         0,
	}
}
