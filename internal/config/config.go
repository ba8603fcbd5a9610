// Package config provides configuration management for releasenotes using koanf.
// Configuration is loaded with priority: environment variables (RELNOTES_*) >
// project config (.releasenotes.yml) > defaults. The resulting struct is built
// once at process entry and passed explicitly to the pipeline; nothing below
// the CLI reads the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/declare-cloud/releasenotes/internal/commits"
	"github.com/declare-cloud/releasenotes/internal/release"
)

// EnvPrefix is the prefix of environment variables mapped onto config keys.
const EnvPrefix = "RELNOTES_"

// Configuration represents the releasenotes configuration.
type Configuration struct {
	// DryRun restricts the release branch set to the current branch and
	// disables file writes. Also enabled by --dry-run.
	DryRun bool `koanf:"dry_run" yaml:"dry_run"`
	// Branch is the current branch. When empty it is resolved from
	// GITHUB_REF_NAME, then BRANCH_NAME, then the git HEAD.
	Branch string `koanf:"branch" yaml:"branch"`
	// ReleaseBranches are the branches a real release may be cut from.
	ReleaseBranches []string `koanf:"release_branches" yaml:"release_branches" validate:"min=1,dive,required"`
	// RepositoryURL is the base URL used for commit, PR and compare links.
	RepositoryURL  string `koanf:"repository_url" yaml:"repository_url"`
	EmitCommitBody bool   `koanf:"emit_commit_body" yaml:"emit_commit_body"`
	SkipMarker     string `koanf:"skip_marker" yaml:"skip_marker" validate:"required"`
	// TemplatesDir overrides the embedded template fragments.
	TemplatesDir string `koanf:"templates_dir" yaml:"templates_dir"`
	// RulesFile replaces the built-in rule table.
	RulesFile           string `koanf:"rules_file" yaml:"rules_file"`
	ChangelogFile       string `koanf:"changelog_file" yaml:"changelog_file" validate:"required"`
	GroupBy             string `koanf:"group_by" yaml:"group_by" validate:"oneof=section type"`
	IncludeUnclassified bool   `koanf:"include_unclassified" yaml:"include_unclassified"`
	TagPrefix           string `koanf:"tag_prefix" yaml:"tag_prefix"`
	// MaxParallel bounds per-commit workers; 0 uses GOMAXPROCS.
	MaxParallel int `koanf:"max_parallel" yaml:"max_parallel" validate:"min=0,max=256"`

	// CI and GitHubToken come from CI and GITHUB_TOKEN. Only presence matters.
	CI          string `koanf:"-" yaml:"-"`
	GitHubToken string `koanf:"-" yaml:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .releasenotes.yml)
	ProjectConfigPath string
	// Getenv looks up unprefixed variables (CI, GITHUB_TOKEN, branch hints).
	// Defaults to os.Getenv.
	Getenv func(string) string
	// GitBranch is the last branch fallback, usually the git HEAD branch.
	GitBranch func() (string, error)
}

// Load loads configuration from the project file and environment.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	cfg, err := finalizeConfig(k, opts.ProjectConfigPath)
	if err != nil {
		return nil, err
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg.CI = getenv("CI")
	cfg.GitHubToken = getenv("GITHUB_TOKEN")
	cfg.Branch = resolveBranch(cfg.Branch, getenv, opts.GitBranch)

	return cfg, nil
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads the project YAML file if it exists. An explicit
// path that does not exist is an error; the default path is optional.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		path = customPath
		if !fileExists(path) {
			return fmt.Errorf("config file %s: %w", path, os.ErrNotExist)
		}
	}
	if !fileExists(path) {
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for project config: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load project config %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, normalizes and validates.
func finalizeConfig(k *koanf.Koanf, path string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ReleaseBranches = splitList(cfg.ReleaseBranches)
	cfg.GroupBy = strings.ToLower(strings.TrimSpace(cfg.GroupBy))

	if path == "" {
		path = "config"
	}
	if err := ValidateConfigValues(&cfg, path); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// resolveBranch applies the branch fallback chain.
func resolveBranch(branch string, getenv func(string) string, gitBranch func() (string, error)) string {
	if branch != "" {
		return branch
	}
	for _, key := range []string{"GITHUB_REF_NAME", "BRANCH_NAME"} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
	}
	if gitBranch != nil {
		if b, err := gitBranch(); err == nil {
			return b
		}
	}
	return ""
}

// splitList expands comma separated entries, as delivered by a single
// environment variable, and drops blanks.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: RELNOTES_DRY_RUN -> dry_run
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// ReleaseOptions returns the slice of configuration the publish pipeline needs.
func (c *Configuration) ReleaseOptions() release.Options {
	return release.Options{
		DryRun:          c.DryRun,
		Branch:          c.Branch,
		ReleaseBranches: c.ReleaseBranches,
		CI:              c.CI,
		GitHubToken:     c.GitHubToken,
	}
}

// EnrichOptions returns the enricher settings.
func (c *Configuration) EnrichOptions() commits.EnrichOptions {
	return commits.EnrichOptions{
		RepositoryURL: c.RepositoryURL,
		EmitBody:      c.EmitCommitBody,
		SkipMarker:    c.SkipMarker,
	}
}
