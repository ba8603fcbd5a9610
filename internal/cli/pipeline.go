package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/declare-cloud/releasenotes/internal/changelog"
	"github.com/declare-cloud/releasenotes/internal/commits"
	"github.com/declare-cloud/releasenotes/internal/config"
	clierrors "github.com/declare-cloud/releasenotes/internal/errors"
	"github.com/declare-cloud/releasenotes/internal/gitlog"
	"github.com/declare-cloud/releasenotes/internal/release"
	"github.com/declare-cloud/releasenotes/internal/rules"
)

// pipeline holds everything resolved before the first commit is read.
type pipeline struct {
	cfg      *config.Configuration
	table    *rules.Table
	renderer *changelog.Renderer
	groupBy  changelog.GroupBy
}

// source is the commit input and the release it continues from.
type source struct {
	raws []commits.RawCommit
	// lastVersion and lastTag are empty when nothing was released yet.
	lastVersion string
	lastTag     string
}

// outcome is the result of one pipeline run.
type outcome struct {
	decision    release.ReleaseDecision
	version     string
	releaseType string
	groups      []changelog.CommitGroup
	context     *changelog.Context
}

// loadPipeline resolves configuration, the rule table and the templates.
// Template problems are reported here, before any commit is classified.
func loadPipeline(cmd *cobra.Command, repoDir string) (*pipeline, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		GitBranch: func() (string, error) {
			return gitlog.CurrentBranch(repoDir)
		},
	})
	if err != nil {
		if configPath == "" {
			configPath = config.ProjectConfigPath()
		}
		return nil, clierrors.ConfigInvalid(configPath, err)
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
	}

	table := rules.Default()
	if cfg.RulesFile != "" {
		table, err = rules.Load(cfg.RulesFile)
		if err != nil {
			return nil, clierrors.RulesInvalid(cfg.RulesFile, err)
		}
	}

	renderer, err := changelog.LoadRenderer(cfg.TemplatesDir)
	if err != nil {
		dir := cfg.TemplatesDir
		if dir == "" {
			dir = "embedded templates"
		}
		return nil, clierrors.TemplatesInvalid(dir, err)
	}

	groupBy, err := changelog.ParseGroupBy(cfg.GroupBy)
	if err != nil {
		return nil, clierrors.ConfigInvalid(configPath, err)
	}

	return &pipeline{cfg: cfg, table: table, renderer: renderer, groupBy: groupBy}, nil
}

// readCommits loads commit records from input, or from the git history of
// repoDir since the latest release tag when input is empty.
func (p *pipeline) readCommits(ctx context.Context, input, repoDir string) (*source, error) {
	if input != "" {
		raws, err := commits.LoadFile(input)
		if err != nil {
			return nil, clierrors.InputNotReadable(input, err)
		}
		return &source{raws: raws}, nil
	}

	reader, err := gitlog.Open(repoDir)
	if err != nil {
		return nil, clierrors.GitNotRepository(repoDir, err)
	}
	res, err := reader.CommitsSince(ctx, p.cfg.TagPrefix)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}

	src := &source{raws: res.Commits}
	if res.LastTag != nil {
		src.lastVersion = res.LastTag.Version
		src.lastTag = res.LastTag.Name
	}
	return src, nil
}

// run classifies, decides, groups and builds the render context.
// versionOverride replaces the computed next version when set.
func (p *pipeline) run(ctx context.Context, src *source, versionOverride string) (*outcome, error) {
	classifier := commits.NewClassifier(p.table)
	enricher := commits.NewEnricher(p.cfg.EnrichOptions())
	processor := commits.NewProcessor(
		classifier,
		enricher,
		commits.WithMaxParallel(p.cfg.MaxParallel),
	)
	enriched, err := processor.Process(ctx, src.raws)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}

	decision := release.NewAggregator(classifier.Table()).DecideEnriched(enriched)

	next, err := release.NextVersion(src.lastVersion, decision.Severity)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}
	if versionOverride != "" {
		next = versionOverride
	}

	releaseType := release.ReleaseType(src.lastVersion, next)
	if releaseType == "" && decision.Releasable() {
		releaseType = string(decision.Severity)
	}

	groups := changelog.Group(enriched, p.table, changelog.GroupOptions{
		By:                  p.groupBy,
		IncludeUnclassified: p.cfg.IncludeUnclassified,
	})

	var currentTag string
	if next != "" {
		currentTag = p.cfg.TagPrefix + next
	}

	return &outcome{
		decision:    decision,
		version:     next,
		releaseType: releaseType,
		groups:      groups,
		context: changelog.NewContext(groups, changelog.ContextOptions{
			RepositoryURL: enricher.BaseURL(),
			Version:       next,
			PreviousTag:   src.lastTag,
			CurrentTag:    currentTag,
			ReleaseType:   releaseType,
		}),
	}, nil
}

// releaseOptions returns the branch gating inputs.
func (p *pipeline) releaseOptions() release.Options {
	return p.cfg.ReleaseOptions()
}
