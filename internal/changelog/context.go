package changelog

import "time"

// ContextOptions carries the release metadata for NewContext.
type ContextOptions struct {
	// RepositoryURL is the normalized https base URL; empty disables links.
	RepositoryURL string
	Version       string
	PreviousTag   string
	CurrentTag    string
	Title         string
	Date          time.Time
	// ReleaseType is major, minor or patch.
	ReleaseType string
}

// NewContext builds the render context for groups. Note groups are
// derived from the grouped commits.
func NewContext(groups []CommitGroup, opts ContextOptions) *Context {
	repo := NewRepository(opts.RepositoryURL)
	if groups == nil {
		groups = []CommitGroup{}
	}
	return &Context{
		Version:      opts.Version,
		PreviousTag:  opts.PreviousTag,
		CurrentTag:   opts.CurrentTag,
		Title:        opts.Title,
		Date:         opts.Date,
		IsPatch:      opts.ReleaseType == "patch",
		LinkCompare:  repo.URL != "" && opts.PreviousTag != "" && opts.CurrentTag != "",
		Repository:   repo,
		CommitGroups: groups,
		NoteGroups:   NoteGroups(groups),
		NextRelease: NextRelease{
			Version: opts.Version,
			Date:    opts.Date,
			Type:    opts.ReleaseType,
		},
	}
}
