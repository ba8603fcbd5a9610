// Package gitlog reads release input from a git repository: the commits
// since the latest release tag, parsed as conventional commits, and the
// current branch. It uses go-git and never shells out to the git CLI.
package gitlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/hashicorp/go-version"

	"github.com/declare-cloud/releasenotes/internal/commits"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Tag is a release tag and the commit it points at.
type Tag struct {
	Name    string
	Version string
	Commit  plumbing.Hash
}

// Result is the outcome of reading the log.
type Result struct {
	// Commits are in log order, newest first, merges excluded.
	Commits []commits.RawCommit
	// LastTag is nil when the repository has no release tag yet.
	LastTag *Tag
}

// Reader reads commits from one repository.
type Reader struct {
	repo *git.Repository
}

// NewReader wraps an already opened repository.
func NewReader(repo *git.Repository) *Reader {
	return &Reader{repo: repo}
}

// Open opens the repository containing path, or the working directory
// when path is empty. Parent directories are searched for .git.
func Open(path string) (*Reader, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}
	return NewReader(repo), nil
}

// openRepo opens a git repository at the specified path or current working directory.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// CurrentBranch returns the short name of the checked out branch, or ""
// in detached HEAD state.
func (r *Reader) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		logDebug("[git] CurrentBranch: detached HEAD state")
		return "", nil
	}
	branch := head.Name().Short()
	logDebug("[git] CurrentBranch: %s", branch)
	return branch, nil
}

// CurrentBranch opens the repository at path and returns its branch.
func CurrentBranch(path string) (string, error) {
	r, err := Open(path)
	if err != nil {
		return "", err
	}
	return r.CurrentBranch()
}

// LatestTag returns the highest semantic version tag named prefix+X.Y.Z.
// It returns nil when no tag qualifies.
func (r *Reader) LatestTag(prefix string) (*Tag, error) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `(\d+\.\d+\.\d+)$`)

	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var best *Tag
	var bestVer *version.Version
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		m := pattern.FindStringSubmatch(name)
		if m == nil {
			return nil
		}
		v, err := version.NewVersion(m[1])
		if err != nil {
			return nil
		}
		if bestVer != nil && !v.GreaterThan(bestVer) {
			return nil
		}
		commit, err := r.tagCommit(ref)
		if err != nil {
			return err
		}
		best = &Tag{Name: name, Version: v.String(), Commit: commit}
		bestVer = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	if best != nil {
		logDebug("[git] latest tag %s at %s", best.Name, best.Commit)
	}
	return best, nil
}

// tagCommit peels annotated tags to the commit they point at.
func (r *Reader) tagCommit(ref *plumbing.Reference) (plumbing.Hash, error) {
	obj, err := r.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		c, err := obj.Commit()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("resolving tag %s: %w", ref.Name().Short(), err)
		}
		return c.Hash, nil
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return ref.Hash(), nil
	default:
		return plumbing.ZeroHash, fmt.Errorf("reading tag %s: %w", ref.Name().Short(), err)
	}
}

// CommitsSince returns the commits reachable from HEAD but not from the
// latest tag named with prefix. Commits of branches that forked before the
// tag and were merged after it are included. Merge commits are skipped.
func (r *Reader) CommitsSince(ctx context.Context, prefix string) (*Result, error) {
	last, err := r.LatestTag(prefix)
	if err != nil {
		return nil, err
	}

	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	released, err := r.reachable(last)
	if err != nil {
		return nil, err
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	res := &Result{Commits: []commits.RawCommit{}, LastTag: last}
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := released[c.Hash]; ok {
			return nil
		}
		if c.NumParents() > 1 {
			logDebug("[git] skipping merge %s", c.Hash.String()[:7])
			return nil
		}
		res.Commits = append(res.Commits, ToRawCommit(c))
		return nil
	})
	if err != nil {
		return nil, err
	}

	logDebug("[git] %d commits since %s", len(res.Commits), tagName(last))
	return res, nil
}

// reachable returns the commits already released with tag. It is empty
// when there is no tag.
func (r *Reader) reachable(tag *Tag) (map[plumbing.Hash]struct{}, error) {
	seen := make(map[plumbing.Hash]struct{})
	if tag == nil {
		return seen, nil
	}

	iter, err := r.repo.Log(&git.LogOptions{From: tag.Commit})
	if err != nil {
		return nil, fmt.Errorf("reading log of %s: %w", tag.Name, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading log of %s: %w", tag.Name, err)
	}
	logDebug("[git] %d commits released with %s", len(seen), tag.Name)
	return seen, nil
}

// ToRawCommit converts a go-git commit into a parsed commit record.
func ToRawCommit(c *object.Commit) commits.RawCommit {
	raw := ParseMessage(c.Message)
	raw.Hash = c.Hash.String()
	raw.TreeHash = c.TreeHash.String()
	raw.Author = commits.Person{Name: c.Author.Name, Email: c.Author.Email, Date: c.Author.When}
	raw.Committer = commits.Person{Name: c.Committer.Name, Email: c.Committer.Email, Date: c.Committer.When}
	return raw
}

func tagName(t *Tag) string {
	if t == nil {
		return "the first commit"
	}
	return t.Name
}
