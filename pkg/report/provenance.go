package report

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/fulmenhq/goinject/pkg/logger"
)

// Provenance describes the git state of the target at report time
type Provenance struct {
	Commit      string `json:"commit" yaml:"commit"`
	Ref         string `json:"ref" yaml:"ref"`
	Dirty       bool   `json:"dirty" yaml:"dirty"`
	DirtyReason string `json:"dirty_reason,omitempty" yaml:"dirty_reason,omitempty"`
	RepoRoot    string `json:"repo_root,omitempty" yaml:"repo_root,omitempty"`
}

// Inspect reads commit, branch and worktree state for the repository that
// contains target. It returns nil when target is not inside a git repository
// or has no HEAD.
func Inspect(target string) *Provenance {
	repo, err := git.PlainOpenWithOptions(target, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil
	}

	head, err := repo.Head()
	if err != nil {
		logger.Debug("Target repository has no HEAD", logger.Err(err))
		return nil
	}

	p := &Provenance{
		Commit: head.Hash().String(),
		Ref:    head.Name().Short(),
	}

	worktree, err := repo.Worktree()
	if err != nil {
		p.Dirty, p.DirtyReason = true, "no-worktree"
		return p
	}
	p.RepoRoot = worktree.Filesystem.Root()

	status, err := worktree.Status()
	if err != nil {
		p.Dirty, p.DirtyReason = true, "status-error"
		return p
	}

	// Status lists ignored untracked files too
	patterns, err := gitignore.ReadPatterns(worktree.Filesystem, nil)
	if err != nil {
		patterns = nil
	}
	patterns = append(patterns, worktree.Excludes...)
	matcher := gitignore.NewMatcher(patterns)

	for path, fileStatus := range status {
		if fileStatus.Worktree == git.Untracked {
			if matcher.Match(strings.Split(filepath.ToSlash(path), "/"), false) {
				continue
			}
			p.Dirty, p.DirtyReason = true, "worktree-dirty"
			break
		}
		if fileStatus.Staging != git.Unmodified || fileStatus.Worktree != git.Unmodified {
			p.Dirty, p.DirtyReason = true, "worktree-dirty"
			break
		}
	}
	return p
}
