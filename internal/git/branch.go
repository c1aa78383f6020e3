package git

import (
	"strings"

	"github.com/belaosa/ef-migration-tools/internal/execution"
)

// BranchReader reads the current git branch name.
type BranchReader struct {
	runner execution.Runner
	repo   string
}

// NewBranchReader creates a BranchReader for the given repository path.
func NewBranchReader(runner execution.Runner, repo string) *BranchReader {
	return &BranchReader{runner: runner, repo: repo}
}

// CurrentBranch returns the current branch name. Not being in a git
// repository, a detached HEAD, or git being unavailable all yield an
// empty string - "no branch" is a valid answer, never a failure.
func (b *BranchReader) CurrentBranch() string {
	res, err := b.runner.Run(b.repo, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil || !res.Success() {
		return ""
	}
	branch := strings.TrimSpace(res.Stdout)
	if branch == "HEAD" {
		// Detached HEAD
		return ""
	}
	return branch
}
