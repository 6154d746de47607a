// Package git runs read-only git commands against a repository: branch and
// root discovery, diffs of the working tree, and untracked files.
package git

import "context"

// Executor defines the git queries the review view needs.
// This abstraction allows for easy testing with fake implementations.
type Executor interface {
	IsGitRepo(ctx context.Context) bool
	GetRepoRoot(ctx context.Context) (string, error)
	// GetGitDir returns the absolute path of the repository's git directory.
	GetGitDir(ctx context.Context) (string, error)
	// GetCurrentBranch returns ErrDetachedHead when HEAD is not on a branch.
	GetCurrentBranch(ctx context.Context) (string, error)
	GetMainBranch(ctx context.Context) (string, error)
	HasUncommittedChanges(ctx context.Context) (bool, error)

	// GetWorkingDirDiff returns the unified diff of staged and unstaged
	// changes against HEAD. A repository without commits diffs against the
	// empty tree.
	GetWorkingDirDiff(ctx context.Context) (string, error)
	// GetDiffFromBase returns the diff of the working tree against the
	// merge base of ref and HEAD.
	GetDiffFromBase(ctx context.Context, ref string) (string, error)
	// GetUntrackedFiles returns untracked, non-ignored paths relative to the
	// repository root.
	GetUntrackedFiles(ctx context.Context) ([]string, error)
	// GetFileContent reads a file relative to the repository root.
	GetFileContent(path string) (string, error)
}
