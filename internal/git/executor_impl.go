package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/vibekanban/internal/log"
)

// Git-specific errors.
var (
	// ErrNotGitRepo indicates the directory is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrDetachedHead indicates HEAD does not point at a branch.
	ErrDetachedHead = errors.New("HEAD is detached")

	// ErrUnknownRevision indicates a ref that git cannot resolve.
	ErrUnknownRevision = errors.New("unknown revision")

	// ErrFileTooLarge indicates a file exceeds MaxFileContentSize.
	ErrFileTooLarge = errors.New("file too large")
)

// emptyTree is the hash of git's empty tree object.
const emptyTree = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// MaxFileContentSize bounds GetFileContent.
const MaxFileContentSize = 1 << 20

// Compile-time check that RealExecutor implements Executor.
var _ Executor = (*RealExecutor)(nil)

// RealExecutor implements Executor by executing actual git commands.
type RealExecutor struct {
	workDir string
}

// NewRealExecutor creates a new RealExecutor rooted at workDir.
func NewRealExecutor(workDir string) *RealExecutor {
	return &RealExecutor{workDir: workDir}
}

// WorkDir returns the directory git commands run in.
func (e *RealExecutor) WorkDir() string {
	return e.workDir
}

// runGit executes a git command and returns an error if it fails.
func (e *RealExecutor) runGit(ctx context.Context, args ...string) error {
	_, err := e.runGitRaw(ctx, args...)
	return err
}

// runGitOutput executes a git command and returns trimmed stdout.
func (e *RealExecutor) runGitOutput(ctx context.Context, args ...string) (string, error) {
	out, err := e.runGitRaw(ctx, args...)
	return strings.TrimSpace(out), err
}

// runGitRaw executes a git command and returns stdout untouched. Diff output
// must keep its trailing whitespace.
func (e *RealExecutor) runGitRaw(ctx context.Context, args ...string) (string, error) {
	start := time.Now()
	//nolint:gosec // G204: args come from controlled sources
	cmd := exec.CommandContext(ctx, "git", args...)
	if e.workDir != "" {
		cmd.Dir = e.workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	log.Debug(log.CatGit, "git", "args", strings.Join(args, " "), "dir", e.workDir, "took", time.Since(start), "err", err)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("git %s: %w", args[0], ctxErr)
		}
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", parseGitError(stderrStr, err)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}

// parseGitError converts git stderr messages to specific error types.
func parseGitError(stderr string, originalErr error) error {
	stderrLower := strings.ToLower(stderr)

	if strings.Contains(stderrLower, "not a git repository") {
		return fmt.Errorf("%w: %s", ErrNotGitRepo, stderr)
	}

	// fatal: ambiguous argument 'x': unknown revision or path not in the working tree.
	// fatal: Not a valid object name x
	if strings.Contains(stderrLower, "unknown revision") ||
		strings.Contains(stderrLower, "not a valid object name") ||
		strings.Contains(stderrLower, "bad revision") {
		return fmt.Errorf("%w: %s", ErrUnknownRevision, stderr)
	}

	return fmt.Errorf("git error: %s: %w", stderr, originalErr)
}

// IsGitRepo checks if the working directory is inside a git repository.
func (e *RealExecutor) IsGitRepo(ctx context.Context) bool {
	return e.runGit(ctx, "rev-parse", "--git-dir") == nil
}

// GetRepoRoot returns the root directory of the git repository.
func (e *RealExecutor) GetRepoRoot(ctx context.Context) (string, error) {
	return e.runGitOutput(ctx, "rev-parse", "--show-toplevel")
}

// GetGitDir returns the absolute git directory.
func (e *RealExecutor) GetGitDir(ctx context.Context) (string, error) {
	dir, err := e.runGitOutput(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(dir) && e.workDir != "" {
		dir = filepath.Join(e.workDir, dir)
	}
	return filepath.Clean(dir), nil
}

// GetCurrentBranch returns the name of the current branch.
func (e *RealExecutor) GetCurrentBranch(ctx context.Context) (string, error) {
	// git 2.22+; prints nothing when detached.
	output, err := e.runGitOutput(ctx, "branch", "--show-current")
	if err == nil && output != "" {
		return output, nil
	}
	if err != nil && errors.Is(err, ErrNotGitRepo) {
		return "", err
	}

	output, err = e.runGitOutput(ctx, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		if e.runGit(ctx, "rev-parse", "--verify", "HEAD") == nil {
			return "", ErrDetachedHead
		}
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return output, nil
}

// GetMainBranch detects the main branch name using multiple strategies.
// Order: remote HEAD → main/master existence → config → fallback to "main".
func (e *RealExecutor) GetMainBranch(ctx context.Context) (string, error) {
	// refs/remotes/origin/main -> "main"
	if ref, err := e.runGitOutput(ctx, "symbolic-ref", "refs/remotes/origin/HEAD"); err == nil {
		parts := strings.Split(ref, "/")
		if len(parts) > 0 {
			return parts[len(parts)-1], nil
		}
	}

	if err := e.runGit(ctx, "show-ref", "--verify", "--quiet", "refs/heads/main"); err == nil {
		return "main", nil
	}
	if err := e.runGit(ctx, "show-ref", "--verify", "--quiet", "refs/heads/master"); err == nil {
		return "master", nil
	}

	if branch, err := e.runGitOutput(ctx, "config", "init.defaultBranch"); err == nil && branch != "" {
		return branch, nil
	}
	return "main", nil
}

// HasUncommittedChanges reports whether the working tree or index differs
// from HEAD, including untracked files.
func (e *RealExecutor) HasUncommittedChanges(ctx context.Context) (bool, error) {
	output, err := e.runGitOutput(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return output != "", nil
}

func (e *RealExecutor) hasHead(ctx context.Context) bool {
	return e.runGit(ctx, "rev-parse", "--verify", "--quiet", "HEAD") == nil
}

// GetWorkingDirDiff returns staged and unstaged changes against HEAD.
func (e *RealExecutor) GetWorkingDirDiff(ctx context.Context) (string, error) {
	base := "HEAD"
	if !e.hasHead(ctx) {
		base = emptyTree
	}
	return e.runGitRaw(ctx, "diff", "--no-color", "--no-ext-diff", "--find-renames", base)
}

// GetDiffFromBase returns the working tree diff against merge-base(ref, HEAD).
func (e *RealExecutor) GetDiffFromBase(ctx context.Context, ref string) (string, error) {
	if strings.HasPrefix(ref, "-") {
		return "", fmt.Errorf("%w: %s", ErrUnknownRevision, ref)
	}
	base, err := e.runGitOutput(ctx, "merge-base", ref, "HEAD")
	if err != nil {
		return "", fmt.Errorf("finding merge base with %s: %w", ref, err)
	}
	return e.runGitRaw(ctx, "diff", "--no-color", "--no-ext-diff", "--find-renames", base)
}

// GetUntrackedFiles returns untracked files relative to the repository root.
func (e *RealExecutor) GetUntrackedFiles(ctx context.Context) ([]string, error) {
	output, err := e.runGitRaw(ctx, "ls-files", "--others", "--exclude-standard", "--full-name", "-z")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, f := range strings.Split(output, "\x00") {
		if f != "" {
			files = append(files, f)
		}
	}
	return files, nil
}

// GetFileContent reads path relative to the working directory. Paths that
// escape it are rejected.
func (e *RealExecutor) GetFileContent(path string) (string, error) {
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path outside repository: %s", path)
	}
	full := filepath.Join(e.workDir, clean)

	info, err := os.Stat(full)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > MaxFileContentSize {
		return "", fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, path, info.Size())
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
