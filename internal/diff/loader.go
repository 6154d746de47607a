package diff

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zjrosen/vibekanban/internal/cachemanager"
	"github.com/zjrosen/vibekanban/internal/git"
	"github.com/zjrosen/vibekanban/internal/log"
)

// Loader defaults.
const (
	DefaultCacheTTL    = 5 * time.Minute
	DefaultLoadTimeout = 10 * time.Second
)

// Repo identifies a repository to load diffs from.
type Repo struct {
	ID   string
	Name string
	Path string
}

// ExecutorFactory creates a git executor rooted at dir.
type ExecutorFactory func(dir string) git.Executor

type cacheKey string

type request struct {
	repo Repo
	base string
}

func (r request) key() cacheKey {
	return cacheKey(r.repo.ID + "@" + r.base)
}

// RepoError is a failure to load one repository.
type RepoError struct {
	RepoID   string
	RepoName string
	Err      error
}

func (e *RepoError) Error() string {
	return fmt.Sprintf("%s: %v", e.RepoName, e.Err)
}

func (e *RepoError) Unwrap() error { return e.Err }

// Result is the outcome of loading a workspace. Files of repositories that
// failed are absent; their errors are in Failures.
type Result struct {
	Files    []File
	Failures []*RepoError
}

// Err joins the failures, or returns nil.
func (r Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Loader loads and caches the diffs of workspace repositories.
type Loader struct {
	newExecutor ExecutorFactory
	ttl         time.Duration
	timeout     time.Duration
	cache       *cachemanager.ReadThroughCache[cacheKey, []File, request]
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithExecutorFactory replaces the git executor, mainly for tests.
func WithExecutorFactory(f ExecutorFactory) LoaderOption {
	return func(l *Loader) {
		if f != nil {
			l.newExecutor = f
		}
	}
}

// WithCacheTTL sets how long a repository's diff stays cached. Zero
// disables caching.
func WithCacheTTL(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d >= 0 {
			l.ttl = d
		}
	}
}

// WithLoadTimeout bounds the git commands for one repository.
func WithLoadTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// NewLoader creates a Loader backed by the real git executor.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		newExecutor: func(dir string) git.Executor { return git.NewRealExecutor(dir) },
		ttl:         DefaultCacheTTL,
		timeout:     DefaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	store := cachemanager.NewInMemoryCacheManager[cacheKey, []File]("diffs", l.ttl, cachemanager.DefaultCleanupInterval)
	l.cache = cachemanager.NewReadThroughCache[cacheKey, []File, request](store, l.fetch, l.ttl == 0)
	return l
}

// LoadRepo returns the changes of one repository: committed changes since
// the merge base with base when base is set, otherwise the uncommitted
// changes, followed by untracked files.
func (l *Loader) LoadRepo(ctx context.Context, repo Repo, base string) ([]File, error) {
	req := request{repo: repo, base: base}
	return l.cache.Get(ctx, req.key(), req, l.ttl)
}

// Load loads every repository concurrently. Files keep repository order.
func (l *Loader) Load(ctx context.Context, repos []Repo, base string) Result {
	files := make([][]File, len(repos))
	errs := make([]error, len(repos))

	var wg sync.WaitGroup
	for i, repo := range repos {
		wg.Add(1)
		go func() {
			defer wg.Done()
			files[i], errs[i] = l.LoadRepo(ctx, repo, base)
		}()
	}
	wg.Wait()

	var res Result
	for i, repo := range repos {
		if errs[i] != nil {
			res.Failures = append(res.Failures, &RepoError{RepoID: repo.ID, RepoName: repo.Name, Err: errs[i]})
			continue
		}
		res.Files = append(res.Files, files[i]...)
	}
	return res
}

// Invalidate drops the cached diffs of the given repositories, or of all
// repositories when none are given.
func (l *Loader) Invalidate(ctx context.Context, repoIDs ...string) {
	if len(repoIDs) == 0 {
		l.cache.Invalidate(ctx, "")
		return
	}
	for _, id := range repoIDs {
		l.cache.Invalidate(ctx, id+"@")
	}
}

func (l *Loader) fetch(ctx context.Context, req request) ([]File, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	start := time.Now()
	exec := l.newExecutor(req.repo.Path)

	var (
		raw string
		err error
	)
	if req.base != "" {
		raw, err = exec.GetDiffFromBase(ctx, req.base)
	} else {
		raw, err = exec.GetWorkingDirDiff(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("loading diff: %w", err)
	}

	files, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	untracked, err := exec.GetUntrackedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing untracked files: %w", err)
	}
	for _, path := range untracked {
		content, err := exec.GetFileContent(path)
		switch {
		case errors.Is(err, git.ErrFileTooLarge):
			// Shown in the tree without content.
			files = append(files, File{NewPath: path, IsNew: true, IsUntracked: true, IsBinary: true})
		case err != nil:
			log.Warn(log.CatDiff, "Skipping unreadable untracked file", "repo", req.repo.Name, "path", path, "error", err)
		default:
			files = append(files, UntrackedFile(path, content))
		}
	}

	log.Debug(log.CatDiff, "Loaded repository diff",
		"repo", req.repo.Name, "base", req.base, "files", len(files), "untracked", len(untracked), "took", time.Since(start))
	return WithRepo(files, req.repo.ID, req.repo.Name), nil
}
