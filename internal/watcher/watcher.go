// Package watcher watches workspace repositories for changes and publishes
// debounced invalidation events naming the repositories that changed.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/vibekanban/internal/log"
	"github.com/zjrosen/vibekanban/internal/pubsub"
)

// DefaultDebounce coalesces bursts such as a checkout or a formatter run.
const DefaultDebounce = 500 * time.Millisecond

// gitDirFiles are the git metadata files whose change alters the diff.
var gitDirFiles = []string{"index", "HEAD", "ORIG_HEAD", "packed-refs"}

// skippedDirs are never watched inside a working tree.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"target":       true,
	".venv":        true,
}

// Repo is a repository to watch.
type Repo struct {
	ID   string
	Root string // working tree root
	// GitDir is the repository's git directory. Empty means Root/.git.
	GitDir string
}

// Change lists the repositories that changed during one debounce window.
type Change struct {
	RepoIDs []string
}

// Config holds watcher configuration options.
type Config struct {
	Repos    []Repo
	Debounce time.Duration
}

// Watcher monitors repository working trees and git directories.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	repos     []Repo
	broker    *pubsub.Broker[Change]

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a watcher. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Repos) == 0 {
		return nil, errors.New("watcher needs at least one repository")
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	repos := make([]Repo, len(cfg.Repos))
	for i, r := range cfg.Repos {
		r.Root = filepath.Clean(r.Root)
		if r.GitDir == "" {
			r.GitDir = filepath.Join(r.Root, ".git")
		}
		r.GitDir = filepath.Clean(r.GitDir)
		repos[i] = r
	}

	return &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		repos:     repos,
		broker:    pubsub.NewBroker[Change](),
		pending:   make(map[string]bool),
		done:      make(chan struct{}),
	}, nil
}

// Subscribe returns a channel of change events that closes when ctx is done
// or the watcher stops.
func (w *Watcher) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return w.broker.Subscribe(ctx)
}

// Start adds every working tree directory and git directory to the watch
// list and begins processing events.
func (w *Watcher) Start() error {
	for _, r := range w.repos {
		if err := w.addTree(r.Root); err != nil {
			return fmt.Errorf("watching %s: %w", r.Root, err)
		}
		// Worktrees and submodules keep their git dir elsewhere or as a file.
		if info, err := os.Stat(r.GitDir); err == nil && info.IsDir() {
			if err := w.fsWatcher.Add(r.GitDir); err != nil {
				return fmt.Errorf("watching %s: %w", r.GitDir, err)
			}
		}
	}
	log.Info(log.CatWatcher, "Watching repositories", "repos", len(w.repos), "paths", len(w.fsWatcher.WatchList()))

	go w.loop()
	return nil
}

// Stop terminates the watcher and closes subscriber channels.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		w.broker.Close()
	})
	return err
}

// addTree watches root and its subdirectories, skipping ignored ones.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// A directory vanished or is unreadable; keep going.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			log.Warn(log.CatWatcher, "Cannot watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatcher, "Watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	repo, ok := w.repoFor(event.Name)
	if !ok {
		return
	}

	if strings.HasPrefix(event.Name, repo.GitDir+string(filepath.Separator)) {
		if !slices.Contains(gitDirFiles, filepath.Base(event.Name)) {
			return
		}
	} else if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skippedDirs[info.Name()] {
			if err := w.addTree(event.Name); err != nil {
				log.Warn(log.CatWatcher, "Cannot watch new directory", "path", event.Name, "error", err)
			}
		}
	}

	w.mark(repo.ID)
}

// repoFor finds the repository owning path. The longest matching root wins
// so nested repositories resolve to the inner one.
func (w *Watcher) repoFor(path string) (Repo, bool) {
	var (
		best    Repo
		bestLen = -1
	)
	for _, r := range w.repos {
		for _, dir := range []string{r.GitDir, r.Root} {
			if (path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))) && len(dir) > bestLen {
				best, bestLen = r, len(dir)
			}
		}
	}
	return best, bestLen >= 0
}

// mark records a change for repoID and restarts the debounce window.
func (w *Watcher) mark(repoID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[repoID] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	ids := make([]string, 0, len(w.pending))
	for _, r := range w.repos {
		if w.pending[r.ID] {
			ids = append(ids, r.ID)
		}
	}
	clear(w.pending)
	w.mu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}
	log.Debug(log.CatWatcher, "Repositories changed", "repos", strings.Join(ids, ","))
	w.broker.Publish(pubsub.InvalidatedEvent, Change{RepoIDs: ids})
}
