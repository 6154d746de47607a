package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vibekanban/internal/pubsub"
	"github.com/zjrosen/vibekanban/internal/watcher"
)

// newRepo creates a fake repository layout with a .git directory.
func newRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "index"), []byte("i"), 0o644))
	return root
}

func startWatcher(t *testing.T, repos ...watcher.Repo) <-chan pubsub.Event[watcher.Change] {
	t.Helper()
	w, err := watcher.New(watcher.Config{Repos: repos, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ch := w.Subscribe(context.Background())
	require.NoError(t, w.Start())
	return ch
}

func expectChange(t *testing.T, ch <-chan pubsub.Event[watcher.Change]) watcher.Change {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		require.Equal(t, pubsub.InvalidatedEvent, ev.Type)
		return ev.Payload
	case <-time.After(2 * time.Second):
		t.Fatal("expected change notification")
	}
	return watcher.Change{}
}

func expectQuiet(t *testing.T, ch <-chan pubsub.Event[watcher.Change], d time.Duration) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("unexpected notification: %+v", ev.Payload)
	case <-time.After(d):
	}
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	root := newRepo(t)
	ch := startWatcher(t, watcher.Repo{ID: "api", Root: root})

	for i := range 10 {
		require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.go"), []byte(fmt.Sprintf("v%d", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	change := expectChange(t, ch)
	require.Equal(t, []string{"api"}, change.RepoIDs)
	expectQuiet(t, ch, 150*time.Millisecond)
}

func TestWatcher_GitIndexChange(t *testing.T) {
	root := newRepo(t)
	ch := startWatcher(t, watcher.Repo{ID: "api", Root: root})

	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "index"), []byte("staged"), 0o644))
	require.Equal(t, []string{"api"}, expectChange(t, ch).RepoIDs)
}

func TestWatcher_IgnoresUnrelatedGitFiles(t *testing.T) {
	root := newRepo(t)
	ch := startWatcher(t, watcher.Repo{ID: "api", Root: root})

	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "FETCH_LOG"), []byte("x"), 0o644))
	expectQuiet(t, ch, 200*time.Millisecond)
}

func TestWatcher_NewDirectoriesAreWatched(t *testing.T) {
	root := newRepo(t)
	ch := startWatcher(t, watcher.Repo{ID: "api", Root: root})

	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))
	expectChange(t, ch)

	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "new.go"), []byte("package pkg"), 0o644))
	expectChange(t, ch)
}

func TestWatcher_MultipleReposCoalesce(t *testing.T) {
	api, web := newRepo(t), newRepo(t)
	ch := startWatcher(t,
		watcher.Repo{ID: "api", Root: api},
		watcher.Repo{ID: "web", Root: web},
	)

	require.NoError(t, os.WriteFile(filepath.Join(web, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(api, "b.txt"), []byte("b"), 0o644))

	change := expectChange(t, ch)
	require.Equal(t, []string{"api", "web"}, change.RepoIDs, "ids follow repository order")
}

func TestWatcher_StopClosesSubscribers(t *testing.T) {
	root := newRepo(t)
	w, err := watcher.New(watcher.Config{Repos: []watcher.Repo{{ID: "api", Root: root}}})
	require.NoError(t, err)
	ch := w.Subscribe(context.Background())
	require.NoError(t, w.Start())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop(), "stop is idempotent")

	select {
	case _, ok := <-ch:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscriber channel not closed")
	}
}

func TestWatcher_RequiresRepos(t *testing.T) {
	_, err := watcher.New(watcher.Config{})
	require.Error(t, err)
}

func TestWatcher_MissingRoot(t *testing.T) {
	w, err := watcher.New(watcher.Config{Repos: []watcher.Repo{{ID: "x", Root: filepath.Join(t.TempDir(), "missing")}}})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()
	require.Error(t, w.Start())
}
