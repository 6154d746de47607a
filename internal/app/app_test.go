package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	bar "github.com/zjrosen/vibekanban/internal/commandbar"
	"github.com/zjrosen/vibekanban/internal/diff"
	"github.com/zjrosen/vibekanban/internal/git"
	"github.com/zjrosen/vibekanban/internal/mocks"
	"github.com/zjrosen/vibekanban/internal/pubsub"
	"github.com/zjrosen/vibekanban/internal/scrollsync"
	"github.com/zjrosen/vibekanban/internal/ui/commandbar"
	"github.com/zjrosen/vibekanban/internal/ui/review"
	"github.com/zjrosen/vibekanban/internal/watcher"
	"github.com/zjrosen/vibekanban/internal/workspaces/domain"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	zone.NewGlobal()
	os.Exit(m.Run())
}

const workingDiff = `diff --git a/main.go b/main.go
--- a/main.go
+++ b/main.go
@@ -1,3 +1,3 @@
 package main
-var x = 1
+var x = 2
 func main() {}
diff --git a/docs/README.md b/docs/README.md
--- a/docs/README.md
+++ b/docs/README.md
@@ -1 +1,2 @@
 # Title
+More text
`

type fixture struct {
	ws        *domain.Workspace
	execs     map[string]*mocks.MockGitExecutor
	clipboard *mocks.MockClipboard
	tracer    trace.Tracer
}

// newFixture builds a workspace of the named repos, each backed by a mocked
// executor serving workingDiff.
func newFixture(t *testing.T, names ...string) *fixture {
	t.Helper()
	specs := make([]domain.RepoSpec, len(names))
	for i, n := range names {
		specs[i] = domain.RepoSpec{Name: n, Path: t.TempDir()}
	}
	ws, err := domain.NewWorkspace("review", "", specs)
	require.NoError(t, err)

	f := &fixture{
		ws:        ws,
		execs:     make(map[string]*mocks.MockGitExecutor),
		clipboard: mocks.NewMockClipboard(t),
	}
	for _, r := range ws.Repos() {
		exec := mocks.NewMockGitExecutor(t)
		exec.EXPECT().GetWorkingDirDiff(mock.Anything).Return(workingDiff, nil).Maybe()
		exec.EXPECT().GetUntrackedFiles(mock.Anything).Return(nil, nil).Maybe()
		f.execs[r.Path] = exec
	}
	return f
}

func (f *fixture) factory() diff.ExecutorFactory {
	return func(dir string) git.Executor { return f.execs[dir] }
}

func (f *fixture) model(t *testing.T) Model {
	t.Helper()
	cfg := review.DefaultConfig()
	cfg.AnimationFrames = 0
	cfg.Clock = scrollsync.NewManualClock()
	m := New(Services{
		Workspace: f.ws,
		Loader:    diff.NewLoader(diff.WithExecutorFactory(f.factory())),
		Executors: f.factory(),
		Clipboard: f.clipboard,
		Tracer:    f.tracer,
	}, Options{Review: cfg})
	t.Cleanup(func() { _ = m.Close() })
	return m.setSize(100, 30)
}

// loaded runs the initial load synchronously.
func (f *fixture) loaded(t *testing.T) Model {
	t.Helper()
	m := f.model(t)
	next, _ := m.Update(m.loadCmd(m.loadSeq, false)())
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_InitialLoad(t *testing.T) {
	f := newFixture(t, "api")
	m := f.loaded(t)

	require.False(t, m.loading)
	require.Equal(t, []string{"docs/README.md", "main.go"}, m.Review().Paths())
	require.Empty(t, m.Toast(), "automatic loads stay quiet")
}

func TestApp_StaleLoadDropped(t *testing.T) {
	f := newFixture(t, "api")
	m := f.model(t)

	stale := m.loadCmd(m.loadSeq, false)
	m, _ = m.reload(false)
	next, _ := m.Update(stale())
	m = next.(Model)

	require.True(t, m.loading, "superseded result is ignored")
	require.Empty(t, m.Review().Paths())
}

func TestApp_LoadErrorToasts(t *testing.T) {
	f := newFixture(t, "api")
	exec := mocks.NewMockGitExecutor(t)
	exec.EXPECT().GetWorkingDirDiff(mock.Anything).Return("", errors.New("not a git repository")).Maybe()
	for path := range f.execs {
		f.execs[path] = exec
	}

	m := f.loaded(t)
	require.Contains(t, m.Toast(), "not a git repository")
}

func TestApp_RefreshToastsCount(t *testing.T) {
	f := newFixture(t, "api")
	m := f.loaded(t)

	m, cmd := press(t, m, runes("r"))
	require.True(t, m.loading)
	require.NotNil(t, cmd)

	next, _ := m.Update(cmd())
	m = next.(Model)
	require.Equal(t, "Refreshed 2 files", m.Toast())
}

func TestApp_WatcherEventReloads(t *testing.T) {
	f := newFixture(t, "api")
	m := f.loaded(t)
	seq := m.loadSeq

	next, cmd := m.Update(pubsub.Event[watcher.Change]{
		Type:    pubsub.ChangedEvent,
		Payload: watcher.Change{RepoIDs: []string{f.ws.Repos()[0].ID}},
	})
	m = next.(Model)
	require.Equal(t, seq+1, m.loadSeq)
	require.True(t, m.loading)
	require.NotNil(t, cmd)
}

func TestApp_HelpToggle(t *testing.T) {
	m := newFixture(t, "api").loaded(t)

	m, _ = press(t, m, runes("?"))
	require.True(t, m.HelpVisible())
	require.Contains(t, m.View(), "Keybindings")

	// Keys go to the overlay while it is open.
	m, _ = press(t, m, runes("n"))
	require.True(t, m.HelpVisible())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.HelpVisible())
}

func TestApp_CommandBarOpensAndCloses(t *testing.T) {
	m := newFixture(t, "api").loaded(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	require.True(t, m.BarOpen())

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	m = next.(Model)
	require.False(t, m.BarOpen())
}

func TestApp_ExecuteGotoFile(t *testing.T) {
	m := newFixture(t, "api").loaded(t)

	next, _ := m.Update(executeMsg(bar.Action{ID: bar.ActionGotoFile, Arg: "main.go"}, ""))
	m = next.(Model)
	require.False(t, m.BarOpen())
	require.Equal(t, scrollsync.StateSyncCooldown, m.Review().Machine().State())
}

func TestApp_ExecuteGotoMissingFile(t *testing.T) {
	m := newFixture(t, "api").loaded(t)

	next, _ := m.execute(bar.Action{ID: bar.ActionGotoFile, Arg: "gone.go"}, "")
	require.Equal(t, "file gone.go is no longer in the diff", next.(Model).Toast())
}

func TestApp_ExecuteTreeActions(t *testing.T) {
	m := newFixture(t, "api").loaded(t)

	next, _ := m.executeID(bar.ActionCollapseAll, "")
	m = next.(Model)
	n, ok := m.Review().Tree().Node("docs")
	require.True(t, ok)
	require.False(t, n.Expanded)

	next, _ = m.executeID(bar.ActionExpandAll, "")
	m = next.(Model)
	n, _ = m.Review().Tree().Node("docs")
	require.True(t, n.Expanded)
}

func TestApp_QuitKey(t *testing.T) {
	m := newFixture(t, "api").loaded(t)

	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_CopyPathSingleRepo(t *testing.T) {
	f := newFixture(t, "api")
	path := f.ws.Repos()[0].Path
	f.clipboard.EXPECT().Copy(path).Return(nil).Once()

	m, _ := press(t, f.loaded(t), runes("y"))
	require.False(t, m.BarOpen())
	require.Equal(t, "Copied "+path, m.Toast())
}

func TestApp_CopyPathFailure(t *testing.T) {
	f := newFixture(t, "api")
	f.clipboard.EXPECT().Copy(mock.Anything).Return(errors.New("no clipboard tool")).Once()

	m, _ := press(t, f.loaded(t), runes("y"))
	require.Equal(t, "Copy failed: no clipboard tool", m.Toast())
}

func TestApp_CopyPathMultiRepoAsksForRepo(t *testing.T) {
	f := newFixture(t, "api", "web")
	m, _ := press(t, f.loaded(t), runes("y"))

	require.True(t, m.BarOpen())
	require.Contains(t, m.View(), "Select repository")

	// Picking a repository executes the pending action.
	web := f.ws.Repos()[1]
	f.clipboard.EXPECT().Copy(web.Path).Return(nil).Once()
	action, ok := m.catalog().Action(bar.ActionCopyRepoPath)
	require.True(t, ok)
	next, _ := m.Update(executeMsg(action, web.ID))
	m = next.(Model)
	require.False(t, m.BarOpen())
	require.Equal(t, "Copied "+web.Path, m.Toast())
}

func TestApp_MultiRepoPrefixesPaths(t *testing.T) {
	m := newFixture(t, "api", "web").loaded(t)

	require.Len(t, m.Review().Paths(), 4)
	require.Contains(t, m.Review().Paths(), "api/main.go")
}

func TestApp_FocusRepo(t *testing.T) {
	f := newFixture(t, "api", "web")
	m := f.loaded(t)
	web := f.ws.Repos()[1]

	next, _ := m.executeID(bar.ActionFocusRepo, web.ID)
	m = next.(Model)
	require.Equal(t, web.ID, m.Review().RepoFilter())
	require.Equal(t, "Showing web", m.Toast())

	next, _ = m.executeID(bar.ActionShowAllRepos, "")
	require.Empty(t, next.(Model).Review().RepoFilter())
}

func TestApp_GitActionUnknownRepo(t *testing.T) {
	m := newFixture(t, "api", "web").loaded(t)

	next, cmd := m.executeID(bar.ActionCopyRepoPath, bar.SingleRepoID)
	require.NotNil(t, cmd)
	require.Contains(t, next.(Model).Toast(), "repository not found")
}

func TestApp_ShowBranch(t *testing.T) {
	f := newFixture(t, "api")
	repo := f.ws.Repos()[0]
	f.execs[repo.Path].EXPECT().GetCurrentBranch(mock.Anything).Return("feature/login", nil).Once()
	m := f.loaded(t)

	next, cmd := m.executeID(bar.ActionShowBranch, bar.SingleRepoID)
	require.NotNil(t, cmd)
	next, _ = next.Update(cmd())
	require.Equal(t, "api is on feature/login", next.(Model).Toast())
}

func TestApp_UnavailableKeepsBarOpen(t *testing.T) {
	m := newFixture(t, "api").loaded(t)
	m, _ = press(t, m, runes(":"))

	next, _ := m.Update(unavailableMsg("No repository in this workspace"))
	m = next.(Model)
	require.True(t, m.BarOpen())
	require.Equal(t, "No repository in this workspace", m.Toast())
}

func TestApp_ActionsAreTraced(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	f := newFixture(t, "api")
	f.tracer = tp.Tracer("test")
	f.clipboard.EXPECT().Copy(mock.Anything).Return(errors.New("no clipboard tool")).Once()
	m := f.loaded(t)

	_, _ = m.executeID(bar.ActionNextFile, "")
	_, _ = m.executeID(bar.ActionCopyRepoPath, bar.SingleRepoID)

	spans := rec.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "action.next-file", spans[0].Name())
	require.Equal(t, codes.Ok, spans[0].Status().Code)

	copySpan := spans[1]
	require.Equal(t, "action.copy-repo-path", copySpan.Name())
	require.Equal(t, codes.Error, copySpan.Status().Code)
	attrs := make(map[string]string)
	for _, kv := range copySpan.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	require.Equal(t, "git", attrs["action.target"])
	require.Equal(t, bar.SingleRepoID, attrs["repo.id"])
}

func executeMsg(a bar.Action, repoID string) tea.Msg {
	return commandbar.ExecuteMsg{Action: a, RepoID: repoID}
}

func unavailableMsg(reason string) tea.Msg {
	return commandbar.UnavailableMsg{Reason: reason}
}

func TestApp_Flow(t *testing.T) {
	f := newFixture(t, "api")
	tm := teatest.NewTestModel(t, f.model(t), teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Files (2)"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(runes("n"))
	tm.Send(runes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := tm.FinalModel(t).(Model)
	require.Len(t, final.Review().Paths(), 2)
}
