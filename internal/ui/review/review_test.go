package review

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vibekanban/internal/diff"
	"github.com/zjrosen/vibekanban/internal/pubsub"
	"github.com/zjrosen/vibekanban/internal/scrollsync"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	zone.NewGlobal()
	os.Exit(m.Run())
}

// newTestModel returns a 100x10 review screen: the diff pane shows 7 of
// 27 rows, so the deepest offset is 20.
func newTestModel(t *testing.T, frames int) (Model, *scrollsync.ManualClock) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	clock := scrollsync.NewManualClock()
	cfg := DefaultConfig()
	cfg.AnimationFrames = frames
	cfg.Clock = clock

	m := New(ctx, cfg)
	t.Cleanup(m.Close)
	m = m.SetSize(100, 10)
	m = m.SetFiles(testFiles(), false)
	return m, clock
}

func keyPress(m Model, k string) Model {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+d":
		msg = tea.KeyMsg{Type: tea.KeyCtrlD}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m, _ = m.Update(msg)
	return m
}

// deliver feeds the machine's current snapshot to the model, as the
// listener would.
func deliver(m Model) Model {
	m, _ = m.Update(pubsub.Event[scrollsync.Snapshot]{Type: pubsub.ChangedEvent, Payload: m.Machine().Snapshot()})
	return m
}

func fileInView(t *testing.T, m Model) string {
	t.Helper()
	path, ok := m.Machine().FileInView()
	require.True(t, ok)
	return path
}

func TestModel_InitialLayout(t *testing.T) {
	m, _ := newTestModel(t, 0)

	require.Equal(t, []string{"pkg/b.go", "pkg/c.go", "a.go"}, m.Paths())
	require.Equal(t, 0, m.Offset())
	require.Equal(t, FocusTree, m.Focus())
	require.Equal(t, scrollsync.StateIdle, m.Machine().State())
	require.Equal(t, "pkg/b.go", fileInView(t, m))
}

func TestModel_ScrollToFileJumpsWithoutAnimation(t *testing.T) {
	m, clock := newTestModel(t, 0)

	m, cmd, ok := m.ScrollToFile("pkg/c.go", 0)
	require.True(t, ok)
	require.Nil(t, cmd)
	require.Equal(t, 13, m.Offset())
	require.Equal(t, scrollsync.StateSyncCooldown, m.Machine().State())
	require.Equal(t, "pkg/b.go", fileInView(t, m), "ranges during the scroll are ignored")
	m = deliver(m)

	clock.Advance(scrollsync.DefaultCooldownDelay)
	require.Equal(t, scrollsync.StateIdle, m.Machine().State())
	m = deliver(m)
	require.Equal(t, "pkg/c.go", fileInView(t, m), "range is measured again after cooldown")
}

func TestModel_ScrollToFileUnknownPath(t *testing.T) {
	m, _ := newTestModel(t, 0)

	m, cmd, ok := m.ScrollToFile("nope.go", 0)
	require.False(t, ok)
	require.Nil(t, cmd)
	require.Equal(t, scrollsync.StateIdle, m.Machine().State())
}

func TestModel_ScrollToFileClampsToBottom(t *testing.T) {
	m, _ := newTestModel(t, 0)

	m, _, _ = m.ScrollToFile("a.go", 0)
	require.Equal(t, 20, m.Offset())
}

func TestModel_ScrollToLine(t *testing.T) {
	m, _ := newTestModel(t, 0)

	m, _, _ = m.ScrollToFile("pkg/b.go", 4)
	require.Equal(t, 5, m.Offset())
}

func TestModel_AnimationFrames(t *testing.T) {
	m, _ := newTestModel(t, 3)

	m, cmd, ok := m.ScrollToFile("pkg/c.go", 0)
	require.True(t, ok)
	require.NotNil(t, cmd)
	require.True(t, m.Animating())
	require.Equal(t, 0, m.Offset())
	seq := m.anim.seq

	m, cmd = m.Update(animFrameMsg{seq: seq - 1})
	require.Nil(t, cmd, "stale frames are ignored")
	require.Equal(t, 0, m.Offset())

	m, cmd = m.Update(animFrameMsg{seq: seq})
	require.NotNil(t, cmd)
	require.Greater(t, m.Offset(), 0)
	require.Less(t, m.Offset(), 13)
	require.Equal(t, scrollsync.StateProgrammaticScroll, m.Machine().State())

	m, _ = m.Update(animFrameMsg{seq: seq})
	m, cmd = m.Update(animFrameMsg{seq: seq})
	require.Nil(t, cmd)
	require.False(t, m.Animating())
	require.Equal(t, 13, m.Offset())
	require.Equal(t, scrollsync.StateSyncCooldown, m.Machine().State())
}

func TestModel_NewScrollSupersedesAnimation(t *testing.T) {
	m, _ := newTestModel(t, 3)

	m, _, _ = m.ScrollToFile("pkg/c.go", 0)
	first := m.anim.seq
	m, _, _ = m.ScrollToFile("a.go", 0)
	require.Greater(t, m.anim.seq, first)

	m, cmd := m.Update(animFrameMsg{seq: first})
	require.Nil(t, cmd)
	target, ok := m.Machine().ScrollTarget()
	require.True(t, ok)
	require.Equal(t, "a.go", target.Path)
}

func TestModel_UserScrollDroppedDuringProgrammaticScroll(t *testing.T) {
	m, _ := newTestModel(t, 3)
	m = m.SetFocus(FocusDiff)

	m, _, _ = m.ScrollToFile("pkg/c.go", 0)
	m = keyPress(m, "j")

	require.Equal(t, 0, m.Offset())
	require.Equal(t, scrollsync.StateProgrammaticScroll, m.Machine().State())
}

func TestModel_UserScrollUpdatesFileInViewAndTree(t *testing.T) {
	m, clock := newTestModel(t, 0)
	m = m.SetFocus(FocusDiff)

	m = keyPress(m, "ctrl+d")
	require.Equal(t, 3, m.Offset())
	require.Equal(t, scrollsync.StateUserScrolling, m.Machine().State())

	m = keyPress(m, "G")
	require.Equal(t, 20, m.Offset())
	require.Equal(t, "pkg/c.go", fileInView(t, m))
	require.Equal(t, 2, m.Cursor(), "tree follows the file in view")

	clock.Advance(scrollsync.DefaultDebounceDelay)
	require.Equal(t, scrollsync.StateIdle, m.Machine().State())
}

func TestModel_TreeCursorStaysPutWhileFocused(t *testing.T) {
	m, _ := newTestModel(t, 0)
	m = keyPress(m, "j")
	require.Equal(t, 1, m.Cursor())

	m, _, _ = m.ScrollToFile("a.go", 0)
	require.Equal(t, 1, m.Cursor())
}

func TestModel_OpenFileFromTree(t *testing.T) {
	m, _ := newTestModel(t, 0)

	m = keyPress(m, "j")
	m = keyPress(m, "j")
	m = keyPress(m, "enter")

	require.Equal(t, 13, m.Offset())
	require.Equal(t, scrollsync.StateSyncCooldown, m.Machine().State())
}

func TestModel_CollapseAndExpandDirectory(t *testing.T) {
	m, _ := newTestModel(t, 0)

	m = keyPress(m, "h")
	require.Len(t, m.Tree().Visible(), 2)

	m = keyPress(m, "l")
	require.Len(t, m.Tree().Visible(), 4)

	m = keyPress(m, "j")
	m = keyPress(m, "h")
	require.Equal(t, 0, m.Cursor(), "collapse on a file moves to its directory")

	m = keyPress(m, "enter")
	require.Len(t, m.Tree().Visible(), 2, "enter toggles a directory")
}

func TestModel_CollapseAllFollowsAncestor(t *testing.T) {
	m, _ := newTestModel(t, 0)
	m = m.SetFocus(FocusDiff)
	m = keyPress(m, "G")

	m = m.CollapseAll()
	require.Equal(t, 0, m.Cursor())

	m = m.ExpandAll()
	require.Equal(t, 2, m.Cursor())
}

func TestModel_NextAndPrevFile(t *testing.T) {
	m, _ := newTestModel(t, 0)

	m, _ = m.NextFile()
	require.Equal(t, 13, m.Offset())

	m, _ = m.PrevFile()
	require.Equal(t, 0, m.Offset())

	m, _ = m.PrevFile()
	require.Equal(t, 0, m.Offset(), "prev at the first file stays put")
}

func TestModel_ScrollToTopAndBottom(t *testing.T) {
	m, _ := newTestModel(t, 0)

	m, _ = m.ScrollToBottom()
	require.Equal(t, 20, m.Offset())

	m, _ = m.ScrollToTop()
	require.Equal(t, 0, m.Offset())
}

func TestModel_FocusRepoFiltersFiles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := DefaultConfig()
	cfg.AnimationFrames = 0
	cfg.Clock = scrollsync.NewManualClock()
	m := New(ctx, cfg).SetSize(100, 10)
	defer m.Close()

	files := append(
		diff.WithRepo([]diff.File{addedFile("main.go", 3)}, "r1", "api"),
		diff.WithRepo([]diff.File{addedFile("app.ts", 3)}, "r2", "web")...,
	)
	m = m.SetFiles(files, true)
	require.Equal(t, []string{"api/main.go", "web/app.ts"}, m.Paths())

	m = m.FocusRepo("r2")
	require.Equal(t, "r2", m.RepoFilter())
	require.Equal(t, []string{"web/app.ts"}, m.Paths())
	_, ok := m.Machine().ScrollTarget()
	require.False(t, ok)
	_, _, ok = m.ScrollToFile("api/main.go", 0)
	require.False(t, ok, "filtered files leave the index")

	m = m.ShowAllRepos()
	require.Len(t, m.Paths(), 2)
}

func TestModel_SetFilesKeepsCollapsedDirs(t *testing.T) {
	m, _ := newTestModel(t, 0)
	m = keyPress(m, "h")

	m = m.SetFiles(testFiles(), false)
	require.Len(t, m.Tree().Visible(), 2)
}

func TestModel_MouseWheelScrollsDiff(t *testing.T) {
	m, _ := newTestModel(t, 0)

	m, _ = m.Update(tea.MouseMsg{X: 60, Y: 3, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	require.Equal(t, wheelLines, m.Offset())
	require.Equal(t, scrollsync.StateUserScrolling, m.Machine().State())
}

func TestModel_ClickTreeRowOpensFile(t *testing.T) {
	m, _ := newTestModel(t, 0)
	id := m.rowZoneID(2)

	var z *zone.ZoneInfo
	require.Eventually(t, func() bool {
		zone.Scan(m.View())
		z = zone.Get(id)
		return z != nil && !z.IsZero()
	}, time.Second, 5*time.Millisecond)

	m, _ = m.Update(tea.MouseMsg{
		X:      z.StartX + 1,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	require.Equal(t, 2, m.Cursor())
	require.Equal(t, 13, m.Offset())
}

func TestModel_ViewFillsScreen(t *testing.T) {
	m, _ := newTestModel(t, 0)

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 10)
	for i, l := range lines {
		require.Equal(t, 100, lipgloss.Width(l), "line %d", i)
	}

	view := m.View()
	require.Contains(t, view, "Files (3)")
	require.Contains(t, view, "b.go")
	require.Contains(t, view, "idle · pkg/b.go")
}

func TestModel_ViewEmpty(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := New(ctx, DefaultConfig()).SetSize(80, 12)
	defer m.Close()

	require.Contains(t, m.View(), "No changes")
	require.Empty(t, New(ctx, DefaultConfig()).View(), "no size, no view")
}
