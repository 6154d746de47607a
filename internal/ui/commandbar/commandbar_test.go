package commandbar

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	bar "github.com/zjrosen/vibekanban/internal/commandbar"
)

func testCatalog() *bar.Catalog {
	return bar.NewCatalog([]bar.FileEntry{
		{Path: "api/main.go", Hint: "+3 -1"},
		{Path: "web/src/app.tsx", Hint: "+10"},
	})
}

func twoRepos() []bar.Repo {
	return []bar.Repo{
		{ID: "r1", Name: "api", Detail: "/src/api"},
		{ID: "r2", Name: "web", Detail: "/src/web"},
	}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Msg) {
	m, cmd := m.Update(tea.KeyMsg{Type: k})
	if cmd == nil {
		return m, nil
	}
	return m, cmd()
}

func TestCommandBar_NewStartsAtRoot(t *testing.T) {
	m := New(Config{Catalog: testCatalog()})

	require.Equal(t, bar.PageRoot, m.Page())
	require.Equal(t, "Commands", m.Title())
	require.Equal(t, 0, m.Cursor())
	item, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, "Go to file…", item.Label())
}

func TestCommandBar_NavigateBounds(t *testing.T) {
	m := New(Config{Catalog: testCatalog()})
	total := len(m.Items())

	m, _ = press(m, tea.KeyUp)
	require.Equal(t, 0, m.Cursor())

	for range total + 3 {
		m, _ = press(m, tea.KeyDown)
	}
	require.Equal(t, total-1, m.Cursor())

	m, _ = press(m, tea.KeyCtrlP)
	require.Equal(t, total-2, m.Cursor())
	m, _ = press(m, tea.KeyCtrlN)
	require.Equal(t, total-1, m.Cursor())
}

func TestCommandBar_SearchFiltersAndExecutes(t *testing.T) {
	m := New(Config{Catalog: testCatalog()})

	m = typeText(m, "quit")
	require.Equal(t, "quit", m.SearchText())
	require.Len(t, m.Items(), 1)

	_, msg := press(m, tea.KeyEnter)
	exec, ok := msg.(ExecuteMsg)
	require.True(t, ok, "got %T", msg)
	require.Equal(t, bar.ActionQuit, exec.Action.ID)
	require.Empty(t, exec.RepoID)
}

func TestCommandBar_PageNavigationAndBack(t *testing.T) {
	m := New(Config{Catalog: testCatalog()})

	m, msg := press(m, tea.KeyEnter) // "Go to file…"
	require.Nil(t, msg)
	require.Equal(t, bar.PageFiles, m.Page())
	require.Equal(t, "Commands › Go to file", m.Title())
	require.Empty(t, m.SearchText())
	require.Len(t, m.Items(), 2)

	m, msg = press(m, tea.KeyBackspace)
	require.Nil(t, msg)
	require.Equal(t, bar.PageRoot, m.Page())
}

func TestCommandBar_BackspaceEditsSearchFirst(t *testing.T) {
	m := New(Config{Catalog: testCatalog()})
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "web")
	require.Len(t, m.Items(), 1)

	m, _ = press(m, tea.KeyBackspace)
	require.Equal(t, "we", m.SearchText())
	require.Equal(t, bar.PageFiles, m.Page())
}

func TestCommandBar_GotoFileCarriesPath(t *testing.T) {
	m := New(Config{Catalog: testCatalog()})
	m, _ = press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyDown)

	_, msg := press(m, tea.KeyEnter)
	exec, ok := msg.(ExecuteMsg)
	require.True(t, ok)
	require.Equal(t, bar.ActionGotoFile, exec.Action.ID)
	require.Equal(t, "web/src/app.tsx", exec.Action.Arg)
}

func TestCommandBar_EscGoesBackThenCloses(t *testing.T) {
	m := New(Config{Catalog: testCatalog()})
	m, _ = press(m, tea.KeyEnter)

	m, msg := press(m, tea.KeyEsc)
	require.Nil(t, msg)
	require.Equal(t, bar.PageRoot, m.Page())

	_, msg = press(m, tea.KeyEsc)
	require.IsType(t, CloseMsg{}, msg)
}

func openRepositoryPage(t *testing.T, m Model) Model {
	t.Helper()
	m = typeText(m, "repo")
	m, _ = press(m, tea.KeyEnter)
	require.Equal(t, bar.PageRepository, m.Page())
	return m
}

func TestCommandBar_GitActionWithSeveralRepos(t *testing.T) {
	m := openRepositoryPage(t, New(Config{Catalog: testCatalog(), Repos: twoRepos()}))

	m, msg := press(m, tea.KeyEnter) // "Copy repository path"
	require.Nil(t, msg)
	require.Equal(t, bar.PageSelectRepo, m.Page())
	require.Equal(t, "Commands › Repository › Select repository", m.Title())
	require.Len(t, m.Items(), 2)

	m, _ = press(m, tea.KeyDown)
	_, msg = press(m, tea.KeyEnter)
	exec, ok := msg.(ExecuteMsg)
	require.True(t, ok)
	require.Equal(t, bar.ActionCopyRepoPath, exec.Action.ID)
	require.Equal(t, "r2", exec.RepoID)
}

func TestCommandBar_GitActionWithOneRepo(t *testing.T) {
	m := openRepositoryPage(t, New(Config{Catalog: testCatalog(), Repos: twoRepos()[:1]}))

	_, msg := press(m, tea.KeyEnter)
	exec, ok := msg.(ExecuteMsg)
	require.True(t, ok)
	require.Equal(t, bar.SingleRepoID, exec.RepoID)
}

func TestCommandBar_GitActionWithoutRepos(t *testing.T) {
	m := openRepositoryPage(t, New(Config{Catalog: testCatalog()}))

	m, msg := press(m, tea.KeyEnter)
	un, ok := msg.(UnavailableMsg)
	require.True(t, ok)
	require.Equal(t, bar.ActionCopyRepoPath, un.Action.ID)
	require.NotEmpty(t, un.Reason)
	require.Equal(t, bar.PageRepository, m.Page())
}

func TestCommandBar_PendingActionStartsOnRepoSelection(t *testing.T) {
	action, ok := testCatalog().Action(bar.ActionCopyRepoPath)
	require.True(t, ok)

	m := New(Config{Catalog: testCatalog(), Repos: twoRepos(), Pending: &action})
	require.Equal(t, bar.PageSelectRepo, m.Page())

	m = typeText(m, "api")
	require.Len(t, m.Items(), 1)
	_, msg := press(m, tea.KeyEnter)
	exec, ok := msg.(ExecuteMsg)
	require.True(t, ok)
	require.Equal(t, "r1", exec.RepoID)
}

func TestCommandBar_ScrollKeepsCursorVisible(t *testing.T) {
	m := New(Config{Catalog: testCatalog(), MaxVisibleItems: 4})
	for range 6 {
		m, _ = press(m, tea.KeyDown)
	}
	cur := m.cursorRow()
	require.GreaterOrEqual(t, cur, m.scrollOffset)
	require.Less(t, cur, m.scrollOffset+m.visibleRows())

	for range 6 {
		m, _ = press(m, tea.KeyUp)
	}
	require.Equal(t, 0, m.scrollOffset, "first heading scrolls back into view")
}

func TestCommandBar_ViewRendersGroupsAndEmptyState(t *testing.T) {
	m := New(Config{Catalog: testCatalog(), Width: 60})
	view := m.View()
	require.Contains(t, view, "Commands")
	require.Contains(t, view, "Navigate")
	require.Contains(t, view, "Go to file…")
	require.Contains(t, view, "↓ more")

	m = typeText(m, "zzzz")
	require.Empty(t, m.Items())
	require.Contains(t, m.View(), "No matching items")
}

func TestCommandBar_ViewLinesShareWidth(t *testing.T) {
	m := New(Config{Catalog: testCatalog(), Width: 50})
	for _, view := range []string{m.View(), typeText(m, "file").View()} {
		lines := strings.Split(view, "\n")
		for _, l := range lines {
			require.Equal(t, 52, lipgloss.Width(l), "line %q", l)
		}
	}
}

func TestCommandBar_OverlayPlacesNearTop(t *testing.T) {
	m := New(Config{Catalog: testCatalog(), Width: 40}).SetSize(80, 30)
	bg := strings.Repeat(strings.Repeat(".", 80)+"\n", 29) + strings.Repeat(".", 80)
	out := strings.Split(m.Overlay(bg), "\n")
	require.Len(t, out, 30)
	require.Equal(t, strings.Repeat(".", 80), out[0])
	require.Contains(t, out[2], "╭")
}

// harness adapts Model to tea.Model for teatest.
type harness struct {
	bar      Model
	executed *ExecuteMsg
}

func (h harness) Init() tea.Cmd { return h.bar.Init() }

func (h harness) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if exec, ok := msg.(ExecuteMsg); ok {
		h.executed = &exec
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.bar, cmd = h.bar.Update(msg)
	return h, cmd
}

func (h harness) View() string { return h.bar.View() }

func TestCommandBar_Teatest(t *testing.T) {
	h := harness{bar: New(Config{Catalog: testCatalog(), Repos: twoRepos()})}
	tm := teatest.NewTestModel(t, h, teatest.WithInitialTermSize(80, 24))

	tm.Type("help")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(harness)
	require.NotNil(t, final.executed)
	require.Equal(t, bar.ActionToggleHelp, final.executed.Action.ID)
}
