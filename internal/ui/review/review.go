// Package review is the main screen: a file tree next to one continuous,
// virtualized diff of every changed file. A scrollsync.Machine keeps the
// tree's highlighted file and the diff's scroll position in agreement.
package review

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/vibekanban/internal/diff"
	"github.com/zjrosen/vibekanban/internal/keys"
	"github.com/zjrosen/vibekanban/internal/log"
	"github.com/zjrosen/vibekanban/internal/pubsub"
	"github.com/zjrosen/vibekanban/internal/scrollsync"
)

const (
	// FrameInterval is the time between animation frames.
	FrameInterval = 16 * time.Millisecond
	// DefaultAnimationFrames is the length of a programmatic scroll.
	DefaultAnimationFrames = 6
	// DefaultOverscan is the rows reported beyond the viewport on each side.
	DefaultOverscan = 10

	wheelLines   = 3
	minTreeWidth = 24
	maxTreeWidth = 48
)

// Focus is the pane receiving keys.
type Focus int

const (
	FocusTree Focus = iota
	FocusDiff
)

// Config tunes the review screen.
type Config struct {
	Debounce        time.Duration
	Cooldown        time.Duration
	AnimationFrames int // 0 jumps without animating
	Overscan        int
	ShowStatusBar   bool
	Clock           scrollsync.Clock // nil uses the wall clock
}

// DefaultConfig returns the defaults used when no config file sets them.
func DefaultConfig() Config {
	return Config{
		Debounce:        scrollsync.DefaultDebounceDelay,
		Cooldown:        scrollsync.DefaultCooldownDelay,
		AnimationFrames: DefaultAnimationFrames,
		Overscan:        DefaultOverscan,
		ShowStatusBar:   true,
	}
}

// animFrameMsg advances the programmatic scroll animation with the same seq.
type animFrameMsg struct {
	seq int
}

type animation struct {
	active bool
	seq    int
	from   int
	to     int
	frame  int
	frames int
}

// pane is the diff viewport. It is shared by pointer so the scroll machine's
// top-path resolver always measures the current layout.
type pane struct {
	c      *content
	offset int
	height int
	width  int
}

func (p *pane) maxOffset() int {
	return max(p.c.total()-p.height, 0)
}

func (p *pane) clamp(offset int) int {
	return max(0, min(offset, p.maxOffset()))
}

// topPath resolves the file owning the first visible row.
func (p *pane) topPath(scrollsync.Range) (string, bool) {
	fi := p.c.fileAt(p.offset)
	if fi < 0 {
		return "", false
	}
	return p.c.paths[fi], true
}

// Model holds the review screen state.
type Model struct {
	cfg     Config
	machine *scrollsync.Machine
	pane    *pane
	tree    *Tree

	files      []diff.File
	multiRepo  bool
	repoFilter string

	focus      Focus
	cursor     int
	treeScroll int
	anim       animation
	lastState  scrollsync.State

	listener   *pubsub.ContinuousListener[scrollsync.Snapshot]
	zonePrefix string

	width  int
	height int
}

// New creates an empty review screen. Snapshots of its scroll machine are
// delivered to Update for as long as ctx lives.
func New(ctx context.Context, cfg Config) Model {
	if cfg.AnimationFrames < 0 {
		cfg.AnimationFrames = 0
	}
	if cfg.Overscan < 0 {
		cfg.Overscan = 0
	}
	p := &pane{c: newContent(nil, nil)}
	opts := []scrollsync.Option{
		scrollsync.WithTopPath(p.topPath),
		scrollsync.WithDebounceDelay(cfg.Debounce),
		scrollsync.WithCooldownDelay(cfg.Cooldown),
	}
	if cfg.Clock != nil {
		opts = append(opts, scrollsync.WithClock(cfg.Clock))
	}
	machine := scrollsync.New(scrollsync.NewPathIndex(nil), opts...)

	return Model{
		cfg:        cfg,
		machine:    machine,
		pane:       p,
		tree:       NewTree(nil, false, nil),
		focus:      FocusTree,
		listener:   pubsub.NewContinuousListener[scrollsync.Snapshot](ctx, machine),
		zonePrefix: zone.NewPrefix(),
	}
}

// Init starts listening for scroll machine snapshots.
func (m Model) Init() tea.Cmd {
	return m.listener.Listen()
}

// Close stops the scroll machine's timers and subscriptions.
func (m Model) Close() {
	m.machine.Close()
}

// Update handles messages for the review screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pubsub.Event[scrollsync.Snapshot]:
		prev := m.lastState
		m.lastState = msg.Payload.State
		// Rows reported during cooldown were dropped; measure again now that
		// they count.
		if prev == scrollsync.StateSyncCooldown && msg.Payload.State == scrollsync.StateIdle {
			m = m.reportRange()
		}
		return m.followFileInView(), m.listener.Listen()

	case animFrameMsg:
		return m.stepAnimation(msg)

	case tea.KeyMsg:
		if m.focus == FocusTree {
			return m.handleTreeKey(msg)
		}
		return m.handleDiffKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	}
	return m, nil
}

func (m Model) handleTreeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	nodes := m.tree.Visible()
	switch {
	case key.Matches(msg, keys.Tree.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m.ensureTreeCursorVisible(), nil

	case key.Matches(msg, keys.Tree.Down):
		if m.cursor < len(nodes)-1 {
			m.cursor++
		}
		return m.ensureTreeCursorVisible(), nil

	case key.Matches(msg, keys.Tree.Open):
		return m.openNode(m.cursor)

	case key.Matches(msg, keys.Tree.Collapse):
		n := m.cursorNode()
		if n == nil {
			return m, nil
		}
		if n.IsDir && n.Expanded {
			m.tree.SetExpanded(n, false)
			return m, nil
		}
		if n.Parent != nil {
			if idx, ok := m.tree.VisibleIndex(n.Parent.Path); ok {
				m.cursor = idx
			}
		}
		return m.ensureTreeCursorVisible(), nil

	case key.Matches(msg, keys.Tree.Expand):
		m.tree.SetExpanded(m.cursorNode(), true)
		return m, nil
	}
	return m, nil
}

func (m Model) handleDiffKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	half := max(m.pane.height/2, 1)
	switch {
	case key.Matches(msg, keys.Diff.LineUp):
		return m.userScroll(m.pane.offset - 1), nil
	case key.Matches(msg, keys.Diff.LineDown):
		return m.userScroll(m.pane.offset + 1), nil
	case key.Matches(msg, keys.Diff.HalfPageUp):
		return m.userScroll(m.pane.offset - half), nil
	case key.Matches(msg, keys.Diff.HalfPageDown):
		return m.userScroll(m.pane.offset + half), nil
	case key.Matches(msg, keys.Diff.Top):
		return m.userScroll(0), nil
	case key.Matches(msg, keys.Diff.Bottom):
		return m.userScroll(m.pane.maxOffset()), nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	overTree := msg.X < m.treeWidth()

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := wheelLines
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -wheelLines
		}
		if overTree {
			maxScroll := max(len(m.tree.Visible())-m.treeHeight(), 0)
			m.treeScroll = max(0, min(m.treeScroll+delta, maxScroll))
			return m, nil
		}
		return m.userScroll(m.pane.offset + delta), nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		if !overTree {
			m.focus = FocusDiff
			return m, nil
		}
		nodes := m.tree.Visible()
		end := min(m.treeScroll+m.treeHeight(), len(nodes))
		for i := m.treeScroll; i < end; i++ {
			if zone.Get(m.rowZoneID(i)).InBounds(msg) {
				m.focus = FocusTree
				return m.openNode(i)
			}
		}
	}
	return m, nil
}

// openNode toggles a directory or scrolls the diff to a file.
func (m Model) openNode(row int) (Model, tea.Cmd) {
	nodes := m.tree.Visible()
	if row < 0 || row >= len(nodes) {
		return m, nil
	}
	m.cursor = row
	n := nodes[row]
	if n.IsDir {
		m.tree.Toggle(n)
		return m.ensureTreeCursorVisible(), nil
	}
	m, cmd, _ := m.ScrollToFile(n.Path, 0)
	return m, cmd
}

// userScroll moves the viewport on behalf of the user. While a programmatic
// scroll is in flight the input is dropped.
func (m Model) userScroll(offset int) Model {
	m.machine.OnUserScroll()
	if m.machine.State() == scrollsync.StateProgrammaticScroll {
		return m
	}
	offset = m.pane.clamp(offset)
	if offset == m.pane.offset {
		return m
	}
	m.pane.offset = offset
	return m.reportRange()
}

// reportRange tells the machine which files the viewport and its overscan
// cover.
func (m Model) reportRange() Model {
	total := m.pane.c.total()
	if total == 0 {
		return m
	}
	from := max(m.pane.offset-m.cfg.Overscan, 0)
	to := min(m.pane.offset+max(m.pane.height, 1)-1+m.cfg.Overscan, total-1)
	start, end := m.pane.c.fileRange(from, to)
	m.machine.OnRangeChanged(scrollsync.Range{StartIndex: start, EndIndex: end})
	return m.followFileInView()
}

// ScrollToFile animates the diff to path, at lineNumber when it is greater
// than zero. It reports false when path is not in the diff.
func (m Model) ScrollToFile(path string, lineNumber int) (Model, tea.Cmd, bool) {
	idx, ok := m.machine.ScrollToFile(path, lineNumber)
	if !ok {
		return m, nil, false
	}
	m, cmd := m.animateTo(m.pane.c.rowOf(idx, lineNumber))
	return m, cmd, true
}

// animateTo starts a programmatic scroll to row. The machine must already
// be in programmatic-scroll.
func (m Model) animateTo(row int) (Model, tea.Cmd) {
	to := m.pane.clamp(row)
	if m.cfg.AnimationFrames == 0 || to == m.pane.offset {
		m.anim.active = false
		m.pane.offset = to
		m = m.reportRange()
		m.machine.OnScrollComplete()
		return m, nil
	}
	m.anim = animation{
		active: true,
		seq:    m.anim.seq + 1,
		from:   m.pane.offset,
		to:     to,
		frames: m.cfg.AnimationFrames,
	}
	return m, frameTick(m.anim.seq)
}

func frameTick(seq int) tea.Cmd {
	return tea.Tick(FrameInterval, func(time.Time) tea.Msg {
		return animFrameMsg{seq: seq}
	})
}

func (m Model) stepAnimation(msg animFrameMsg) (Model, tea.Cmd) {
	if !m.anim.active || msg.seq != m.anim.seq {
		return m, nil
	}
	m.anim.frame++
	if m.anim.frame >= m.anim.frames {
		m.anim.active = false
		m.pane.offset = m.pane.clamp(m.anim.to)
		m = m.reportRange()
		m.machine.OnScrollComplete()
		log.Debug(log.CatScroll, "scroll animation complete", "offset", m.pane.offset)
		return m, nil
	}
	t := float64(m.anim.frame) / float64(m.anim.frames)
	eased := 1 - math.Pow(1-t, 3)
	m.pane.offset = m.pane.clamp(m.anim.from + int(math.Round(float64(m.anim.to-m.anim.from)*eased)))
	m = m.reportRange()
	return m, frameTick(m.anim.seq)
}

// NextFile scrolls to the file after the one in view.
func (m Model) NextFile() (Model, tea.Cmd) {
	return m.adjacentFile(1)
}

// PrevFile scrolls to the file before the one in view.
func (m Model) PrevFile() (Model, tea.Cmd) {
	return m.adjacentFile(-1)
}

func (m Model) adjacentFile(delta int) (Model, tea.Cmd) {
	paths := m.pane.c.paths
	if len(paths) == 0 {
		return m, nil
	}
	current := m.pane.c.fileAt(m.pane.offset)
	if target, ok := m.machine.ScrollTarget(); ok {
		current = target.Index
	}
	next := max(0, min(current+delta, len(paths)-1))
	m, cmd, _ := m.ScrollToFile(paths[next], 0)
	return m, cmd
}

// ScrollToTop jumps to the first file.
func (m Model) ScrollToTop() (Model, tea.Cmd) {
	if len(m.pane.c.paths) == 0 {
		return m, nil
	}
	m, cmd, _ := m.ScrollToFile(m.pane.c.paths[0], 0)
	return m, cmd
}

// ScrollToBottom jumps to the end of the last file.
func (m Model) ScrollToBottom() (Model, tea.Cmd) {
	paths := m.pane.c.paths
	if len(paths) == 0 {
		return m, nil
	}
	if _, ok := m.machine.ScrollToFile(paths[len(paths)-1], 0); !ok {
		return m, nil
	}
	return m.animateTo(m.pane.maxOffset())
}

// SetFiles replaces the diff. Collapsed directories, the repository filter
// and the scroll position are kept where they still apply.
func (m Model) SetFiles(files []diff.File, multiRepo bool) Model {
	m.files = files
	m.multiRepo = multiRepo
	return m.rebuild()
}

// FocusRepo shows only the files of one repository.
func (m Model) FocusRepo(repoID string) Model {
	m.repoFilter = repoID
	m.pane.offset = 0
	m.cursor, m.treeScroll = 0, 0
	return m.rebuild()
}

// ShowAllRepos clears the repository filter.
func (m Model) ShowAllRepos() Model {
	return m.FocusRepo("")
}

// RepoFilter returns the repository being shown alone, if any.
func (m Model) RepoFilter() string {
	return m.repoFilter
}

func (m Model) rebuild() Model {
	visible := m.files
	if m.repoFilter != "" {
		visible = make([]diff.File, 0, len(m.files))
		for _, f := range m.files {
			if f.RepoID == m.repoFilter {
				visible = append(visible, f)
			}
		}
	}

	m.tree = NewTree(visible, m.multiRepo, m.tree.Collapsed())
	paths := m.tree.Paths()
	m.pane.c = newContent(m.tree.Files(), paths)
	m.pane.offset = m.pane.clamp(m.pane.offset)
	m.machine.SetIndex(scrollsync.NewPathIndex(paths))

	m.cursor = max(0, min(m.cursor, len(m.tree.Visible())-1))
	m = m.ensureTreeCursorVisible()
	return m.reportRange()
}

// CollapseAll collapses every directory of the tree.
func (m Model) CollapseAll() Model {
	m.tree.SetAllExpanded(false)
	m.cursor = max(0, min(m.cursor, len(m.tree.Visible())-1))
	return m.followFileInView().ensureTreeCursorVisible()
}

// ExpandAll expands every directory of the tree.
func (m Model) ExpandAll() Model {
	m.tree.SetAllExpanded(true)
	return m.followFileInView().ensureTreeCursorVisible()
}

// followFileInView moves the tree cursor to the file in view while the tree
// is not focused.
func (m Model) followFileInView() Model {
	if m.focus == FocusTree {
		return m
	}
	path, ok := m.machine.FileInView()
	if !ok {
		return m
	}
	if idx, ok := m.tree.VisibleIndex(path); ok {
		m.cursor = idx
	}
	return m.ensureTreeCursorVisible()
}

func (m Model) cursorNode() *Node {
	nodes := m.tree.Visible()
	if m.cursor < 0 || m.cursor >= len(nodes) {
		return nil
	}
	return nodes[m.cursor]
}

func (m Model) ensureTreeCursorVisible() Model {
	h := m.treeHeight()
	if h <= 0 {
		return m
	}
	if m.cursor < m.treeScroll {
		m.treeScroll = m.cursor
	}
	if m.cursor >= m.treeScroll+h {
		m.treeScroll = m.cursor - h + 1
	}
	return m
}

// SetSize lays the panes out for a width x height screen.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	m.pane.height = max(m.bodyHeight()-2, 0)
	m.pane.width = max(width-m.treeWidth()-3, 0) // borders and scrollbar
	m.pane.offset = m.pane.clamp(m.pane.offset)
	return m.ensureTreeCursorVisible().reportRange()
}

// SetFocus moves key focus to f.
func (m Model) SetFocus(f Focus) Model {
	m.focus = f
	return m.followFileInView()
}

// ToggleFocus switches between the tree and the diff.
func (m Model) ToggleFocus() Model {
	if m.focus == FocusTree {
		return m.SetFocus(FocusDiff)
	}
	return m.SetFocus(FocusTree)
}

// Focus returns the focused pane.
func (m Model) Focus() Focus {
	return m.focus
}

// Machine returns the scroll machine.
func (m Model) Machine() *scrollsync.Machine {
	return m.machine
}

// Offset returns the first visible diff row.
func (m Model) Offset() int {
	return m.pane.offset
}

// Cursor returns the tree cursor row.
func (m Model) Cursor() int {
	return m.cursor
}

// Tree returns the file tree.
func (m Model) Tree() *Tree {
	return m.tree
}

// Paths returns the diff's file paths in order.
func (m Model) Paths() []string {
	return m.pane.c.paths
}

// Animating reports whether a programmatic scroll is being drawn.
func (m Model) Animating() bool {
	return m.anim.active
}

func (m Model) treeWidth() int {
	return max(minTreeWidth, min(m.width/4, maxTreeWidth))
}

func (m Model) bodyHeight() int {
	if m.cfg.ShowStatusBar {
		return max(m.height-1, 0)
	}
	return m.height
}

func (m Model) treeHeight() int {
	return m.bodyHeight() - 2
}

func (m Model) rowZoneID(row int) string {
	return m.zonePrefix + strconv.Itoa(row)
}
