// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	bar "github.com/zjrosen/vibekanban/internal/commandbar"
	"github.com/zjrosen/vibekanban/internal/clipboard"
	"github.com/zjrosen/vibekanban/internal/diff"
	"github.com/zjrosen/vibekanban/internal/keys"
	"github.com/zjrosen/vibekanban/internal/log"
	"github.com/zjrosen/vibekanban/internal/pubsub"
	"github.com/zjrosen/vibekanban/internal/ui/commandbar"
	"github.com/zjrosen/vibekanban/internal/ui/help"
	"github.com/zjrosen/vibekanban/internal/ui/logview"
	"github.com/zjrosen/vibekanban/internal/ui/review"
	"github.com/zjrosen/vibekanban/internal/ui/toaster"
	"github.com/zjrosen/vibekanban/internal/watcher"
	"github.com/zjrosen/vibekanban/internal/workspaces/domain"
)

// Services are the collaborators the app runs against.
type Services struct {
	Workspace *domain.Workspace
	Loader    *diff.Loader
	// Executors opens a git executor for a repository path, used by
	// repository actions such as show-branch.
	Executors diff.ExecutorFactory
	Clipboard clipboard.Clipboard
	Tracer    trace.Tracer // nil disables tracing
}

// Options tune the app.
type Options struct {
	Review              review.Config
	AutoRefresh         bool
	AutoRefreshDebounce time.Duration
	LoadTimeout         time.Duration
	MarkdownStyle       string
	Debug               bool // enables the log overlay
}

// diffsLoadedMsg carries the result of one load. Results of superseded
// loads are dropped by seq.
type diffsLoadedMsg struct {
	seq    int
	result diff.Result
	manual bool
}

// toastMsg asks the app to show a toast from a command.
type toastMsg struct {
	text  string
	style toaster.Style
}

// Model is the root application state.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	services Services
	opts     Options
	tracer   trace.Tracer

	review  review.Model
	bar     commandbar.Model
	barOpen bool
	help    help.Model
	helpOn  bool
	toaster toaster.Model
	logs    logview.Model

	loadSeq int
	loading bool

	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.ContinuousListener[watcher.Change]

	width  int
	height int
}

// New creates the root model for a workspace. Diffs load when Init's
// command runs.
func New(services Services, opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())
	if services.Clipboard == nil {
		services.Clipboard = clipboard.Noop{}
	}
	if services.Loader == nil {
		services.Loader = diff.NewLoader()
	}
	tracer := services.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("vibekanban")
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = diff.DefaultLoadTimeout
	}

	m := Model{
		ctx:      ctx,
		cancel:   cancel,
		services: services,
		opts:     opts,
		tracer:   tracer,
		review:   review.New(ctx, opts.Review),
		help:     help.New(opts.MarkdownStyle),
		toaster:  toaster.New(),
		logs:     logview.New(ctx),
		loadSeq:  1,
		loading:  true,
	}
	if opts.AutoRefresh {
		m.watcherHandle, m.watcherListener = startWatcher(ctx, services.Workspace, opts.AutoRefreshDebounce)
	}
	return m
}

// startWatcher watches every repository of ws. The app works without it, so
// failures are only logged.
func startWatcher(ctx context.Context, ws *domain.Workspace, debounce time.Duration) (*watcher.Watcher, *pubsub.ContinuousListener[watcher.Change]) {
	if ws == nil {
		return nil, nil
	}
	repos := make([]watcher.Repo, 0, ws.RepoCount())
	for _, r := range ws.Repos() {
		repos = append(repos, watcher.Repo{ID: r.ID, Root: r.Path})
	}
	w, err := watcher.New(watcher.Config{Repos: repos, Debounce: debounce})
	if err != nil {
		log.Warn(log.CatWatcher, "Auto refresh disabled", "error", err)
		return nil, nil
	}
	if err := w.Start(); err != nil {
		log.Warn(log.CatWatcher, "Auto refresh disabled", "error", err)
		_ = w.Stop()
		return nil, nil
	}
	return w, pubsub.NewContinuousListener[watcher.Change](ctx, w)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.review.Init(),
		m.loadCmd(m.loadSeq, false),
		m.logs.Listen(),
	}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.setSize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.barOpen || m.helpOn || m.logs.Visible() {
			return m, nil
		}
		var cmd tea.Cmd
		m.review, cmd = m.review.Update(msg)
		return m, cmd

	case diffsLoadedMsg:
		return m.handleLoaded(msg)

	case pubsub.Event[watcher.Change]:
		log.Debug(log.CatWatcher, "Repositories changed", "repos", msg.Payload.RepoIDs)
		m.services.Loader.Invalidate(m.ctx, msg.Payload.RepoIDs...)
		var cmd tea.Cmd
		m, cmd = m.reload(false)
		return m, tea.Batch(cmd, m.watcherListener.Listen())

	case commandbar.ExecuteMsg:
		m.barOpen = false
		return m.execute(msg.Action, msg.RepoID)

	case commandbar.UnavailableMsg:
		return m.showToast(msg.Reason, toaster.StyleWarn)

	case commandbar.CloseMsg:
		m.barOpen = false
		return m, nil

	case toastMsg:
		return m.showToast(msg.text, msg.style)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case log.LogEvent:
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd

	case logview.CloseMsg:
		return m, nil
	}

	if m.barOpen {
		var cmd tea.Cmd
		m.bar, cmd = m.bar.Update(msg)
		if cmd != nil {
			return m, cmd
		}
	}
	// Scroll snapshots and animation frames.
	var cmd tea.Cmd
	m.review, cmd = m.review.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.opts.Debug && key.Matches(msg, keys.App.Logs) {
		m.logs = m.logs.Toggle()
		return m, nil
	}
	if m.logs.Visible() {
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}
	if m.barOpen {
		var cmd tea.Cmd
		m.bar, cmd = m.bar.Update(msg)
		return m, cmd
	}
	if m.helpOn {
		if key.Matches(msg, keys.App.Help) || msg.Type == tea.KeyEsc {
			m.helpOn = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.App.Quit):
		return m.executeID(bar.ActionQuit, "")
	case key.Matches(msg, keys.App.CommandBar):
		return m.openBar(bar.PageRoot, nil)
	case key.Matches(msg, keys.App.CopyPath):
		return m.runGitAction(bar.ActionCopyRepoPath)
	case key.Matches(msg, keys.App.SwitchFocus):
		m.review = m.review.ToggleFocus()
		return m, nil
	case key.Matches(msg, keys.App.Refresh):
		return m.executeID(bar.ActionRefresh, "")
	case key.Matches(msg, keys.App.NextFile):
		return m.executeID(bar.ActionNextFile, "")
	case key.Matches(msg, keys.App.PrevFile):
		return m.executeID(bar.ActionPrevFile, "")
	case key.Matches(msg, keys.App.Help):
		return m.executeID(bar.ActionToggleHelp, "")
	}

	var cmd tea.Cmd
	m.review, cmd = m.review.Update(msg)
	return m, cmd
}

// runGitAction runs a repository action from a shortcut: directly with one
// repository, through repository selection with several.
func (m Model) runGitAction(id bar.ActionID) (tea.Model, tea.Cmd) {
	switch m.repoCount() {
	case 0:
		return m.showToast("No repository in this workspace", toaster.StyleWarn)
	case 1:
		return m.executeID(id, bar.SingleRepoID)
	}
	action, ok := m.catalog().Action(id)
	if !ok {
		return m, nil
	}
	return m.openBar(bar.PageRoot, &action)
}

// openBar opens the command bar on page, or on repository selection when
// pending is set.
func (m Model) openBar(page bar.PageID, pending *bar.Action) (tea.Model, tea.Cmd) {
	m.bar = commandbar.New(commandbar.Config{
		Catalog: m.catalog(),
		Repos:   m.barRepos(),
		Page:    page,
		Pending: pending,
	}).SetSize(m.width, m.height)
	m.barOpen = true
	m.helpOn = false
	return m, m.bar.Init()
}

// catalog builds the command bar pages for the files currently shown.
func (m Model) catalog() *bar.Catalog {
	paths := m.review.Paths()
	entries := make([]bar.FileEntry, 0, len(paths))
	for _, p := range paths {
		entry := bar.FileEntry{Path: p, Label: p}
		if n, ok := m.review.Tree().Node(p); ok && n.File != nil {
			entry.Hint = fileHint(n.File)
		}
		entries = append(entries, entry)
	}
	return bar.NewCatalog(entries)
}

func fileHint(f *diff.File) string {
	if f.IsBinary {
		return "binary"
	}
	return fmt.Sprintf("+%d -%d", f.Additions, f.Deletions)
}

func (m Model) barRepos() []bar.Repo {
	ws := m.services.Workspace
	if ws == nil {
		return nil
	}
	out := make([]bar.Repo, 0, ws.RepoCount())
	for _, r := range ws.Repos() {
		out = append(out, bar.Repo{ID: r.ID, Name: r.Name, Detail: r.Path})
	}
	return out
}

func (m Model) repoCount() int {
	if m.services.Workspace == nil {
		return 0
	}
	return m.services.Workspace.RepoCount()
}

func (m Model) multiRepo() bool {
	return m.repoCount() > 1
}

func (m Model) diffRepos() []diff.Repo {
	ws := m.services.Workspace
	if ws == nil {
		return nil
	}
	out := make([]diff.Repo, 0, ws.RepoCount())
	for _, r := range ws.Repos() {
		out = append(out, diff.Repo{ID: r.ID, Name: r.Name, Path: r.Path})
	}
	return out
}

func (m Model) baseRef() string {
	if m.services.Workspace == nil {
		return ""
	}
	return m.services.Workspace.Branch()
}

// loadCmd loads every repository's diff off the event loop.
func (m Model) loadCmd(seq int, manual bool) tea.Cmd {
	loader := m.services.Loader
	repos := m.diffRepos()
	base := m.baseRef()
	parent := m.ctx
	timeout := m.opts.LoadTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return diffsLoadedMsg{seq: seq, result: loader.Load(ctx, repos, base), manual: manual}
	}
}

func (m Model) reload(manual bool) (Model, tea.Cmd) {
	m.loadSeq++
	m.loading = true
	return m, m.loadCmd(m.loadSeq, manual)
}

func (m Model) handleLoaded(msg diffsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.loadSeq {
		log.Debug(log.CatDiff, "Dropping superseded load", "seq", msg.seq, "current", m.loadSeq)
		return m, nil
	}
	m.loading = false
	m.review = m.review.SetFiles(msg.result.Files, m.multiRepo())
	log.Info(log.CatDiff, "Diffs loaded", "files", len(msg.result.Files), "failures", len(msg.result.Failures))

	if err := msg.result.Err(); err != nil {
		log.ErrorErr(log.CatDiff, "Loading diffs", err)
		return m.showToast(err.Error(), toaster.StyleError)
	}
	if msg.manual {
		return m.showToast(fmt.Sprintf("Refreshed %d files", len(msg.result.Files)), toaster.StyleSuccess)
	}
	return m, nil
}

func (m Model) showToast(text string, style toaster.Style) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(text, style)
	return m, cmd
}

func (m Model) setSize(width, height int) Model {
	m.width, m.height = width, height
	m.review = m.review.SetSize(width, height)
	m.help = m.help.SetSize(width, height)
	m.logs = m.logs.SetSize(width, height)
	if m.barOpen {
		m.bar = m.bar.SetSize(width, height)
	}
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	view := m.review.View()
	if m.helpOn {
		view = m.help.Overlay(view)
	}
	if m.barOpen {
		view = m.bar.Overlay(view)
	}
	view = m.toaster.Overlay(view, m.width, m.height)
	if m.opts.Debug {
		view = m.logs.Overlay(view)
	}
	return zone.Scan(view)
}

// Review returns the review screen.
func (m Model) Review() review.Model {
	return m.review
}

// BarOpen reports whether the command bar is shown.
func (m Model) BarOpen() bool {
	return m.barOpen
}

// HelpVisible reports whether the help overlay is shown.
func (m Model) HelpVisible() bool {
	return m.helpOn
}

// Toast returns the visible toast text, or "".
func (m Model) Toast() string {
	if !m.toaster.Visible() {
		return ""
	}
	return m.toaster.Message()
}

// Close releases resources held by the application.
func (m Model) Close() error {
	m.cancel()
	m.review.Close()
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return fmt.Errorf("stopping watcher: %w", err)
		}
	}
	return nil
}
