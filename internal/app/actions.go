package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"

	bar "github.com/zjrosen/vibekanban/internal/commandbar"
	"github.com/zjrosen/vibekanban/internal/git"
	"github.com/zjrosen/vibekanban/internal/log"
	"github.com/zjrosen/vibekanban/internal/tracing"
	"github.com/zjrosen/vibekanban/internal/ui/toaster"
	"github.com/zjrosen/vibekanban/internal/workspaces/domain"
)

var errNoRepo = errors.New("repository not found")

// executeID runs the catalog action id.
func (m Model) executeID(id bar.ActionID, repoID string) (tea.Model, tea.Cmd) {
	a, ok := m.catalog().Action(id)
	if !ok {
		log.Warn(log.CatCmdBar, "Unknown action", "action", id)
		return m, nil
	}
	return m.execute(a, repoID)
}

// execute runs a, inside a span. repoID is set for git actions and may be
// bar.SingleRepoID.
func (m Model) execute(a bar.Action, repoID string) (tea.Model, tea.Cmd) {
	ctx, span := tracing.StartAction(m.ctx, m.tracer, string(a.ID), a.TargetOf().String(), repoID)
	log.Debug(log.CatCmdBar, "Executing action", "action", a.ID, "repo", repoID)

	if _, ok := a.TargetOf().(bar.GitTarget); ok {
		repo, err := m.resolveRepo(repoID)
		if err != nil {
			tracing.EndSpan(span, err)
			return m.showToast(err.Error(), toaster.StyleError)
		}
		if a.ID == bar.ActionShowBranch {
			// The span ends when the command finishes.
			return m, m.showBranchCmd(ctx, span, repo)
		}
		next, cmd, err := m.executeGit(a, repo)
		tracing.EndSpan(span, err)
		return next, cmd
	}

	next, cmd, err := m.executeLocal(a)
	tracing.EndSpan(span, err)
	return next, cmd
}

func (m Model) executeLocal(a bar.Action) (tea.Model, tea.Cmd, error) {
	var cmd tea.Cmd
	switch a.ID {
	case bar.ActionGotoFile:
		var ok bool
		m.review, cmd, ok = m.review.ScrollToFile(a.Arg, 0)
		if !ok {
			err := fmt.Errorf("file %s is no longer in the diff", a.Arg)
			next, toast := m.showToast(err.Error(), toaster.StyleWarn)
			return next, toast, err
		}
	case bar.ActionNextFile:
		m.review, cmd = m.review.NextFile()
	case bar.ActionPrevFile:
		m.review, cmd = m.review.PrevFile()
	case bar.ActionScrollTop:
		m.review, cmd = m.review.ScrollToTop()
	case bar.ActionScrollBottom:
		m.review, cmd = m.review.ScrollToBottom()
	case bar.ActionToggleHelp:
		m.helpOn = !m.helpOn
	case bar.ActionQuit:
		return m, tea.Quit, nil
	case bar.ActionRefresh:
		m.services.Loader.Invalidate(m.ctx)
		m, cmd = m.reload(true)
	case bar.ActionCollapseAll:
		m.review = m.review.CollapseAll()
	case bar.ActionExpandAll:
		m.review = m.review.ExpandAll()
	case bar.ActionShowAllRepos:
		m.review = m.review.ShowAllRepos()
	default:
		log.Warn(log.CatCmdBar, "Unhandled action", "action", a.ID)
	}
	return m, cmd, nil
}

func (m Model) executeGit(a bar.Action, repo domain.Repo) (tea.Model, tea.Cmd, error) {
	switch a.ID {
	case bar.ActionCopyRepoPath:
		if err := m.services.Clipboard.Copy(repo.Path); err != nil {
			log.ErrorErr(log.CatUI, "Copying repository path", err, "repo", repo.ID)
			next, cmd := m.showToast("Copy failed: "+err.Error(), toaster.StyleError)
			return next, cmd, err
		}
		next, cmd := m.showToast("Copied "+repo.Path, toaster.StyleSuccess)
		return next, cmd, nil

	case bar.ActionFocusRepo:
		m.review = m.review.FocusRepo(repo.ID)
		next, cmd := m.showToast("Showing "+repo.Name, toaster.StyleInfo)
		return next, cmd, nil
	}
	log.Warn(log.CatCmdBar, "Unhandled git action", "action", a.ID)
	return m, nil, nil
}

// showBranchCmd reads the current branch of repo off the event loop.
func (m Model) showBranchCmd(ctx context.Context, span trace.Span, repo domain.Repo) tea.Cmd {
	newExecutor := m.services.Executors
	if newExecutor == nil {
		newExecutor = func(dir string) git.Executor { return git.NewRealExecutor(dir) }
	}
	timeout := m.opts.LoadTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		branch, err := newExecutor(repo.Path).GetCurrentBranch(ctx)
		tracing.EndSpan(span, err)
		if err != nil {
			log.ErrorErr(log.CatGit, "Reading branch", err, "repo", repo.ID)
			return toastMsg{text: fmt.Sprintf("%s: %v", repo.Name, err), style: toaster.StyleError}
		}
		return toastMsg{text: fmt.Sprintf("%s is on %s", repo.Name, branch), style: toaster.StyleInfo}
	}
}

// resolveRepo maps a command bar repository id to a workspace repository.
func (m Model) resolveRepo(repoID string) (domain.Repo, error) {
	ws := m.services.Workspace
	if ws == nil {
		return domain.Repo{}, errNoRepo
	}
	if repoID == bar.SingleRepoID {
		repos := ws.Repos()
		if len(repos) != 1 {
			return domain.Repo{}, fmt.Errorf("%w: workspace has %d repositories", errNoRepo, len(repos))
		}
		return repos[0], nil
	}
	repo, ok := ws.Repo(repoID)
	if !ok {
		return domain.Repo{}, fmt.Errorf("%w: %s", errNoRepo, repoID)
	}
	return repo, nil
}
