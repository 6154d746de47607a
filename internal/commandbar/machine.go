package commandbar

import (
	"fmt"

	"github.com/zjrosen/vibekanban/internal/log"
)

// Machine holds the state of one open command bar. It is not safe for
// concurrent use; views drive it from the bubbletea loop.
type Machine struct {
	state     State
	repoCount func() int
	pending   *Action
}

// NewMachine starts a machine on initialPage. repoCount is read on every
// dispatch so a changing workspace is always seen fresh. When pending is set
// and more than one repo exists, the machine starts in SelectingRepo.
func NewMachine(initialPage PageID, repoCount func() int, pending *Action) *Machine {
	m := &Machine{repoCount: repoCount}
	if pending != nil {
		p := *pending
		m.pending = &p
	}
	m.Dispatch(Reset{Page: initialPage})
	return m
}

// Dispatch applies ev and returns the effect for the caller to handle.
func (m *Machine) Dispatch(ev Event) Effect {
	next, eff := Reduce(m.state, ev, m.env())
	log.Debug(log.CatCmdBar, "dispatch",
		"event", fmt.Sprintf("%T", ev),
		"page", pageOf(next),
		"depth", len(StackOf(next)),
		"effect", fmt.Sprintf("%T", eff))
	m.state = next
	return eff
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// CurrentPage returns the displayed page; PageSelectRepo while SelectingRepo.
func (m *Machine) CurrentPage() PageID {
	return pageOf(m.state)
}

// CanGoBack reports whether the breadcrumb stack is non-empty.
func (m *Machine) CanGoBack() bool {
	return len(StackOf(m.state)) > 0
}

// Search returns the current search text.
func (m *Machine) Search() string {
	return SearchOf(m.state)
}

// PendingAction returns the action awaiting a repository, if any.
func (m *Machine) PendingAction() (Action, bool) {
	if s, ok := m.state.(SelectingRepo); ok {
		return s.PendingAction, true
	}
	return Action{}, false
}

func (m *Machine) env() Env {
	count := 0
	if m.repoCount != nil {
		count = m.repoCount()
	}
	return Env{RepoCount: count, InitialPendingAction: m.pending}
}

func pageOf(s State) PageID {
	switch s := s.(type) {
	case Browsing:
		return s.Page
	case SelectingRepo:
		return PageSelectRepo
	}
	return PageRoot
}
