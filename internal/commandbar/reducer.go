package commandbar

import (
	"github.com/zjrosen/vibekanban/internal/log"
)

// Env carries the parameters Reduce reads but never stores.
type Env struct {
	RepoCount            int
	InitialPendingAction *Action
}

// Reduce computes the next state and the effect for ev. It never mutates s.
// A nil s is treated as Browsing the root page.
func Reduce(s State, ev Event, env Env) (State, Effect) {
	if s == nil {
		s = Browsing{Page: PageRoot}
	}

	switch ev := ev.(type) {
	case Reset:
		if env.InitialPendingAction != nil && env.RepoCount > 1 {
			return SelectingRepo{PendingAction: *env.InitialPendingAction}, EffectNone{}
		}
		return Browsing{Page: ev.Page}, EffectNone{}

	case SearchChange:
		switch s := s.(type) {
		case Browsing:
			s.Search = ev.Query
			return s, EffectNone{}
		case SelectingRepo:
			s.Search = ev.Query
			return s, EffectNone{}
		}

	case GoBack:
		stack := StackOf(s)
		if len(stack) == 0 {
			return s, EffectNone{}
		}
		return Browsing{
			Page:  stack[len(stack)-1],
			Stack: cloneStack(stack[:len(stack)-1]),
		}, EffectNone{}

	case SelectItem:
		return selectItem(s, ev.Item, env)
	}

	return s, EffectNone{}
}

func selectItem(s State, item Item, env Env) (State, Effect) {
	switch s := s.(type) {
	case SelectingRepo:
		repo, ok := item.(RepoItem)
		if !ok {
			return s, EffectNone{}
		}
		return Browsing{Page: PageRoot}, EffectExecute{Action: s.PendingAction, RepoID: repo.Repo.ID}

	case Browsing:
		switch item := item.(type) {
		case PageItem:
			return Browsing{Page: item.Page, Stack: push(s.Stack, s.Page)}, EffectNone{}
		case ActionItem:
			return selectAction(s, item.Action, env)
		}
	}
	return s, EffectNone{}
}

func selectAction(s Browsing, action Action, env Env) (State, Effect) {
	switch action.TargetOf().(type) {
	case GitTarget:
		switch {
		case env.RepoCount == 1:
			return s, EffectExecute{Action: action, RepoID: SingleRepoID}
		case env.RepoCount > 1:
			return SelectingRepo{Stack: push(s.Stack, s.Page), PendingAction: action}, EffectNone{}
		default:
			log.Warn(log.CatCmdBar, "git action selected without repositories", "action", action.ID)
			return s, EffectUnavailable{Action: action, Reason: "no repositories in workspace"}
		}
	case NoTarget, WorkspaceTarget:
		return s, EffectExecute{Action: action}
	}
	return s, EffectNone{}
}

// push returns a new stack with page appended; the input is never aliased.
func push(stack []PageID, page PageID) []PageID {
	out := make([]PageID, len(stack), len(stack)+1)
	copy(out, stack)
	return append(out, page)
}

func cloneStack(stack []PageID) []PageID {
	if len(stack) == 0 {
		return nil
	}
	out := make([]PageID, len(stack))
	copy(out, stack)
	return out
}
