// Package commandbar implements the navigation and selection logic of the
// command bar: a breadcrumb of pages, live search, and a repository
// disambiguation step for actions that run against a single git repo.
//
// Reduce is a pure function; Machine wraps it with the current state and the
// external parameters so views can dispatch events and act on the returned
// Effect.
package commandbar

// PageID identifies a page of the command bar.
type PageID string

const (
	PageRoot       PageID = "root"
	PageFiles      PageID = "files"
	PageView       PageID = "view"
	PageRepository PageID = "repository"

	// PageSelectRepo is the synthetic page shown while SelectingRepo.
	PageSelectRepo PageID = "select-repo"
)

// SingleRepoID stands for "the only repository" when disambiguation is
// unnecessary.
const SingleRepoID = "__single__"

// ActionID names an executable command.
type ActionID string

// Target describes what context an action needs to run.
type Target interface {
	isTarget()
	String() string
}

// NoTarget actions run on their own.
type NoTarget struct{}

// WorkspaceTarget actions run against the whole workspace.
type WorkspaceTarget struct{}

// GitTarget actions run against one repository, bound when executed.
type GitTarget struct{}

func (NoTarget) isTarget()        {}
func (WorkspaceTarget) isTarget() {}
func (GitTarget) isTarget()       {}

func (NoTarget) String() string        { return "none" }
func (WorkspaceTarget) String() string { return "workspace" }
func (GitTarget) String() string       { return "git" }

// Action is an executable command bar entry.
type Action struct {
	ID          ActionID
	Label       string
	Description string
	Shortcut    string // key hint shown beside the label
	Arg         string // action payload, e.g. the path for goto-file
	Target      Target // nil behaves as NoTarget
}

// TargetOf returns the action's target, defaulting to NoTarget.
func (a Action) TargetOf() Target {
	if a.Target == nil {
		return NoTarget{}
	}
	return a.Target
}

// Repo is a repository candidate offered during disambiguation.
type Repo struct {
	ID     string
	Name   string
	Detail string
}

// Item is a selectable command bar row.
type Item interface {
	isItem()
	// Label is the text the row displays and search matches against.
	Label() string
	// Key identifies the item within its page.
	Key() string
}

// PageItem navigates to a child page.
type PageItem struct {
	Page  PageID
	Title string
	Hint  string
}

// RepoItem picks a repository while SelectingRepo.
type RepoItem struct {
	Repo Repo
}

// ActionItem executes an action.
type ActionItem struct {
	Action Action
}

func (PageItem) isItem()   {}
func (RepoItem) isItem()   {}
func (ActionItem) isItem() {}

func (i PageItem) Label() string   { return i.Title }
func (i RepoItem) Label() string   { return i.Repo.Name }
func (i ActionItem) Label() string { return i.Action.Label }

func (i PageItem) Key() string   { return "page:" + string(i.Page) }
func (i RepoItem) Key() string   { return "repo:" + i.Repo.ID }
func (i ActionItem) Key() string { return "action:" + string(i.Action.ID) + ":" + i.Action.Arg }

// State is the command bar state: Browsing or SelectingRepo.
type State interface {
	isState()
}

// Browsing shows Page. Stack holds the parents, root first, and never
// contains Page itself.
type Browsing struct {
	Page   PageID
	Stack  []PageID
	Search string
}

// SelectingRepo asks which repository PendingAction should run against.
type SelectingRepo struct {
	Stack         []PageID
	Search        string
	PendingAction Action
}

func (Browsing) isState()      {}
func (SelectingRepo) isState() {}

// StackOf returns the breadcrumb stack of s.
func StackOf(s State) []PageID {
	switch s := s.(type) {
	case Browsing:
		return s.Stack
	case SelectingRepo:
		return s.Stack
	}
	return nil
}

// SearchOf returns the search text of s.
func SearchOf(s State) string {
	switch s := s.(type) {
	case Browsing:
		return s.Search
	case SelectingRepo:
		return s.Search
	}
	return ""
}

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// Reset starts over on Page, or in SelectingRepo when a pending action was
// supplied and more than one repo exists.
type Reset struct {
	Page PageID
}

// SearchChange replaces the search text.
type SearchChange struct {
	Query string
}

// GoBack pops the breadcrumb stack.
type GoBack struct{}

// SelectItem activates an item rendered for the current state.
type SelectItem struct {
	Item Item
}

func (Reset) isEvent()        {}
func (SearchChange) isEvent() {}
func (GoBack) isEvent()       {}
func (SelectItem) isEvent()   {}

// Effect is the instruction Reduce hands back to the caller.
type Effect interface {
	isEffect()
}

// EffectNone requires nothing of the caller.
type EffectNone struct{}

// EffectExecute asks the caller to run Action. RepoID is set for git-scoped
// actions and may be SingleRepoID.
type EffectExecute struct {
	Action Action
	RepoID string
}

// EffectUnavailable reports a git-scoped action chosen when no repository
// exists. Nothing runs.
type EffectUnavailable struct {
	Action Action
	Reason string
}

func (EffectNone) isEffect()        {}
func (EffectExecute) isEffect()     {}
func (EffectUnavailable) isEffect() {}
