package commandbar

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Action identifiers understood by the app.
const (
	ActionGotoFile     ActionID = "goto-file"
	ActionNextFile     ActionID = "next-file"
	ActionPrevFile     ActionID = "prev-file"
	ActionScrollTop    ActionID = "scroll-top"
	ActionScrollBottom ActionID = "scroll-bottom"
	ActionToggleHelp   ActionID = "toggle-help"
	ActionQuit         ActionID = "quit"
	ActionRefresh      ActionID = "refresh"
	ActionCollapseAll  ActionID = "collapse-all"
	ActionExpandAll    ActionID = "expand-all"
	ActionShowAllRepos ActionID = "show-all-repos"
	ActionCopyRepoPath ActionID = "copy-repo-path"
	ActionFocusRepo    ActionID = "focus-repo"
	ActionShowBranch   ActionID = "show-branch"
)

// Page is a named menu of grouped items.
type Page struct {
	ID     PageID
	Title  string
	Groups []Group
}

// Group is a headed run of items on a page.
type Group struct {
	Heading string
	Items   []Item
}

// ResolvedGroup is a group after search filtering, ready to render.
type ResolvedGroup struct {
	Heading string
	Items   []Item
}

// Catalog holds every page the command bar can show.
type Catalog struct {
	pages map[PageID]Page
}

// FileEntry is one file offered on the files page.
type FileEntry struct {
	Path  string // key passed to goto-file
	Label string // display path
	Hint  string // e.g. "+3 -1"
}

// NewCatalog builds the standard pages. files populates the "Go to file"
// page in display order.
func NewCatalog(files []FileEntry) *Catalog {
	fileItems := make([]Item, 0, len(files))
	for _, f := range files {
		label := f.Label
		if label == "" {
			label = f.Path
		}
		fileItems = append(fileItems, ActionItem{Action: Action{
			ID:          ActionGotoFile,
			Label:       label,
			Description: f.Hint,
			Arg:         f.Path,
			Target:      NoTarget{},
		}})
	}

	return NewCatalogFromPages(
		Page{
			ID:    PageRoot,
			Title: "Commands",
			Groups: []Group{
				{Heading: "Navigate", Items: []Item{
					PageItem{Page: PageFiles, Title: "Go to file…", Hint: "jump to a changed file"},
					ActionItem{Action: Action{ID: ActionNextFile, Label: "Next file", Shortcut: "n", Target: NoTarget{}}},
					ActionItem{Action: Action{ID: ActionPrevFile, Label: "Previous file", Shortcut: "p", Target: NoTarget{}}},
					ActionItem{Action: Action{ID: ActionScrollTop, Label: "Scroll to top", Shortcut: "g", Target: NoTarget{}}},
					ActionItem{Action: Action{ID: ActionScrollBottom, Label: "Scroll to bottom", Shortcut: "G", Target: NoTarget{}}},
				}},
				{Heading: "Workspace", Items: []Item{
					ActionItem{Action: Action{ID: ActionRefresh, Label: "Refresh diffs", Shortcut: "r", Target: WorkspaceTarget{}}},
					PageItem{Page: PageView, Title: "View…", Hint: "tree and repo filters"},
					PageItem{Page: PageRepository, Title: "Repository…", Hint: "per-repository actions"},
				}},
				{Heading: "General", Items: []Item{
					ActionItem{Action: Action{ID: ActionToggleHelp, Label: "Toggle help", Shortcut: "?", Target: NoTarget{}}},
					ActionItem{Action: Action{ID: ActionQuit, Label: "Quit", Shortcut: "q", Target: NoTarget{}}},
				}},
			},
		},
		Page{
			ID:     PageFiles,
			Title:  "Go to file",
			Groups: []Group{{Heading: "Changed files", Items: fileItems}},
		},
		Page{
			ID:    PageView,
			Title: "View",
			Groups: []Group{{Heading: "Tree", Items: []Item{
				ActionItem{Action: Action{ID: ActionCollapseAll, Label: "Collapse all directories", Target: WorkspaceTarget{}}},
				ActionItem{Action: Action{ID: ActionExpandAll, Label: "Expand all directories", Target: WorkspaceTarget{}}},
				ActionItem{Action: Action{ID: ActionShowAllRepos, Label: "Show all repositories", Target: WorkspaceTarget{}}},
			}}},
		},
		Page{
			ID:    PageRepository,
			Title: "Repository",
			Groups: []Group{{Heading: "Repository", Items: []Item{
				ActionItem{Action: Action{ID: ActionCopyRepoPath, Label: "Copy repository path", Shortcut: "y", Target: GitTarget{}}},
				ActionItem{Action: Action{ID: ActionFocusRepo, Label: "Show only this repository", Target: GitTarget{}}},
				ActionItem{Action: Action{ID: ActionShowBranch, Label: "Show current branch", Target: GitTarget{}}},
			}}},
		},
	)
}

// NewCatalogFromPages builds a catalog from explicit pages. Later pages
// replace earlier ones with the same ID.
func NewCatalogFromPages(pages ...Page) *Catalog {
	c := &Catalog{pages: make(map[PageID]Page, len(pages))}
	for _, p := range pages {
		c.pages[p.ID] = p
	}
	return c
}

// Page returns the page with id.
func (c *Catalog) Page(id PageID) (Page, bool) {
	if c == nil {
		return Page{}, false
	}
	p, ok := c.pages[id]
	return p, ok
}

// Action finds the first action with id on any page.
func (c *Catalog) Action(id ActionID) (Action, bool) {
	if c == nil {
		return Action{}, false
	}
	for _, p := range c.pages {
		for _, g := range p.Groups {
			for _, it := range g.Items {
				if a, ok := it.(ActionItem); ok && a.Action.ID == id {
					return a.Action, true
				}
			}
		}
	}
	return Action{}, false
}

// Title returns the title of id; PageSelectRepo and unknown pages get a
// fixed fallback.
func (c *Catalog) Title(id PageID) string {
	if id == PageSelectRepo {
		return "Select repository"
	}
	if p, ok := c.Page(id); ok && p.Title != "" {
		return p.Title
	}
	return string(id)
}

// Breadcrumbs returns page titles from the root to the current page.
func (c *Catalog) Breadcrumbs(s State) []string {
	stack := StackOf(s)
	out := make([]string, 0, len(stack)+1)
	for _, id := range stack {
		out = append(out, c.Title(id))
	}
	return append(out, c.Title(pageOf(s)))
}

// Resolve returns the groups to render for s, filtered by its search text.
// Empty groups are dropped. SelectingRepo resolves to the repositories.
func (c *Catalog) Resolve(s State, repos []Repo) []ResolvedGroup {
	query := SearchOf(s)

	var groups []Group
	switch s := s.(type) {
	case SelectingRepo:
		items := make([]Item, 0, len(repos))
		for _, r := range repos {
			items = append(items, RepoItem{Repo: r})
		}
		groups = []Group{{Heading: "Repositories", Items: items}}
	case Browsing:
		if p, ok := c.Page(s.Page); ok {
			groups = p.Groups
		}
	}

	out := make([]ResolvedGroup, 0, len(groups))
	for _, g := range groups {
		items := FilterItems(g.Items, query)
		if len(items) == 0 {
			continue
		}
		out = append(out, ResolvedGroup{Heading: g.Heading, Items: items})
	}
	return out
}

// FilterItems returns the items matching query in their original order.
// Fuzzy matching on labels is tried first, then a substring match on labels
// and keys.
func FilterItems(items []Item, query string) []Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return append([]Item(nil), items...)
	}

	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label()
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Item, 0, len(matches))
		for i, item := range items {
			if _, ok := matches[i]; ok {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}

	lower := strings.ToLower(trimmed)
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label()), lower) ||
			strings.Contains(strings.ToLower(item.Key()), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Flatten returns the items of groups in render order.
func Flatten(groups []ResolvedGroup) []Item {
	var out []Item
	for _, g := range groups {
		out = append(out, g.Items...)
	}
	return out
}
