package commandbar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label()
	}
	return out
}

func TestCatalog_ResolveRoot(t *testing.T) {
	c := NewCatalog(nil)

	groups := c.Resolve(Browsing{Page: PageRoot}, nil)
	require.Len(t, groups, 3)
	require.Equal(t, "Navigate", groups[0].Heading)
	require.Equal(t, "Go to file…", groups[0].Items[0].Label())
}

func TestCatalog_ResolveDropsEmptyGroups(t *testing.T) {
	c := NewCatalog(nil)

	groups := c.Resolve(Browsing{Page: PageRoot, Search: "quit"}, nil)
	require.Len(t, groups, 1)
	require.Equal(t, "General", groups[0].Heading)
	require.Equal(t, []string{"Quit"}, labels(groups[0].Items))

	// The files page has an empty group when there are no files.
	require.Empty(t, c.Resolve(Browsing{Page: PageFiles}, nil))
}

func TestCatalog_ResolveFiles(t *testing.T) {
	c := NewCatalog([]FileEntry{
		{Path: "api/main.go", Label: "api/main.go", Hint: "+3 -1"},
		{Path: "web/src/app.ts"},
	})

	groups := c.Resolve(Browsing{Page: PageFiles}, nil)
	require.Len(t, groups, 1)
	items := groups[0].Items
	require.Len(t, items, 2)

	first := items[0].(ActionItem).Action
	require.Equal(t, ActionGotoFile, first.ID)
	require.Equal(t, "api/main.go", first.Arg)
	require.Equal(t, "+3 -1", first.Description)
	require.Equal(t, "web/src/app.ts", items[1].Label(), "label falls back to path")

	groups = c.Resolve(Browsing{Page: PageFiles, Search: "apts"}, nil)
	require.Equal(t, []string{"web/src/app.ts"}, labels(Flatten(groups)))
}

func TestCatalog_ResolveSelectingRepo(t *testing.T) {
	c := NewCatalog(nil)
	repos := []Repo{{ID: "1", Name: "backend"}, {ID: "2", Name: "frontend"}}

	groups := c.Resolve(SelectingRepo{PendingAction: gitAction}, repos)
	require.Len(t, groups, 1)
	require.Equal(t, "Repositories", groups[0].Heading)
	require.Equal(t, []string{"backend", "frontend"}, labels(groups[0].Items))

	groups = c.Resolve(SelectingRepo{PendingAction: gitAction, Search: "front"}, repos)
	require.Equal(t, []string{"frontend"}, labels(Flatten(groups)))
}

func TestCatalog_ResolveUnknownPage(t *testing.T) {
	c := NewCatalog(nil)
	require.Empty(t, c.Resolve(Browsing{Page: "nope"}, nil))
}

func TestCatalog_Action(t *testing.T) {
	c := NewCatalog(nil)

	a, ok := c.Action(ActionCopyRepoPath)
	require.True(t, ok)
	require.Equal(t, GitTarget{}, a.Target)

	_, ok = c.Action("missing")
	require.False(t, ok)

	var nilCatalog *Catalog
	_, ok = nilCatalog.Action(ActionQuit)
	require.False(t, ok)
}

func TestCatalog_Breadcrumbs(t *testing.T) {
	c := NewCatalog(nil)

	require.Equal(t, []string{"Commands"}, c.Breadcrumbs(Browsing{Page: PageRoot}))
	require.Equal(t, []string{"Commands", "Repository"},
		c.Breadcrumbs(Browsing{Page: PageRepository, Stack: []PageID{PageRoot}}))
	require.Equal(t, []string{"Commands", "Repository", "Select repository"},
		c.Breadcrumbs(SelectingRepo{Stack: []PageID{PageRoot, PageRepository}}))
}

func TestFilterItems(t *testing.T) {
	items := []Item{
		ActionItem{Action: Action{ID: "a", Label: "Collapse all directories"}},
		ActionItem{Action: Action{ID: "b", Label: "Expand all directories"}},
		PageItem{Page: PageRepository, Title: "Repository…"},
	}

	require.Len(t, FilterItems(items, ""), 3)
	require.Len(t, FilterItems(items, "   "), 3)
	require.Equal(t, []string{"Collapse all directories"}, labels(FilterItems(items, "coll")))
	require.Equal(t, []string{"Collapse all directories", "Expand all directories"}, labels(FilterItems(items, "dirs")))
	// No label matches; the key does.
	require.Equal(t, []string{"Repository…"}, labels(FilterItems(items, "page:repo")))
	require.Empty(t, FilterItems(items, "zzz"))
}
