package review

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vibekanban/internal/diff"
)

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Path
	}
	return out
}

func TestNewTree_DirsFirstThenAlphabetical(t *testing.T) {
	tree := NewTree(testFiles(), false, nil)

	require.Equal(t, []string{"pkg", "pkg/b.go", "pkg/c.go", "a.go"}, names(tree.Visible()))
	require.Equal(t, []string{"pkg/b.go", "pkg/c.go", "a.go"}, tree.Paths())
	require.Len(t, tree.Files(), 3)
	require.Equal(t, "pkg/b.go", tree.Files()[0].Path())
}

func TestNewTree_MultiRepoPrefixesRepoName(t *testing.T) {
	files := []diff.File{
		{RepoID: "r1", RepoName: "api", NewPath: "main.go"},
		{RepoID: "r2", RepoName: "web", NewPath: "main.go"},
	}
	tree := NewTree(files, true, nil)

	require.Equal(t, []string{"api/main.go", "web/main.go"}, tree.Paths())
	n, ok := tree.Node("web/main.go")
	require.True(t, ok)
	require.Equal(t, "r2", n.File.RepoID)
}

func TestTree_ToggleHidesChildren(t *testing.T) {
	tree := NewTree(testFiles(), false, nil)
	pkg, ok := tree.Node("pkg")
	require.True(t, ok)

	require.True(t, tree.Toggle(pkg))
	require.Equal(t, []string{"pkg", "a.go"}, names(tree.Visible()))

	file, _ := tree.Node("a.go")
	require.False(t, tree.Toggle(file), "files do not toggle")

	require.False(t, tree.SetExpanded(pkg, false), "already collapsed")
	require.True(t, tree.SetExpanded(pkg, true))
	require.Len(t, tree.Visible(), 4)
}

func TestTree_VisibleIndexFallsBackToAncestor(t *testing.T) {
	tree := NewTree(testFiles(), false, nil)

	idx, ok := tree.VisibleIndex("pkg/c.go")
	require.True(t, ok)
	require.Equal(t, 2, idx)

	tree.SetAllExpanded(false)
	idx, ok = tree.VisibleIndex("pkg/c.go")
	require.True(t, ok)
	require.Equal(t, 0, idx)

	_, ok = tree.VisibleIndex("missing.go")
	require.False(t, ok)
}

func TestTree_CollapsedSurvivesRebuild(t *testing.T) {
	tree := NewTree(testFiles(), false, nil)
	pkg, _ := tree.Node("pkg")
	tree.Toggle(pkg)

	rebuilt := NewTree(testFiles(), false, tree.Collapsed())
	require.Equal(t, []string{"pkg", "a.go"}, names(rebuilt.Visible()))
}

func TestNode_StatsAndContains(t *testing.T) {
	tree := NewTree(testFiles(), false, nil)
	pkg, _ := tree.Node("pkg")

	add, del := pkg.Stats()
	require.Equal(t, 15, add)
	require.Equal(t, 0, del)

	require.True(t, pkg.Contains("pkg/b.go"))
	require.True(t, pkg.Contains("pkg"))
	require.False(t, pkg.Contains("pkgx/b.go"))
}
