package review

import (
	"fmt"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vibekanban/internal/diff"
)

// addedFile returns a new file with n added lines numbered from 1.
func addedFile(path string, n int) diff.File {
	lines := make([]diff.Line, n)
	for i := range lines {
		lines[i] = diff.Line{Type: diff.LineAdded, NewLineNum: i + 1, Content: fmt.Sprintf("line %d", i+1)}
	}
	return diff.File{
		NewPath:   path,
		IsNew:     true,
		Additions: n,
		Hunks:     []diff.Hunk{{NewStart: 1, NewCount: n, Lines: lines}},
	}
}

// testFiles lays out as pkg/b.go rows 0-12, pkg/c.go rows 13-20 and a.go
// rows 21-26.
func testFiles() []diff.File {
	modified := diff.File{
		OldPath:   "a.go",
		NewPath:   "a.go",
		Additions: 1,
		Deletions: 1,
		Hunks: []diff.Hunk{{
			OldStart: 1, OldCount: 2, NewStart: 1, NewCount: 2,
			Lines: []diff.Line{
				{Type: diff.LineContext, OldLineNum: 1, NewLineNum: 1, Content: "package a"},
				{Type: diff.LineRemoved, OldLineNum: 2, Content: "var foo = 1"},
				{Type: diff.LineAdded, NewLineNum: 2, Content: "var foo = 2"},
			},
		}},
	}
	return []diff.File{modified, addedFile("pkg/b.go", 10), addedFile("pkg/c.go", 5)}
}

func testContent() *content {
	tree := NewTree(testFiles(), false, nil)
	return newContent(tree.Files(), tree.Paths())
}

func TestContent_Layout(t *testing.T) {
	c := testContent()

	require.Equal(t, 27, c.total())
	require.Equal(t, []int{0, 13, 21}, c.fileStart)
	require.Equal(t, 0, c.fileAt(12))
	require.Equal(t, 1, c.fileAt(13))
	require.Equal(t, 2, c.fileAt(100), "rows past the end clamp to the last file")

	start, end := c.fileRange(5, 22)
	require.Equal(t, 0, start)
	require.Equal(t, 2, end)
}

func TestContent_EmptyHasNoFiles(t *testing.T) {
	c := newContent(nil, nil)

	require.Equal(t, 0, c.total())
	require.Equal(t, -1, c.fileAt(0))
	_, end := c.fileRange(0, 10)
	require.Equal(t, -1, end)
	require.Empty(t, c.render(0, 40))
}

func TestContent_RowOfLineNumber(t *testing.T) {
	c := testContent()

	require.Equal(t, 13, c.rowOf(1, 0), "line 0 is the file header")
	require.Equal(t, 15, c.rowOf(1, 1), "header and hunk header precede line 1")
	require.Equal(t, 19, c.rowOf(1, 5))
	require.Equal(t, 13, c.rowOf(1, 99), "lines outside every hunk fall back to the header")
	require.Equal(t, 0, c.rowOf(7, 1))

	// a.go: the removed line has no new number and is skipped.
	require.Equal(t, 25, c.rowOf(2, 2))
}

func TestContent_BinaryAndEmptyFilesGetNotice(t *testing.T) {
	files := []*diff.File{
		{NewPath: "logo.png", IsBinary: true},
		{OldPath: "x", NewPath: "y", IsRenamed: true},
	}
	c := newContent(files, []string{"logo.png", "y"})

	require.Equal(t, 6, c.total())
	require.Contains(t, c.render(1, 60), "Binary file not shown")
	require.Contains(t, c.render(4, 60), "No content changes")
	require.Contains(t, c.render(3, 60), "x → y")
}

func TestContent_RenderFitsWidth(t *testing.T) {
	c := testContent()

	for row := range c.total() {
		require.LessOrEqual(t, lipgloss.Width(c.render(row, 30)), 30, "row %d", row)
	}
	require.Contains(t, c.render(0, 60), "pkg/b.go")
	require.Contains(t, c.render(0, 60), "+10")
	require.Contains(t, c.render(1, 60), "@@ -0,0 +1,10 @@")
}

func TestContent_WordHighlightsKeepText(t *testing.T) {
	c := testContent()

	removed := c.render(24, 80)
	added := c.render(25, 80)
	require.Contains(t, removed, "var foo = 1")
	require.Contains(t, added, "var foo = 2")
	require.NotEmpty(t, c.highlightsFor(2).Segments(0, 2))
}
