package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUntrackedFile(t *testing.T) {
	f := UntrackedFile("notes/todo.md", "one\r\ntwo\n")

	require.True(t, f.IsNew)
	require.True(t, f.IsUntracked)
	require.Equal(t, StatusUntracked, f.Status())
	require.Equal(t, "notes/todo.md", f.Path())
	require.Equal(t, 2, f.Additions)
	require.Len(t, f.Hunks, 1)
	require.Equal(t, "@@ -0,0 +1,2 @@", f.Hunks[0].Header())
	require.Equal(t, []Line{
		{Type: LineAdded, NewLineNum: 1, Content: "one"},
		{Type: LineAdded, NewLineNum: 2, Content: "two"},
	}, f.Hunks[0].Lines)
}

func TestUntrackedFile_Empty(t *testing.T) {
	f := UntrackedFile("empty", "")
	require.True(t, f.IsUntracked)
	require.Empty(t, f.Hunks)
	require.Zero(t, f.Additions)
}

func TestUntrackedFile_Binary(t *testing.T) {
	f := UntrackedFile("img.png", "\x89PNG\x00\x01")
	require.True(t, f.IsBinary)
	require.Empty(t, f.Hunks)

	late := strings.Repeat("a", binarySniffLen) + "\x00"
	require.False(t, UntrackedFile("big.txt", late).IsBinary, "only the head is sniffed")
}
