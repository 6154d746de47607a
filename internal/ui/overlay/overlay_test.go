package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func grid(w, h int) string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(".", w)
	}
	return strings.Join(rows, "\n")
}

func TestPlace_Positions(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{"center", Config{Width: 6, Height: 4, Position: Center}, []string{"......", "..XX..", "..XX..", "......"}},
		{"top", Config{Width: 6, Height: 4, Position: Top, PadY: 1}, []string{"......", "..XX..", "..XX..", "......"}},
		{"bottom", Config{Width: 6, Height: 4, Position: Bottom}, []string{"......", "......", "..XX..", "..XX.."}},
		{"bottom right", Config{Width: 6, Height: 4, Position: BottomRight, PadX: 1, PadY: 1}, []string{"......", "...XX.", "...XX.", "......"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(tt.cfg, "XX\nXX", grid(6, 4))
			require.Equal(t, tt.want, strings.Split(got, "\n"))
		})
	}
}

func TestPlace_LargerThanViewportClampsToOrigin(t *testing.T) {
	got := Place(Config{Width: 3, Height: 2}, "XXXXX\nXXXXX\nXXXXX", grid(3, 2))
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "XXXXX", lines[0])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	got := Place(Config{Width: 4, Height: 3, Position: Bottom}, "XX", "ab")
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, " XX ", lines[2])
}

func TestPlace_EmptyForegroundKeepsBackground(t *testing.T) {
	bg := grid(3, 3)
	require.Equal(t, bg, Place(Config{Width: 3, Height: 3}, "", bg))
}

func TestPlace_PreservesBackgroundStyling(t *testing.T) {
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	bg := red.Render("abcdef")
	got := Place(Config{Width: 6, Height: 1}, "XX", bg)
	require.Equal(t, "abXXef", ansi.Strip(got))
}
