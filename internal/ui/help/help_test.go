package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vibekanban/internal/keys"
)

func TestMarkdown_ListsEverySection(t *testing.T) {
	md := New("dark").Markdown()

	for _, section := range keys.HelpSections {
		require.Contains(t, md, "## "+section)
	}
	require.Contains(t, md, "## Sync status")
	require.Contains(t, md, "**sync-cooldown**")
	require.Contains(t, md, "`ctrl+k/:`")
}

func TestMarkdown_EscapesPipes(t *testing.T) {
	b := key.NewBinding(key.WithKeys("|"), key.WithHelp("a|b", "pipe"))
	require.Equal(t, "| `a\\|b` | pipe |\n", bindingRow(b))
}

func TestView_RendersBox(t *testing.T) {
	m := New("dark").SetSize(100, 40)

	view := m.View()
	require.Contains(t, view, "Keybindings")
	require.Contains(t, view, "Press ? or Esc to close")
	require.Contains(t, view, "General")
}

func TestView_FitsScreen(t *testing.T) {
	m := New("dark").SetSize(60, 20)

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 20)
	for _, l := range lines {
		require.LessOrEqual(t, lipgloss.Width(l), 60)
	}
}

func TestOverlay_KeepsBackground(t *testing.T) {
	m := New("dark").SetSize(80, 30)
	bg := strings.Repeat(strings.Repeat("x", 80)+"\n", 29) + strings.Repeat("x", 80)

	out := m.Overlay(bg)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 30)
	for _, l := range lines {
		require.True(t, strings.HasPrefix(l, "xxx"), "columns left of the box are untouched")
	}
	require.Contains(t, out, "Keybindings")
}

func TestRender_UnknownStyleFallsBackToMarkdown(t *testing.T) {
	m := New("neon").SetSize(80, 40)

	require.Contains(t, m.body, "## General")
}
