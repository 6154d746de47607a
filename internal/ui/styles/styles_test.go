package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func resetTheme(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { require.NoError(t, ApplyTheme(ThemeConfig{})) })
}

func TestPresets_CoverEveryToken(t *testing.T) {
	for name, p := range Presets {
		for _, token := range AllTokens() {
			hex, ok := p.Colors[token]
			require.True(t, ok, "preset %s is missing %s", name, token)
			require.True(t, isValidHexColor(hex), "preset %s has invalid %s: %q", name, token, hex)
		}
		require.Len(t, p.Colors, len(AllTokens()), "preset %s has unknown tokens", name)
	}
}

func TestPresets_NamesMatchKeys(t *testing.T) {
	for key, p := range Presets {
		require.Equal(t, key, p.Name)
		require.NotEmpty(t, p.Description)
	}
}

func TestApplyTheme_Preset(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "nord"}))
	require.Equal(t, "#ECEFF4", TextPrimaryColor.Dark)
	require.Equal(t, "#A3BE8C", DiffAddedColor.Dark)
	require.Equal(t, "#BF616A", DiffRemovedColor.Light)
}

func TestApplyTheme_OverrideRebuildsStyles(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"diff.added": "#123456"}}))
	require.Equal(t, lipgloss.AdaptiveColor{Light: "#123456", Dark: "#123456"}, DiffAddedColor)
	require.Equal(t, lipgloss.TerminalColor(DiffAddedColor), DiffAddedStyle.GetForeground())
}

func TestApplyTheme_CallsRebuilders(t *testing.T) {
	resetTheme(t)
	calls := 0
	RegisterStyleRebuilder(func() { calls++ })
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, 1, calls)
}

func TestApplyTheme_Errors(t *testing.T) {
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Preset: "solarized"}), "unknown theme preset")
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"bql.keyword": "#FFFFFF"}}), "unknown color token")
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"diff.hunk": "purple"}}), "invalid hex color")
}

func TestIsValidHexColor(t *testing.T) {
	for _, ok := range []string{"#FFF", "#a1b2c3", "#000000"} {
		require.True(t, isValidHexColor(ok), ok)
	}
	for _, bad := range []string{"FFF", "#FFFF", "#GGGGGG", "", "#"} {
		require.False(t, isValidHexColor(bad), bad)
	}
}

func TestFileStatusColor(t *testing.T) {
	require.Equal(t, FileAddedColor, FileStatusColor('A'))
	require.Equal(t, FileDeletedColor, FileStatusColor('D'))
	require.Equal(t, FileRenamedColor, FileStatusColor('R'))
	require.Equal(t, FileUntrackedColor, FileStatusColor('?'))
	require.Equal(t, FileModifiedColor, FileStatusColor('M'))
}

func TestTruncateString(t *testing.T) {
	require.Equal(t, "hello", TruncateString("hello", 10))
	require.Equal(t, "hell…", TruncateString("hello world", 5))
	require.Equal(t, "", TruncateString("hello", 0))
	require.Equal(t, "exact", TruncateString("exact", 5), "a string that fits exactly is not cut")
}

func TestTruncateString_KeepsZoneMarkers(t *testing.T) {
	const open, closing = "\x1b[1001z", "\x1b[1002z"
	row := open + strings.Repeat("x", 23) + closing

	require.Equal(t, row, TruncateString(row, 23))

	cut := TruncateString(row, 10)
	require.Equal(t, 10, lipgloss.Width(cut))
	require.True(t, strings.HasPrefix(cut, open))
	require.Contains(t, cut, closing)
	require.Contains(t, cut, "…")
}

func TestTruncateLeft(t *testing.T) {
	require.Equal(t, "a/b.go", TruncateLeft("a/b.go", 6))
	require.Equal(t, "…/user.go", TruncateLeft("internal/handlers/user.go", 9))
	require.Equal(t, "…", TruncateLeft("abc", 1))
	require.Equal(t, "", TruncateLeft("abc", 0))
}

func TestRenderPanel_Dimensions(t *testing.T) {
	out := RenderPanel("one\ntwo\nthree is a long line", "Files", 12, 5, true)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	for _, l := range lines {
		require.Equal(t, 12, lipgloss.Width(l), "line %q", l)
	}
	require.Contains(t, lines[0], "Files")
	require.True(t, strings.HasPrefix(lines[0], "╭") || strings.Contains(lines[0], "╭"))
	require.Contains(t, lines[4], "╯")
}

func TestRenderPanel_NarrowDropsTitle(t *testing.T) {
	out := RenderPanel("", "Title", 5, 3, false)
	require.NotContains(t, out, "Title")
	require.Len(t, strings.Split(out, "\n"), 3)
}
