package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// TruncateString shortens s to at most maxWidth cells, ending in an
// ellipsis when anything was cut. Escape sequences, including zone
// markers, are kept.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, ellipsis)
}

// TruncateLeft keeps the end of a plain string, which matters more than
// the start for file paths: "…/handlers/user.go".
func TruncateLeft(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return ellipsis
	}
	return ellipsis + runewidth.TruncateLeft(s, runewidth.StringWidth(s)-(maxWidth-1), "")
}
