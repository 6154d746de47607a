// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"}

	// Borders
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#696969"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection ("> " prefix and cursor row)
	SelectionIndicatorColor  = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	SelectionBackgroundColor = lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#3A3A3A"}

	// Overlays
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#444444", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#8C8C8C"}

	// Toasts
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastBorderWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}

	// Diff pane
	DiffAddedColor         = lipgloss.AdaptiveColor{Light: "#22863A", Dark: "#73F59F"}
	DiffRemovedColor       = lipgloss.AdaptiveColor{Light: "#CB2431", Dark: "#FF8787"}
	DiffAddedWordBgColor   = lipgloss.AdaptiveColor{Light: "#ACF2BD", Dark: "#1F4D2C"}
	DiffRemovedWordBgColor = lipgloss.AdaptiveColor{Light: "#FDB8C0", Dark: "#5C1F24"}
	DiffHunkColor          = lipgloss.AdaptiveColor{Light: "#6F42C1", Dark: "#7D56F4"}
	DiffLineNumberColor    = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#5C5C5C"}
	DiffFileHeaderColor    = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	DiffFileHeaderBgColor  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#2D2D2D"}

	// File tree
	TreeDirectoryColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}
	TreeInViewColor    = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#FECA57"}

	// File status letters
	FileModifiedColor  = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#FECA57"}
	FileAddedColor     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	FileDeletedColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	FileRenamedColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}
	FileUntrackedColor = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#999999"}

	// Command bar
	CommandBarGroupColor    = lipgloss.AdaptiveColor{Light: "#6F42C1", Dark: "#7D56F4"}
	CommandBarShortcutColor = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	DiffAddedStyle       = lipgloss.NewStyle().Foreground(DiffAddedColor)
	DiffRemovedStyle     = lipgloss.NewStyle().Foreground(DiffRemovedColor)
	DiffContextStyle     = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	DiffAddedWordStyle   = lipgloss.NewStyle().Foreground(DiffAddedColor).Background(DiffAddedWordBgColor).Bold(true)
	DiffRemovedWordStyle = lipgloss.NewStyle().Foreground(DiffRemovedColor).Background(DiffRemovedWordBgColor).Bold(true)
	DiffHunkStyle        = lipgloss.NewStyle().Foreground(DiffHunkColor)
	DiffLineNumberStyle  = lipgloss.NewStyle().Foreground(DiffLineNumberColor)
	DiffFileHeaderStyle  = lipgloss.NewStyle().Foreground(DiffFileHeaderColor).Background(DiffFileHeaderBgColor).Bold(true)

	TreeDirectoryStyle = lipgloss.NewStyle().Foreground(TreeDirectoryColor).Bold(true)
	TreeInViewStyle    = lipgloss.NewStyle().Foreground(TreeInViewColor)
	TreeCursorStyle    = lipgloss.NewStyle().Background(SelectionBackgroundColor)

	CommandBarGroupStyle    = lipgloss.NewStyle().Foreground(CommandBarGroupColor).Bold(true)
	CommandBarShortcutStyle = lipgloss.NewStyle().Foreground(CommandBarShortcutColor)
)

// FileStatusColor returns the color for a single-letter file status.
func FileStatusColor(status byte) lipgloss.AdaptiveColor {
	switch status {
	case 'A':
		return FileAddedColor
	case 'D':
		return FileDeletedColor
	case 'R':
		return FileRenamedColor
	case '?':
		return FileUntrackedColor
	default:
		return FileModifiedColor
	}
}
