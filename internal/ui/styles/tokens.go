package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextSecondary   ColorToken = "text.secondary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault   ColorToken = "border.default"
	TokenBorderHighlight ColorToken = "border.highlight"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Selection
	TokenSelectionIndicator  ColorToken = "selection.indicator"
	TokenSelectionBackground ColorToken = "selection.background"

	// Overlays
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	// Toast notifications
	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"
	TokenToastWarn    ColorToken = "toast.warn"

	// Diff pane
	TokenDiffAdded        ColorToken = "diff.added"
	TokenDiffRemoved      ColorToken = "diff.removed"
	TokenDiffAddedWord    ColorToken = "diff.added.word"
	TokenDiffRemovedWord  ColorToken = "diff.removed.word"
	TokenDiffHunk         ColorToken = "diff.hunk"
	TokenDiffLineNumber   ColorToken = "diff.line_number"
	TokenDiffFileHeader   ColorToken = "diff.file_header"
	TokenDiffFileHeaderBg ColorToken = "diff.file_header.bg"

	// File tree
	TokenTreeDirectory ColorToken = "tree.directory"
	TokenTreeInView    ColorToken = "tree.in_view"

	// File status letters
	TokenFileModified  ColorToken = "file.modified"
	TokenFileAdded     ColorToken = "file.added"
	TokenFileDeleted   ColorToken = "file.deleted"
	TokenFileRenamed   ColorToken = "file.renamed"
	TokenFileUntracked ColorToken = "file.untracked"

	// Command bar
	TokenCommandBarGroup    ColorToken = "commandbar.group"
	TokenCommandBarShortcut ColorToken = "commandbar.shortcut"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenTextPlaceholder,

		TokenBorderDefault,
		TokenBorderHighlight,

		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		TokenSelectionIndicator,
		TokenSelectionBackground,

		TokenOverlayTitle,
		TokenOverlayBorder,

		TokenToastSuccess,
		TokenToastError,
		TokenToastInfo,
		TokenToastWarn,

		TokenDiffAdded,
		TokenDiffRemoved,
		TokenDiffAddedWord,
		TokenDiffRemovedWord,
		TokenDiffHunk,
		TokenDiffLineNumber,
		TokenDiffFileHeader,
		TokenDiffFileHeaderBg,

		TokenTreeDirectory,
		TokenTreeInView,

		TokenFileModified,
		TokenFileAdded,
		TokenFileDeleted,
		TokenFileRenamed,
		TokenFileUntracked,

		TokenCommandBarGroup,
		TokenCommandBarShortcut,
	}
}
