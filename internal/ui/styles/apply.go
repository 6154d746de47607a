package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that will be called after ApplyTheme
// updates colors. Packages that cache styles built from these colors
// register here.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

// colorTargets maps each token to the color variables it sets.
func colorTargets() map[ColorToken][]*lipgloss.AdaptiveColor {
	return map[ColorToken][]*lipgloss.AdaptiveColor{
		TokenTextPrimary:         {&TextPrimaryColor},
		TokenTextSecondary:       {&TextSecondaryColor},
		TokenTextMuted:           {&TextMutedColor},
		TokenTextPlaceholder:     {&TextPlaceholderColor},
		TokenBorderDefault:       {&BorderDefaultColor},
		TokenBorderHighlight:     {&BorderHighlightFocusColor},
		TokenStatusSuccess:       {&StatusSuccessColor},
		TokenStatusWarning:       {&StatusWarningColor},
		TokenStatusError:         {&StatusErrorColor},
		TokenSelectionIndicator:  {&SelectionIndicatorColor},
		TokenSelectionBackground: {&SelectionBackgroundColor},
		TokenOverlayTitle:        {&OverlayTitleColor},
		TokenOverlayBorder:       {&OverlayBorderColor},
		TokenToastSuccess:        {&ToastBorderSuccessColor},
		TokenToastError:          {&ToastBorderErrorColor},
		TokenToastInfo:           {&ToastBorderInfoColor},
		TokenToastWarn:           {&ToastBorderWarnColor},
		TokenDiffAdded:           {&DiffAddedColor},
		TokenDiffRemoved:         {&DiffRemovedColor},
		TokenDiffAddedWord:       {&DiffAddedWordBgColor},
		TokenDiffRemovedWord:     {&DiffRemovedWordBgColor},
		TokenDiffHunk:            {&DiffHunkColor},
		TokenDiffLineNumber:      {&DiffLineNumberColor},
		TokenDiffFileHeader:      {&DiffFileHeaderColor},
		TokenDiffFileHeaderBg:    {&DiffFileHeaderBgColor},
		TokenTreeDirectory:       {&TreeDirectoryColor},
		TokenTreeInView:          {&TreeInViewColor},
		TokenFileModified:        {&FileModifiedColor},
		TokenFileAdded:           {&FileAddedColor},
		TokenFileDeleted:         {&FileDeletedColor},
		TokenFileRenamed:         {&FileRenamedColor},
		TokenFileUntracked:       {&FileUntrackedColor},
		TokenCommandBarGroup:     {&CommandBarGroupColor},
		TokenCommandBarShortcut:  {&CommandBarShortcutColor},
	}
}

// applyColors sets every color present in colors. Themes use the same hex
// for light and dark terminals.
func applyColors(colors map[ColorToken]string) {
	for token, targets := range colorTargets() {
		hex, ok := colors[token]
		if !ok {
			continue
		}
		for _, t := range targets {
			*t = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// lipgloss.Style values capture colors at creation time.
func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)

	DiffAddedStyle = lipgloss.NewStyle().Foreground(DiffAddedColor)
	DiffRemovedStyle = lipgloss.NewStyle().Foreground(DiffRemovedColor)
	DiffContextStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	DiffAddedWordStyle = lipgloss.NewStyle().Foreground(DiffAddedColor).Background(DiffAddedWordBgColor).Bold(true)
	DiffRemovedWordStyle = lipgloss.NewStyle().Foreground(DiffRemovedColor).Background(DiffRemovedWordBgColor).Bold(true)
	DiffHunkStyle = lipgloss.NewStyle().Foreground(DiffHunkColor)
	DiffLineNumberStyle = lipgloss.NewStyle().Foreground(DiffLineNumberColor)
	DiffFileHeaderStyle = lipgloss.NewStyle().Foreground(DiffFileHeaderColor).Background(DiffFileHeaderBgColor).Bold(true)

	TreeDirectoryStyle = lipgloss.NewStyle().Foreground(TreeDirectoryColor).Bold(true)
	TreeInViewStyle = lipgloss.NewStyle().Foreground(TreeInViewColor)
	TreeCursorStyle = lipgloss.NewStyle().Background(SelectionBackgroundColor)

	CommandBarGroupStyle = lipgloss.NewStyle().Foreground(CommandBarGroupColor).Bold(true)
	CommandBarShortcutStyle = lipgloss.NewStyle().Foreground(CommandBarShortcutColor)

	for _, fn := range styleRebuilders {
		fn()
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
