package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// palette is the handful of base colors a preset is derived from.
type palette struct {
	text, subtext, muted, placeholder string
	border, accent, surface           string
	green, yellow, red, blue, purple  string
	addedBg, removedBg                string
}

// colors expands p into every token.
func (p palette) colors() map[ColorToken]string {
	return map[ColorToken]string{
		TokenTextPrimary:     p.text,
		TokenTextSecondary:   p.subtext,
		TokenTextMuted:       p.muted,
		TokenTextPlaceholder: p.placeholder,

		TokenBorderDefault:   p.border,
		TokenBorderHighlight: p.accent,

		TokenStatusSuccess: p.green,
		TokenStatusWarning: p.yellow,
		TokenStatusError:   p.red,

		TokenSelectionIndicator:  p.text,
		TokenSelectionBackground: p.surface,

		TokenOverlayTitle:  p.text,
		TokenOverlayBorder: p.border,

		TokenToastSuccess: p.green,
		TokenToastError:   p.red,
		TokenToastInfo:    p.blue,
		TokenToastWarn:    p.yellow,

		TokenDiffAdded:        p.green,
		TokenDiffRemoved:      p.red,
		TokenDiffAddedWord:    p.addedBg,
		TokenDiffRemovedWord:  p.removedBg,
		TokenDiffHunk:         p.purple,
		TokenDiffLineNumber:   p.muted,
		TokenDiffFileHeader:   p.text,
		TokenDiffFileHeaderBg: p.surface,

		TokenTreeDirectory: p.blue,
		TokenTreeInView:    p.yellow,

		TokenFileModified:  p.yellow,
		TokenFileAdded:     p.green,
		TokenFileDeleted:   p.red,
		TokenFileRenamed:   p.blue,
		TokenFileUntracked: p.subtext,

		TokenCommandBarGroup:    p.purple,
		TokenCommandBarShortcut: p.muted,
	}
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset matches the dark values in styles.go.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default vibekanban theme",
	Colors: palette{
		text: "#CCCCCC", subtext: "#BBBBBB", muted: "#696969", placeholder: "#777777",
		border: "#696969", accent: "#54A0FF", surface: "#2D2D2D",
		green: "#73F59F", yellow: "#FECA57", red: "#FF8787", blue: "#54A0FF", purple: "#7D56F4",
		addedBg: "#1F4D2C", removedBg: "#5C1F24",
	}.colors(),
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm dark theme with pastel colors",
	Colors: palette{
		text: "#CDD6F4", subtext: "#BAC2DE", muted: "#6C7086", placeholder: "#7F849C",
		border: "#6C7086", accent: "#89B4FA", surface: "#313244",
		green: "#A6E3A1", yellow: "#F9E2AF", red: "#F38BA8", blue: "#89B4FA", purple: "#CBA6F7",
		addedBg: "#2B4A33", removedBg: "#553042",
	}.colors(),
}

// CatppuccinLattePreset is the Catppuccin Latte (light) theme.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Catppuccin Latte - light theme with pastel colors",
	Colors: palette{
		text: "#4C4F69", subtext: "#5C5F77", muted: "#9CA0B0", placeholder: "#8C8FA1",
		border: "#9CA0B0", accent: "#1E66F5", surface: "#CCD0DA",
		green: "#40A02B", yellow: "#DF8E1D", red: "#D20F39", blue: "#1E66F5", purple: "#8839EF",
		addedBg: "#C9E8C1", removedBg: "#F3C4CE",
	}.colors(),
}

// DraculaPreset is the Dracula theme.
// Colors from: https://draculatheme.com/contribute
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Colors: palette{
		text: "#F8F8F2", subtext: "#F8F8F2", muted: "#6272A4", placeholder: "#6272A4",
		border: "#6272A4", accent: "#BD93F9", surface: "#44475A",
		green: "#50FA7B", yellow: "#F1FA8C", red: "#FF5555", blue: "#8BE9FD", purple: "#BD93F9",
		addedBg: "#23533A", removedBg: "#5E2A36",
	}.colors(),
}

// NordPreset is the Nord theme.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish color palette",
	Colors: palette{
		text: "#ECEFF4", subtext: "#E5E9F0", muted: "#4C566A", placeholder: "#616E88",
		border: "#4C566A", accent: "#88C0D0", surface: "#3B4252",
		green: "#A3BE8C", yellow: "#EBCB8B", red: "#BF616A", blue: "#81A1C1", purple: "#B48EAD",
		addedBg: "#3B4F3A", removedBg: "#553A40",
	}.colors(),
}

// HighContrastPreset maximizes legibility; there are no muted colors.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: palette{
		text: "#FFFFFF", subtext: "#FFFFFF", muted: "#FFFFFF", placeholder: "#FFFFFF",
		border: "#FFFFFF", accent: "#00FFFF", surface: "#000080",
		green: "#00FF00", yellow: "#FFFF00", red: "#FF0000", blue: "#00FFFF", purple: "#FF00FF",
		addedBg: "#005500", removedBg: "#550000",
	}.colors(),
}
