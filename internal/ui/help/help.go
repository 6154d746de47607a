// Package help contains the help overlay component.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vibekanban/internal/keys"
	"github.com/zjrosen/vibekanban/internal/log"
	"github.com/zjrosen/vibekanban/internal/ui/markdown"
	"github.com/zjrosen/vibekanban/internal/ui/overlay"
	"github.com/zjrosen/vibekanban/internal/ui/styles"
)

const (
	maxBoxWidth = 72
	minBoxWidth = 30
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayBorderColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// syncStates explains the status line's first field.
var syncStates = [][2]string{
	{"idle", "the tree follows the diff"},
	{"user-scrolling", "you are scrolling the diff"},
	{"programmatic-scroll", "jumping to a selected file"},
	{"sync-cooldown", "settling after a jump"},
}

// Model holds the help view state.
type Model struct {
	keys  keys.KeyMap
	style string

	width  int
	height int
	body   string // rendered for the current width
}

// New creates a help view. style is the glamour style name; empty follows
// the terminal.
func New(style string) Model {
	return Model{style: style}
}

// SetSize updates dimensions and renders the body for the new width.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.body = m.render(m.contentWidth())
	return m
}

// Markdown returns the help text as a markdown document.
func (m Model) Markdown() string {
	var b strings.Builder
	for i, group := range m.keys.FullHelp() {
		if i < len(keys.HelpSections) {
			b.WriteString("## " + keys.HelpSections[i] + "\n\n")
		}
		b.WriteString("| Key | Action |\n|---|---|\n")
		for _, binding := range group {
			b.WriteString(bindingRow(binding))
		}
		b.WriteString("\n")
	}
	b.WriteString("## Sync status\n\n")
	for _, s := range syncStates {
		b.WriteString("- **" + s[0] + "**: " + s[1] + "\n")
	}
	return b.String()
}

func bindingRow(b key.Binding) string {
	h := b.Help()
	k := strings.ReplaceAll(h.Key, "|", "\\|")
	return "| `" + k + "` | " + h.Desc + " |\n"
}

// render produces the body at width, falling back to the raw markdown when
// glamour cannot render.
func (m Model) render(width int) string {
	doc := m.Markdown()
	r, err := markdown.New(width, m.style)
	if err != nil {
		log.ErrorErr(log.CatUI, "help renderer", err)
		return doc
	}
	out, err := r.Render(doc)
	if err != nil {
		log.ErrorErr(log.CatUI, "rendering help", err)
		return doc
	}
	return out
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, maxBoxWidth), minBoxWidth)
}

// contentWidth is the box width minus border and padding.
func (m Model) contentWidth() int {
	return m.boxWidth() - 6
}

// View renders the help box centered on an empty screen.
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	box := m.renderBox()
	if background == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, box, background)
}

func (m Model) renderBox() string {
	body := m.body
	if body == "" {
		body = m.render(m.contentWidth())
	}
	// Leave room for the title, divider, footer and border.
	maxLines := max(m.height-7, 3)
	lines := strings.Split(body, "\n")
	if len(lines) > maxLines {
		lines = append(lines[:maxLines-1], "…")
	}
	for i, l := range lines {
		lines[i] = styles.TruncateString(l, m.contentWidth())
	}

	width := m.boxWidth()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keybindings"))
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(contentStyle.Render(strings.Join(lines, "\n") + "\n" + footerStyle.Render("Press ? or Esc to close")))
	return boxStyle.Width(width).Render(b.String())
}
