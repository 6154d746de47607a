// Package commandbar renders the command bar overlay: a search input over a
// grouped, scrollable list of pages, actions and repositories. Navigation
// is delegated to the commandbar state machine; this package turns keys into
// events and effects into messages.
package commandbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bar "github.com/zjrosen/vibekanban/internal/commandbar"
	"github.com/zjrosen/vibekanban/internal/keys"
	"github.com/zjrosen/vibekanban/internal/ui/overlay"
	"github.com/zjrosen/vibekanban/internal/ui/styles"
)

const (
	defaultWidth      = 64
	defaultMaxVisible = 12
)

// Config defines command bar configuration.
type Config struct {
	Catalog         *bar.Catalog
	Repos           []bar.Repo
	Page            bar.PageID  // initial page, PageRoot when empty
	Pending         *bar.Action // pre-seeded git action awaiting a repository
	Width           int         // box width (default 64)
	MaxVisibleItems int         // rows before scrolling (default 12)
}

// ExecuteMsg is sent when an action is ready to run. The bar is finished.
type ExecuteMsg struct {
	Action bar.Action
	RepoID string
}

// UnavailableMsg is sent when the selected action cannot run. The bar stays
// open.
type UnavailableMsg struct {
	Action bar.Action
	Reason string
}

// CloseMsg is sent when the bar is dismissed without running anything.
type CloseMsg struct{}

// row is one rendered line: a group heading or an item.
type row struct {
	heading string
	item    int // index into items, -1 for headings
}

// Model holds the command bar state.
type Model struct {
	catalog *bar.Catalog
	repos   []bar.Repo
	machine *bar.Machine
	input   textinput.Model

	groups []bar.ResolvedGroup
	items  []bar.Item
	rows   []row

	cursor       int // index into items
	scrollOffset int // first visible row

	width          int
	maxVisible     int
	viewportWidth  int
	viewportHeight int
}

// New opens a command bar on cfg.Page.
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.Prompt = ""
	ti.Focus()

	page := cfg.Page
	if page == "" {
		page = bar.PageRoot
	}
	repos := cfg.Repos
	m := Model{
		catalog:    cfg.Catalog,
		repos:      repos,
		machine:    bar.NewMachine(page, func() int { return len(repos) }, cfg.Pending),
		input:      ti,
		width:      cfg.Width,
		maxVisible: cfg.MaxVisibleItems,
	}
	if m.width <= 0 {
		m.width = defaultWidth
	}
	if m.maxVisible <= 0 {
		m.maxVisible = defaultMaxVisible
	}
	return m.refresh(true)
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CommandBar.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
				m = m.ensureCursorVisible()
			}
			return m, nil

		case key.Matches(msg, keys.CommandBar.Up):
			if m.cursor > 0 {
				m.cursor--
				m = m.ensureCursorVisible()
			}
			return m, nil

		case key.Matches(msg, keys.CommandBar.Select):
			item, ok := m.Selected()
			if !ok {
				return m, nil
			}
			eff := m.machine.Dispatch(bar.SelectItem{Item: item})
			return m.handleEffect(eff)

		case key.Matches(msg, keys.CommandBar.Close):
			if m.machine.CanGoBack() {
				m.machine.Dispatch(bar.GoBack{})
				return m.refresh(true), nil
			}
			return m, func() tea.Msg { return CloseMsg{} }

		case key.Matches(msg, keys.CommandBar.Back) && m.input.Value() == "":
			if m.machine.CanGoBack() {
				m.machine.Dispatch(bar.GoBack{})
				return m.refresh(true), nil
			}
			return m, nil
		}

		var cmd tea.Cmd
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before {
			m.machine.Dispatch(bar.SearchChange{Query: after})
			m = m.refresh(false)
		}
		return m, cmd

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonWheelUp && msg.Button != tea.MouseButtonWheelDown {
			return m, nil
		}
		maxOffset := max(0, len(m.rows)-m.visibleRows())
		if msg.Button == tea.MouseButtonWheelUp {
			m.scrollOffset = max(0, m.scrollOffset-1)
		} else {
			m.scrollOffset = min(maxOffset, m.scrollOffset+1)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		return m.ensureCursorVisible(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleEffect turns a machine effect into the message for the parent.
func (m Model) handleEffect(eff bar.Effect) (Model, tea.Cmd) {
	switch eff := eff.(type) {
	case bar.EffectExecute:
		return m, func() tea.Msg { return ExecuteMsg{Action: eff.Action, RepoID: eff.RepoID} }
	case bar.EffectUnavailable:
		return m, func() tea.Msg { return UnavailableMsg{Action: eff.Action, Reason: eff.Reason} }
	}
	// A page change clears the search, so the input follows the machine.
	return m.refresh(true), nil
}

// refresh re-resolves the visible groups. reset moves the cursor to the top
// and syncs the input with the machine's search text.
func (m Model) refresh(reset bool) Model {
	if reset {
		m.input.SetValue(m.machine.Search())
		m.input.CursorEnd()
	}
	m.groups = m.catalog.Resolve(m.machine.State(), m.repos)
	m.items = bar.Flatten(m.groups)

	rows := make([]row, 0, len(m.items)+len(m.groups))
	idx := 0
	for _, g := range m.groups {
		rows = append(rows, row{heading: g.Heading, item: -1})
		for range g.Items {
			rows = append(rows, row{item: idx})
			idx++
		}
	}
	m.rows = rows

	if reset || m.cursor >= len(m.items) {
		m.cursor = 0
		m.scrollOffset = 0
	}
	return m.ensureCursorVisible()
}

// visibleRows returns how many list rows fit, shrinking only when the
// viewport forces it.
func (m Model) visibleRows() int {
	target := m.maxVisible
	if m.viewportHeight > 0 {
		// border (2) + title and divider (2) + search and divider (2) + top padding (1)
		overhead := 7
		if fromViewport := max(m.viewportHeight-overhead, 3); fromViewport < target {
			return fromViewport
		}
	}
	return target
}

// cursorRow returns the row index of the cursor item.
func (m Model) cursorRow() int {
	for i, r := range m.rows {
		if r.item == m.cursor {
			return i
		}
	}
	return 0
}

// ensureCursorVisible adjusts the scroll offset to keep the cursor in view.
// The heading above the first item of a group scrolls in with it.
func (m Model) ensureCursorVisible() Model {
	visible := m.visibleRows()
	cur := m.cursorRow()
	top := cur
	if cur > 0 && m.rows[cur-1].item == -1 {
		top = cur - 1
	}
	if cur >= m.scrollOffset+visible {
		m.scrollOffset = cur - visible + 1
	}
	if top < m.scrollOffset {
		m.scrollOffset = top
	}
	return m
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m.ensureCursorVisible()
}

// Selected returns the item under the cursor.
func (m Model) Selected() (bar.Item, bool) {
	if m.cursor >= 0 && m.cursor < len(m.items) {
		return m.items[m.cursor], true
	}
	return nil, false
}

// Cursor returns the cursor position within Items.
func (m Model) Cursor() int {
	return m.cursor
}

// Items returns the selectable items in render order.
func (m Model) Items() []bar.Item {
	return m.items
}

// Page returns the page being shown.
func (m Model) Page() bar.PageID {
	return m.machine.CurrentPage()
}

// SearchText returns the current search text.
func (m Model) SearchText() string {
	return m.input.Value()
}

// Title returns the breadcrumb trail, e.g. "Commands › Repository".
func (m Model) Title() string {
	return strings.Join(m.catalog.Breadcrumbs(m.machine.State()), " › ")
}

// View renders the command bar box.
func (m Model) View() string {
	contentWidth := m.width

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	hintsStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	dividerStyle := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor)
	divider := dividerStyle.Render(strings.Repeat("─", contentWidth))

	var content strings.Builder

	hints := "↑/↓ • Enter • Esc"
	if m.machine.CanGoBack() {
		hints = "↑/↓ • Enter • Esc back"
	}
	hintsView := hintsStyle.Render(hints)
	title := titleStyle.Render(styles.TruncateLeft(m.Title(), contentWidth-lipgloss.Width(hintsView)-3))
	padding := max(contentWidth-lipgloss.Width(title)-lipgloss.Width(hintsView)-1, 1)
	content.WriteString(title + strings.Repeat(" ", padding) + hintsView)
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")

	searchIcon := hintsStyle.Render(" > ")
	m.input.Width = contentWidth - 4
	content.WriteString(searchIcon + m.input.View())
	content.WriteString("\n")
	content.WriteString(divider)

	visible := m.visibleRows()
	emptyLine := strings.Repeat(" ", contentWidth)

	if len(m.items) == 0 {
		noResults := lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Italic(true).
			PaddingLeft(1).
			Render("No matching items")
		content.WriteString("\n")
		content.WriteString(noResults)
		for i := 1; i < visible; i++ {
			content.WriteString("\n")
			content.WriteString(emptyLine)
		}
	} else {
		end := min(m.scrollOffset+visible, len(m.rows))
		rendered := 0
		for i := m.scrollOffset; i < end; i++ {
			content.WriteString("\n")
			content.WriteString(m.renderRow(m.rows[i], contentWidth))
			rendered++
		}
		for ; rendered < visible; rendered++ {
			content.WriteString("\n")
			content.WriteString(emptyLine)
		}
		if end < len(m.rows) {
			more := hintsStyle.Render("↓ more")
			content.WriteString("\n")
			content.WriteString(strings.Repeat(" ", (contentWidth-lipgloss.Width(more))/2) + more)
		}
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(contentWidth)

	return boxStyle.Render(content.String())
}

// renderRow renders a heading or a single-line item with its hint and
// shortcut right-aligned.
func (m Model) renderRow(r row, width int) string {
	if r.item < 0 {
		return " " + styles.CommandBarGroupStyle.Render(styles.TruncateString(r.heading, width-1))
	}

	item := m.items[r.item]
	selected := r.item == m.cursor

	indicator := " "
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	if selected {
		indicator = styles.SelectionIndicatorStyle.Render(">")
		labelStyle = labelStyle.Bold(true)
	}

	hint, shortcut := itemHints(item)
	right := ""
	if shortcut != "" {
		right = styles.CommandBarShortcutStyle.Render(shortcut)
	}
	rightWidth := lipgloss.Width(right)

	labelWidth := width - 3 - rightWidth
	if rightWidth > 0 {
		labelWidth--
	}
	label := styles.TruncateString(item.Label(), labelWidth)
	line := indicator + " " + labelStyle.Render(label)

	if hint != "" {
		room := labelWidth - lipgloss.Width(label) - 2
		if room > 3 {
			line += "  " + lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(styles.TruncateString(hint, room))
		}
	}

	gap := max(width-lipgloss.Width(line)-rightWidth, 1)
	return line + strings.Repeat(" ", gap) + right
}

// itemHints returns the muted hint and key shortcut shown for item.
func itemHints(item bar.Item) (hint, shortcut string) {
	switch it := item.(type) {
	case bar.PageItem:
		return it.Hint, "›"
	case bar.RepoItem:
		return it.Repo.Detail, ""
	case bar.ActionItem:
		return it.Action.Description, it.Action.Shortcut
	}
	return "", ""
}

// Overlay renders the command bar near the top of background.
func (m Model) Overlay(background string) string {
	box := m.View()
	if background == "" {
		return lipgloss.Place(m.viewportWidth, m.viewportHeight, lipgloss.Center, lipgloss.Top, box)
	}
	return overlay.Place(overlay.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: overlay.Top,
		PadY:     2,
	}, box, background)
}
