package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/vibekanban/internal/ui/styles"
)

const (
	treeExpandedIcon  = "▼"
	treeCollapsedIcon = "▶"
	treeIndentWidth   = 2
)

// View renders the tree, the diff and the status line.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	bodyHeight := m.bodyHeight()
	treeWidth := m.treeWidth()

	treePanel := styles.RenderPanel(
		m.renderTree(treeWidth-2, bodyHeight-2),
		m.treeTitle(),
		treeWidth, bodyHeight,
		m.focus == FocusTree,
	)
	diffPanel := styles.RenderPanel(
		m.renderDiff(),
		m.diffTitle(),
		m.width-treeWidth, bodyHeight,
		m.focus == FocusDiff,
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, treePanel, diffPanel)
	if !m.cfg.ShowStatusBar {
		return body
	}
	return body + "\n" + m.renderStatus()
}

func (m Model) treeTitle() string {
	n := len(m.pane.c.paths)
	switch n {
	case 0:
		return "Files"
	case 1:
		return "Files (1)"
	default:
		return fmt.Sprintf("Files (%d)", n)
	}
}

func (m Model) diffTitle() string {
	if path, ok := m.machine.FileInView(); ok {
		return path
	}
	return "Diff"
}

// highlightedPath is the file the tree marks as in view: the target of a
// jump in flight, otherwise the machine's file in view.
func (m Model) highlightedPath() string {
	snap := m.machine.Snapshot()
	if snap.HasTarget {
		return snap.Target.Path
	}
	if snap.HasFileInView {
		return snap.FileInView
	}
	return ""
}

func (m Model) renderTree(width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	nodes := m.tree.Visible()
	if len(nodes) == 0 {
		return renderPlaceholder(width, height, "No changes")
	}

	inView := m.highlightedPath()
	lines := make([]string, 0, height)
	end := min(m.treeScroll+height, len(nodes))
	for i := m.treeScroll; i < end; i++ {
		n := nodes[i]
		row := renderTreeNode(n, i == m.cursor && m.focus == FocusTree, n.Contains(inView) && (!n.IsDir || !n.Expanded), width)
		lines = append(lines, zone.Mark(m.rowZoneID(i), row))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// renderTreeNode draws one tree row: indent, icon or status letter, name and
// the file's line stats.
func renderTreeNode(n *Node, selected, inView bool, width int) string {
	indent := strings.Repeat(" ", n.Depth*treeIndentWidth)

	var prefix string
	prefixStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	nameStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	if n.IsDir {
		prefix = treeExpandedIcon
		if !n.Expanded {
			prefix = treeCollapsedIcon
		}
		nameStyle = styles.TreeDirectoryStyle
	} else if n.File != nil {
		status := n.File.Status()
		prefix = string(rune(status))
		prefixStyle = lipgloss.NewStyle().Foreground(styles.FileStatusColor(byte(status)))
	}
	if inView {
		nameStyle = styles.TreeInViewStyle.Bold(true)
	}

	var stats string
	if !n.IsDir && n.File != nil {
		stats = formatStats(n.File.Additions, n.File.Deletions, n.File.IsBinary)
	}
	statsWidth := lipgloss.Width(stats)

	nameMax := width - len(indent) - lipgloss.Width(prefix) - 1
	if statsWidth > 0 {
		nameMax -= statsWidth + 1
	}
	name := styles.TruncateString(n.Name, max(nameMax, 1))
	pad := max(nameMax-lipgloss.Width(name), 0)

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(prefixStyle.Render(prefix))
	b.WriteString(" ")
	b.WriteString(nameStyle.Render(name))
	b.WriteString(strings.Repeat(" ", pad))
	if stats != "" {
		b.WriteString(" ")
		b.WriteString(stats)
	}
	row := styles.TruncateString(b.String(), width)
	if selected {
		return styles.TreeCursorStyle.Render(row)
	}
	return row
}

func formatStats(additions, deletions int, binary bool) string {
	if binary {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("bin")
	}
	var parts []string
	if additions > 0 {
		parts = append(parts, styles.DiffAddedStyle.Render(fmt.Sprintf("+%d", additions)))
	}
	if deletions > 0 {
		parts = append(parts, styles.DiffRemovedStyle.Render(fmt.Sprintf("-%d", deletions)))
	}
	return strings.Join(parts, " ")
}

// renderDiff draws only the rows inside the viewport.
func (m Model) renderDiff() string {
	p := m.pane
	if p.height <= 0 || p.width <= 0 {
		return ""
	}
	if p.c.total() == 0 {
		return renderPlaceholder(p.width+1, p.height, "No changes to review")
	}
	end := min(p.offset+p.height, p.c.total())
	rows := make([]string, 0, p.height)
	for i := p.offset; i < end; i++ {
		rows = append(rows, p.c.render(i, p.width))
	}
	return joinScrollbar(rows, renderScrollbar(p.c.total(), p.height, p.offset), p.width)
}

func renderPlaceholder(width, height int, msg string) string {
	style := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, style.Render(msg))
}

// ScrollPercent returns how far down the diff the viewport is, 0 to 100.
func (m Model) ScrollPercent() int {
	maxOffset := m.pane.maxOffset()
	if maxOffset == 0 {
		return 100
	}
	return m.pane.offset * 100 / maxOffset
}

func (m Model) renderStatus() string {
	snap := m.machine.Snapshot()
	parts := []string{snap.State.String()}
	if snap.HasFileInView {
		parts = append(parts, snap.FileInView)
	}
	parts = append(parts, fmt.Sprintf("%d%%", m.ScrollPercent()))
	if m.repoFilter != "" {
		parts = append(parts, "filtered")
	}
	text := styles.TruncateString(strings.Join(parts, " · "), max(m.width-2, 1))
	return styles.StatusBarStyle.Width(m.width).Render(text)
}
