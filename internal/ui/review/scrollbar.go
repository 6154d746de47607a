package review

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vibekanban/internal/ui/styles"
)

const (
	scrollbarThumb = "█"
	scrollbarTrack = "░"
)

// thumbBounds returns the first row and height of the scroll thumb.
func thumbBounds(total, height, offset int) (start, size int) {
	if total <= 0 || height <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, height
	}
	size = max(1, height*height/total)
	maxOffset := total - height
	track := height - size
	if track <= 0 {
		return 0, size
	}
	start = track * offset / maxOffset
	return max(0, min(start, height-size)), size
}

// renderScrollbar returns height one-cell rows. Content that fits gets a
// blank column.
func renderScrollbar(total, height, offset int) []string {
	rows := make([]string, max(height, 0))
	if total <= height {
		for i := range rows {
			rows[i] = " "
		}
		return rows
	}
	start, size := thumbBounds(total, height, offset)
	track := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(scrollbarTrack)
	thumb := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Render(scrollbarThumb)
	for i := range rows {
		if i >= start && i < start+size {
			rows[i] = thumb
		} else {
			rows[i] = track
		}
	}
	return rows
}

// joinScrollbar appends the scrollbar column to each content row.
func joinScrollbar(rows []string, bar []string, width int) string {
	var b strings.Builder
	for i, bc := range bar {
		if i > 0 {
			b.WriteByte('\n')
		}
		row := ""
		if i < len(rows) {
			row = rows[i]
		}
		pad := max(width-lipgloss.Width(row), 0)
		b.WriteString(row)
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(bc)
	}
	return b.String()
}
