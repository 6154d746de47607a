package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/vibekanban/internal/diff"
	"github.com/zjrosen/vibekanban/internal/ui/styles"
)

const (
	lineNumberWidth = 4
	tabWidth        = 4
)

type lineKind int

const (
	kindFileHeader lineKind = iota
	kindHunkHeader
	kindLine
	kindNotice // binary or empty file placeholder
	kindSpacer // blank line closing a file
)

// vline is one renderable row of the diff pane. It stores indices, not text;
// rows are styled on demand for the visible window only.
type vline struct {
	kind lineKind
	file int
	hunk int
	line int
}

// content lays every file out as one continuous run of rows.
type content struct {
	files     []*diff.File
	paths     []string
	lines     []vline
	fileStart []int // first row of each file

	highlights map[int]diff.Highlights
}

func newContent(files []*diff.File, paths []string) *content {
	c := &content{
		files:      files,
		paths:      paths,
		fileStart:  make([]int, len(files)),
		highlights: make(map[int]diff.Highlights),
	}
	for fi, f := range files {
		c.fileStart[fi] = len(c.lines)
		c.lines = append(c.lines, vline{kind: kindFileHeader, file: fi})
		switch {
		case f.IsBinary:
			c.lines = append(c.lines, vline{kind: kindNotice, file: fi})
		case len(f.Hunks) == 0:
			c.lines = append(c.lines, vline{kind: kindNotice, file: fi})
		default:
			for hi, h := range f.Hunks {
				c.lines = append(c.lines, vline{kind: kindHunkHeader, file: fi, hunk: hi})
				for li := range h.Lines {
					c.lines = append(c.lines, vline{kind: kindLine, file: fi, hunk: hi, line: li})
				}
			}
		}
		c.lines = append(c.lines, vline{kind: kindSpacer, file: fi})
	}
	return c
}

// total returns the number of rows.
func (c *content) total() int {
	return len(c.lines)
}

// fileAt returns the file owning row, or -1 when there are no rows.
func (c *content) fileAt(row int) int {
	if len(c.lines) == 0 {
		return -1
	}
	row = max(0, min(row, len(c.lines)-1))
	return c.lines[row].file
}

// rowOf returns the row to show for a file and 1-based new-file line number.
// Line 0, or a line outside every hunk, maps to the file header; otherwise
// the first row at or after lineNumber is used.
func (c *content) rowOf(fileIdx, lineNumber int) int {
	if fileIdx < 0 || fileIdx >= len(c.fileStart) {
		return 0
	}
	start := c.fileStart[fileIdx]
	if lineNumber <= 0 {
		return start
	}
	end := len(c.lines)
	if fileIdx+1 < len(c.fileStart) {
		end = c.fileStart[fileIdx+1]
	}
	f := c.files[fileIdx]
	for row := start; row < end; row++ {
		vl := c.lines[row]
		if vl.kind != kindLine {
			continue
		}
		l := f.Hunks[vl.hunk].Lines[vl.line]
		if l.Type != diff.LineRemoved && l.NewLineNum >= lineNumber {
			return row
		}
	}
	return start
}

// fileRange returns the inclusive file span covering rows [from, to].
func (c *content) fileRange(from, to int) (int, int) {
	if len(c.lines) == 0 {
		return 0, -1
	}
	return c.fileAt(from), c.fileAt(to)
}

// highlightsFor computes word highlights for a file once.
func (c *content) highlightsFor(fileIdx int) diff.Highlights {
	if h, ok := c.highlights[fileIdx]; ok {
		return h
	}
	h := diff.ComputeHighlights(context.Background(), *c.files[fileIdx])
	c.highlights[fileIdx] = h
	return h
}

// render styles row for the given width.
func (c *content) render(row, width int) string {
	if row < 0 || row >= len(c.lines) || width <= 0 {
		return ""
	}
	vl := c.lines[row]
	f := c.files[vl.file]

	switch vl.kind {
	case kindFileHeader:
		return renderFileHeader(c.paths[vl.file], f, width)
	case kindHunkHeader:
		return styles.DiffHunkStyle.Render(ansi.Truncate(f.Hunks[vl.hunk].Header(), width, ""))
	case kindNotice:
		msg := "No content changes"
		if f.IsBinary {
			msg = "Binary file not shown"
		}
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render(ansi.Truncate("  "+msg, width, ""))
	case kindSpacer:
		return ""
	}

	line := f.Hunks[vl.hunk].Lines[vl.line]
	segs := c.highlightsFor(vl.file).Segments(vl.hunk, vl.line)
	return renderDiffLine(line, segs, width)
}

// renderFileHeader draws "M path +3 -1" across the full width.
func renderFileHeader(path string, f *diff.File, width int) string {
	status := f.Status()
	statusText := lipgloss.NewStyle().
		Foreground(styles.FileStatusColor(byte(status))).
		Background(styles.DiffFileHeaderBgColor).
		Bold(true).
		Render(string(rune(status)))

	var stats []string
	if f.IsBinary {
		stats = append(stats, "binary")
	} else {
		if f.Additions > 0 {
			stats = append(stats, fmt.Sprintf("+%d", f.Additions))
		}
		if f.Deletions > 0 {
			stats = append(stats, fmt.Sprintf("-%d", f.Deletions))
		}
	}
	statsText := strings.Join(stats, " ")

	name := path
	if f.IsRenamed && f.OldPath != "" && f.OldPath != f.NewPath {
		name = f.OldPath + " → " + path
	}
	nameWidth := max(width-2-len(statsText)-1, 1)
	name = styles.TruncateLeft(name, nameWidth)

	bg := lipgloss.NewStyle().Background(styles.DiffFileHeaderBgColor)
	gap := max(width-2-lipgloss.Width(name)-len(statsText), 1)
	return statusText + bg.Render(" ") + styles.DiffFileHeaderStyle.Render(name) +
		bg.Render(strings.Repeat(" ", gap)) + bg.Foreground(styles.TextMutedColor).Render(statsText)
}

// renderDiffLine draws the gutter, marker and content of one diff line,
// applying word segments when present.
func renderDiffLine(l diff.Line, segs []diff.Segment, width int) string {
	gutter := styles.DiffLineNumberStyle.Render(lineNum(l.OldLineNum) + " " + lineNum(l.NewLineNum) + " ")
	gutterWidth := 2*lineNumberWidth + 2
	room := width - gutterWidth - 1
	if room <= 0 {
		return ansi.Truncate(gutter, width, "")
	}

	base := styles.DiffContextStyle
	word := base
	switch l.Type {
	case diff.LineAdded:
		base, word = styles.DiffAddedStyle, styles.DiffAddedWordStyle
	case diff.LineRemoved:
		base, word = styles.DiffRemovedStyle, styles.DiffRemovedWordStyle
	}

	var body strings.Builder
	body.WriteString(base.Render(l.Type.Marker()))
	if len(segs) == 0 {
		body.WriteString(base.Render(truncateCells(expandTabs(l.Content), room)))
		return gutter + body.String()
	}

	left := room
	for _, s := range segs {
		if left <= 0 {
			break
		}
		text := truncateCells(expandTabs(s.Text), left)
		left -= ansi.StringWidth(text)
		if s.Kind == diff.SegmentChanged {
			body.WriteString(word.Render(text))
		} else {
			body.WriteString(base.Render(text))
		}
	}
	return gutter + body.String()
}

func lineNum(n int) string {
	if n <= 0 {
		return strings.Repeat(" ", lineNumberWidth)
	}
	return fmt.Sprintf("%*d", lineNumberWidth, n)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func truncateCells(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "")
}
