package diff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@ ?(.*)$`)

const devNull = "/dev/null"

// parser holds the state of a single Parse call.
type parser struct {
	files []File
	file  *File
	hunk  *Hunk

	oldLine, newLine int
	// Lines still expected by the current hunk header. While either is
	// positive every line is hunk content, even one that looks like a
	// "--- a/" header.
	oldLeft, newLeft int
}

// Parse turns unified `git diff` output into files. Empty output yields no
// files. Only a malformed hunk header is an error; unknown extended header
// lines are ignored.
func Parse(output string) ([]File, error) {
	if output == "" {
		return nil, nil
	}
	p := &parser{}
	for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
		if err := p.line(line); err != nil {
			return nil, err
		}
	}
	p.flushFile()
	return p.files, nil
}

func (p *parser) line(line string) error {
	if p.hunk != nil && (p.oldLeft > 0 || p.newLeft > 0) {
		p.content(line)
		return nil
	}

	if rest, ok := strings.CutPrefix(line, "diff --git "); ok {
		p.flushFile()
		oldPath, newPath := splitHeaderPaths(rest)
		p.file = &File{OldPath: oldPath, NewPath: newPath}
		return nil
	}
	if p.file == nil {
		return nil
	}

	switch {
	case strings.HasPrefix(line, "@@ "):
		return p.startHunk(line)
	case strings.HasPrefix(line, `\`):
		// "\ No newline at end of file"
	case strings.HasPrefix(line, "--- "):
		if path := headerPath(line[4:], "a/"); path == devNull {
			p.file.IsNew = true
			p.file.OldPath = ""
		} else {
			p.file.OldPath = path
		}
	case strings.HasPrefix(line, "+++ "):
		if path := headerPath(line[4:], "b/"); path == devNull {
			p.file.IsDeleted = true
			p.file.NewPath = ""
		} else {
			p.file.NewPath = path
		}
	case strings.HasPrefix(line, "new file mode "):
		p.file.IsNew = true
		p.file.OldPath = ""
	case strings.HasPrefix(line, "deleted file mode "):
		p.file.IsDeleted = true
		p.file.NewPath = ""
	case strings.HasPrefix(line, "similarity index "):
		pct := strings.TrimSuffix(strings.TrimPrefix(line, "similarity index "), "%")
		if n, err := strconv.Atoi(pct); err == nil {
			p.file.Similarity = n
			p.file.IsRenamed = true
		}
	case strings.HasPrefix(line, "rename from "):
		p.file.OldPath = unquote(strings.TrimPrefix(line, "rename from "))
		p.file.IsRenamed = true
	case strings.HasPrefix(line, "rename to "):
		p.file.NewPath = unquote(strings.TrimPrefix(line, "rename to "))
		p.file.IsRenamed = true
	case strings.HasPrefix(line, "Binary files ") && strings.HasSuffix(line, " differ"),
		line == "GIT binary patch":
		p.file.IsBinary = true
	}
	return nil
}

func (p *parser) startHunk(line string) error {
	m := hunkHeaderRegex.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("malformed hunk header in %s: %q", p.file.Path(), line)
	}
	nums := [4]int{0, 1, 0, 1}
	for i, s := range m[1:5] {
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("malformed hunk header in %s: %q: %w", p.file.Path(), line, err)
		}
		nums[i] = n
	}

	p.flushHunk()
	p.hunk = &Hunk{
		OldStart: nums[0],
		OldCount: nums[1],
		NewStart: nums[2],
		NewCount: nums[3],
		Section:  strings.TrimSpace(m[5]),
	}
	p.oldLine, p.newLine = nums[0], nums[2]
	p.oldLeft, p.newLeft = nums[1], nums[3]
	return nil
}

func (p *parser) content(line string) {
	if line == "" {
		// Some tools strip the single space of empty context lines.
		line = " "
	}
	text := line[1:]
	switch line[0] {
	case '+':
		p.hunk.Lines = append(p.hunk.Lines, Line{Type: LineAdded, NewLineNum: p.newLine, Content: text})
		p.file.Additions++
		p.newLine++
		p.newLeft--
	case '-':
		p.hunk.Lines = append(p.hunk.Lines, Line{Type: LineRemoved, OldLineNum: p.oldLine, Content: text})
		p.file.Deletions++
		p.oldLine++
		p.oldLeft--
	case '\\':
	default:
		p.hunk.Lines = append(p.hunk.Lines, Line{Type: LineContext, OldLineNum: p.oldLine, NewLineNum: p.newLine, Content: text})
		p.oldLine++
		p.newLine++
		p.oldLeft--
		p.newLeft--
	}
}

func (p *parser) flushHunk() {
	if p.hunk != nil {
		p.file.Hunks = append(p.file.Hunks, *p.hunk)
		p.hunk = nil
	}
	p.oldLeft, p.newLeft = 0, 0
}

func (p *parser) flushFile() {
	if p.file == nil {
		return
	}
	p.flushHunk()
	p.files = append(p.files, *p.file)
	p.file = nil
}

// splitHeaderPaths extracts both paths from the part of a "diff --git" line
// after the command. Paths containing spaces are ambiguous there; when both
// sides name the same path the split is exact, otherwise the ---/+++ or
// rename lines that follow correct it.
func splitHeaderPaths(rest string) (string, string) {
	if strings.HasPrefix(rest, `"`) {
		if oldQ, tail, ok := cutQuoted(rest); ok {
			return strings.TrimPrefix(oldQ, "a/"), headerPath(strings.TrimSpace(tail), "b/")
		}
	}
	if n := len(rest); n%2 == 1 {
		left, right := rest[:n/2], rest[n/2+1:]
		if strings.HasPrefix(left, "a/") && strings.HasPrefix(right, "b/") && left[2:] == right[2:] {
			return left[2:], right[2:]
		}
	}
	if i := strings.LastIndex(rest, " b/"); i >= 0 {
		return strings.TrimPrefix(rest[:i], "a/"), rest[i+3:]
	}
	return rest, rest
}

// headerPath strips git's a/ or b/ prefix, quoting and the trailing tab git
// appends to ---/+++ paths containing spaces.
func headerPath(s, prefix string) string {
	s = unquote(strings.TrimSuffix(s, "\t"))
	if s == devNull {
		return s
	}
	return strings.TrimPrefix(s, prefix)
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	return s
}

// cutQuoted splits a leading Go-compatible quoted string off s.
func cutQuoted(s string) (string, string, bool) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			u, err := strconv.Unquote(s[:i+1])
			if err != nil {
				return "", "", false
			}
			return u, s[i+1:], true
		}
	}
	return "", "", false
}

func rangeSpec(start, count int) string {
	if count == 1 {
		return strconv.Itoa(start)
	}
	return strconv.Itoa(start) + "," + strconv.Itoa(count)
}
