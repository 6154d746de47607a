package diff

import "strings"

// binarySniffLen is how much of a file is checked for NUL bytes.
const binarySniffLen = 8000

// UntrackedFile renders an untracked file as a new file whose every line is
// an addition, the way `git diff --no-index /dev/null path` would.
func UntrackedFile(path, content string) File {
	f := File{NewPath: path, IsNew: true, IsUntracked: true}
	if isBinary(content) {
		f.IsBinary = true
		return f
	}
	if content == "" {
		return f
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	h := Hunk{OldStart: 0, OldCount: 0, NewStart: 1, NewCount: len(lines)}
	h.Lines = make([]Line, len(lines))
	for i, l := range lines {
		h.Lines[i] = Line{Type: LineAdded, NewLineNum: i + 1, Content: strings.TrimSuffix(l, "\r")}
	}
	f.Hunks = []Hunk{h}
	f.Additions = len(lines)
	return f
}

func isBinary(content string) bool {
	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return strings.IndexByte(sniff, 0) >= 0
}
