// Package diff parses git diff output into files, hunks and lines, computes
// word-level highlights for modified lines and loads diffs for every
// repository of a workspace.
package diff

import "strings"

// LineType classifies a line inside a hunk.
type LineType int

const (
	LineContext LineType = iota // ' ' prefix
	LineAdded                   // '+' prefix
	LineRemoved                 // '-' prefix
)

// Marker returns the gutter character for the line type.
func (t LineType) Marker() string {
	switch t {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a hunk.
type Line struct {
	Type       LineType
	OldLineNum int // 0 for added lines
	NewLineNum int // 0 for removed lines
	Content    string
}

// Hunk is a contiguous block of changes.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Section  string // text after the closing @@, usually a function signature
	Lines    []Line
}

// Header renders the hunk's @@ line.
func (h Hunk) Header() string {
	var b strings.Builder
	b.WriteString("@@ -")
	b.WriteString(rangeSpec(h.OldStart, h.OldCount))
	b.WriteString(" +")
	b.WriteString(rangeSpec(h.NewStart, h.NewCount))
	b.WriteString(" @@")
	if h.Section != "" {
		b.WriteString(" ")
		b.WriteString(h.Section)
	}
	return b.String()
}

// Status is the single-letter change kind shown in the file tree.
type Status byte

const (
	StatusModified  Status = 'M'
	StatusAdded     Status = 'A'
	StatusDeleted   Status = 'D'
	StatusRenamed   Status = 'R'
	StatusUntracked Status = '?'
)

// File is one file's changes within one repository.
type File struct {
	RepoID   string
	RepoName string

	OldPath string // empty for new files
	NewPath string // empty for deleted files

	Additions int
	Deletions int

	IsBinary    bool
	IsRenamed   bool
	IsNew       bool
	IsDeleted   bool
	IsUntracked bool
	Similarity  int // rename similarity percentage

	Hunks []Hunk
}

// Path returns the path the file has after the change, or the old path for
// deletions.
func (f File) Path() string {
	if f.IsDeleted || f.NewPath == "" {
		return f.OldPath
	}
	return f.NewPath
}

// DisplayPath is the path shown to the user. With several repositories the
// repository name is prefixed so paths stay unique across the workspace.
func (f File) DisplayPath(multiRepo bool) string {
	if multiRepo && f.RepoName != "" {
		return f.RepoName + "/" + f.Path()
	}
	return f.Path()
}

// Status reports the change kind.
func (f File) Status() Status {
	switch {
	case f.IsUntracked:
		return StatusUntracked
	case f.IsNew:
		return StatusAdded
	case f.IsDeleted:
		return StatusDeleted
	case f.IsRenamed:
		return StatusRenamed
	default:
		return StatusModified
	}
}

// LineCount is the number of rendered lines for the file's hunks, counting
// one header line per hunk.
func (f File) LineCount() int {
	n := 0
	for _, h := range f.Hunks {
		n += 1 + len(h.Lines)
	}
	return n
}

// WithRepo returns a copy of files tagged with the given repository.
func WithRepo(files []File, repoID, repoName string) []File {
	out := make([]File, len(files))
	for i, f := range files {
		f.RepoID = repoID
		f.RepoName = repoName
		out[i] = f
	}
	return out
}
