package diff

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Bounds for word-level highlighting.
const (
	// MaxWordDiffLineLength skips pairs where either side is longer.
	MaxWordDiffLineLength = 500
	// MaxWordDiffPairs caps the pairs highlighted per hunk.
	MaxWordDiffPairs = 100
	// WordDiffBudget is the time allowed per file.
	WordDiffBudget = 50 * time.Millisecond
)

// SegmentKind says whether a segment changed.
type SegmentKind int

const (
	SegmentSame SegmentKind = iota
	SegmentChanged
)

// Segment is a run of text within a modified line.
type Segment struct {
	Kind SegmentKind
	Text string
}

// LineRef addresses a line by hunk and line index within its file.
type LineRef struct {
	Hunk int
	Line int
}

// Highlights holds word segments for the modified lines of one file.
type Highlights struct {
	segments map[LineRef][]Segment
	// Truncated is set when the time budget ran out before every hunk was
	// processed.
	Truncated bool
}

// Segments returns the segments for a line, or nil when the line is not
// part of a highlighted pair.
func (h Highlights) Segments(hunk, line int) []Segment {
	return h.segments[LineRef{Hunk: hunk, Line: line}]
}

// Len is the number of highlighted lines.
func (h Highlights) Len() int {
	return len(h.segments)
}

// ComputeHighlights pairs each run of removed lines with the run of added
// lines that immediately follows it and diffs the pairs word by word.
func ComputeHighlights(ctx context.Context, f File) Highlights {
	h := Highlights{segments: make(map[LineRef][]Segment)}
	if f.IsBinary || len(f.Hunks) == 0 {
		return h
	}

	ctx, cancel := context.WithTimeout(ctx, WordDiffBudget)
	defer cancel()

	for hi, hunk := range f.Hunks {
		pairs := pairLines(hunk.Lines)
		if len(pairs) > MaxWordDiffPairs {
			pairs = pairs[:MaxWordDiffPairs]
		}
		for _, pr := range pairs {
			if ctx.Err() != nil {
				h.Truncated = true
				return h
			}
			oldText, newText := hunk.Lines[pr[0]].Content, hunk.Lines[pr[1]].Content
			if len(oldText) > MaxWordDiffLineLength || len(newText) > MaxWordDiffLineLength {
				continue
			}
			oldSegs, newSegs := WordDiff(oldText, newText)
			h.segments[LineRef{hi, pr[0]}] = oldSegs
			h.segments[LineRef{hi, pr[1]}] = newSegs
		}
	}
	return h
}

// pairLines returns index pairs (removed, added) matched positionally inside
// each removal run and the addition run right after it.
func pairLines(lines []Line) [][2]int {
	var pairs [][2]int
	i := 0
	for i < len(lines) {
		if lines[i].Type != LineRemoved {
			i++
			continue
		}
		start := i
		for i < len(lines) && lines[i].Type == LineRemoved {
			i++
		}
		removed := i - start
		addStart := i
		for i < len(lines) && lines[i].Type == LineAdded {
			i++
		}
		added := i - addStart
		for k := range min(removed, added) {
			pairs = append(pairs, [2]int{start + k, addStart + k})
		}
	}
	return pairs
}

// WordDiff compares two versions of a line token by token. The old line's
// segments mark removed text as changed, the new line's mark inserted text.
func WordDiff(oldLine, newLine string) (oldSegs, newSegs []Segment) {
	switch {
	case oldLine == "" && newLine == "":
		return nil, nil
	case oldLine == "":
		return nil, []Segment{{Kind: SegmentChanged, Text: newLine}}
	case newLine == "":
		return []Segment{{Kind: SegmentChanged, Text: oldLine}}, nil
	}

	dmp := diffmatchpatch.New()
	// Map every token to one rune so the character diff works on tokens.
	oldRunes, newRunes, tokens := tokensToRunes(tokenize(oldLine), tokenize(newLine))
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	for _, d := range diffs {
		text := runesToText(d.Text, tokens)
		if text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldSegs = appendSegment(oldSegs, SegmentSame, text)
			newSegs = appendSegment(newSegs, SegmentSame, text)
		case diffmatchpatch.DiffDelete:
			oldSegs = appendSegment(oldSegs, SegmentChanged, text)
		case diffmatchpatch.DiffInsert:
			newSegs = appendSegment(newSegs, SegmentChanged, text)
		}
	}
	return oldSegs, newSegs
}

func appendSegment(segs []Segment, kind SegmentKind, text string) []Segment {
	if n := len(segs); n > 0 && segs[n-1].Kind == kind {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Kind: kind, Text: text})
}

// tokensToRunes assigns each distinct token a rune from the private use
// area and returns both lines encoded plus the decoding table.
func tokensToRunes(a, b []string) ([]rune, []rune, map[rune]string) {
	ids := make(map[string]rune)
	table := make(map[rune]string)
	next := rune(0xE000)
	encode := func(toks []string) []rune {
		out := make([]rune, len(toks))
		for i, t := range toks {
			r, ok := ids[t]
			if !ok {
				r = next
				next++
				ids[t] = r
				table[r] = t
			}
			out[i] = r
		}
		return out
	}
	return encode(a), encode(b), table
}

func runesToText(s string, table map[rune]string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString(table[r])
	}
	return b.String()
}

// tokenize splits a line into words, single whitespace runes and single
// punctuation or symbol runes: "foo.bar()" -> [foo . bar ( )].
func tokenize(line string) []string {
	var tokens []string
	wordStart := -1
	for i, r := range line {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			if wordStart >= 0 {
				tokens = append(tokens, line[wordStart:i])
				wordStart = -1
			}
			tokens = append(tokens, string(r))
			continue
		}
		if wordStart < 0 {
			wordStart = i
		}
	}
	if wordStart >= 0 {
		tokens = append(tokens, line[wordStart:])
	}
	return tokens
}
