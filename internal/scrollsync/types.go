// Package scrollsync keeps a file list and a scrollable multi-file view in
// agreement about which file the user is looking at.
//
// The Machine arbitrates three signals: explicit requests to jump to a file,
// range-changed notifications from the list engine, and physical user
// scrolling. Range notifications caused by a jump the machine itself started
// are suppressed until a short cooldown after the jump completes, so they
// cannot overwrite the caller's selection.
package scrollsync

import "time"

const (
	// DefaultDebounceDelay returns user-scrolling to idle after this much quiet.
	DefaultDebounceDelay = 300 * time.Millisecond
	// DefaultCooldownDelay returns sync-cooldown to idle after a completed jump.
	DefaultCooldownDelay = 200 * time.Millisecond
)

// State is the machine's current mode. Exactly one is active at a time.
type State int

const (
	// StateIdle: range changes freely update the file in view.
	StateIdle State = iota
	// StateProgrammaticScroll: a requested jump is in flight.
	StateProgrammaticScroll
	// StateUserScrolling: the user is scrolling; range changes update the
	// file in view and extend the debounce window.
	StateUserScrolling
	// StateSyncCooldown: a jump just finished; trailing range changes are ignored.
	StateSyncCooldown
)

// States lists every State value in declaration order.
var States = []State{StateIdle, StateProgrammaticScroll, StateUserScrolling, StateSyncCooldown}

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProgrammaticScroll:
		return "programmatic-scroll"
	case StateUserScrolling:
		return "user-scrolling"
	case StateSyncCooldown:
		return "sync-cooldown"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the declared states.
func (s State) Valid() bool {
	return s >= StateIdle && s <= StateSyncCooldown
}

// Target is the destination of an in-flight programmatic scroll.
type Target struct {
	Path       string
	LineNumber int // 1-based line in the new file; 0 means the file header
	Index      int // list index of Path
}

// Range is the inclusive span of list indices the list engine reports as
// rendered. It may include overscan items outside the visible viewport.
type Range struct {
	StartIndex int
	EndIndex   int
}

// Snapshot is an immutable copy of the observable machine state.
type Snapshot struct {
	State         State
	FileInView    string
	HasFileInView bool
	Target        Target
	HasTarget     bool
}

// Index maps between list positions and file paths.
type Index interface {
	IndexOf(path string) (int, bool)
	PathAt(index int) (string, bool)
}

// TopPathFunc resolves the file actually occupying the top of the viewport
// for a reported range, using layout measurements the list engine owns.
type TopPathFunc func(r Range) (string, bool)

// PathIndex is an Index over an ordered list of paths.
type PathIndex struct {
	paths  []string
	byPath map[string]int
}

// NewPathIndex builds an index from paths in list order. When a path repeats,
// its first position wins.
func NewPathIndex(paths []string) PathIndex {
	idx := PathIndex{
		paths:  append([]string(nil), paths...),
		byPath: make(map[string]int, len(paths)),
	}
	for i, p := range paths {
		if _, ok := idx.byPath[p]; !ok {
			idx.byPath[p] = i
		}
	}
	return idx
}

// IndexOf returns the list position of path.
func (p PathIndex) IndexOf(path string) (int, bool) {
	i, ok := p.byPath[path]
	return i, ok
}

// PathAt returns the path at list position index.
func (p PathIndex) PathAt(index int) (string, bool) {
	if index < 0 || index >= len(p.paths) {
		return "", false
	}
	return p.paths[index], true
}

// Len returns the number of indexed paths.
func (p PathIndex) Len() int {
	return len(p.paths)
}
