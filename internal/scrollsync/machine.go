package scrollsync

import (
	"context"
	"sync"
	"time"

	"github.com/zjrosen/vibekanban/internal/log"
	"github.com/zjrosen/vibekanban/internal/pubsub"
)

// snapshotBuffer bounds pending snapshots per subscriber. Older ones are
// evicted first.
const snapshotBuffer = 8

// Option configures a Machine.
type Option func(*Machine)

// WithTopPath installs a measurement-based resolver for the file at the top
// of the viewport. When it cannot resolve a range, the machine falls back to
// the path at the range's start index.
func WithTopPath(fn TopPathFunc) Option {
	return func(m *Machine) {
		m.topPath = fn
	}
}

// WithDebounceDelay overrides DefaultDebounceDelay.
func WithDebounceDelay(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.debounceDelay = d
		}
	}
}

// WithCooldownDelay overrides DefaultCooldownDelay.
func WithCooldownDelay(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.cooldownDelay = d
		}
	}
}

// WithClock replaces the wall clock used for timers.
func WithClock(c Clock) Option {
	return func(m *Machine) {
		if c != nil {
			m.clock = c
		}
	}
}

// Machine is the scroll synchronization state machine. All methods are safe
// for concurrent use; timer callbacks run on the clock's goroutine and take
// the same lock as callers.
type Machine struct {
	mu sync.Mutex

	index         Index
	topPath       TopPathFunc
	clock         Clock
	debounceDelay time.Duration
	cooldownDelay time.Duration

	state         State
	target        Target
	hasTarget     bool
	fileInView    string
	hasFileInView bool

	// Each arm or cancel bumps the generation so a callback that already
	// escaped Stop recognizes itself as stale.
	debounce    Timer
	debounceGen uint64
	cooldown    Timer
	cooldownGen uint64

	closed bool
	broker *pubsub.Broker[Snapshot]
}

// New creates an idle machine over index.
func New(index Index, opts ...Option) *Machine {
	m := &Machine{
		index:         index,
		clock:         RealClock{},
		debounceDelay: DefaultDebounceDelay,
		cooldownDelay: DefaultCooldownDelay,
		state:         StateIdle,
		broker:        pubsub.NewSnapshotBroker[Snapshot](snapshotBuffer),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ScrollToFile starts a programmatic scroll to path and returns its list
// index. When path is unknown it returns false and nothing changes.
// lineNumber is carried on the target for the view; 0 means the file header.
func (m *Machine) ScrollToFile(path string, lineNumber int) (int, bool) {
	m.mu.Lock()
	index := m.index
	m.mu.Unlock()

	if index == nil {
		return 0, false
	}
	idx, ok := index.IndexOf(path)
	if !ok {
		log.Debug(log.CatScroll, "scroll target not found", "path", path)
		return 0, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, false
	}

	m.cancelDebounceLocked()
	m.cancelCooldownLocked()
	m.target = Target{Path: path, LineNumber: lineNumber, Index: idx}
	m.hasTarget = true
	m.transitionLocked(StateProgrammaticScroll, "scroll-to-file")
	m.publishLocked()
	return idx, true
}

// OnUserScroll records physical scroll input. It only has an effect from
// idle; during a programmatic scroll or cooldown the input is ignored.
func (m *Machine) OnUserScroll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.state != StateIdle {
		return
	}

	m.transitionLocked(StateUserScrolling, "user-scroll")
	m.armDebounceLocked()
	m.publishLocked()
}

// OnRangeChanged reports the span the list engine rendered. Outside a
// programmatic scroll and its cooldown it updates the file in view; while the
// user is scrolling it also extends the debounce window.
func (m *Machine) OnRangeChanged(r Range) {
	m.mu.Lock()
	if m.closed || m.suppressedLocked() {
		m.mu.Unlock()
		return
	}
	index, topPath := m.index, m.topPath
	m.mu.Unlock()

	// Resolvers call back into view code and run without the lock held.
	path, ok := resolveTop(r, index, topPath)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.suppressedLocked() {
		return
	}

	changed := false
	if ok && (!m.hasFileInView || m.fileInView != path) {
		log.Debug(log.CatScroll, "file in view", "from", m.fileInView, "to", path, "state", m.state)
		m.fileInView = path
		m.hasFileInView = true
		changed = true
	}
	if m.state == StateUserScrolling {
		m.armDebounceLocked()
	}
	if changed {
		m.publishLocked()
	}
}

// OnScrollComplete reports that the view finished a programmatic scroll.
// It clears the target and enters cooldown; outside a programmatic scroll it
// is ignored.
func (m *Machine) OnScrollComplete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.state != StateProgrammaticScroll {
		return
	}

	m.target = Target{}
	m.hasTarget = false
	m.transitionLocked(StateSyncCooldown, "scroll-complete")
	m.armCooldownLocked()
	m.publishLocked()
}

// SetIndex replaces the path index, for example after the diff reloads.
// State, target and file in view are left alone.
func (m *Machine) SetIndex(index Index) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.index = index
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// FileInView returns the file at the top of the viewport, if known.
func (m *Machine) FileInView() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fileInView, m.hasFileInView
}

// ScrollTarget returns the in-flight programmatic scroll target, if any.
func (m *Machine) ScrollTarget() (Target, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target, m.hasTarget
}

// Snapshot returns a consistent copy of the observable state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe streams a Snapshot after every observable change until ctx is
// done or the machine is closed.
func (m *Machine) Subscribe(ctx context.Context) <-chan pubsub.Event[Snapshot] {
	return m.broker.Subscribe(ctx)
}

// Close cancels pending timers and ends all subscriptions. Later calls to
// the event methods are ignored.
func (m *Machine) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.cancelDebounceLocked()
	m.cancelCooldownLocked()
	m.mu.Unlock()

	m.broker.Close()
}

func resolveTop(r Range, index Index, topPath TopPathFunc) (string, bool) {
	if topPath != nil {
		if path, ok := topPath(r); ok {
			return path, true
		}
	}
	if index == nil {
		return "", false
	}
	return index.PathAt(r.StartIndex)
}

func (m *Machine) suppressedLocked() bool {
	return m.state == StateProgrammaticScroll || m.state == StateSyncCooldown
}

func (m *Machine) armDebounceLocked() {
	m.cancelDebounceLocked()
	gen := m.debounceGen
	m.debounce = m.clock.AfterFunc(m.debounceDelay, func() {
		m.debounceExpired(gen)
	})
}

func (m *Machine) cancelDebounceLocked() {
	if m.debounce != nil {
		m.debounce.Stop()
		m.debounce = nil
	}
	m.debounceGen++
}

func (m *Machine) debounceExpired(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || gen != m.debounceGen || m.state != StateUserScrolling {
		return
	}
	m.debounce = nil
	m.transitionLocked(StateIdle, "debounce elapsed")
	m.publishLocked()
}

func (m *Machine) armCooldownLocked() {
	m.cancelCooldownLocked()
	gen := m.cooldownGen
	m.cooldown = m.clock.AfterFunc(m.cooldownDelay, func() {
		m.cooldownExpired(gen)
	})
}

func (m *Machine) cancelCooldownLocked() {
	if m.cooldown != nil {
		m.cooldown.Stop()
		m.cooldown = nil
	}
	m.cooldownGen++
}

func (m *Machine) cooldownExpired(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || gen != m.cooldownGen || m.state != StateSyncCooldown {
		return
	}
	m.cooldown = nil
	m.transitionLocked(StateIdle, "cooldown elapsed")
	m.publishLocked()
}

func (m *Machine) transitionLocked(to State, reason string) {
	if m.state == to {
		return
	}
	log.Debug(log.CatScroll, "transition", "from", m.state, "to", to, "reason", reason)
	m.state = to
}

func (m *Machine) snapshotLocked() Snapshot {
	return Snapshot{
		State:         m.state,
		FileInView:    m.fileInView,
		HasFileInView: m.hasFileInView,
		Target:        m.target,
		HasTarget:     m.hasTarget,
	}
}

func (m *Machine) publishLocked() {
	m.broker.Publish(pubsub.ChangedEvent, m.snapshotLocked())
}
