// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// App holds the bindings handled by the root model regardless of focus.
var App = struct {
	CommandBar  key.Binding
	CopyPath    key.Binding
	SwitchFocus key.Binding
	Refresh     key.Binding
	NextFile    key.Binding
	PrevFile    key.Binding
	Help        key.Binding
	Logs        key.Binding
	Quit        key.Binding
}{
	CommandBar: key.NewBinding(
		key.WithKeys("ctrl+k", ":"),
		key.WithHelp("ctrl+k/:", "command bar"),
	),
	CopyPath: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy repo path"),
	),
	SwitchFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh diffs"),
	),
	NextFile: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next file"),
	),
	PrevFile: key.NewBinding(
		key.WithKeys("p", "N"),
		key.WithHelp("p", "previous file"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	// Logs only applies with --debug.
	Logs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "debug logs"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Tree holds the file tree bindings.
var Tree = struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Collapse key.Binding
	Expand   key.Binding
}{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "o"),
		key.WithHelp("enter", "show file"),
	),
	Collapse: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Expand: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
}

// Diff holds the diff pane scrolling bindings.
var Diff = struct {
	LineUp       key.Binding
	LineDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	Top          key.Binding
	Bottom       key.Binding
}{
	LineUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	LineDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
	HalfPageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "half page up"),
	),
	HalfPageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d", "half page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
}

// CommandBar holds the bindings active while the command bar is open.
// Printable keys go to the search input.
var CommandBar = struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Close  key.Binding
}{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑/ctrl+p", "previous"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓/ctrl+n", "next"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("backspace", "back"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "back / close"),
	),
}

// KeyMap groups bindings for the help overlay. It satisfies
// bubbles/help.KeyMap.
type KeyMap struct{}

// ShortHelp returns keybindings for the short help view.
func (KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{App.CommandBar, App.SwitchFocus, App.Help, App.Quit}
}

// FullHelp returns keybindings for the full help view.
func (KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{App.CommandBar, App.CopyPath, App.Refresh, App.NextFile, App.PrevFile, App.SwitchFocus, App.Help, App.Quit},
		{Tree.Up, Tree.Down, Tree.Open, Tree.Collapse, Tree.Expand},
		{Diff.LineUp, Diff.LineDown, Diff.HalfPageUp, Diff.HalfPageDown, Diff.Top, Diff.Bottom},
		{CommandBar.Up, CommandBar.Down, CommandBar.Select, CommandBar.Back, CommandBar.Close},
	}
}

// HelpSections names the FullHelp columns in order.
var HelpSections = []string{"General", "File tree", "Diff", "Command bar"}
