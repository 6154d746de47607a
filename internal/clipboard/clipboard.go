// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// System implements Clipboard using the platform clipboard tool
// (pbcopy, xclip/xsel/wl-copy, or the Windows API).
type System struct{}

// Copy copies text to the system clipboard.
func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// Noop discards copied text. It is used when no clipboard is available,
// such as in tests and headless sessions.
type Noop struct{}

// Copy is a no-op that always succeeds.
func (Noop) Copy(string) error { return nil }
