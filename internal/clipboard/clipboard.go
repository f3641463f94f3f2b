// Package clipboard adapts the system clipboard to the bundle sink interface.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available
// (for example xclip/xsel/wl-copy on Linux).
var ErrUnsupported = errors.New("clipboard is not supported on this system")

// System writes to the operating system clipboard.
type System struct{}

// WriteAll replaces the clipboard contents with text.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing to clipboard: %w", err)
	}
	return nil
}
