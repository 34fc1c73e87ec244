package export

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// CopyToClipboard places text on the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not available on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
