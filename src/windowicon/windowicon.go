// Package windowicon strips the icon from a top-level window's title bar.
package windowicon

import (
	"fmt"
	"log"
	"time"
)

const (
	findAttempts = 20
	findDelay    = 50 * time.Millisecond
)

// Remove clears the icon of the top-level window with the given title.
// The window may not exist yet when called right after start-up, so the
// lookup is retried for about a second.
func Remove(title string) error {
	var err error
	for i := 0; i < findAttempts; i++ {
		if err = removeIcon(title); err == nil {
			log.Printf("windowicon: removed icon from %q", title)
			return nil
		}
		if err != errWindowNotFound {
			break
		}
		time.Sleep(findDelay)
	}
	return fmt.Errorf("failed to remove icon from %q: %w", title, err)
}
