//go:build !windows

package windowicon

// Window managers outside Windows draw their own decorations; nothing to strip.
func removeIcon(title string) error { return nil }
