package overlay

import (
	"log"
	"sync"
)

// Surface is a full-screen capture surface shown while a color is being
// picked. Show and Hide may be called from any goroutine; the registered
// callbacks run on the surface's own goroutine and must not block.
type Surface interface {
	Show()
	Hide()
	// OnClick registers the handler for a primary click on the surface.
	OnClick(fn func())
	// OnCancel registers the handler for the Escape gesture.
	OnCancel(fn func())
	Close() error
}

// New returns the platform surface, falling back to the global input hook
// when no native window can be created.
func New() Surface {
	s, err := newPlatformSurface()
	if err != nil {
		log.Printf("overlay: native surface unavailable, using input hook: %v", err)
		return newHookSurface()
	}
	return s
}

type callbacks struct {
	mu     sync.Mutex
	click  func()
	cancel func()
}

func (c *callbacks) OnClick(fn func()) {
	c.mu.Lock()
	c.click = fn
	c.mu.Unlock()
}

func (c *callbacks) OnCancel(fn func()) {
	c.mu.Lock()
	c.cancel = fn
	c.mu.Unlock()
}

func (c *callbacks) fireClick() {
	c.mu.Lock()
	fn := c.click
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (c *callbacks) fireCancel() {
	c.mu.Lock()
	fn := c.cancel
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
