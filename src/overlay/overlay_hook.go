package overlay

import (
	"sync"

	"color-picker/src/inputhook"

	gohook "github.com/robotn/gohook"
)

const (
	leftButton   = 1
	escKeycode   = 1  // libuiohook VC_ESCAPE
	escVirtualVK = 27 // VK_ESCAPE
)

// hookSurface has no window of its own: it watches the global input hook
// while shown. Clicks are not swallowed and still reach the window below.
type hookSurface struct {
	callbacks

	subscribe func(inputhook.Handler) func()

	mu          sync.Mutex
	visible     bool
	unsubscribe func()
}

func newHookSurface() *hookSurface {
	return &hookSurface{subscribe: inputhook.Subscribe}
}

func (s *hookSurface) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = true
	if s.unsubscribe == nil {
		s.unsubscribe = s.subscribe(s.handle)
	}
}

func (s *hookSurface) Hide() {
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
}

func (s *hookSurface) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *hookSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = false
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	return nil
}

func (s *hookSurface) handle(ev gohook.Event) {
	if !s.Visible() {
		return
	}
	switch {
	case ev.Kind == gohook.MouseDown && ev.Button == leftButton:
		s.fireClick()
	case ev.Kind == gohook.KeyDown && (ev.Keycode == escKeycode || ev.Rawcode == escVirtualVK):
		s.fireCancel()
	}
}
