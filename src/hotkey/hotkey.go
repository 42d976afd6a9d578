package hotkey

import (
	"log"
	"strings"
	"sync"

	"color-picker/src/inputhook"

	gohook "github.com/robotn/gohook"
)

// Listen registers a global hotkey and calls callback each time the full
// combination is held down. The returned function stops listening.
func Listen(hotkeyConfig string, callback func()) func() {
	m := NewMatcher(hotkeyConfig)
	if m == nil {
		log.Printf("ERROR: No valid keys in hotkey configuration '%s'", hotkeyConfig)
		return func() {}
	}
	log.Printf("Hotkey listener configured for: %s", hotkeyConfig)

	return inputhook.Subscribe(func(ev gohook.Event) {
		var fired bool
		switch ev.Kind {
		case gohook.KeyDown:
			fired = m.KeyDown(ev.Rawcode)
		case gohook.KeyUp:
			m.KeyUp(ev.Rawcode)
		}
		if fired {
			log.Printf("Hotkey activated: %s", hotkeyConfig)
			if callback != nil {
				callback()
			}
		}
	})
}

type keyState struct {
	name     string
	rawcodes []uint16
	pressed  bool
}

// Matcher tracks which keys of a combination are held.
type Matcher struct {
	mu   sync.Mutex
	keys []keyState
}

// NewMatcher returns nil when no key of the combination can be mapped.
func NewMatcher(hotkeyConfig string) *Matcher {
	var keys []keyState
	for _, name := range parseHotkey(hotkeyConfig) {
		rawcodes := keyNameToRawcodes(name)
		if len(rawcodes) == 0 {
			log.Printf("ERROR: Cannot map key '%s' to rawcodes, hotkey may not work correctly", name)
			continue
		}
		keys = append(keys, keyState{name: name, rawcodes: rawcodes})
	}
	if len(keys) == 0 {
		return nil
	}
	return &Matcher{keys: keys}
}

// KeyDown records a press and reports whether the combination is complete.
// Completing the combination resets all key states.
func (m *Matcher) KeyDown(rawcode uint16) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(rawcode, true)
	for i := range m.keys {
		if !m.keys[i].pressed {
			return false
		}
	}
	for i := range m.keys {
		m.keys[i].pressed = false
	}
	return true
}

// KeyUp records a release.
func (m *Matcher) KeyUp(rawcode uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(rawcode, false)
}

func (m *Matcher) set(rawcode uint16, pressed bool) {
	for i := range m.keys {
		for _, rc := range m.keys[i].rawcodes {
			if rc == rawcode {
				m.keys[i].pressed = pressed
				break
			}
		}
	}
}

// parseHotkey converts a hotkey string like "Ctrl+Alt+p" to normalized key names
func parseHotkey(hotkeyConfig string) []string {
	var keys []string
	for _, part := range strings.Split(strings.ToLower(hotkeyConfig), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "control":
			keys = append(keys, "ctrl")
		case "win", "cmd", "super":
			keys = append(keys, "cmd")
		default:
			keys = append(keys, part)
		}
	}
	return keys
}

var specialKeys = map[string][]uint16{
	"ctrl":      {162, 163}, // VK_LCONTROL, VK_RCONTROL
	"alt":       {164, 165}, // VK_LMENU, VK_RMENU
	"shift":     {160, 161}, // VK_LSHIFT, VK_RSHIFT
	"cmd":       {91, 92},   // VK_LWIN, VK_RWIN
	"space":     {32},
	"enter":     {13},
	"return":    {13},
	"esc":       {27},
	"escape":    {27},
	"tab":       {9},
	"backspace": {8},
	"delete":    {46},
	"del":       {46},
	"insert":    {45},
	"ins":       {45},
	"home":      {36},
	"end":       {35},
	"pageup":    {33},
	"pgup":      {33},
	"pagedown":  {34},
	"pgdn":      {34},
	"left":      {37},
	"up":        {38},
	"right":     {39},
	"down":      {40},
}

// keyNameToRawcodes maps a key name to Windows virtual key codes. Modifiers
// map to both their left and right variants.
func keyNameToRawcodes(keyName string) []uint16 {
	keyName = strings.ToLower(strings.TrimSpace(keyName))
	if codes, ok := specialKeys[keyName]; ok {
		return codes
	}
	if len(keyName) == 1 {
		switch c := keyName[0]; {
		case c >= 'a' && c <= 'z':
			return []uint16{uint16(c-'a') + 65}
		case c >= '0' && c <= '9':
			return []uint16{uint16(c-'0') + 48}
		}
	}
	if strings.HasPrefix(keyName, "f") {
		var n int
		for _, r := range keyName[1:] {
			if r < '0' || r > '9' {
				n = 0
				break
			}
			n = n*10 + int(r-'0')
		}
		if n >= 1 && n <= 24 {
			return []uint16{uint16(111 + n)} // VK_F1 = 112
		}
	}
	log.Printf("WARNING: Unknown key name '%s', cannot map to rawcode", keyName)
	return nil
}
