package inputhook

import (
	"testing"

	gohook "github.com/robotn/gohook"
)

func TestDispatchFansOut(t *testing.T) {
	mu.Lock()
	started = true // keep the real hook out of unit tests
	mu.Unlock()

	var a, b int
	unsubA := Subscribe(func(gohook.Event) { a++ })
	unsubB := Subscribe(func(gohook.Event) { b++ })

	dispatch(gohook.Event{Kind: gohook.KeyDown})
	if a != 1 || b != 1 {
		t.Fatalf("Expected both handlers called once, got a=%d b=%d", a, b)
	}

	unsubA()
	dispatch(gohook.Event{Kind: gohook.KeyUp})
	if a != 1 || b != 2 {
		t.Errorf("Expected only b after unsubscribe, got a=%d b=%d", a, b)
	}
	unsubB()
}
