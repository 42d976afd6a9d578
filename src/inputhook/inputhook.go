// Package inputhook shares one global gohook event stream between the
// hotkey listener and the hook-based overlay.
package inputhook

import (
	"log"
	"sync"

	gohook "github.com/robotn/gohook"
)

// Handler receives every hook event. Handlers run on the hook goroutine and
// must not block.
type Handler func(ev gohook.Event)

var (
	mu       sync.Mutex
	handlers = map[int]Handler{}
	nextID   int
	started  bool
)

// Subscribe registers h and starts the hook on first use. The returned
// function removes the subscription.
func Subscribe(h Handler) func() {
	mu.Lock()
	id := nextID
	nextID++
	handlers[id] = h
	start := !started
	started = true
	mu.Unlock()

	if start {
		go run()
	}

	return func() {
		mu.Lock()
		delete(handlers, id)
		mu.Unlock()
	}
}

func run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in input hook goroutine: %v", r)
		}
	}()

	log.Printf("Starting gohook event loop...")
	evChan := gohook.Start()
	if evChan == nil {
		log.Printf("ERROR: gohook.Start() returned nil channel")
		return
	}
	for ev := range evChan {
		dispatch(ev)
	}
	log.Printf("Event channel closed")
}

func dispatch(ev gohook.Event) {
	mu.Lock()
	hs := make([]Handler, 0, len(handlers))
	for _, h := range handlers {
		hs = append(hs, h)
	}
	mu.Unlock()
	for _, h := range hs {
		h(ev)
	}
}
