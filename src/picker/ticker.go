package picker

import (
	"sync"
	"time"
)

// Ticker is a Timer that calls fire on its own goroutine every interval.
// fire must hand the tick over to the event loop rather than touch the
// controller directly.
type Ticker struct {
	interval time.Duration
	fire     func()

	mu   sync.Mutex
	stop chan struct{}
}

// NewTicker returns a stopped ticker. Intervals below 1ms are raised to 1ms.
func NewTicker(interval time.Duration, fire func()) *Ticker {
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	return &Ticker{interval: interval, fire: fire}
}

// Start begins ticking. It is a no-op if already running.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	stop := make(chan struct{})
	t.stop = stop
	go t.run(stop)
}

// Stop halts ticking. A tick already handed to fire may still be delivered.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.stop = nil
}

// Running reports whether the ticker is started.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

// Interval returns the tick period.
func (t *Ticker) Interval() time.Duration { return t.interval }

func (t *Ticker) run(stop chan struct{}) {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tk.C:
			t.fire()
		}
	}
}
