package eventloop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"color-picker/src/config"
	"color-picker/src/messages"
	"color-picker/src/picker"
	"color-picker/src/rgb"
	"color-picker/src/singleinstance"
)

type fakeSampler struct {
	mu    sync.Mutex
	color rgb.Color
}

func (f *fakeSampler) set(c rgb.Color) {
	f.mu.Lock()
	f.color = c
	f.mu.Unlock()
}

func (f *fakeSampler) ColorUnderCursor() (rgb.Color, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.color, nil
}

type fakeSurface struct {
	mu       sync.Mutex
	visible  bool
	closed   bool
	onClick  func()
	onCancel func()
}

func (f *fakeSurface) Show()              { f.mu.Lock(); f.visible = true; f.mu.Unlock() }
func (f *fakeSurface) Hide()              { f.mu.Lock(); f.visible = false; f.mu.Unlock() }
func (f *fakeSurface) OnClick(fn func())  { f.onClick = fn }
func (f *fakeSurface) OnCancel(fn func()) { f.onCancel = fn }
func (f *fakeSurface) Close() error       { f.mu.Lock(); f.closed = true; f.mu.Unlock(); return nil }

func (f *fakeSurface) isVisible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

type fakeConn struct {
	mu     sync.Mutex
	result string
	errMsg string
	closed bool
}

func (c *fakeConn) Request() singleinstance.Request {
	return singleinstance.Request{Action: singleinstance.ActionPick}
}
func (c *fakeConn) RespondSuccess(hex string) error {
	c.mu.Lock()
	c.result = hex
	c.mu.Unlock()
	return nil
}
func (c *fakeConn) RespondError(msg string) error {
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
	return nil
}
func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) snapshot() (string, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.errMsg, c.closed
}

type harness struct {
	loop    *Loop
	sampler *fakeSampler
	surface *fakeSurface
	copied  []rgb.Color
	copyMu  sync.Mutex
	cancel  context.CancelFunc
	errCh   chan error
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	h := &harness{sampler: &fakeSampler{}, surface: &fakeSurface{}, errCh: make(chan error, 1)}
	h.loop = New(Options{
		Config:  cfg,
		Sampler: h.sampler,
		Surface: h.surface,
		CopyColor: func(c rgb.Color) error {
			h.copyMu.Lock()
			h.copied = append(h.copied, c)
			h.copyMu.Unlock()
			return nil
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.errCh <- h.loop.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-h.errCh
	})
	return h
}

type state struct {
	color     rgb.Color
	previous  rgb.Color
	selecting bool
}

func (h *harness) state(t *testing.T) state {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var s state
	ok := h.loop.Inspect(ctx, func(c *picker.Controller) {
		s = state{color: c.Color(), previous: c.Previous(), selecting: c.Selecting()}
	})
	if !ok {
		t.Fatal("loop did not answer Inspect")
	}
	return s
}

func testConfig(initial rgb.Color) *config.Config {
	return &config.Config{InitialColor: initial, SampleInterval: time.Hour}
}

func TestOverlayClickCommits(t *testing.T) {
	h := newHarness(t, testConfig(rgb.White))

	h.loop.Post(messages.ToggleSelection{On: true})
	if s := h.state(t); !s.selecting || !h.surface.isVisible() {
		t.Fatalf("Expected selection mode with visible overlay, got %+v", s)
	}

	h.sampler.set(rgb.Color{R: 255, G: 0, B: 16})
	h.surface.onClick()
	s := h.state(t)
	if s.selecting || h.surface.isVisible() {
		t.Fatalf("Expected selection to end, got %+v", s)
	}
	if s.color != (rgb.Color{R: 255, G: 0, B: 16}) {
		t.Errorf("Expected #FF0010, got %s", s.color.Hex())
	}
}

func TestTickThenEscapeReverts(t *testing.T) {
	h := newHarness(t, testConfig(rgb.Color{R: 10, G: 10, B: 10}))

	h.loop.Post(messages.HotkeyPressed{Combo: "Ctrl+Alt+P"})
	h.sampler.set(rgb.Color{R: 20, G: 20, B: 20})
	h.loop.Post(messages.SampleTick{})
	s := h.state(t)
	if s.color != (rgb.Color{R: 20, G: 20, B: 20}) || s.previous != (rgb.Color{R: 10, G: 10, B: 10}) {
		t.Fatalf("Unexpected state after tick: color=%s previous=%s", s.color.Hex(), s.previous.Hex())
	}

	h.surface.onCancel()
	s = h.state(t)
	if s.selecting || s.color != (rgb.Color{R: 10, G: 10, B: 10}) {
		t.Errorf("Expected revert to #0A0A0A, got %s selecting=%v", s.color.Hex(), s.selecting)
	}
}

func TestEscapeAfterCommitReverts(t *testing.T) {
	h := newHarness(t, testConfig(rgb.Color{R: 10, G: 10, B: 10}))

	h.loop.Post(messages.ToggleSelection{On: true})
	h.sampler.set(rgb.Color{R: 20, G: 20, B: 20})
	h.loop.Post(messages.OverlayClicked{})
	if s := h.state(t); s.selecting || s.color != (rgb.Color{R: 20, G: 20, B: 20}) {
		t.Fatalf("Expected #141414 committed, got %s selecting=%v", s.color.Hex(), s.selecting)
	}

	// Escape typed on the main window arrives as the same message.
	h.loop.Post(messages.OverlayCancelled{})
	s := h.state(t)
	if s.selecting || s.color != (rgb.Color{R: 10, G: 10, B: 10}) {
		t.Errorf("Expected revert to #0A0A0A, got %s selecting=%v", s.color.Hex(), s.selecting)
	}
}

func TestStaleTickIgnored(t *testing.T) {
	h := newHarness(t, testConfig(rgb.White))
	h.sampler.set(rgb.Color{R: 1})
	h.loop.Post(messages.SampleTick{})
	if s := h.state(t); s.color != rgb.White {
		t.Errorf("Expected tick outside selection to be ignored, got %s", s.color.Hex())
	}
}

func TestTimerDrivesSampling(t *testing.T) {
	h := newHarness(t, &config.Config{InitialColor: rgb.White, SampleInterval: time.Millisecond})
	h.sampler.set(rgb.Color{R: 9, G: 8, B: 7})
	h.loop.Post(messages.ToggleSelection{On: true})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.state(t).color == (rgb.Color{R: 9, G: 8, B: 7}) {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("Expected the sampling timer to update the color")
}

func TestCopyOnCommit(t *testing.T) {
	cfg := testConfig(rgb.White)
	cfg.CopyOnCommit = true
	h := newHarness(t, cfg)

	h.loop.Post(messages.ToggleSelection{On: true})
	h.sampler.set(rgb.Color{R: 3, G: 3, B: 3})
	h.loop.Post(messages.OverlayClicked{})
	h.loop.Post(messages.ToggleSelection{On: true})
	h.loop.Post(messages.OverlayCancelled{})
	h.loop.Post(messages.CopyHex{})
	h.state(t)

	h.copyMu.Lock()
	defer h.copyMu.Unlock()
	if len(h.copied) != 2 {
		t.Fatalf("Expected commit copy plus explicit copy, got %v", h.copied)
	}
	for _, c := range h.copied {
		if c != (rgb.Color{R: 3, G: 3, B: 3}) {
			t.Errorf("Expected #030303 copied, got %s", c.Hex())
		}
	}
}

func TestPickRequestAnswered(t *testing.T) {
	h := newHarness(t, testConfig(rgb.White))

	committed := &fakeConn{}
	h.loop.Post(messages.PickRequest{Conn: committed})
	if s := h.state(t); !s.selecting {
		t.Fatal("Expected pick request to enter selection mode")
	}
	h.sampler.set(rgb.Color{R: 0xAB, G: 0xCD, B: 0xEF})
	h.loop.Post(messages.OverlayClicked{})
	h.state(t)
	if res, errMsg, closed := committed.snapshot(); res != "#ABCDEF" || errMsg != "" || !closed {
		t.Errorf("Expected #ABCDEF and closed, got %q %q closed=%v", res, errMsg, closed)
	}

	cancelled := &fakeConn{}
	h.loop.Post(messages.PickRequest{Conn: cancelled})
	h.loop.Post(messages.OverlayCancelled{})
	h.state(t)
	if res, errMsg, closed := cancelled.snapshot(); res != "" || errMsg != picker.ErrSelectionCancelled.Error() || !closed {
		t.Errorf("Expected cancellation error, got %q %q closed=%v", res, errMsg, closed)
	}
}

func TestPickRequestJoinsRunningSelection(t *testing.T) {
	h := newHarness(t, testConfig(rgb.White))

	h.loop.Post(messages.ToggleSelection{On: true})
	first, second := &fakeConn{}, &fakeConn{}
	h.loop.Post(messages.PickRequest{Conn: first})
	h.loop.Post(messages.PickRequest{Conn: second})
	h.sampler.set(rgb.Color{R: 0x12, G: 0x34, B: 0x56})
	h.loop.Post(messages.OverlayClicked{})
	h.state(t)

	for i, conn := range []*fakeConn{first, second} {
		if res, errMsg, closed := conn.snapshot(); res != "#123456" || errMsg != "" || !closed {
			t.Errorf("request %d: expected #123456, got %q %q closed=%v", i, res, errMsg, closed)
		}
	}
}

func TestShutdownAnswersPendingAndClosesOverlay(t *testing.T) {
	h := newHarness(t, testConfig(rgb.White))
	conn := &fakeConn{}
	h.loop.Post(messages.PickRequest{Conn: conn})
	h.state(t)

	h.cancel()
	if err := <-h.errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	h.errCh <- nil // satisfy cleanup

	if _, errMsg, closed := conn.snapshot(); errMsg == "" || !closed {
		t.Errorf("Expected pending request answered on shutdown, got %q closed=%v", errMsg, closed)
	}
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	if h.surface.visible || !h.surface.closed {
		t.Errorf("Expected overlay hidden and closed, visible=%v closed=%v", h.surface.visible, h.surface.closed)
	}
	// Post after shutdown must not block.
	h.loop.Post(messages.CopyHex{})
}
