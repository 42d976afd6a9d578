package eventloop

import (
	"context"
	"errors"
	"log"

	"color-picker/src/config"
	"color-picker/src/hotkey"
	"color-picker/src/messages"
	"color-picker/src/overlay"
	"color-picker/src/picker"
	"color-picker/src/rgb"
	"color-picker/src/singleinstance"
)

const inboxSize = 64

// Loop is the single-threaded coordinator. Every producer (UI, overlay,
// timer, hotkey, resident server) posts messages; only Run touches the
// controller.
type Loop struct {
	ctrl    *picker.Controller
	surface overlay.Surface
	ticker  *picker.Ticker
	srv     singleinstance.Server

	inbox   chan messages.Message
	done    chan struct{}
	pending []singleinstance.Conn

	copyOnCommit bool
	copyColor    func(rgb.Color) error
	stopHotkey   func()
}

// Options wires the loop's collaborators.
type Options struct {
	Config  *config.Config
	Sampler picker.Sampler
	Surface overlay.Surface
	View    picker.View
	// Server enables pick delegation from other processes. Optional.
	Server singleinstance.Server
	// CopyColor writes a color to the clipboard. Optional.
	CopyColor func(rgb.Color) error
}

// call runs fn on the loop goroutine.
type call struct {
	fn   func(*picker.Controller)
	done chan struct{}
}

func (call) Type() string { return "Call" }

// New creates a loop. A nil Config uses defaults.
func New(opts Options) *Loop {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{InitialColor: rgb.White, SampleInterval: config.DefaultSampleInterval}
	}

	l := &Loop{
		surface:      opts.Surface,
		srv:          opts.Server,
		inbox:        make(chan messages.Message, inboxSize),
		done:         make(chan struct{}),
		copyOnCommit: cfg.CopyOnCommit,
		copyColor:    opts.CopyColor,
	}
	l.ticker = picker.NewTicker(cfg.SampleInterval, l.postTick)
	l.surface.OnClick(func() { l.Post(messages.OverlayClicked{}) })
	l.surface.OnCancel(func() { l.Post(messages.OverlayCancelled{}) })
	l.ctrl = picker.New(cfg.InitialColor, opts.Sampler, opts.Surface, l.ticker, opts.View)
	l.ctrl.OnFinish(l.onFinish)
	return l
}

// Post hands msg to the loop. It never blocks once the loop has stopped.
func (l *Loop) Post(msg messages.Message) {
	select {
	case l.inbox <- msg:
	case <-l.done:
	}
}

// postTick drops the tick when the loop is backed up; the next one will do.
func (l *Loop) postTick() {
	select {
	case l.inbox <- messages.SampleTick{}:
	default:
	}
}

// OnFinish registers fn to run on the loop goroutine whenever a selection ends.
// Must be called before Run.
func (l *Loop) OnFinish(fn func(picker.Outcome)) {
	l.ctrl.OnFinish(fn)
}

// StartHotkey registers a global hotkey that enters selection mode.
func (l *Loop) StartHotkey(combo string) {
	if combo == "" {
		return
	}
	l.stopHotkey = hotkey.Listen(combo, func() {
		l.Post(messages.HotkeyPressed{Combo: combo})
	})
}

// Run processes messages until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.shutdown()

	if l.srv != nil {
		if err := l.srv.Start(ctx); err != nil {
			return err
		}
		log.Printf("Resident listening on 127.0.0.1:%d", l.srv.Port())
		go l.acceptLoop(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-l.inbox:
			l.handle(msg)
		}
	}
}

func (l *Loop) acceptLoop(ctx context.Context) {
	for {
		conn, err := l.srv.Next(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, singleinstance.ErrServerClosed) {
				log.Printf("eventloop: accept stopped: %v", err)
			}
			return
		}
		l.Post(messages.PickRequest{Conn: conn})
	}
}

func (l *Loop) handle(msg messages.Message) {
	switch m := msg.(type) {
	case messages.ToggleSelection:
		l.ctrl.Toggle(m.On)
	case messages.SampleTick:
		l.ctrl.Tick()
	case messages.OverlayClicked:
		l.ctrl.Click()
	case messages.OverlayCancelled:
		l.ctrl.Cancel()
	case messages.HotkeyPressed:
		log.Printf("handleHotkey: %s", m.Combo)
		l.ctrl.Activate()
	case messages.CopyHex:
		l.copy(l.ctrl.Color())
	case messages.PickRequest:
		l.pending = append(l.pending, m.Conn)
		l.ctrl.Activate()
	case call:
		m.fn(l.ctrl)
		close(m.done)
	default:
		log.Printf("eventloop: unhandled message %s", msg.Type())
	}
}

func (l *Loop) onFinish(out picker.Outcome) {
	if !out.Cancelled && l.copyOnCommit {
		l.copy(out.Color)
	}
	for _, conn := range l.pending {
		var err error
		if out.Cancelled {
			err = conn.RespondError(out.Err().Error())
		} else {
			err = conn.RespondSuccess(out.Color.Hex())
		}
		if err != nil {
			log.Printf("eventloop: failed to answer pick request: %v", err)
		}
		_ = conn.Close()
	}
	l.pending = nil
}

func (l *Loop) copy(c rgb.Color) {
	if l.copyColor == nil {
		return
	}
	if err := l.copyColor(c); err != nil {
		log.Printf("eventloop: clipboard error: %v", err)
		return
	}
	log.Printf("eventloop: copied %s", c.Hex())
}

func (l *Loop) shutdown() {
	close(l.done)
	// Ends any selection in progress so pending requests get an answer.
	if l.ctrl.Selecting() {
		l.ctrl.Cancel()
	}
	l.ticker.Stop()
	if l.stopHotkey != nil {
		l.stopHotkey()
	}
	if l.srv != nil {
		_ = l.srv.Close()
	}
	if err := l.surface.Close(); err != nil {
		log.Printf("eventloop: overlay close: %v", err)
	}
}

// Inspect runs fn on the loop goroutine and waits for it. It returns false
// if ctx ends or the loop stops first.
func (l *Loop) Inspect(ctx context.Context, fn func(*picker.Controller)) bool {
	c := call{fn: fn, done: make(chan struct{})}
	select {
	case l.inbox <- c:
	case <-l.done:
		return false
	case <-ctx.Done():
		return false
	}
	select {
	case <-c.done:
		return true
	case <-l.done:
		return false
	case <-ctx.Done():
		return false
	}
}
