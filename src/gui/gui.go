package gui

import (
	"log"
	"sync/atomic"

	"color-picker/src/rgb"
	"color-picker/src/tray"
	"color-picker/src/windowicon"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Title is the main window title; the icon helper finds the window by it.
const Title = "Color Picker"

// Actions are the user intents the window forwards to the event loop.
type Actions struct {
	Toggle func(on bool)
	Cancel func()
	Copy   func()
}

// Window is the picker's main window. Its setters are safe to call from
// any goroutine.
type Window struct {
	app     fyne.App
	win     fyne.Window
	actions Actions

	toggle   *widget.Check
	swatch   *canvas.Rectangle
	rgbEntry *readoutEntry
	hexEntry *readoutEntry
	hslLabel *widget.Label

	color   rgb.Color
	syncing bool
	closed  atomic.Bool
}

func New(a fyne.App, actions Actions) *Window {
	w := &Window{app: a, actions: actions, color: rgb.White}
	w.win = a.NewWindow(Title)
	w.win.SetMaster()
	w.win.SetFixedSize(true)

	w.toggle = widget.NewCheck("Pick color", w.onToggle)
	w.swatch = canvas.NewRectangle(rgb.White.NRGBA())
	w.swatch.SetMinSize(fyne.NewSize(96, 96))
	w.swatch.StrokeWidth = 1
	w.swatch.StrokeColor = rgb.Color{R: 128, G: 128, B: 128}.NRGBA()
	w.rgbEntry = w.newReadout(func() string { return w.color.Decimal() })
	w.hexEntry = w.newReadout(func() string { return w.color.Hex() })
	w.hslLabel = widget.NewLabel(rgb.White.HSL())

	copyBtn := widget.NewButton("Copy hex", func() {
		if w.actions.Copy != nil {
			w.actions.Copy()
		}
	})

	form := widget.NewForm(
		widget.NewFormItem("RGB", w.rgbEntry),
		widget.NewFormItem("Hex", w.hexEntry),
		widget.NewFormItem("HSL", w.hslLabel),
	)
	w.win.SetContent(container.NewBorder(
		w.toggle, copyBtn, w.swatch, nil,
		form,
	))
	w.win.Canvas().SetOnTypedKey(w.handleKey)

	a.SetIcon(tray.Icon())
	if desk, ok := a.(desktop.App); ok {
		desk.SetSystemTrayIcon(tray.Icon())
		desk.SetSystemTrayMenu(fyne.NewMenu(Title,
			fyne.NewMenuItem("Pick color", func() { w.onToggle(true) }),
			fyne.NewMenuItem("Copy hex", copyBtn.OnTapped),
		))
	}

	a.Lifecycle().SetOnStarted(func() {
		go func() {
			if err := windowicon.Remove(Title); err != nil {
				log.Printf("gui: %v", err)
			}
		}()
	})

	w.render()
	return w
}

// readoutEntry is a read-only entry that still lets Escape reach the
// window while it holds focus.
type readoutEntry struct {
	widget.Entry
	onKey func(*fyne.KeyEvent)
}

func (e *readoutEntry) TypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape {
		e.onKey(ev)
		return
	}
	e.Entry.TypedKey(ev)
}

// newReadout returns an entry that looks editable but always snaps back to
// the text derived from the committed color.
func (w *Window) newReadout(text func() string) *readoutEntry {
	e := &readoutEntry{onKey: w.handleKey}
	e.ExtendBaseWidget(e)
	e.OnChanged = func(s string) {
		if want := text(); s != want {
			e.SetText(want)
		}
	}
	return e
}

// SetColor implements picker.View.
func (w *Window) SetColor(c rgb.Color) {
	w.do(func() {
		w.color = c
		w.render()
	})
}

// SetSelecting implements picker.View.
func (w *Window) SetSelecting(on bool) {
	w.do(func() {
		w.syncing = true
		w.toggle.SetChecked(on)
		w.syncing = false
	})
}

// ShowAndRun blocks until the window is closed.
func (w *Window) ShowAndRun() {
	w.win.ShowAndRun()
	w.closed.Store(true)
}

// Closed reports whether the UI has stopped running.
func (w *Window) Closed() bool { return w.closed.Load() }

// Quit stops the app from any goroutine.
func (w *Window) Quit() { w.do(w.app.Quit) }

// do schedules fn on the UI thread unless the UI is gone, in which case
// nothing would ever run it.
func (w *Window) do(fn func()) {
	if w.closed.Load() {
		return
	}
	fyne.Do(fn)
}

func (w *Window) render() {
	w.swatch.FillColor = w.color.NRGBA()
	w.swatch.Refresh()
	w.rgbEntry.SetText(w.color.Decimal())
	w.hexEntry.SetText(w.color.Hex())
	w.hslLabel.SetText(w.color.HSL())
}

func (w *Window) onToggle(on bool) {
	if w.syncing || w.actions.Toggle == nil {
		return
	}
	w.actions.Toggle(on)
}

func (w *Window) handleKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape && w.actions.Cancel != nil {
		w.actions.Cancel()
	}
}
