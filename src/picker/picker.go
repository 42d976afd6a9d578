package picker

import (
	"errors"
	"log"

	"color-picker/src/rgb"
)

// ErrSelectionCancelled is reported to finish listeners when a selection is reverted.
var ErrSelectionCancelled = errors.New("selection cancelled")

// Sampler reads the screen color under the mouse cursor.
type Sampler interface {
	ColorUnderCursor() (rgb.Color, error)
}

// Surface is the capture surface shown while selecting.
type Surface interface {
	Show()
	Hide()
}

// Timer drives periodic sampling while selecting.
type Timer interface {
	Start()
	Stop()
}

// View receives one-way updates of the controller state.
type View interface {
	SetColor(c rgb.Color)
	SetSelecting(on bool)
}

// Outcome describes how a selection ended.
type Outcome struct {
	Color     rgb.Color
	Cancelled bool
}

// Err returns ErrSelectionCancelled for a cancelled outcome, nil otherwise.
func (o Outcome) Err() error {
	if o.Cancelled {
		return ErrSelectionCancelled
	}
	return nil
}

// Controller owns the committed color, the selection flag and the
// collaborators toggled with it. It is not safe for concurrent use: every
// method must be called from the event loop goroutine.
type Controller struct {
	sampler Sampler
	surface Surface
	timer   Timer
	view    View

	color     rgb.Color
	previous  rgb.Color
	selecting bool

	listeners []func(Outcome)
}

// New creates a controller showing initial. A nil view is allowed.
func New(initial rgb.Color, sampler Sampler, surface Surface, timer Timer, view View) *Controller {
	c := &Controller{
		sampler:  sampler,
		surface:  surface,
		timer:    timer,
		view:     view,
		color:    initial,
		previous: initial,
	}
	if view != nil {
		view.SetColor(initial)
		view.SetSelecting(false)
	}
	return c
}

// OnFinish registers fn to be called every time selection mode ends.
func (c *Controller) OnFinish(fn func(Outcome)) {
	c.listeners = append(c.listeners, fn)
}

// Color returns the displayed color.
func (c *Controller) Color() rgb.Color { return c.color }

// Previous returns the color snapshotted when selection mode was last entered.
func (c *Controller) Previous() rgb.Color { return c.previous }

// Selecting reports whether selection mode is active.
func (c *Controller) Selecting() bool { return c.selecting }

// Activate enters selection mode. Calling it while already selecting keeps
// the original snapshot.
func (c *Controller) Activate() {
	if c.selecting {
		return
	}
	c.previous = c.color
	c.selecting = true
	c.surface.Show()
	c.timer.Start()
	log.Printf("picker: selection started, previous=%s", c.previous.Hex())
	if c.view != nil {
		c.view.SetSelecting(true)
	}
}

// Deactivate leaves selection mode keeping whatever color is displayed.
func (c *Controller) Deactivate() {
	c.finish(false)
}

// Toggle applies the state of the UI toggle control.
func (c *Controller) Toggle(on bool) {
	if on {
		c.Activate()
	} else {
		c.Deactivate()
	}
}

// Tick samples the cursor color while selecting.
func (c *Controller) Tick() {
	if !c.selecting {
		return
	}
	sampled, err := c.sampler.ColorUnderCursor()
	if err != nil {
		log.Printf("picker: tick sample failed: %v", err)
		return
	}
	c.SetColor(sampled)
}

// Click commits the color under the cursor and ends selection mode.
func (c *Controller) Click() {
	if !c.selecting {
		return
	}
	sampled, err := c.sampler.ColorUnderCursor()
	if err != nil {
		log.Printf("picker: click sample failed, keeping %s: %v", c.color.Hex(), err)
	} else {
		c.SetColor(sampled)
	}
	c.finish(false)
}

// Cancel restores the snapshot taken on the last Activate and ends selection
// mode. Outside selection mode it still reverts a committed pick.
func (c *Controller) Cancel() {
	c.SetColor(c.previous)
	c.finish(true)
}

// SetColor replaces the displayed color.
func (c *Controller) SetColor(col rgb.Color) {
	c.color = col
	if c.view != nil {
		c.view.SetColor(col)
	}
}

func (c *Controller) finish(cancelled bool) {
	if !c.selecting {
		return
	}
	c.selecting = false
	c.surface.Hide()
	c.timer.Stop()
	log.Printf("picker: selection ended, color=%s cancelled=%v", c.color.Hex(), cancelled)
	if c.view != nil {
		c.view.SetSelecting(false)
	}
	out := Outcome{Color: c.color, Cancelled: cancelled}
	for _, fn := range c.listeners {
		fn(out)
	}
}
