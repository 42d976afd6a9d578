package messages

import "color-picker/src/singleinstance"

// Message is anything the event loop can consume.
type Message interface {
	Type() string
}

// MessageType constants for type identification
const (
	TypeToggleSelection  = "ToggleSelection"
	TypeSampleTick       = "SampleTick"
	TypeOverlayClicked   = "OverlayClicked"
	TypeOverlayCancelled = "OverlayCancelled"
	TypeHotkeyPressed    = "HotkeyPressed"
	TypeCopyHex          = "CopyHex"
	TypePickRequest      = "PickRequest"
)

// ToggleSelection - sent by the toggle control and tray menu
type ToggleSelection struct {
	On bool
}

func (m ToggleSelection) Type() string { return TypeToggleSelection }

// SampleTick - sent by the sampling timer
type SampleTick struct{}

func (m SampleTick) Type() string { return TypeSampleTick }

// OverlayClicked - sent by the overlay on a primary click
type OverlayClicked struct{}

func (m OverlayClicked) Type() string { return TypeOverlayClicked }

// OverlayCancelled - sent by the overlay or main window on Escape
type OverlayCancelled struct{}

func (m OverlayCancelled) Type() string { return TypeOverlayCancelled }

// HotkeyPressed - sent by the global hotkey listener
type HotkeyPressed struct {
	Combo string
}

func (m HotkeyPressed) Type() string { return TypeHotkeyPressed }

// CopyHex - sent by the copy button and tray menu
type CopyHex struct{}

func (m CopyHex) Type() string { return TypeCopyHex }

// PickRequest - a delegated pick from another process, answered when the
// selection ends
type PickRequest struct {
	Conn singleinstance.Conn
}

func (m PickRequest) Type() string { return TypePickRequest }
