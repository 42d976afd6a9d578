//go:build windows

package overlay

import (
	"errors"
	"log"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

const (
	wmShowOverlay  = 0x8000 + 1 // WM_APP + n
	wmHideOverlay  = 0x8000 + 2
	wmCloseOverlay = 0x8000 + 3

	escapePollTimerID    = 1
	escapePollIntervalMs = 25

	lwaAlpha = 0x2
	// Lowest alpha that still receives mouse input.
	overlayAlpha = 1
)

var (
	user32                         = windows.NewLazySystemDLL("user32.dll")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procGetAsyncKeyState           = user32.NewProc("GetAsyncKeyState")
)

// The window procedure is a plain callback, so the live surface is global.
var (
	activeMu      sync.Mutex
	activeSurface *windowsSurface
)

// windowsSurface is a near-transparent topmost window spanning the virtual
// screen. It owns a locked OS thread running its message loop.
type windowsSurface struct {
	callbacks

	hwnd          win.HWND
	escapeWasDown bool
}

func newPlatformSurface() (Surface, error) {
	s := &windowsSurface{}
	ready := make(chan error, 1)
	go s.loop(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return s, nil
}

func (s *windowsSurface) Show() { win.PostMessage(s.hwnd, wmShowOverlay, 0, 0) }

func (s *windowsSurface) Hide() { win.PostMessage(s.hwnd, wmHideOverlay, 0, 0) }

func (s *windowsSurface) Close() error {
	if win.PostMessage(s.hwnd, wmCloseOverlay, 0, 0) == 0 {
		return errors.New("failed to post close to overlay window")
	}
	return nil
}

func (s *windowsSurface) loop(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	className := syscall.StringToUTF16Ptr("ColorPickerOverlay")
	wndClass := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		LpfnWndProc:   syscall.NewCallback(overlayWndProc),
		HInstance:     win.GetModuleHandle(nil),
		HCursor:       win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_CROSS)),
		LpszClassName: className,
	}
	if win.RegisterClassEx(&wndClass) == 0 {
		ready <- errors.New("failed to register overlay window class")
		return
	}
	defer win.UnregisterClass(className)

	x, y, w, h := virtualScreen()
	hwnd := win.CreateWindowEx(
		win.WS_EX_TOPMOST|win.WS_EX_LAYERED|win.WS_EX_TOOLWINDOW,
		className,
		syscall.StringToUTF16Ptr("Pick a color - click to select, ESC cancels"),
		win.WS_POPUP,
		x, y, w, h,
		0, 0, win.GetModuleHandle(nil), nil,
	)
	if hwnd == 0 {
		ready <- errors.New("failed to create overlay window")
		return
	}
	if r, _, err := procSetLayeredWindowAttributes.Call(uintptr(hwnd), 0, overlayAlpha, lwaAlpha); r == 0 {
		log.Printf("overlay: SetLayeredWindowAttributes failed: %v", err)
	}

	s.hwnd = hwnd
	activeMu.Lock()
	activeSurface = s
	activeMu.Unlock()
	log.Printf("overlay: window created hwnd=%v at (%d,%d) %dx%d", hwnd, x, y, w, h)
	ready <- nil

	var msg win.MSG
	for win.GetMessage(&msg, 0, 0, 0) > 0 {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}

	activeMu.Lock()
	if activeSurface == s {
		activeSurface = nil
	}
	activeMu.Unlock()
	log.Printf("overlay: message loop exited")
}

func currentSurface() *windowsSurface {
	activeMu.Lock()
	defer activeMu.Unlock()
	return activeSurface
}

func overlayWndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	s := currentSurface()
	if s == nil {
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	}

	switch msg {
	case wmShowOverlay:
		// Monitors may have changed since the window was created.
		x, y, w, h := virtualScreen()
		win.SetWindowPos(hwnd, win.HWND_TOPMOST, x, y, w, h, win.SWP_SHOWWINDOW)
		win.ShowWindow(hwnd, win.SW_SHOW)
		win.SetForegroundWindow(hwnd)
		win.SetFocus(hwnd)
		s.escapeWasDown, _ = asyncKeyState(win.VK_ESCAPE)
		win.SetTimer(hwnd, escapePollTimerID, escapePollIntervalMs, 0)
		return 0
	case wmHideOverlay:
		win.KillTimer(hwnd, escapePollTimerID)
		win.ShowWindow(hwnd, win.SW_HIDE)
		return 0
	case wmCloseOverlay:
		win.KillTimer(hwnd, escapePollTimerID)
		win.DestroyWindow(hwnd)
		return 0
	case win.WM_LBUTTONUP:
		s.fireClick()
		return 0
	case win.WM_KEYDOWN:
		if wParam == win.VK_ESCAPE {
			s.fireCancel()
			return 0
		}
	case win.WM_TIMER:
		if wParam == escapePollTimerID {
			s.pollEscape()
			return 0
		}
	case win.WM_DESTROY:
		win.PostQuitMessage(0)
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

// pollEscape catches Escape when another window kept keyboard focus.
func (s *windowsSurface) pollEscape() {
	down, pressed := asyncKeyState(win.VK_ESCAPE)
	if !s.escapeWasDown && (down || pressed) {
		log.Printf("overlay: escape detected via async polling")
		s.fireCancel()
	}
	s.escapeWasDown = down
}

func asyncKeyState(vk int32) (down bool, pressedSinceLast bool) {
	r, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	state := uint16(r)
	return state&0x8000 != 0, state&0x0001 != 0
}

func virtualScreen() (x, y, w, h int32) {
	return win.GetSystemMetrics(win.SM_XVIRTUALSCREEN),
		win.GetSystemMetrics(win.SM_YVIRTUALSCREEN),
		win.GetSystemMetrics(win.SM_CXVIRTUALSCREEN),
		win.GetSystemMetrics(win.SM_CYVIRTUALSCREEN)
}
