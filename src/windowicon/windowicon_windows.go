//go:build windows

package windowicon

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	gwlExStyle         = ^uintptr(19) // GWL_EXSTYLE (-20)
	wsExDlgModalFrame  = 0x00000001
	wmSetIcon          = 0x0080
	iconSmall          = 0
	iconBig            = 1
	swpNoSize          = 0x0001
	swpNoMove          = 0x0002
	swpNoZOrder        = 0x0004
	swpFrameChanged    = 0x0020
	iconRefreshSWPFlag = swpNoMove | swpNoSize | swpNoZOrder | swpFrameChanged
)

var (
	user32                = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW       = user32.NewProc("FindWindowW")
	procGetWindowLongPtrW = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW = user32.NewProc("SetWindowLongPtrW")
	procSendMessageW      = user32.NewProc("SendMessageW")
	procSetWindowPos      = user32.NewProc("SetWindowPos")
)

func removeIcon(title string) error {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(titlePtr)))
	if hwnd == 0 {
		return errWindowNotFound
	}

	exStyle, _, _ := procGetWindowLongPtrW.Call(hwnd, gwlExStyle)
	procSetWindowLongPtrW.Call(hwnd, gwlExStyle, exStyle|wsExDlgModalFrame)

	procSendMessageW.Call(hwnd, wmSetIcon, iconSmall, 0)
	procSendMessageW.Call(hwnd, wmSetIcon, iconBig, 0)

	procSetWindowPos.Call(hwnd, 0, 0, 0, 0, 0, iconRefreshSWPFlag)
	return nil
}
