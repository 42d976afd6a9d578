package notification

import (
	"log"

	"fyne.io/fyne/v2"
)

// ShowCopied tells the user a color reached the clipboard. It is a no-op
// when no fyne app is running.
func ShowCopied(hex string) {
	a := fyne.CurrentApp()
	if a == nil {
		log.Printf("Copied %s", hex)
		return
	}
	a.SendNotification(fyne.NewNotification("Color copied", hex+" is on the clipboard"))
}
