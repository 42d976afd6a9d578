package tray

import (
	"fyne.io/fyne/v2"
)

// SVGContent is the eyedropper icon shown in the system tray.
const SVGContent = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16" width="16" height="16">
  <!-- Bulb -->
  <path d="M11.2 1.6a2 2 0 0 1 2.8 0l0.4 0.4a2 2 0 0 1 0 2.8l-1.6 1.6-3.2-3.2z" fill="#333333"/>
  <!-- Collar -->
  <rect x="7.2" y="4.4" width="4.4" height="1.4" transform="rotate(45 9.4 5.1)" fill="#333333"/>
  <!-- Glass tube -->
  <path d="M8.2 5.6l2.2 2.2-5.6 5.6-1.8 0.4 0.4-1.8z" fill="#ffffff" stroke="#333333" stroke-width="0.9" stroke-linejoin="round"/>
  <!-- Drop -->
  <path d="M2.4 12.8c-0.8 1-1.2 1.6-1.2 2a1.2 1.2 0 0 0 2.4 0c0-0.4-0.4-1-1.2-2z" fill="#0078d4"/>
</svg>`

var icon = fyne.NewStaticResource("color-picker.svg", []byte(SVGContent))

// Icon returns the tray and application icon.
func Icon() fyne.Resource {
	return icon
}
