package sampler

import (
	"fmt"
	"image"

	"color-picker/src/rgb"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"
)

// Screen samples pixels from the live desktop.
type Screen struct{}

// New returns a desktop sampler.
func New() Screen { return Screen{} }

// ColorUnderCursor reads the pixel at the current mouse position.
func (Screen) ColorUnderCursor() (rgb.Color, error) {
	x, y := robotgo.Location()
	return ColorAt(x, y)
}

// ColorAt reads a single pixel in virtual-screen coordinates.
func ColorAt(x, y int) (rgb.Color, error) {
	img, err := screenshot.CaptureRect(image.Rect(x, y, x+1, y+1))
	if err != nil {
		return rgb.Color{}, fmt.Errorf("failed to capture pixel at %d,%d: %w", x, y, err)
	}
	return pixelAt(img, x, y)
}

// CursorPosition returns the current mouse position.
func CursorPosition() (int, int) {
	return robotgo.Location()
}

// VirtualBounds returns the union of all active display bounds.
func VirtualBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	return union, nil
}

// pixelAt extracts the first pixel of a 1x1 capture. Backends differ on
// whether the returned image keeps the requested origin, so both are tried.
func pixelAt(img *image.RGBA, x, y int) (rgb.Color, error) {
	if img == nil {
		return rgb.Color{}, fmt.Errorf("empty capture")
	}
	p := image.Pt(x, y)
	if !p.In(img.Bounds()) {
		p = img.Bounds().Min
	}
	if !p.In(img.Bounds()) {
		return rgb.Color{}, fmt.Errorf("empty capture")
	}
	c := img.RGBAAt(p.X, p.Y)
	return rgb.Color{R: c.R, G: c.G, B: c.B}, nil
}
