package rgb

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 8-bit-per-channel color.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// White is the color shown before anything has been picked.
var White = Color{R: 255, G: 255, B: 255}

// FromColor converts any image/color value, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Decimal returns "R, G, B" with base-10 channels.
func (c Color) Decimal() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// Hex returns "#RRGGBB" with uppercase digits.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// HSL returns the CSS-style hsl() form, rounded to whole degrees and percents.
func (c Color) HSL() string {
	h, s, l := c.colorful().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", int(math.Round(h))%360, int(math.Round(s*100)), int(math.Round(l*100)))
}

// NRGBA returns a fully opaque color suitable for drawing.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseHex accepts "#RGB" or "#RRGGBB", with or without the leading '#'.
func ParseHex(s string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: want #RGB or #RRGGBB", s)
	}
	cf, err := colorful.Hex("#" + strings.ToLower(v))
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return Color{R: r, G: g, B: b}, nil
}
