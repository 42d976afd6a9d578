package rgb

import (
	"fmt"
	"image/color"
	"testing"
)

func TestFormats(t *testing.T) {
	tests := []struct {
		c       Color
		decimal string
		hex     string
	}{
		{Color{255, 0, 16}, "255, 0, 16", "#FF0010"},
		{Color{0, 0, 0}, "0, 0, 0", "#000000"},
		{Color{10, 10, 10}, "10, 10, 10", "#0A0A0A"},
		{Color{171, 205, 239}, "171, 205, 239", "#ABCDEF"},
		{White, "255, 255, 255", "#FFFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			if got := tt.c.Decimal(); got != tt.decimal {
				t.Errorf("Decimal() = %q, expected %q", got, tt.decimal)
			}
			if got := tt.c.Hex(); got != tt.hex {
				t.Errorf("Hex() = %q, expected %q", got, tt.hex)
			}
		})
	}
}

func TestFormatsAllChannelValues(t *testing.T) {
	for v := 0; v < 256; v++ {
		b := uint8(v)
		c := Color{R: b, G: 255 - b, B: b / 2}
		wantDec := fmt.Sprintf("%d, %d, %d", b, 255-b, b/2)
		wantHex := fmt.Sprintf("#%02X%02X%02X", b, 255-b, b/2)
		if c.Decimal() != wantDec {
			t.Fatalf("Decimal() = %q, expected %q", c.Decimal(), wantDec)
		}
		if c.Hex() != wantHex {
			t.Fatalf("Hex() = %q, expected %q", c.Hex(), wantHex)
		}
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Color{255, 0, 0}, "hsl(0, 100%, 50%)"},
		{Color{0, 255, 0}, "hsl(120, 100%, 50%)"},
		{Color{0, 0, 255}, "hsl(240, 100%, 50%)"},
		{Color{0, 0, 0}, "hsl(0, 0%, 0%)"},
		{White, "hsl(0, 0%, 100%)"},
	}
	for _, tt := range tests {
		t.Run(tt.c.Hex(), func(t *testing.T) {
			if got := tt.c.HSL(); got != tt.want {
				t.Errorf("HSL() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FF0010", Color{255, 0, 16}, false},
		{"ff0010", Color{255, 0, 16}, false},
		{"#abc", Color{0xaa, 0xbb, 0xcc}, false},
		{" #0a0A0a ", Color{10, 10, 10}, false},
		{"", Color{}, true},
		{"#12345", Color{}, true},
		{"#GG0000", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHex(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.RGBA{R: 1, G: 2, B: 3, A: 255})
	if got != (Color{1, 2, 3}) {
		t.Errorf("FromColor() = %v, expected #010203", got)
	}
	if nrgba := got.NRGBA(); nrgba.A != 0xff {
		t.Errorf("NRGBA().A = %d, expected 255", nrgba.A)
	}
}
