package clipboard

import (
	"os"
	"testing"

	"color-picker/src/rgb"
)

func TestWriteColor(t *testing.T) {
	if os.Getenv("COLOR_PICKER_INTERACTIVE_TESTS") != "1" {
		t.Skip("set COLOR_PICKER_INTERACTIVE_TESTS=1 to touch the system clipboard")
	}
	if err := Init(); err != nil {
		t.Skipf("clipboard unavailable: %v", err)
	}
	if err := WriteColor(rgb.Color{R: 255, G: 0, B: 16}); err != nil {
		t.Fatalf("WriteColor failed: %v", err)
	}
}
