package tray

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestIconIsWellFormedSVG(t *testing.T) {
	res := Icon()
	if res.Name() != "color-picker.svg" {
		t.Errorf("Expected svg resource name, got %q", res.Name())
	}

	dec := xml.NewDecoder(strings.NewReader(string(res.Content())))
	for {
		_, err := dec.Token()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			t.Fatalf("Icon is not well-formed XML: %v", err)
		}
	}
}
