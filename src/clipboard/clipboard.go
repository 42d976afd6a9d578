package clipboard

import (
	"fmt"
	"sync"

	"color-picker/src/rgb"

	"golang.design/x/clipboard"
)

var (
	writeMu sync.Mutex
	initErr error
	inited  bool
)

// Init must succeed before Write is used.
func Init() error {
	writeMu.Lock()
	defer writeMu.Unlock()
	if !inited {
		initErr = clipboard.Init()
		inited = true
	}
	return initErr
}

// Write performs a mutex-guarded clipboard write.
func Write(text string) error {
	writeMu.Lock()
	defer writeMu.Unlock()
	if !inited || initErr != nil {
		return fmt.Errorf("clipboard not initialized: %v", initErr)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// WriteColor copies the hex form of c.
func WriteColor(c rgb.Color) error {
	return Write(c.Hex())
}
