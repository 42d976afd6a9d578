package runtimeinit

import (
	"errors"
	"testing"
	"time"
)

func TestBootstrap(t *testing.T) {
	t.Setenv("ENABLE_FILE_LOGGING", "true")
	var loggingEnabled, clipboardCalled bool

	cfg, err := Bootstrap(Options{
		SetupLogging:  func(enabled bool) { loggingEnabled = enabled },
		InitClipboard: func() error { clipboardCalled = true; return nil },
	})
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if !loggingEnabled {
		t.Error("Expected SetupLogging to receive ENABLE_FILE_LOGGING=true")
	}
	if !clipboardCalled {
		t.Error("Expected clipboard init")
	}
	if cfg.SampleInterval <= 0 || cfg.SampleInterval > time.Second {
		t.Errorf("Unexpected sample interval %v", cfg.SampleInterval)
	}
}

func TestBootstrapClipboardFailure(t *testing.T) {
	want := errors.New("no display")
	_, err := Bootstrap(Options{InitClipboard: func() error { return want }})
	if !errors.Is(err, want) {
		t.Errorf("Expected wrapped clipboard error, got %v", err)
	}
}
