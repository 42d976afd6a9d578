package runtimeinit

import (
	"fmt"
	"log"

	"color-picker/src/clipboard"
	"color-picker/src/config"
)

type Options struct {
	LoadOptions  config.LoadOptions
	SetupLogging func(bool)
	// InitClipboard defaults to clipboard.Init.
	InitClipboard func() error
}

func Bootstrap(opts Options) (*config.Config, error) {
	cfg, err := config.LoadWithOptions(opts.LoadOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.SetupLogging != nil {
		opts.SetupLogging(cfg.EnableFileLogging)
	}

	initClipboard := opts.InitClipboard
	if initClipboard == nil {
		initClipboard = clipboard.Init
	}
	if err := initClipboard(); err != nil {
		return nil, fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	log.Printf("Color picker initialized: hotkey=%s interval=%v initial=%s copyOnCommit=%v",
		cfg.Hotkey, cfg.SampleInterval, cfg.InitialColor.Hex(), cfg.CopyOnCommit)
	return cfg, nil
}
