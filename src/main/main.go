package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"color-picker/src/clipboard"
	"color-picker/src/config"
	"color-picker/src/eventloop"
	"color-picker/src/gui"
	"color-picker/src/logutil"
	"color-picker/src/messages"
	"color-picker/src/notification"
	"color-picker/src/overlay"
	"color-picker/src/picker"
	"color-picker/src/rgb"
	"color-picker/src/runtimeinit"
	"color-picker/src/sampler"
	"color-picker/src/singleinstance"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
)

const appID = "io.github.color-picker"

type mainOptions struct {
	pick             bool
	hotkey           string
	color            string
	interval         time.Duration
	noStartSelecting bool
}

func (o mainOptions) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		HotkeyOverride:         o.hotkey,
		InitialColorOverride:   o.color,
		SampleIntervalOverride: o.interval,
		NoStartSelecting:       o.noStartSelecting,
	}
}

func main() {
	// Ensure DPI awareness before creating any windows or querying metrics
	enableDPIAwareness()

	if err := runWithArgs(normalizeLegacyArgs(os.Args)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runWithArgs(args []string) error {
	if len(args) == 0 {
		args = []string{"color-picker"}
	}
	opts := &mainOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *mainOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "color-picker",
		Short:         "Pick a color from anywhere on the screen",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.pick {
				return runPick(cmd.Context(), *opts, cmd.OutOrStdout())
			}
			return runResident(*opts)
		},
	}

	cmd.Flags().BoolVar(&opts.pick, "pick", false, "Pick one color, print its hex value and exit (delegates to a running picker)")
	cmd.Flags().StringVar(&opts.hotkey, "hotkey", "", "Global hotkey that starts picking (overrides HOTKEY)")
	cmd.Flags().StringVar(&opts.color, "color", "", "Initial color as #RRGGBB (overrides INITIAL_COLOR)")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "Sampling interval while picking (overrides SAMPLE_INTERVAL_MS)")
	cmd.Flags().BoolVar(&opts.noStartSelecting, "no-start-selecting", false, "Do not start in selection mode")

	return cmd
}

// normalizeLegacyArgs maps single-dash long flags (-pick) to GNU style (--pick).
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	normalized := make([]string, len(args))
	copy(normalized, args)
	for i := 1; i < len(normalized); i++ {
		arg := normalized[i]
		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' {
			name := arg[1:]
			if eq := strings.IndexByte(name, '='); eq >= 0 {
				name = name[:eq]
			}
			if len(name) > 1 {
				normalized[i] = "-" + arg
			}
		}
	}
	return normalized
}

func runPick(ctx context.Context, opts mainOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	// Load .env early so SINGLEINSTANCE_PORT_* are applied before delegation scan
	_, _ = config.LoadWithOptions(opts.loadOptions())
	return handlePickWithDelegation(ctx, singleinstance.NewClient(), stdout, func() (string, error) {
		return runStandalonePick(opts)
	})
}

// handlePickWithDelegation asks a resident picker first and falls back to
// picking in this process.
func handlePickWithDelegation(ctx context.Context, client singleinstance.Client, stdout io.Writer, fallback func() (string, error)) error {
	delegated, hex, err := client.TryPick(ctx)
	switch {
	case delegated && err != nil:
		return err
	case delegated:
		log.Printf("Delegated pick to resident")
	default:
		log.Printf("No resident detected, picking standalone")
		hex, err = fallback()
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(stdout, hex)
	return err
}

func runResident(opts mainOptions) error {
	// Load .env early so SINGLEINSTANCE_PORT_* are available for pre-flight
	_, _ = config.LoadWithOptions(opts.loadOptions())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	port, found := singleinstance.DetectResidentPort(ctx)
	cancel()
	if found {
		err := fmt.Errorf("a color picker is already running on port %d; use --pick to pick through it", port)
		notification.ShowBlockingError(gui.Title, err.Error())
		return err
	}

	_, err := runGUI(opts, false)
	return err
}

func copyAndNotify(c rgb.Color) error {
	if err := clipboard.WriteColor(c); err != nil {
		return err
	}
	notification.ShowCopied(c.Hex())
	return nil
}

func runStandalonePick(opts mainOptions) (string, error) {
	out, err := runGUI(opts, true)
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", errors.New("picker closed before a color was chosen")
	}
	if err := out.Err(); err != nil {
		return "", err
	}
	return out.Color.Hex(), nil
}

// runGUI runs the picker window until it is closed. In pick-once mode it
// quits after the first selection and returns its outcome.
func runGUI(opts mainOptions, pickOnce bool) (*picker.Outcome, error) {
	cfg, err := runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions:  opts.loadOptions(),
		SetupLogging: logutil.Setup,
	})
	if err != nil {
		notification.ShowBlockingError(gui.Title, fmt.Sprintf("Startup failed: %v", err))
		return nil, err
	}

	a := app.NewWithID(appID)

	var loop *eventloop.Loop
	window := gui.New(a, gui.Actions{
		Toggle: func(on bool) { loop.Post(messages.ToggleSelection{On: on}) },
		Cancel: func() { loop.Post(messages.OverlayCancelled{}) },
		Copy:   func() { loop.Post(messages.CopyHex{}) },
	})

	loopOpts := eventloop.Options{
		Config:    cfg,
		Sampler:   sampler.New(),
		Surface:   overlay.New(),
		View:      window,
		CopyColor: copyAndNotify,
	}
	if !pickOnce {
		loopOpts.Server = singleinstance.NewServer()
	}
	loop = eventloop.New(loopOpts)

	var outcome *picker.Outcome
	if pickOnce {
		loop.OnFinish(func(out picker.Outcome) {
			if outcome == nil {
				outcome = &out
				window.Quit()
			}
		})
	} else {
		loop.StartHotkey(cfg.Hotkey)
	}

	ctx, cancel := context.WithCancel(context.Background())
	loopErr := make(chan error, 1)
	go func() { loopErr <- loop.Run(ctx) }()

	// Handle SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			window.Quit()
		}
	}()

	if cfg.StartSelecting || pickOnce {
		loop.Post(messages.ToggleSelection{On: true})
	}

	window.ShowAndRun()

	cancel()
	if err := <-loopErr; err != nil && !errors.Is(err, context.Canceled) {
		return outcome, fmt.Errorf("event loop stopped: %w", err)
	}
	return outcome, nil
}
