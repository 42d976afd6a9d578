package main

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"color-picker/src/rgb"
	"color-picker/src/sampler"
)

// Screen access, swapped out in tests.
var (
	colorAt        = sampler.ColorAt
	cursorPosition = sampler.CursorPosition
	virtualBounds  = sampler.VirtualBounds
)

type cliOptions struct {
	verbose    bool
	jsonOutput bool
	x, y       int
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return runWithArgs(normalizeLegacyArgs(os.Args), os.Stdout)
}

func runWithArgs(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		args = []string{"colorpick"}
	}

	opts := &cliOptions{}
	cmd := newRootCmd(opts)
	cmd.SetOut(stdout)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "colorpick",
		Short:         "Read and format screen colors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Configure logging BEFORE any other operations.
			if !opts.verbose {
				log.SetOutput(io.Discard)
			} else {
				log.SetOutput(os.Stderr)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output to stderr")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")

	cmd.AddCommand(newSampleCmd(opts), newFormatCmd(opts))
	return cmd
}

func newSampleCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the color under the cursor, or at --x/--y",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			xSet, ySet := cmd.Flags().Changed("x"), cmd.Flags().Changed("y")
			if xSet != ySet {
				return fmt.Errorf("--x and --y must be given together")
			}
			return runSample(cmd.OutOrStdout(), *opts, xSet)
		},
	}
	cmd.Flags().IntVar(&opts.x, "x", 0, "Screen X coordinate (virtual screen space)")
	cmd.Flags().IntVar(&opts.y, "y", 0, "Screen Y coordinate (virtual screen space)")
	return cmd
}

func newFormatCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "format <hex>",
		Short: "Print the decimal, hex and HSL forms of a color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rgb.ParseHex(args[0])
			if err != nil {
				return err
			}
			return outputResult(cmd.OutOrStdout(), newColorResult(c, "input", nil), opts.jsonOutput)
		},
	}
}

func runSample(stdout io.Writer, opts cliOptions, atPoint bool) error {
	x, y := opts.x, opts.y
	source := "point"
	if !atPoint {
		x, y = cursorPosition()
		source = "cursor"
	}

	bounds, err := virtualBounds()
	if err != nil {
		return fmt.Errorf("failed to query screen bounds: %w", err)
	}
	if !image.Pt(x, y).In(bounds) {
		return fmt.Errorf("point (%d, %d) is outside the screen %v", x, y, bounds)
	}
	log.Printf("Sampling %s at (%d, %d)", source, x, y)

	start := time.Now()
	c, err := colorAt(x, y)
	if err != nil {
		return fmt.Errorf("sampling failed: %w", err)
	}
	log.Printf("Sampled %s in %v", c.Hex(), time.Since(start))

	return outputResult(stdout, newColorResult(c, source, &image.Point{X: x, Y: y}), opts.jsonOutput)
}

type ColorResult struct {
	Hex       string `json:"hex"`
	Decimal   string `json:"decimal"`
	HSL       string `json:"hsl"`
	R         uint8  `json:"r"`
	G         uint8  `json:"g"`
	B         uint8  `json:"b"`
	Source    string `json:"source"`
	X         *int   `json:"x,omitempty"`
	Y         *int   `json:"y,omitempty"`
	Timestamp string `json:"timestamp"`
}

func newColorResult(c rgb.Color, source string, at *image.Point) ColorResult {
	res := ColorResult{
		Hex:       c.Hex(),
		Decimal:   c.Decimal(),
		HSL:       c.HSL(),
		R:         c.R,
		G:         c.G,
		B:         c.B,
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if at != nil {
		x, y := at.X, at.Y
		res.X, res.Y = &x, &y
	}
	return res
}

func outputResult(w io.Writer, res ColorResult, jsonOutput bool) error {
	if jsonOutput {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(res); err != nil {
			return fmt.Errorf("failed to encode JSON output: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n", res.Decimal, res.Hex, res.HSL)
	return err
}

func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	normalized := make([]string, len(args))
	copy(normalized, args)

	for i := 1; i < len(normalized); i++ {
		arg := normalized[i]
		switch {
		case arg == "-json":
			normalized[i] = "--json"
		case arg == "-verbose":
			normalized[i] = "--verbose"
		case strings.HasPrefix(arg, "-verbose="):
			normalized[i] = "--verbose=" + arg[len("-verbose="):]
		case strings.HasPrefix(arg, "-json="):
			normalized[i] = "--json=" + arg[len("-json="):]
		}
	}

	return normalized
}
