package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"color-picker/src/rgb"

	"github.com/joho/godotenv"
)

const (
	EnvPathEnvVar         = "COLOR_PICKER_ENV"
	DefaultHotkey         = "Ctrl+Alt+P"
	DefaultSampleInterval = 16 * time.Millisecond

	DefaultResidentPortStart = 49600
	DefaultResidentPortEnd   = 49650

	minUserPort = 1024
	maxPort     = 65535
)

// PortRange is an inclusive range of loopback ports probed by the
// single-instance resident and its clients.
type PortRange struct {
	Start int
	End   int
}

// Len returns the number of ports in the range.
func (r PortRange) Len() int { return r.End - r.Start + 1 }

// LoadOptions carry command-line overrides. Zero values mean "not set".
type LoadOptions struct {
	HotkeyOverride         string
	InitialColorOverride   string
	SampleIntervalOverride time.Duration
	NoStartSelecting       bool
}

type Config struct {
	EnableFileLogging bool
	Hotkey            string
	InitialColor      rgb.Color
	SampleInterval    time.Duration
	StartSelecting    bool
	CopyOnCommit      bool
	ResidentPorts     PortRange
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Load configuration from sources in priority order:
	// 1) .env in the application (executable) directory
	// 2) If not found, the file named by COLOR_PICKER_ENV
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		EnableFileLogging: envBool("ENABLE_FILE_LOGGING", false),
		Hotkey:            getEnvWithDefault("HOTKEY", DefaultHotkey),
		InitialColor:      resolveColor(os.Getenv("INITIAL_COLOR"), rgb.White),
		SampleInterval:    resolveInterval(os.Getenv("SAMPLE_INTERVAL_MS")),
		StartSelecting:    envBool("START_SELECTING", true),
		CopyOnCommit:      envBool("COPY_ON_COMMIT", false),
		ResidentPorts:     ResidentPorts(),
	}

	if v := strings.TrimSpace(opts.HotkeyOverride); v != "" {
		cfg.Hotkey = v
	}
	if v := strings.TrimSpace(opts.InitialColorOverride); v != "" {
		cfg.InitialColor = resolveColor(v, cfg.InitialColor)
	}
	if opts.SampleIntervalOverride > 0 {
		cfg.SampleInterval = opts.SampleIntervalOverride
	}
	if opts.NoStartSelecting {
		cfg.StartSelecting = false
	}

	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvPathEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func resolveColor(value string, fallback rgb.Color) rgb.Color {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	c, err := rgb.ParseHex(value)
	if err != nil {
		log.Printf("config: ignoring initial color: %v", err)
		return fallback
	}
	return c
}

func resolveInterval(value string) time.Duration {
	if value == "" {
		return DefaultSampleInterval
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return DefaultSampleInterval
	}
	return time.Duration(n) * time.Millisecond
}

// ResidentPorts reads SINGLEINSTANCE_PORT_START/END from the environment.
// Unset or malformed bounds use the defaults; the result is kept inside
// [1024, 65535] and a reversed range is swapped.
func ResidentPorts() PortRange {
	r := PortRange{
		Start: envInt("SINGLEINSTANCE_PORT_START", DefaultResidentPortStart),
		End:   envInt("SINGLEINSTANCE_PORT_END", DefaultResidentPortEnd),
	}
	r.Start = max(r.Start, minUserPort)
	r.End = min(r.End, maxPort)
	if r.End < r.Start {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

func envInt(key string, defaultValue int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: ignoring %s=%q: %v", key, v, err)
		return defaultValue
	}
	return n
}
